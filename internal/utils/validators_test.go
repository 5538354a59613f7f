package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("someone@example.com"))
	assert.True(t, IsValidEmail("with.dots+tag@sub.example.org"))
	assert.False(t, IsValidEmail("no-at-sign"))
	assert.False(t, IsValidEmail(""))
}

func TestIsValidPhone(t *testing.T) {
	assert.True(t, IsValidPhone("600123456"))
	assert.True(t, IsValidPhone("(34)600123456"))
	assert.False(t, IsValidPhone("abc"))
	assert.False(t, IsValidPhone(""))
}

func TestIsValidPassword(t *testing.T) {
	assert.True(t, IsValidPassword("12345678"))
	assert.False(t, IsValidPassword("1234567"))
	assert.False(t, IsValidPassword(""))
}
