package utils

import (
	"net/mail"
	"regexp"
)

// MinPasswordLength is the minimum accepted password size at signup and on
// password changes.
const MinPasswordLength = 8

var phoneRegex = regexp.MustCompile(`^[(]?[0-9]{1,3}[)]?[-\s./0-9]{8,14}$`)

// IsValidEmail checks the email for syntactic validity.
func IsValidEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

// IsValidPhone checks the phone number against the permissive pattern used
// for phone-type questions.
func IsValidPhone(phone string) bool {
	return phoneRegex.MatchString(phone)
}

// IsValidPassword checks the minimum length requirement.
func IsValidPassword(password string) bool {
	return len(password) >= MinPasswordLength
}
