package models

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type CustomerRole string

const (
	RoleAdmin    CustomerRole = "admin"
	RoleCustomer CustomerRole = "customer"
)

type Language string

const (
	LanguageEnglish Language = "english"
	LanguageSpanish Language = "spanish"
)

// Languages lists the selectable account languages.
var Languages = []Language{LanguageEnglish, LanguageSpanish}

// ValidLanguage reports whether lang is one of the selectable languages.
func ValidLanguage(lang Language) bool {
	for _, l := range Languages {
		if l == lang {
			return true
		}
	}
	return false
}

// Customer is an account owner. Respondents are not customers; they are
// identified by a per-session client token (see Answer).
type Customer struct {
	ID                       string       `gorm:"primaryKey;type:uuid"`
	Email                    string       `gorm:"uniqueIndex;not null"`
	Password                 string       `gorm:"not null"`
	Language                 Language     `gorm:"type:varchar(20);default:english"`
	Timezone                 string       `gorm:"default:UTC"`
	CommercialCommunications bool         `gorm:"default:false"`
	Role                     CustomerRole `gorm:"type:varchar(20);default:customer"`
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// CheckPassword compares a plaintext password against the stored hash.
func (c *Customer) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(c.Password), []byte(password))
	return err == nil
}
