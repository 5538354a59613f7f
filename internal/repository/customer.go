package repository

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/differentgrowth/newgenforms/internal/database"
	"github.com/differentgrowth/newgenforms/internal/models"
)

func CreateCustomer(email, password string) (*models.Customer, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	customer := &models.Customer{
		Email:    email,
		Password: string(hashedPassword),
	}
	result := database.DB.Create(customer)
	return customer, result.Error
}

func GetCustomerByEmail(ctx context.Context, email string) (*models.Customer, error) {
	var customer models.Customer
	result := database.DB.WithContext(ctx).First(&customer, "email = ?", email)
	return &customer, result.Error
}

func GetCustomerByID(ctx context.Context, id string) (*models.Customer, error) {
	var customer models.Customer
	result := database.DB.WithContext(ctx).First(&customer, "id = ?", id)
	return &customer, result.Error
}

// GetAdminCustomer returns the oldest admin account. Template surveys are
// seeded under it.
func GetAdminCustomer(ctx context.Context) (*models.Customer, error) {
	var customer models.Customer
	result := database.DB.WithContext(ctx).
		Where("role = ?", models.RoleAdmin).
		Order("created_at asc").
		First(&customer)
	return &customer, result.Error
}

func UpdateCustomer(ctx context.Context, id, email string, language models.Language, commercial bool) error {
	return database.DB.WithContext(ctx).
		Model(&models.Customer{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"email":                     email,
			"language":                  language,
			"commercial_communications": commercial,
		}).Error
}

func UpdateCustomerPassword(ctx context.Context, id, newPassword string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return database.DB.WithContext(ctx).
		Model(&models.Customer{}).
		Where("id = ?", id).
		Update("password", string(hashedPassword)).Error
}
