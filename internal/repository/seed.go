package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/differentgrowth/newgenforms/internal/database"
	"github.com/differentgrowth/newgenforms/internal/models"
)

// SeedSurveyTemplates bootstraps template surveys for a customer. Templates
// whose name the customer already owns are skipped, so seeding is idempotent.
func SeedSurveyTemplates(ctx context.Context, customerID string, templates []models.SurveyTemplate) error {
	return database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, t := range templates {
			var count int64
			if err := tx.Model(&models.Survey{}).
				Where("customer_id = ? AND name = ?", customerID, t.Name).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}

			survey := t.Materialize(customerID)
			if err := tx.Create(&survey).Error; err != nil {
				return err
			}
			if err := relinkQuestions(tx, survey.ID); err != nil {
				return err
			}
		}
		return nil
	})
}
