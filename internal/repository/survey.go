package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/differentgrowth/newgenforms/internal/database"
	"github.com/differentgrowth/newgenforms/internal/models"
)

func CreateSurvey(ctx context.Context, customerID, name string) (*models.Survey, error) {
	survey := &models.Survey{
		CustomerID: customerID,
		Name:       name,
		Status:     models.StatusEmpty,
	}
	result := database.DB.WithContext(ctx).Create(survey)
	return survey, result.Error
}

// GetSurvey loads a survey with its questions (ordered) and their options.
func GetSurvey(ctx context.Context, surveyID string) (*models.Survey, error) {
	var survey models.Survey
	result := database.DB.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		}).
		Preload("Questions.Options").
		First(&survey, "id = ?", surveyID)
	return &survey, result.Error
}

// GetCustomerSurvey is GetSurvey scoped to an owner, for dashboard pages.
func GetCustomerSurvey(ctx context.Context, surveyID, customerID string) (*models.Survey, error) {
	var survey models.Survey
	result := database.DB.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		}).
		Preload("Questions.Options").
		First(&survey, "id = ? AND customer_id = ?", surveyID, customerID)
	return &survey, result.Error
}

func GetCustomerSurveys(ctx context.Context, customerID string) ([]models.Survey, error) {
	var surveys []models.Survey
	result := database.DB.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("status asc").
		Order("\"from\" desc NULLS LAST").
		Find(&surveys)
	return surveys, result.Error
}

// UpdateSurveyFeatures stores the survey features and moves an empty survey
// to pending. The handler gates this to editable (empty/pending) surveys so
// the status never moves backwards.
func UpdateSurveyFeatures(ctx context.Context, surveyID string, name string, theme models.SurveyTheme, from, to time.Time, timezone string, redirect *string, finalMessage string) error {
	return database.DB.WithContext(ctx).
		Model(&models.Survey{}).
		Where("id = ?", surveyID).
		Updates(map[string]interface{}{
			"status":        models.StatusPending,
			"name":          name,
			"theme":         theme,
			"from":          from,
			"to":            to,
			"timezone":      timezone,
			"redirect":      redirect,
			"final_message": finalMessage,
		}).Error
}

// MarkSurveyReady relinks the question chain and promotes the survey to
// ready, in one transaction. Precondition checks live in Survey.CheckReady.
func MarkSurveyReady(ctx context.Context, surveyID string) error {
	return database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := relinkQuestions(tx, surveyID); err != nil {
			return err
		}
		return tx.Model(&models.Survey{}).
			Where("id = ?", surveyID).
			Update("status", models.StatusReady).Error
	})
}

// MarkSurveyPublished promotes a ready survey to published and resets the
// window start to the moment of publication, so the respondent window counts
// from first public access. Returns the owner id for the redirect.
func MarkSurveyPublished(ctx context.Context, surveyID string) (string, error) {
	var survey models.Survey
	err := database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&survey, "id = ? AND status = ?", surveyID, models.StatusReady).Error; err != nil {
			return err
		}
		return tx.Model(&models.Survey{}).
			Where("id = ? AND status = ?", surveyID, models.StatusReady).
			Updates(map[string]interface{}{
				"status": models.StatusPublished,
				"from":   time.Now(),
			}).Error
	})
	return survey.CustomerID, err
}

// DeleteSurvey removes a survey and cascades to its questions, options and
// answers. Returns the owner id for the revalidation path.
func DeleteSurvey(ctx context.Context, surveyID string) (string, error) {
	var survey models.Survey
	err := database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&survey, "id = ?", surveyID).Error; err != nil {
			return err
		}
		if err := tx.Where("survey_id = ?", surveyID).Delete(&models.Answer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id IN (?)",
			tx.Model(&models.Question{}).Select("id").Where("survey_id = ?", surveyID),
		).Delete(&models.Option{}).Error; err != nil {
			return err
		}
		if err := tx.Where("survey_id = ?", surveyID).Delete(&models.Question{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Survey{}, "id = ?", surveyID).Error
	})
	return survey.CustomerID, err
}

// PublishDueSurveys promotes every ready survey whose window has opened.
// Idempotent; safe to run redundantly on page loads.
func PublishDueSurveys(ctx context.Context, now time.Time) error {
	return database.DB.WithContext(ctx).
		Model(&models.Survey{}).
		Where("status = ? AND \"from\" <= ?", models.StatusReady, now).
		Update("status", models.StatusPublished).Error
}

// FinishDueSurveys retires every published survey whose window has closed.
// Idempotent; safe to run redundantly on page loads.
func FinishDueSurveys(ctx context.Context, now time.Time) error {
	return database.DB.WithContext(ctx).
		Model(&models.Survey{}).
		Where("status = ? AND \"to\" <= ?", models.StatusPublished, now).
		Update("status", models.StatusFinished).Error
}
