package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/differentgrowth/newgenforms/internal/database"
	"github.com/differentgrowth/newgenforms/internal/models"
)

// InsertAnswer stores one respondent answer after re-checking, inside the
// transaction, that (a) this client has not already answered this question
// and (b) for is_unique questions, the value is not already taken anywhere.
// Returns models.ErrDuplicateClient or models.ErrDuplicateUniqueValue when a
// pre-check trips. A duplicate that races past the client pre-check hits the
// unique index instead and is reported the same way.
func InsertAnswer(ctx context.Context, question *models.Question, answer *models.Answer) error {
	return database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Answer{}).
			Where("survey_id = ? AND question_id = ? AND client = ?",
				answer.SurveyID, answer.QuestionID, answer.Client).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return models.ErrDuplicateClient
		}

		if question.IsUnique && len(answer.Value) > 0 {
			taken, err := uniqueValueTaken(tx, question.ID, answer.Value[0])
			if err != nil {
				return err
			}
			if taken {
				return models.ErrDuplicateUniqueValue
			}
		}

		if err := tx.Create(answer).Error; err != nil {
			if isDuplicateAnswer(err) {
				return models.ErrDuplicateClient
			}
			return err
		}
		return nil
	})
}

// uniqueValueTaken reports whether value already appears in any stored value
// list of the question. Best effort: two concurrent submissions of the same
// value can still both pass, matching the documented uniqueness guarantee.
func uniqueValueTaken(tx *gorm.DB, questionID, value string) (bool, error) {
	var existing []models.Answer
	if err := tx.Select("value").
		Where("question_id = ?", questionID).
		Find(&existing).Error; err != nil {
		return false, err
	}
	for _, a := range existing {
		for _, v := range a.Value {
			if v == value {
				return true, nil
			}
		}
	}
	return false, nil
}

// isDuplicateAnswer recognizes a unique index violation on the answers table,
// from either GORM's translated error or the raw postgres error code.
func isDuplicateAnswer(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// GetSurveyAnswers returns every answer of a survey for the report table.
func GetSurveyAnswers(ctx context.Context, surveyID string) ([]models.Answer, error) {
	var answers []models.Answer
	result := database.DB.WithContext(ctx).
		Where("survey_id = ?", surveyID).
		Order("created_at asc").
		Find(&answers)
	return answers, result.Error
}

// DeleteAnswersByClient removes every answer a client token submitted to
// one survey, dropping that respondent's whole row from the report.
func DeleteAnswersByClient(ctx context.Context, surveyID, client string) error {
	return database.DB.WithContext(ctx).
		Where("survey_id = ? AND client = ?", surveyID, client).
		Delete(&models.Answer{}).Error
}
