package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/differentgrowth/newgenforms/internal/database"
	"github.com/differentgrowth/newgenforms/internal/models"
)

// GetQuestion loads a question with its options and owning survey.
func GetQuestion(ctx context.Context, id string) (*models.Question, error) {
	var question models.Question
	result := database.DB.WithContext(ctx).
		Preload("Options").
		First(&question, "id = ?", id)
	return &question, result.Error
}

// GetFirstQuestion loads the question at order 0 of a survey.
func GetFirstQuestion(ctx context.Context, surveyID string) (*models.Question, error) {
	var question models.Question
	result := database.DB.WithContext(ctx).
		First(&question, "survey_id = ? AND position = 0", surveyID)
	return &question, result.Error
}

// UpsertQuestion creates or replaces a question by id and rewrites its
// option set, then reorders the whole survey so order values stay contiguous
// and next_question pointers stay consistent.
func UpsertQuestion(ctx context.Context, question *models.Question) error {
	return database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Question
		err := tx.First(&existing, "id = ?", question.ID).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Omit(clause.Associations).Create(question).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		case existing.SurveyID != question.SurveyID:
			// The id belongs to another survey; treat it as unknown rather
			// than overwrite a foreign question.
			return gorm.ErrRecordNotFound
		default:
			if err := tx.Model(&models.Question{}).
				Where("id = ?", question.ID).
				Updates(map[string]interface{}{
					"type":          question.Type,
					"register_name": question.RegisterName,
					"position":      question.Order,
					"label":         question.Label,
					"submit_label":  question.SubmitLabel,
					"is_unique":     question.IsUnique,
					"max":           question.Max,
					"min":           question.Min,
					"step":          question.Step,
				}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("question_id = ?", question.ID).Delete(&models.Option{}).Error; err != nil {
			return err
		}
		for i := range question.Options {
			question.Options[i].ID = ""
			question.Options[i].QuestionID = question.ID
			if err := tx.Create(&question.Options[i]).Error; err != nil {
				return err
			}
		}

		return relinkQuestions(tx, question.SurveyID)
	})
}

// RemoveQuestion deletes a question with its options and answers, then
// reorders the survivors. The question must belong to the given survey; the
// child deletes only run after that ownership check.
func RemoveQuestion(ctx context.Context, surveyID, questionID string) error {
	return database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var question models.Question
		if err := tx.First(&question, "id = ? AND survey_id = ?", questionID, surveyID).Error; err != nil {
			return err
		}

		if err := tx.Where("question_id = ?", question.ID).Delete(&models.Answer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", question.ID).Delete(&models.Option{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Question{}, "id = ?", question.ID).Error; err != nil {
			return err
		}
		return relinkQuestions(tx, surveyID)
	})
}

// relinkQuestions reloads a survey's questions ordered by position, derives
// contiguous order values and next_question pointers, and persists them.
func relinkQuestions(tx *gorm.DB, surveyID string) error {
	var questions []models.Question
	if err := tx.Where("survey_id = ?", surveyID).Order("position asc").Find(&questions).Error; err != nil {
		return err
	}

	models.Relink(questions)

	for i := range questions {
		if err := tx.Model(&models.Question{}).
			Where("id = ?", questions[i].ID).
			Updates(map[string]interface{}{
				"position":      questions[i].Order,
				"next_question": questions[i].NextQuestion,
			}).Error; err != nil {
			return err
		}
	}
	return nil
}
