package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/differentgrowth/newgenforms/internal/form"
	"github.com/differentgrowth/newgenforms/internal/models"
	"github.com/differentgrowth/newgenforms/internal/repository"
)

type QuestionHandler struct {
	log *zap.Logger
}

func NewQuestionHandler(log *zap.Logger) *QuestionHandler {
	return &QuestionHandler{log: log}
}

// Upsert creates or replaces a question of an editable survey, then
// reorders the whole chain. Option lists travel in one hidden field joined
// with the multi-value delimiter.
func (h *QuestionHandler) Upsert(c *gin.Context) {
	customer := currentCustomer(c)
	survey, err := repository.GetCustomerSurvey(c.Request.Context(), c.Param("survey_id"), customer.ID)
	if err != nil {
		notFound(c)
		return
	}

	edit := func(status int, msg string) {
		c.HTML(status, "edit_survey.html", gin.H{
			"CSRFToken":     c.GetString("csrf_token"),
			"Customer":      customer,
			"Survey":        survey,
			"ShareURL":      shareURL(survey.ID),
			"Themes":        models.Themes,
			"QuestionTypes": models.QuestionTypes,
			"Error":         msg,
		})
	}

	if !survey.Editable() {
		edit(http.StatusBadRequest, "Invalid data!")
		return
	}

	// An empty id means a brand new question.
	id := c.PostForm("id")
	if id == "" {
		id = uuid.New().String()
	} else if _, err := uuid.Parse(id); err != nil {
		edit(http.StatusBadRequest, "There is an error in the id field")
		return
	}

	order, err := strconv.Atoi(c.PostForm("order"))
	if err != nil || order < 0 {
		edit(http.StatusBadRequest, "There is an error in the order field")
		return
	}

	question := &models.Question{
		ID:           id,
		SurveyID:     survey.ID,
		CustomerID:   customer.ID,
		Type:         models.QuestionType(c.PostForm("type")),
		RegisterName: c.PostForm("register_name"),
		Order:        order,
		Label:        c.PostForm("label"),
		SubmitLabel:  c.PostForm("submit_label"),
		IsUnique:     c.PostForm("is_unique") == "on",
		Min:          parseBound(c.PostForm("min")),
		Max:          parseBound(c.PostForm("max")),
		Step:         parseBound(c.PostForm("step")),
	}
	for _, value := range form.SplitValues(c.PostForm("options")) {
		question.Options = append(question.Options, models.Option{Value: value})
	}

	question.Normalize()
	if err := question.Validate(); err != nil {
		edit(http.StatusBadRequest, "There is an error in the question data")
		return
	}

	if err := repository.UpsertQuestion(c.Request.Context(), question); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			edit(http.StatusBadRequest, "Invalid data!")
			return
		}
		h.log.Error("Failed to upsert question", zap.Error(err), zap.String("surveyID", survey.ID))
		edit(http.StatusInternalServerError, "Something went wrong")
		return
	}

	c.Redirect(http.StatusFound, "/dashboard/surveys/"+survey.ID+"/edit")
}

// Remove deletes a question of an editable survey and reorders the
// survivors.
func (h *QuestionHandler) Remove(c *gin.Context) {
	customer := currentCustomer(c)
	survey, err := repository.GetCustomerSurvey(c.Request.Context(), c.Param("survey_id"), customer.ID)
	if err != nil {
		notFound(c)
		return
	}

	edit := func(status int, msg string) {
		c.HTML(status, "edit_survey.html", gin.H{
			"CSRFToken":     c.GetString("csrf_token"),
			"Customer":      customer,
			"Survey":        survey,
			"ShareURL":      shareURL(survey.ID),
			"Themes":        models.Themes,
			"QuestionTypes": models.QuestionTypes,
			"Error":         msg,
		})
	}

	questionID := c.PostForm("question_id")
	if _, err := uuid.Parse(questionID); err != nil || !survey.Editable() {
		edit(http.StatusBadRequest, "Invalid data!")
		return
	}

	if err := repository.RemoveQuestion(c.Request.Context(), survey.ID, questionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			edit(http.StatusBadRequest, "Invalid data!")
			return
		}
		h.log.Error("Failed to remove question", zap.Error(err), zap.String("questionID", questionID))
		edit(http.StatusInternalServerError, "Something went wrong")
		return
	}

	c.Redirect(http.StatusFound, "/dashboard/surveys/"+survey.ID+"/edit")
}

// parseBound reads an optional numeric form field; anything non-numeric
// collapses to nil, matching the tolerant form semantics.
func parseBound(raw string) *float64 {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}
