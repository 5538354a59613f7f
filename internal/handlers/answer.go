package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/differentgrowth/newgenforms/internal/form"
	"github.com/differentgrowth/newgenforms/internal/models"
	"github.com/differentgrowth/newgenforms/internal/repository"
)

// AnswerHandler drives the public respondent flow: entry, one page per
// question, final message. Respondent identity across the flow is the `c`
// query parameter holding a generated client token.
type AnswerHandler struct {
	log *zap.Logger
}

func NewAnswerHandler(log *zap.Logger) *AnswerHandler {
	return &AnswerHandler{log: log}
}

// Entry is the survey's public landing route. It runs the status sweeps,
// mints a fresh client token and forwards the respondent by survey status.
func (h *AnswerHandler) Entry(c *gin.Context) {
	surveyID := c.Param("survey_id")

	now := time.Now()
	if err := repository.PublishDueSurveys(c.Request.Context(), now); err != nil {
		h.log.Error("Publish sweep failed", zap.Error(err))
	}
	if err := repository.FinishDueSurveys(c.Request.Context(), now); err != nil {
		h.log.Error("Finish sweep failed", zap.Error(err))
	}

	survey, err := repository.GetSurvey(c.Request.Context(), surveyID)
	if err != nil {
		notFound(c)
		return
	}

	switch survey.Status {
	case models.StatusFinished:
		c.Redirect(http.StatusFound, "/s/"+surveyID+"/finished")
	case models.StatusReady:
		c.Redirect(http.StatusFound, "/s/"+surveyID+"/ready")
	case models.StatusPublished:
		first, err := repository.GetFirstQuestion(c.Request.Context(), surveyID)
		if err != nil {
			notFound(c)
			return
		}
		client := uuid.New().String()
		c.Redirect(http.StatusFound, "/s/"+surveyID+"/q/"+first.ID+"?c="+client)
	default:
		// Empty and pending surveys have no public face.
		notFound(c)
	}
}

func (h *AnswerHandler) renderQuestion(c *gin.Context, status int, survey *models.Survey, question *models.Question, client, errMsg string) {
	c.HTML(status, "question.html", gin.H{
		"CSRFToken": c.GetString("csrf_token"),
		"Survey":    survey,
		"Question":  question,
		"Client":    client,
		"Error":     errMsg,
	})
}

// ShowQuestion renders one question page. Without a client token the
// respondent is bounced to the entry route for a restart.
func (h *AnswerHandler) ShowQuestion(c *gin.Context) {
	surveyID := c.Param("survey_id")

	client := c.Query("c")
	if client == "" {
		c.Redirect(http.StatusFound, "/s/"+surveyID)
		return
	}

	question, err := repository.GetQuestion(c.Request.Context(), c.Param("question_id"))
	if err != nil || question.SurveyID != surveyID {
		notFound(c)
		return
	}
	survey, err := repository.GetSurvey(c.Request.Context(), surveyID)
	if err != nil {
		notFound(c)
		return
	}

	h.renderQuestion(c, http.StatusOK, survey, question, client, "")
}

// Submit validates and stores one answer, then forwards to the next
// question or the final page. A duplicate client is silently restarted; a
// duplicate value on an is_unique question blocks with a visible error.
func (h *AnswerHandler) Submit(c *gin.Context) {
	surveyID := c.Param("survey_id")

	client := c.PostForm("client")
	if _, err := uuid.Parse(client); err != nil {
		c.Redirect(http.StatusFound, "/s/"+surveyID)
		return
	}

	question, err := repository.GetQuestion(c.Request.Context(), c.PostForm("questionId"))
	if err != nil || question.SurveyID != surveyID {
		notFound(c)
		return
	}
	survey, err := repository.GetSurvey(c.Request.Context(), surveyID)
	if err != nil {
		notFound(c)
		return
	}
	if survey.Status != models.StatusPublished {
		c.Redirect(http.StatusFound, "/s/"+surveyID)
		return
	}

	// Multi-valued inputs arrive either as repeated fields or as one field
	// joined with the multi-value delimiter.
	values := c.PostFormArray("value")
	if len(values) == 1 {
		values = form.SplitValues(values[0])
	}
	if err := question.ValidateAnswer(values); err != nil {
		h.renderQuestion(c, http.StatusBadRequest, survey, question, client, err.Error())
		return
	}

	answer := &models.Answer{
		QuestionID: question.ID,
		SurveyID:   surveyID,
		Client:     client,
		Value:      values,
	}
	err = repository.InsertAnswer(c.Request.Context(), question, answer)
	switch {
	case errors.Is(err, models.ErrDuplicateClient):
		// Silently discard the duplicate and restart the flow.
		c.Redirect(http.StatusFound, "/s/"+surveyID)
		return
	case errors.Is(err, models.ErrDuplicateUniqueValue):
		h.renderQuestion(c, http.StatusConflict, survey, question, client, models.ErrDuplicateUniqueValue.Error())
		return
	case err != nil:
		h.log.Error("Failed to insert answer", zap.Error(err), zap.String("questionID", question.ID))
		h.renderQuestion(c, http.StatusInternalServerError, survey, question, client, "Something went wrong")
		return
	}

	if question.NextQuestion != nil {
		c.Redirect(http.StatusFound, "/s/"+surveyID+"/q/"+*question.NextQuestion+"?c="+client)
		return
	}
	c.Redirect(http.StatusFound, "/s/"+surveyID+"/final")
}

// Final shows the survey's closing message and optional redirect.
func (h *AnswerHandler) Final(c *gin.Context) {
	surveyID := c.Param("survey_id")
	survey, err := repository.GetSurvey(c.Request.Context(), surveyID)
	if err != nil {
		notFound(c)
		return
	}
	if survey.Status == models.StatusFinished {
		c.Redirect(http.StatusFound, "/s/"+surveyID+"/finished")
		return
	}

	c.HTML(http.StatusOK, "final.html", gin.H{"Survey": survey})
}

// Ready tells early respondents the survey has not opened yet.
func (h *AnswerHandler) Ready(c *gin.Context) {
	survey, err := repository.GetSurvey(c.Request.Context(), c.Param("survey_id"))
	if err != nil {
		notFound(c)
		return
	}
	c.HTML(http.StatusOK, "ready.html", gin.H{"Survey": survey})
}

// Finished tells late respondents the survey window has closed.
func (h *AnswerHandler) Finished(c *gin.Context) {
	survey, err := repository.GetSurvey(c.Request.Context(), c.Param("survey_id"))
	if err != nil {
		notFound(c)
		return
	}
	c.HTML(http.StatusOK, "finished.html", gin.H{"Survey": survey})
}
