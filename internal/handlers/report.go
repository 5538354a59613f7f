package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/differentgrowth/newgenforms/internal/report"
	"github.com/differentgrowth/newgenforms/internal/repository"
)

// ReportHandler serves the per-survey answers table: one row per
// respondent, one column per question, with server-side sort and filter.
type ReportHandler struct {
	log *zap.Logger
}

func NewReportHandler(log *zap.Logger) *ReportHandler {
	return &ReportHandler{log: log}
}

// ShowAnswers renders the answers table. Sort and filter arrive as query
// parameters keyed by register name and are recomputed on every request,
// so a plain reload of the page refreshes the data.
func (h *ReportHandler) ShowAnswers(c *gin.Context) {
	customer := currentCustomer(c)
	survey, err := repository.GetCustomerSurvey(c.Request.Context(), c.Param("survey_id"), customer.ID)
	if err != nil {
		notFound(c)
		return
	}

	now := time.Now()
	if err := repository.PublishDueSurveys(c.Request.Context(), now); err != nil {
		h.log.Error("Publish sweep failed", zap.Error(err))
	}
	if err := repository.FinishDueSurveys(c.Request.Context(), now); err != nil {
		h.log.Error("Finish sweep failed", zap.Error(err))
	}

	answers, err := repository.GetSurveyAnswers(c.Request.Context(), survey.ID)
	if err != nil {
		h.log.Error("Failed to load answers", zap.Error(err), zap.String("surveyID", survey.ID))
		c.HTML(http.StatusInternalServerError, "answers.html", gin.H{
			"CSRFToken":    c.GetString("csrf_token"),
			"Customer":     customer,
			"Survey":       survey,
			"Table":        report.Table{},
			"FilterColumn": "",
			"Filter":       "",
			"Sort":         "",
			"Dir":          "",
			"Error":        "Something went wrong!",
		})
		return
	}

	table := report.Build(survey.Questions, answers)
	if col := c.Query("filter_column"); col != "" {
		table = table.Filter(col, c.Query("filter"))
	}
	if col := c.Query("sort"); col != "" {
		table = table.Sort(col, c.Query("dir") == "desc")
	}

	c.HTML(http.StatusOK, "answers.html", gin.H{
		"CSRFToken":    c.GetString("csrf_token"),
		"Customer":     customer,
		"Survey":       survey,
		"Table":        table,
		"FilterColumn": c.Query("filter_column"),
		"Filter":       c.Query("filter"),
		"Sort":         c.Query("sort"),
		"Dir":          c.Query("dir"),
	})
}

// DeleteByClients removes whole respondent rows, one per selected client
// token.
func (h *ReportHandler) DeleteByClients(c *gin.Context) {
	customer := currentCustomer(c)
	survey, err := repository.GetCustomerSurvey(c.Request.Context(), c.Param("survey_id"), customer.ID)
	if err != nil {
		notFound(c)
		return
	}

	for _, client := range c.PostFormArray("clients") {
		if _, err := uuid.Parse(client); err != nil {
			continue
		}
		if err := repository.DeleteAnswersByClient(c.Request.Context(), survey.ID, client); err != nil {
			h.log.Error("Failed to delete answers", zap.Error(err),
				zap.String("surveyID", survey.ID), zap.String("client", client))
		}
	}

	c.Redirect(http.StatusFound, "/dashboard/surveys/"+survey.ID)
}

// Refresh re-renders the answers table discarding any sort or filter.
func (h *ReportHandler) Refresh(c *gin.Context) {
	c.Redirect(http.StatusFound, "/dashboard/surveys/"+c.Param("survey_id"))
}
