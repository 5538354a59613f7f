package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/differentgrowth/newgenforms/internal/config"
	"github.com/differentgrowth/newgenforms/internal/models"
	"github.com/differentgrowth/newgenforms/internal/repository"
)

type SurveyHandler struct {
	log *zap.Logger
}

func NewSurveyHandler(log *zap.Logger) *SurveyHandler {
	return &SurveyHandler{log: log}
}

// Dashboard lists the customer's surveys. The status sweeps piggyback on
// this page load so owners always see current publication state.
func (h *SurveyHandler) Dashboard(c *gin.Context) {
	customer := currentCustomer(c)

	now := time.Now()
	if err := repository.PublishDueSurveys(c.Request.Context(), now); err != nil {
		h.log.Error("Publish sweep failed", zap.Error(err))
	}
	if err := repository.FinishDueSurveys(c.Request.Context(), now); err != nil {
		h.log.Error("Finish sweep failed", zap.Error(err))
	}

	surveys, err := repository.GetCustomerSurveys(c.Request.Context(), customer.ID)
	if err != nil {
		h.log.Error("Failed to list surveys", zap.Error(err), zap.String("customerID", customer.ID))
		c.HTML(http.StatusInternalServerError, "dashboard.html", gin.H{
			"CSRFToken": c.GetString("csrf_token"),
			"Customer":  customer,
			"Error":     "Something went wrong!",
		})
		return
	}

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"CSRFToken": c.GetString("csrf_token"),
		"Customer":  customer,
		"Surveys":   surveys,
	})
}

func (h *SurveyHandler) ShowNewSurveyPage(c *gin.Context) {
	c.HTML(http.StatusOK, "new_survey.html", gin.H{
		"CSRFToken": c.GetString("csrf_token"),
		"Customer":  currentCustomer(c),
	})
}

func (h *SurveyHandler) CreateSurvey(c *gin.Context) {
	customer := currentCustomer(c)
	name := c.PostForm("name")

	if name == "" {
		c.HTML(http.StatusBadRequest, "new_survey.html", gin.H{
			"CSRFToken": c.GetString("csrf_token"),
			"Customer":  customer,
			"Error":     "Invalid data!",
		})
		return
	}

	survey, err := repository.CreateSurvey(c.Request.Context(), customer.ID, name)
	if err != nil {
		h.log.Error("Failed to create survey", zap.Error(err), zap.String("customerID", customer.ID))
		c.HTML(http.StatusInternalServerError, "new_survey.html", gin.H{
			"CSRFToken": c.GetString("csrf_token"),
			"Customer":  customer,
			"Error":     "Something went wrong!",
		})
		return
	}

	c.Redirect(http.StatusFound, "/dashboard/surveys/"+survey.ID+"/edit")
}

func (h *SurveyHandler) renderEditPage(c *gin.Context, status int, survey *models.Survey, errMsg string) {
	c.HTML(status, "edit_survey.html", gin.H{
		"CSRFToken":     c.GetString("csrf_token"),
		"Customer":      currentCustomer(c),
		"Survey":        survey,
		"ShareURL":      shareURL(survey.ID),
		"Themes":        models.Themes,
		"QuestionTypes": models.QuestionTypes,
		"Error":         errMsg,
	})
}

// shareURL builds the public respondent link for a survey from the
// configured base URL.
func shareURL(surveyID string) string {
	return config.Conf.Server.BaseURL + "/s/" + surveyID
}

func (h *SurveyHandler) ShowEditPage(c *gin.Context) {
	customer := currentCustomer(c)
	survey, err := repository.GetCustomerSurvey(c.Request.Context(), c.Param("survey_id"), customer.ID)
	if err != nil {
		notFound(c)
		return
	}
	h.renderEditPage(c, http.StatusOK, survey, "")
}

// UpdateFeatures stores name, theme, window, timezone, redirect and final
// message, moving an empty survey to pending. Only editable surveys accept
// feature changes; the lifecycle never moves backwards.
func (h *SurveyHandler) UpdateFeatures(c *gin.Context) {
	customer := currentCustomer(c)
	survey, err := repository.GetCustomerSurvey(c.Request.Context(), c.Param("survey_id"), customer.ID)
	if err != nil {
		notFound(c)
		return
	}
	if !survey.Editable() {
		h.renderEditPage(c, http.StatusBadRequest, survey, "Invalid data!")
		return
	}

	name := c.PostForm("name")
	theme := models.SurveyTheme(c.PostForm("theme"))
	timezone := c.PostForm("timezone")
	finalMessage := c.PostForm("final_message")

	if name == "" {
		h.renderEditPage(c, http.StatusBadRequest, survey, "There is an error in the name field")
		return
	}
	if !models.ValidTheme(theme) {
		h.renderEditPage(c, http.StatusBadRequest, survey, "There is an error in the theme field")
		return
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		h.renderEditPage(c, http.StatusBadRequest, survey, "There is an error in the timezone field")
		return
	}

	from, err := parseWindowEdge(c.PostForm("from"), c.PostForm("start_hour"), c.PostForm("start_minute"), loc)
	if err != nil {
		h.renderEditPage(c, http.StatusBadRequest, survey, "There is an error in the from field")
		return
	}
	to, err := parseWindowEdge(c.PostForm("to"), c.PostForm("end_hour"), c.PostForm("end_minute"), loc)
	if err != nil {
		h.renderEditPage(c, http.StatusBadRequest, survey, "There is an error in the to field")
		return
	}
	if !from.Before(to) {
		h.renderEditPage(c, http.StatusBadRequest, survey, "There is an error in the to field")
		return
	}

	var redirect *string
	if raw := c.PostForm("redirect"); raw != "" {
		u, err := url.ParseRequestURI(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			h.renderEditPage(c, http.StatusBadRequest, survey, "There is an error in the redirect field")
			return
		}
		redirect = &raw
	}

	err = repository.UpdateSurveyFeatures(c.Request.Context(), survey.ID, name, theme, from, to, timezone, redirect, finalMessage)
	if err != nil {
		h.log.Error("Failed to update survey features", zap.Error(err), zap.String("surveyID", survey.ID))
		h.renderEditPage(c, http.StatusInternalServerError, survey, "Something went wrong!")
		return
	}

	c.Redirect(http.StatusFound, "/dashboard/surveys/"+survey.ID+"/edit")
}

// MarkReady promotes a pending survey with valid data to ready.
func (h *SurveyHandler) MarkReady(c *gin.Context) {
	customer := currentCustomer(c)
	survey, err := repository.GetCustomerSurvey(c.Request.Context(), c.Param("survey_id"), customer.ID)
	if err != nil {
		notFound(c)
		return
	}

	if err := survey.CheckReady(); err != nil {
		h.renderEditPage(c, http.StatusBadRequest, survey, "Invalid survey data!")
		return
	}

	if err := repository.MarkSurveyReady(c.Request.Context(), survey.ID); err != nil {
		h.log.Error("Failed to mark survey as ready", zap.Error(err), zap.String("surveyID", survey.ID))
		h.renderEditPage(c, http.StatusInternalServerError, survey, "Something went wrong")
		return
	}

	c.Redirect(http.StatusFound, "/dashboard/surveys/"+survey.ID+"/edit")
}

// Publish manually opens a ready survey; the respondent window starts
// counting from this moment rather than the configured start.
func (h *SurveyHandler) Publish(c *gin.Context) {
	customer := currentCustomer(c)
	survey, err := repository.GetCustomerSurvey(c.Request.Context(), c.Param("survey_id"), customer.ID)
	if err != nil {
		notFound(c)
		return
	}

	if models.SurveyStatus(c.PostForm("status")) != models.StatusReady || survey.Status != models.StatusReady {
		h.renderEditPage(c, http.StatusBadRequest, survey, "Invalid data!")
		return
	}

	if _, err := repository.MarkSurveyPublished(c.Request.Context(), survey.ID); err != nil {
		h.log.Error("Failed to publish survey", zap.Error(err), zap.String("surveyID", survey.ID))
		h.renderEditPage(c, http.StatusInternalServerError, survey, "Something went wrong")
		return
	}

	c.Redirect(http.StatusFound, "/dashboard")
}

// Delete removes a survey from any state. The caller must type the exact
// survey name plus the literal word "delete" as a double confirmation;
// deletion cascades to questions, options and answers.
func (h *SurveyHandler) Delete(c *gin.Context) {
	customer := currentCustomer(c)
	survey, err := repository.GetCustomerSurvey(c.Request.Context(), c.Param("survey_id"), customer.ID)
	if err != nil {
		notFound(c)
		return
	}

	if c.PostForm("delete") != "delete" || c.PostForm("name") != survey.Name {
		h.renderEditPage(c, http.StatusBadRequest, survey, "Invalid data!")
		return
	}

	if _, err := repository.DeleteSurvey(c.Request.Context(), survey.ID); err != nil {
		h.log.Error("Failed to delete survey", zap.Error(err), zap.String("surveyID", survey.ID))
		h.renderEditPage(c, http.StatusInternalServerError, survey, "Something went wrong")
		return
	}

	c.Redirect(http.StatusFound, "/dashboard")
}

// parseWindowEdge combines a date field with hour/minute selects in the
// survey's timezone.
func parseWindowEdge(date, hour, minute string, loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return time.Time{}, err
	}
	hh, err := strconv.Atoi(hour)
	if err != nil || hh < 0 || hh > 23 {
		return time.Time{}, errInvalidWindow
	}
	mm, err := strconv.Atoi(minute)
	if err != nil || mm < 0 || mm > 59 {
		return time.Time{}, errInvalidWindow
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hh, mm, 0, 0, loc), nil
}

var errInvalidWindow = errors.New("invalid window edge")

func notFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "not_found.html", gin.H{})
}
