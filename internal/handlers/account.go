package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/differentgrowth/newgenforms/internal/models"
	"github.com/differentgrowth/newgenforms/internal/repository"
	"github.com/differentgrowth/newgenforms/internal/utils"
)

type AccountHandler struct {
	log *zap.Logger
}

func NewAccountHandler(log *zap.Logger) *AccountHandler {
	return &AccountHandler{log: log}
}

func (h *AccountHandler) render(c *gin.Context, status int, customer *models.Customer, err, success string) {
	c.HTML(status, "account.html", gin.H{
		"CSRFToken": c.GetString("csrf_token"),
		"Customer":  customer,
		"Languages": models.Languages,
		"Error":     err,
		"Success":   success,
	})
}

func (h *AccountHandler) ShowAccountPage(c *gin.Context) {
	customer := currentCustomer(c)
	h.render(c, http.StatusOK, customer, "", "")
}

func (h *AccountHandler) UpdateInfo(c *gin.Context) {
	customer := currentCustomer(c)
	email := c.PostForm("email")
	language := models.Language(c.PostForm("language"))
	commercial := c.PostForm("commercial_communications") == "on"

	if !utils.IsValidEmail(email) || !models.ValidLanguage(language) {
		h.render(c, http.StatusBadRequest, customer, "Invalid data!", "")
		return
	}

	if err := repository.UpdateCustomer(c.Request.Context(), customer.ID, email, language, commercial); err != nil {
		h.log.Error("Failed to update account", zap.Error(err), zap.String("customerID", customer.ID))
		h.render(c, http.StatusInternalServerError, customer, "Something went wrong!", "")
		return
	}

	customer.Email = email
	customer.Language = language
	customer.CommercialCommunications = commercial
	h.render(c, http.StatusOK, customer, "", "Updated successfully!")
}

func (h *AccountHandler) UpdatePassword(c *gin.Context) {
	customer := currentCustomer(c)
	password := c.PostForm("password")
	newPassword := c.PostForm("new_password")
	repeatNewPassword := c.PostForm("repeat_new_password")

	if !utils.IsValidPassword(newPassword) {
		h.render(c, http.StatusBadRequest, customer, "Password too small!", "")
		return
	}
	if newPassword != repeatNewPassword {
		h.render(c, http.StatusBadRequest, customer, "Passwords don't match", "")
		return
	}
	if !customer.CheckPassword(password) {
		h.render(c, http.StatusBadRequest, customer, "Invalid password!", "")
		return
	}

	if err := repository.UpdateCustomerPassword(c.Request.Context(), customer.ID, newPassword); err != nil {
		h.log.Error("Failed to update password", zap.Error(err), zap.String("customerID", customer.ID))
		h.render(c, http.StatusInternalServerError, customer, "Something went wrong!", "")
		return
	}

	h.render(c, http.StatusOK, customer, "", "Updated successfully!")
}

// currentCustomer returns the customer loaded by the session middleware.
// Only reachable behind AuthRequired, so the context value is always set.
func currentCustomer(c *gin.Context) *models.Customer {
	customer, _ := c.Get("customer")
	return customer.(*models.Customer)
}
