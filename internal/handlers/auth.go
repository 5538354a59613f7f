package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/differentgrowth/newgenforms/internal/models"
	"github.com/differentgrowth/newgenforms/internal/repository"
	"github.com/differentgrowth/newgenforms/internal/services"
	"github.com/differentgrowth/newgenforms/internal/utils"
)

type AuthHandler struct {
	log      *zap.Logger
	notifier *services.Notifier
}

func NewAuthHandler(log *zap.Logger, notifier *services.Notifier) *AuthHandler {
	return &AuthHandler{log: log, notifier: notifier}
}

func (h *AuthHandler) ShowLoginPage(c *gin.Context) {
	if _, isLoggedIn := c.Get("customer"); isLoggedIn {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	c.HTML(http.StatusOK, "login.html", gin.H{
		"CSRFToken": c.GetString("csrf_token"),
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	customer, err := repository.GetCustomerByEmail(c.Request.Context(), email)
	if err != nil || !customer.CheckPassword(password) {
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{
			"CSRFToken": c.GetString("csrf_token"),
			"Error":     "Invalid Credentials!",
		})
		return
	}

	session := sessions.Default(c)
	session.Set("customerID", customer.ID)
	if err := session.Save(); err != nil {
		h.log.Error("Failed to save session on login", zap.Error(err))
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{
			"CSRFToken": c.GetString("csrf_token"),
			"Error":     "Something went wrong!",
		})
		return
	}

	c.Redirect(http.StatusFound, "/dashboard")
}

func (h *AuthHandler) ShowSignupPage(c *gin.Context) {
	if _, isLoggedIn := c.Get("customer"); isLoggedIn {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	c.HTML(http.StatusOK, "signup.html", gin.H{
		"CSRFToken": c.GetString("csrf_token"),
	})
}

func (h *AuthHandler) Signup(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")
	repeatPassword := c.PostForm("repeat_password")
	terms := c.PostForm("terms")
	commercial := c.PostForm("commercial_communications") == "on"

	fail := func(msg string) {
		c.HTML(http.StatusBadRequest, "signup.html", gin.H{
			"CSRFToken": c.GetString("csrf_token"),
			"Error":     msg,
		})
	}

	if terms != "on" {
		fail("You must accept the terms of use")
		return
	}
	if !utils.IsValidEmail(email) {
		fail("Invalid data!")
		return
	}
	if !utils.IsValidPassword(password) {
		fail("Password too small!")
		return
	}
	if password != repeatPassword {
		fail("Passwords don't match")
		return
	}

	customer, err := repository.CreateCustomer(email, password)
	if err != nil {
		h.log.Error("Failed to create customer", zap.Error(err), zap.String("email", email))
		fail("Something went wrong!")
		return
	}

	if commercial {
		if err := repository.UpdateCustomer(c.Request.Context(), customer.ID, customer.Email, models.LanguageEnglish, true); err != nil {
			h.log.Warn("Failed to store commercial communications flag", zap.Error(err))
		}
		customer.CommercialCommunications = true
	}
	h.notifier.SendWelcomeEmail(customer)

	c.Redirect(http.StatusFound, "/login")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := session.Save(); err != nil {
		h.log.Error("Failed to clear session on logout", zap.Error(err))
	}
	c.Redirect(http.StatusFound, "/")
}
