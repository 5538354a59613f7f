package router

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/differentgrowth/newgenforms/internal/repository"
)

// CustomerLoader checks for a customerID in the session. If found, it loads
// the customer from the database and adds it to the context. This ensures we
// don't have "zombie" sessions for customers who no longer exist.
func CustomerLoader() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		customerID, ok := session.Get("customerID").(string)
		if !ok {
			// No customer ID in session, proceed as a guest.
			c.Next()
			return
		}

		customer, err := repository.GetCustomerByID(c.Request.Context(), customerID)
		if err != nil {
			// Customer ID from session is invalid (account was deleted, etc.)
			// Clear the bad session and treat as a guest.
			session.Clear()
			session.Options(sessions.Options{Path: "/", MaxAge: -1})
			session.Save()
			c.Next()
			return
		}

		c.Set("customer", customer)
		c.Next()
	}
}

// AuthRequired checks if a valid customer was loaded into the context.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get("customer"); !exists {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}
