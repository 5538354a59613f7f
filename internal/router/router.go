package router

import (
	"fmt"
	"html/template"
	"net/http"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
	"go.uber.org/zap"

	"github.com/differentgrowth/newgenforms/internal/config"
	"github.com/differentgrowth/newgenforms/internal/form"
	"github.com/differentgrowth/newgenforms/internal/handlers"
	"github.com/differentgrowth/newgenforms/internal/models"
	"github.com/differentgrowth/newgenforms/internal/services"
)

func keyFunc(c *gin.Context) string {
	return c.ClientIP()
}
func errorHandler(c *gin.Context, info ratelimit.Info) {
	c.String(429, "Too many requests. Try again later.")
}

func Setup(log *zap.Logger) *gin.Engine {
	// Set up a new Gin router, add recovery middleware and request logging.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(log))

	router.SetFuncMap(template.FuncMap{
		// joinOptions serializes a question's options into the delimited
		// hidden-field encoding the upsert handler parses back.
		"joinOptions": func(options []models.Option) string {
			values := make([]string, 0, len(options))
			for _, o := range options {
				values = append(values, o.Value)
			}
			return form.JoinValues(values)
		},
	})
	router.LoadHTMLGlob("templates/*.html")

	store := cookie.NewStore([]byte(config.Conf.Server.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   false, // Set to true in production
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400 * 7,
	})
	router.Use(sessions.Sessions("ngfsession", store))

	// --- Now that sessions are initialized, other middleware can use them ---
	router.Use(NonceMiddleware())
	router.Use(CSRFProtection())
	router.Use(CustomerLoader())

	router.Use(func(c *gin.Context) {
		nonce, _ := c.Get(CspNonceContextKey)
		csp := fmt.Sprintf(
			"script-src 'self' 'nonce-%s'; style-src 'self' https://fonts.googleapis.com 'unsafe-inline'; font-src 'self' https://fonts.gstatic.com",
			nonce,
		)
		c.Header("Content-Security-Policy", csp)
		c.Next()
	})

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
	})
	router.Use(func(c *gin.Context) {
		err := secureMiddleware.Process(c.Writer, c.Request)
		if err != nil {
			c.Abort()
			return
		}
	})

	router.Static("/assets", "./assets")

	// Handlers and routes
	notifier := services.NewNotifier(log)
	authHandler := handlers.NewAuthHandler(log, notifier)
	accountHandler := handlers.NewAccountHandler(log)
	surveyHandler := handlers.NewSurveyHandler(log)
	questionHandler := handlers.NewQuestionHandler(log)
	answerHandler := handlers.NewAnswerHandler(log)
	reportHandler := handlers.NewReportHandler(log)

	rateLimitStore := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Minute,
		Limit: 5,
	})
	limiter := ratelimit.RateLimiter(rateLimitStore, &ratelimit.Options{
		ErrorHandler: errorHandler,
		KeyFunc:      keyFunc,
	})

	router.GET("/", func(c *gin.Context) {
		if _, isLoggedIn := c.Get("customer"); isLoggedIn {
			c.Redirect(http.StatusFound, "/dashboard")
			return
		}
		c.HTML(http.StatusOK, "home.html", gin.H{})
	})

	router.GET("/login", authHandler.ShowLoginPage)
	router.POST("/login", limiter, authHandler.Login)
	router.GET("/signup", authHandler.ShowSignupPage)
	router.POST("/signup", limiter, authHandler.Signup)
	router.POST("/logout", authHandler.Logout)

	// Public respondent flow.
	surveyRoutes := router.Group("/s/:survey_id")
	{
		surveyRoutes.GET("", answerHandler.Entry)
		surveyRoutes.GET("/q/:question_id", answerHandler.ShowQuestion)
		surveyRoutes.POST("/answers", answerHandler.Submit)
		surveyRoutes.GET("/final", answerHandler.Final)
		surveyRoutes.GET("/ready", answerHandler.Ready)
		surveyRoutes.GET("/finished", answerHandler.Finished)
	}

	authorized := router.Group("/dashboard")
	authorized.Use(AuthRequired())
	{
		authorized.GET("", surveyHandler.Dashboard)

		authorized.GET("/surveys/new", surveyHandler.ShowNewSurveyPage)
		authorized.POST("/surveys", surveyHandler.CreateSurvey)

		ownedRoutes := authorized.Group("/surveys/:survey_id")
		{
			ownedRoutes.GET("/edit", surveyHandler.ShowEditPage)
			ownedRoutes.POST("/features", surveyHandler.UpdateFeatures)
			ownedRoutes.POST("/ready", surveyHandler.MarkReady)
			ownedRoutes.POST("/publish", surveyHandler.Publish)
			ownedRoutes.POST("/delete", surveyHandler.Delete)

			ownedRoutes.POST("/questions", questionHandler.Upsert)
			ownedRoutes.POST("/questions/remove", questionHandler.Remove)

			ownedRoutes.GET("", reportHandler.ShowAnswers)
			ownedRoutes.POST("/answers/delete", reportHandler.DeleteByClients)
			ownedRoutes.POST("/answers/refresh", reportHandler.Refresh)
		}

		accountRoutes := authorized.Group("/account")
		{
			accountRoutes.GET("", accountHandler.ShowAccountPage)
			accountRoutes.POST("/update-info", accountHandler.UpdateInfo)
			accountRoutes.POST("/update-password", accountHandler.UpdatePassword)
		}
	}

	return router
}
