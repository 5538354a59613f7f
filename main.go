package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/differentgrowth/newgenforms/internal/config"
	"github.com/differentgrowth/newgenforms/internal/database"
	logger "github.com/differentgrowth/newgenforms/internal/logging"
	"github.com/differentgrowth/newgenforms/internal/models"
	"github.com/differentgrowth/newgenforms/internal/repository"
	"github.com/differentgrowth/newgenforms/internal/router"
	"github.com/differentgrowth/newgenforms/internal/services"
)

func main() {
	// Initialize Logger
	log, err := logger.Init(".")
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	// Initialize Configuration
	if err := config.Init(".", log); err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Initialize Database
	database.Init(log)

	// Seed template surveys under the admin account, when configured.
	if path := config.Conf.Seed.TemplatesFile; path != "" {
		seedTemplates(log, path)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Optional background sweeper; page loads run the same sweeps anyway.
	if config.Conf.Sweeper.Enabled {
		interval, err := time.ParseDuration(config.Conf.Sweeper.Interval)
		if err != nil {
			log.Warn("Invalid sweeper interval, using default", zap.Error(err))
		}
		services.NewSweeper(log, interval).Start(ctx)
	}

	// Setup router, passing the logger to it
	r := router.Setup(log)

	// Start the Gin server
	port := ":" + config.Conf.Server.Port
	log.Info("Server listening on http://localhost" + port)
	if err := r.Run(port); err != nil {
		log.Fatal("Failed to run Gin server", zap.Error(err))
	}
}

// seedTemplates loads the YAML survey templates and creates them for the
// admin customer. Skipped with a warning when no admin account exists yet.
func seedTemplates(log *zap.Logger, path string) {
	templates, err := models.LoadSurveyTemplates(path)
	if err != nil {
		log.Fatal("Failed to load survey templates", zap.Error(err))
	}

	admin, err := repository.GetAdminCustomer(context.Background())
	if err != nil {
		log.Warn("No admin customer found, skipping template seeding")
		return
	}

	if err := repository.SeedSurveyTemplates(context.Background(), admin.ID, templates); err != nil {
		log.Fatal("Failed to seed survey templates", zap.Error(err))
	}
	log.Info("Survey templates seeded", zap.Int("count", len(templates)))
}
