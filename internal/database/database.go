package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/differentgrowth/newgenforms/internal/config"
	logging "github.com/differentgrowth/newgenforms/internal/logging"
	"github.com/differentgrowth/newgenforms/internal/models"
)

var DB *gorm.DB

func Init(log *zap.Logger) {
	var err error
	dbConf := config.Conf.Database
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		dbConf.Host, dbConf.User, dbConf.Password, dbConf.DBName, dbConf.Port)

	gormLogger := logging.NewGormZapLogger(log)

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	log.Info("Database connection established successfully.")
	runMigrations(log)
}

func runMigrations(log *zap.Logger) {
	// GORM's AutoMigrate will create tables, columns, and foreign keys.
	// It will NOT create custom indexes, so we handle that separately.
	err := DB.AutoMigrate(
		&models.Customer{},
		&models.Survey{},
		&models.Question{},
		&models.Option{},
		&models.Answer{},
	)
	if err != nil {
		log.Fatal("Failed to run database migrations", zap.Error(err))
	}
	log.Info("Database migrations completed successfully.")

	// One answer per (question, client). The application pre-checks this
	// inside the insert transaction; the index closes the race for real.
	clientIndex := `CREATE UNIQUE INDEX IF NOT EXISTS idx_answers_question_client ON answers (question_id, client);`
	if err := DB.Exec(clientIndex).Error; err != nil {
		log.Fatal("Failed to create unique answer index", zap.Error(err))
	}

	orderIndex := `CREATE INDEX IF NOT EXISTS idx_questions_survey_position ON questions (survey_id, position);`
	if err := DB.Exec(orderIndex).Error; err != nil {
		log.Fatal("Failed to create question order index", zap.Error(err))
	}
	log.Info("Custom indexes ensured successfully.")
}
