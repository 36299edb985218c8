package services

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/brainwave-labs/quest_api/model"
	"github.com/brainwave-labs/quest_api/shared"
)

// SqlService opens the progress database. DB_DRIVER selects sqlite
// (default, DB_DATABASE file path) or postgres (DATABASE_URL / DB_* vars).
type SqlService struct {
	context.DefaultService
	db *gorm.DB

	driver string
	dsn    string
}

const SQL_SVC = "sql_svc"

// Id returns Service ID
func (ds SqlService) Id() string {
	return SQL_SVC
}

// Db Access to raw SqlService db
func (ds SqlService) Db() *gorm.DB {
	return ds.db
}

// Configure the service
func (ds *SqlService) Configure(ctx *context.Context) error {
	ds.driver = os.Getenv("DB_DRIVER")
	if ds.driver == "" {
		ds.driver = "sqlite"
	}

	switch ds.driver {
	case "sqlite":
		ds.dsn = os.Getenv("DB_DATABASE")
		if ds.dsn == "" {
			ds.dsn = "quest.db"
		}
	case "postgres":
		ds.dsn = os.Getenv("DATABASE_URL")
		if ds.dsn == "" {
			host := envOr("DB_HOST", "localhost")
			port := envOr("DB_PORT", "5432")
			user := envOr("DB_USER", "postgres")
			password := envOr("DB_PASSWORD", "postgres")
			dbname := envOr("DB_NAME", "quest")
			ds.dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
				host, port, user, password, dbname)
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER: %s", ds.driver)
	}

	return ds.DefaultService.Configure(ctx)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Start the service and open connection to the database
// Migrate any tables that have changed since last runtime
func (ds *SqlService) Start() (err error) {
	cfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	}

	switch ds.driver {
	case "postgres":
		ds.db, err = gorm.Open(postgres.Open(ds.dsn), cfg)
	default:
		ds.db, err = gorm.Open(sqlite.Open(ds.dsn), cfg)
	}
	if err != nil {
		return err
	}

	models := []interface{}{
		&model.User{},
		&model.ProgressSnapshot{},
		&model.ProcessedEvent{},
		&model.Achievement{},
		&model.ChallengeTemplate{},
		&model.DailyChallenge{},
		&model.UserChallenge{},
	}

	err = ds.db.AutoMigrate(models...)
	if err != nil {
		log.Printf("Failed to migrate database: %v", err)
		return err
	}

	log.Println("Database connected and migrated successfully")
	return nil
}

func (ds *SqlService) Shutdown() {
}

// HandleError normalizes gorm errors into typed AppErrors the HTTP layer
// knows how to render.
func (ds *SqlService) HandleError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.NewNotFoundError(err, "Not Found")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.NewConflictError(err, "Conflict")
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return shared.NewBadRequestError(err, "Foreign key violation")
	default:
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return shared.NewConflictError(err, "Conflict")
		}
		log.WithError(err).Error("Database error occurred")
		return shared.NewInternalError(err, "Database error")
	}
}
