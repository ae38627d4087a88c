package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"planr_backend/internal/assistant"
	"planr_backend/internal/auth"
	"planr_backend/internal/config"
	"planr_backend/internal/email"
	"planr_backend/internal/handlers"
	"planr_backend/internal/logger"
	"planr_backend/internal/middleware"
	"planr_backend/internal/models"
	"planr_backend/internal/routes"
	"planr_backend/internal/services"
	"planr_backend/internal/storage"
	"planr_backend/internal/validator"
	"planr_backend/internal/workers"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	auth.Init(cfg.JWT.Secret, cfg.JWT.TTL)

	gormDB, err := OpenDatabase(cfg.Database.DSN)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	logger.Info("Database connected")

	if err := Migrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	if err := seedFirstStaff(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first staff user", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	worker := workers.NewEntitlementWorker(gormDB)
	worker.Start(context.Background())

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// OpenDatabase connects with TranslateError enabled so that unique
// constraint violations surface as gorm.ErrDuplicatedKey instead of a
// driver-specific error.
func OpenDatabase(dsn string) (*gorm.DB, error) {
	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	return gormDB, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return err
	}
	return db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Profile{},
		&models.SubscriptionTransaction{},
		&models.Organisation{},
		&models.OrganisationMembership{},
		&models.Feedback{},
		&models.Upload{},
	)
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	storageInstance, err := storage.NewStorage(storage.Config{
		Type:     cfg.Storage.Type,
		BasePath: cfg.Storage.BasePath,
		BaseURL:  cfg.Storage.BaseURL,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	var emailSender email.Sender
	if cfg.Email.Enabled {
		emailSender = email.NewSMTPSender(cfg)
	} else {
		logger.Warn("Email sending disabled, using noop sender")
		emailSender = email.NoopSender{}
	}

	assistantClient := assistant.NewOllamaClient(
		cfg.Assistant.BaseURL,
		cfg.Assistant.Model,
		time.Duration(cfg.Assistant.TimeoutSeconds)*time.Second,
	)

	serviceContainer := services.NewServiceContainer(cfg, storageInstance, emailSender, assistantClient)

	customValidator := validator.New()
	appHandlers := handlers.NewAppHandlers(serviceContainer, customValidator)

	ginRouter := initializeGinRouter(gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}

// seedFirstStaff creates the initial staff account from config, once.
func seedFirstStaff(db *gorm.DB, cfg *config.Config) error {
	staffEmail := cfg.FirstStaffEmail
	staffPassword := cfg.FirstStaffPassword

	if staffEmail == "" || staffPassword == "" {
		logger.Warn("FIRST_STAFF_EMAIL or FIRST_STAFF_PASSWORD is not set. Skipping staff seeding.")
		return nil
	}

	var existing models.User
	result := db.Where("email = ?", staffEmail).First(&existing)
	if result.Error == nil {
		logger.Info("Staff user already exists. Skipping creation.", "email", staffEmail)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for staff user: %w", result.Error)
	}

	hash, err := auth.HashPassword(staffPassword)
	if err != nil {
		return fmt.Errorf("failed to hash staff password: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		staffUser := &models.User{
			Email:        staffEmail,
			PasswordHash: hash,
			IsStaff:      true,
		}
		if err := tx.Create(staffUser).Error; err != nil {
			return fmt.Errorf("failed to create staff user: %w", err)
		}

		profile := &models.Profile{
			UserID:       staffUser.ID,
			MemberStatus: models.MemberStatusFree,
		}
		if err := tx.Create(profile).Error; err != nil {
			return fmt.Errorf("failed to create staff profile: %w", err)
		}

		logger.Info("Created first staff user", "email", staffEmail)
		return nil
	})
}
