package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"captn.backend/internal/config"
	"captn.backend/internal/infrastructure/directory"
	"captn.backend/internal/infrastructure/identity"
	"captn.backend/internal/infrastructure/models"
	"captn.backend/internal/infrastructure/repositories"
	"captn.backend/internal/interfaces/http/handlers"
	"captn.backend/internal/interfaces/http/middleware"
	"captn.backend/internal/usecases"
	"captn.backend/pkg/logger"
	"captn.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(cfg config.DatabaseConfig) (*gorm.DB, error) {
		// DATABASE_URL switches to an external database; the default is the
		// SQLite file next to the binary.
		gormCfg := &gorm.Config{TranslateError: true}
		if cfg.URL != "" {
			return gorm.Open(postgres.New(postgres.Config{
				DSN:                  cfg.URL,
				PreferSimpleProtocol: true,
			}), gormCfg)
		}
		return gorm.Open(sqlite.Open(cfg.SQLitePath), gormCfg)
	}
	newSessionStore = redis.NewSessionStore
	loadAssets      = func(r *gin.Engine) {
		r.LoadHTMLGlob("templates/*.html")
		r.Static("/static", "./static")
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.AutoMigrate(&models.Captainship{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	sessionStore, err := newSessionStore(cfg.Session.EncryptionKey)
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}

	captainshipRepo := repositories.NewCaptainshipRepository(db)
	directoryClient := directory.NewClient(cfg.Directory.URL)
	verifier := identity.NewVerifier(cfg.Identity.VerifierURL, cfg.Identity.Audience)

	scheduleUsecase := usecases.NewScheduleUsecase(captainshipRepo, directoryClient)

	scheduleHandler := handlers.NewScheduleHandler(scheduleUsecase)
	captainshipHandler := handlers.NewCaptainshipHandler(scheduleUsecase)
	authHandler := handlers.NewAuthHandler(verifier, sessionStore, cfg.Session.TTL)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())
	r.Use(middleware.SessionMiddleware(sessionStore))

	loadAssets(r)

	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerRoutes(r, routeDeps{
		scheduleHandler:    scheduleHandler,
		captainshipHandler: captainshipHandler,
		authHandler:        authHandler,
		requireAuth:        middleware.RequireAuth(),
	})

	logger.Info(context.Background(), "captn starting", zap.String("port", cfg.Server.Port))

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
