package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"net/http"

	api "visithub-backend/internal/api/http"
	"visithub-backend/internal/config"
	"visithub-backend/internal/jobs"
	"visithub-backend/internal/logger"
	"visithub-backend/internal/repository/postgres"
	"visithub-backend/internal/scheduler"
	"visithub-backend/internal/security"
	"visithub-backend/internal/service"
	"visithub-backend/internal/storage"
	"visithub-backend/internal/window"

	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting VisitHub Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	logger.Debug("Connecting to database...", "connection_string", fmt.Sprintf("%s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Database))
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	authMiddleware := api.NewAuthMiddleware(tokenManager)

	// Initialize Media Storage
	mediaStorage, err := storage.NewMockStorageService(cfg.Storage.UploadDir)
	if err != nil {
		logger.Error("Failed to initialize media storage", "error", err)
		log.Fatalf("Failed to initialize media storage: %v", err)
	}
	logger.Info("Using mock storage (local filesystem)", "upload_dir", cfg.Storage.UploadDir)

	// Initialize Services
	clock := window.SystemClock{}
	emailSvc := service.NewEmailService(cfg.Email.APIKey, cfg.Email.FromEmail, cfg.Email.FromName)
	authorizer := service.NewTeamAuthorizer(store.TeamRepository)
	gate := service.NewContributionGate(store.VisitRepository, authorizer)
	visitSvc := service.NewVisitService(store.VisitRepository, store.AuditRepository, gate, mediaStorage, clock)
	bulkSvc := service.NewBulkService(store.UserRepository, store.TeamRepository, store.VisitRepository, store.AuditRepository, emailSvc)
	authSvc := service.NewAuthService(store.UserRepository, tokenManager)

	// Initialize HTTP handlers
	authHandler := api.NewAuthHandler(authSvc)
	visitHandler := api.NewVisitHandler(visitSvc, cfg.Storage.MaxFileSizeMB)
	adminHandler := api.NewAdminHandler(bulkSvc)
	router := api.NewRouter(authMiddleware, authHandler, visitHandler, adminHandler)

	// Start job scheduler
	jobRunner := jobs.NewJobRunner(store, emailSvc, clock, cfg)
	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()
	defer sched.Stop()

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("Failed to serve HTTP", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
