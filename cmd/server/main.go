package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"

	httpapi "promodesk-backend/internal/api/http"
	"promodesk-backend/internal/config"
	"promodesk-backend/internal/console"
	"promodesk-backend/internal/jobs"
	"promodesk-backend/internal/logger"
	"promodesk-backend/internal/repository/postgres"
	"promodesk-backend/internal/scheduler"
	"promodesk-backend/internal/security"
	"promodesk-backend/internal/service"

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
	logger.Info("Starting Promodesk Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize token verification
	var verifier security.TokenVerifier
	switch cfg.Auth.Mode {
	case "firebase":
		verifier, err = security.NewFirebaseVerifier(context.Background(), cfg.Auth.CredentialsFile)
		if err != nil {
			logger.Error("Failed to initialize firebase verifier", "error", err)
			log.Fatalf("Failed to initialize firebase verifier: %v", err)
		}
		logger.Info("Token verification via Firebase Auth")
	default:
		verifier = security.NewLocalVerifier(security.NewTokenManager(cfg.Auth.JWTSecret))
		logger.Info("Token verification via local JWT secret")
	}

	// Initialize Email Service
	var emailSvc service.EmailService
	if cfg.Email.Enabled {
		emailSvc = service.NewSendGridEmailService(cfg.Email.SendGridAPIKey, cfg.Email.FromEmail, cfg.Email.FromName)
		logger.Info("Email notifications enabled", "from", cfg.Email.FromEmail)
	} else {
		emailSvc = service.NewNoopEmailService()
		logger.Info("Email notifications disabled")
	}

	// Initialize Services
	promoterSvc := service.NewPromoterService(
		store.PromoterRepository,
		store.CampaignRepository,
		store.OrganizationRepository,
		emailSvc,
	)
	orgSvc := service.NewOrganizationService(store.OrganizationRepository, store.CampaignRepository)
	adminSvc := service.NewAdminService(
		store.AdminUserRepository,
		store.AdminApplicationRepository,
		store.CampaignRepository,
		store.OrganizationRepository,
		emailSvc,
	)
	reasonSvc := service.NewRejectionReasonService(store.RejectionReasonRepository)

	// Console sessions hold the stateful list controllers
	sessions := console.NewSessionManager(promoterSvc, cfg.List.PageSize)

	// Start the in-process scheduler
	jobRunner := jobs.NewJobRunner(&jobs.Services{Org: orgSvc}, sessions, cfg)
	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()
	defer sched.Stop()

	// Set up HTTP server
	authMiddleware := httpapi.NewAuthMiddleware(verifier, store.AdminUserRepository)
	router := httpapi.NewRouter(httpapi.RouterDeps{
		Auth:      authMiddleware,
		Sessions:  sessions,
		Promoters: promoterSvc,
		Orgs:      orgSvc,
		Admins:    adminSvc,
		Reasons:   reasonSvc,
	})

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
