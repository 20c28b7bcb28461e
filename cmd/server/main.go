package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"fleetrent-backend/internal/ai"
	httpapi "fleetrent-backend/internal/api/http"
	"fleetrent-backend/internal/config"
	"fleetrent-backend/internal/logger"
	"fleetrent-backend/internal/repository/postgres"
	"fleetrent-backend/internal/security"
	"fleetrent-backend/internal/service"
	"fleetrent-backend/internal/storage"
	"fleetrent-backend/internal/whatsapp"
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
	logger.Info("Starting FleetRent Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
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

	// Run migrations
	if err := postgres.Migrate(db); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
		time.Duration(cfg.JWT.RefreshTokenExpiry)*time.Minute,
	)

	// Initialize Storage
	var storageService storage.Storage
	if cfg.Storage.Type == "" || cfg.Storage.Type == "mock" {
		logger.Info("Using mock storage (local filesystem)", "upload_dir", cfg.Storage.UploadDir)
		mockStorage, err := storage.NewMockStorage(cfg.Storage.BaseURL, cfg.Storage.UploadDir)
		if err != nil {
			logger.Error("Failed to initialize mock storage", "error", err)
			log.Fatalf("Failed to initialize mock storage: %v", err)
		}
		storageService = mockStorage
	} else {
		logger.Error("Unsupported storage type", "type", cfg.Storage.Type)
		log.Fatalf("Storage type '%s' not yet implemented", cfg.Storage.Type)
	}

	// Initialize WhatsApp client
	waClient := whatsapp.NewClient(cfg.WhatsApp.APIBaseURL, cfg.WhatsApp.AccessToken, cfg.WhatsApp.SenderID)

	// Initialize AI planner (optional; maintenance suggestions are disabled
	// without an API key)
	var planner *ai.MaintenancePlanner
	if cfg.Gemini.APIKey != "" {
		planner, err = ai.NewMaintenancePlanner(context.Background(), cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			logger.Error("Failed to initialize maintenance planner", "error", err)
			log.Fatalf("Failed to initialize maintenance planner: %v", err)
		}
	} else {
		logger.Warn("No Gemini API key configured, maintenance suggestions disabled")
	}

	// Initialize Services
	emailSvc := service.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromName, cfg.SendGrid.FromEmail)
	authSvc := service.NewAuthService(store.UserRepository, store.SettingsRepository, tokenManager, emailSvc)
	fleetSvc := service.NewFleetService(store.VehicleRepository, store.ImageRepository)
	clientSvc := service.NewClientService(store.ClientRepository)
	invoiceSvc := service.NewInvoiceService(
		store.InvoiceRepository,
		store.ContractRepository,
		store.ClientRepository,
		store.SettingsRepository,
		store.NotificationRepository,
		emailSvc,
	)
	contractSvc := service.NewContractService(
		store.ContractRepository,
		store.VehicleRepository,
		store.ClientRepository,
		store.SettingsRepository,
		invoiceSvc,
	)
	maintSvc := service.NewMaintenanceService(store.MaintenanceRepository, store.VehicleRepository, planner)
	reportSvc := service.NewReportService(store.ReportRepository)
	templateSvc := service.NewTemplateService(store.TemplateRepository, store.ClientRepository, waClient)
	noteSvc := service.NewNotificationService(store.NotificationRepository)
	settingsSvc := service.NewSettingsService(store.SettingsRepository)
	imageSvc := service.NewImageService(store.ImageRepository, storageService)

	// Build router
	router := httpapi.NewRouter(httpapi.Services{
		Auth:         authSvc,
		Fleet:        fleetSvc,
		Client:       clientSvc,
		Contract:     contractSvc,
		Invoice:      invoiceSvc,
		Maintenance:  maintSvc,
		Report:       reportSvc,
		Template:     templateSvc,
		Notification: noteSvc,
		Settings:     settingsSvc,
		Image:        imageSvc,
	}, tokenManager, storageService)

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
