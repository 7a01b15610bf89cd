package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fitgate/internal/config"
	"fitgate/internal/db"
	"fitgate/internal/email"
	"fitgate/internal/gym"
	"fitgate/internal/logger"
	"fitgate/internal/member"
	"fitgate/internal/notification"
	"fitgate/internal/server"
	"fitgate/internal/user"

	"github.com/robfig/cron/v3"
)

// @title FitGate API
// @version 1.0
// @description Multi-tenant gym management with QR scan check-ins.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {

	logger.Init()
	logger.Info("Starting FitGate application")
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	logger.Info("Connecting to database...")
	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()
	logger.Info("Database connected")

	if err := db.RunMigrations(database, "migrations"); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Info("Migrations completed")

	emailService := email.New(
		cfg.EmailFrom,
		cfg.EmailFromName,
		cfg.SMTPHost,
		cfg.SMTPPort,
		cfg.SMTPUser,
		cfg.SMTPPass,
		cfg.RedisAddr,
	)
	defer emailService.Close()
	logger.Info("Email service initialized")

	notifRepo := notification.NewRepository(database)
	notifier := notification.NewNotifier(cfg.RedisAddr, notifRepo)
	defer notifier.Close()
	logger.Info("Notification queue initialized")

	expiry := notification.NewExpiryScanner(
		member.NewRepository(database),
		notifRepo,
		notifier,
		gym.NewRepository(database),
		user.NewRepository(database),
		emailService,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go emailService.Start(ctx)
	go notifier.Start(ctx)

	// Daily sweep so expiry notices go out even for gyms whose owners
	// never open the dashboard.
	sweeper := cron.New()
	if _, err := sweeper.AddFunc("0 2 * * *", func() {
		expiry.ScanAllGyms(context.Background())
	}); err != nil {
		logger.Fatalf("Failed to schedule expiry sweep: %v", err)
	}
	sweeper.Start()
	logger.Info("Expiry sweep scheduled")

	srv := server.New(database, cfg, emailService, notifier, expiry)

	serverErrChan := make(chan error, 1)
	go func() {
		logger.Infof("Server starting on port %s", cfg.Port)
		if err := srv.Start(cfg.Port); err != nil && err != http.ErrServerClosed {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Infof("Received signal: %v", sig)
	case err := <-serverErrChan:
		logger.Errorf("Server error: %v", err)
	}

	logger.Info("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	cancel()
	<-sweeper.Stop().Done()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Error during server shutdown: %v", err)
	}

	logger.Info("Server stopped")
}
