package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"DocRegistry/config"
	"DocRegistry/middleware"
	"DocRegistry/routes"
	"DocRegistry/services"
	"DocRegistry/utils"
	"DocRegistry/utils/mailer"
	"DocRegistry/utils/redisstore"
	"DocRegistry/utils/storage"

	"github.com/gofiber/fiber/v2"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := utils.InitLogger(cfg.App.LogLevel)

	db, err := config.ConnectDB(cfg.Database)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	var sessionStorage fiber.Storage
	if cfg.Session.RedisURL != "" {
		store, err := redisstore.New(cfg.Session.RedisURL)
		if err != nil {
			logger.Error("redis session storage unavailable", "error", err)
			os.Exit(1)
		}
		defer store.Close()
		sessionStorage = store
		logger.Info("sessions stored in redis")
	}

	var docOpts []services.Option
	archiver, err := storage.NewS3Archiver(context.Background(), cfg.Storage)
	if err != nil {
		logger.Error("export archive unavailable", "error", err)
		os.Exit(1)
	}
	if archiver != nil {
		docOpts = append(docOpts, services.WithArchiver(archiver))
	}

	notifier := mailer.NewClient(cfg.Email)
	passwords := services.NewPasswordPolicy(cfg.App.PasswordScheme)

	app := routes.NewApp(routes.Deps{
		DB:        db,
		Sessions:  middleware.NewSessionStore(cfg.Session, sessionStorage),
		SecretKey: cfg.Session.SecretKey,
		Logger:    logger,
		Auth:      services.NewAuthService(db, passwords),
		Resets:    services.NewPasswordResetService(db, notifier, passwords, cfg.App.BaseURL),
		Documents: services.NewDocumentService(db, notifier, cfg.App.Location, docOpts...),
		Users:     services.NewUserService(db, passwords),
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		logger.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Error("shutdown", "error", err)
		}
	}()

	logger.Info("API running", "addr", cfg.App.ListenAddr, "timezone", cfg.App.Location.String())
	if err := app.Listen(cfg.App.ListenAddr); err != nil {
		logger.Error("listen", "error", err)
		os.Exit(1)
	}
}
