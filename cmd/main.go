package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jyotishya/jyotishya-backend/internal/data/db"
	"github.com/jyotishya/jyotishya-backend/internal/data/repos"
	apphttp "github.com/jyotishya/jyotishya-backend/internal/http"
	"github.com/jyotishya/jyotishya-backend/internal/http/handlers"
	"github.com/jyotishya/jyotishya-backend/internal/http/middleware"
	"github.com/jyotishya/jyotishya-backend/internal/observability"
	"github.com/jyotishya/jyotishya-backend/internal/platform/envutil"
	"github.com/jyotishya/jyotishya-backend/internal/platform/logger"
	"github.com/jyotishya/jyotishya-backend/internal/services"
)

func main() {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	otelShutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: "jyotishya",
		Environment: envutil.GetEnv("APP_ENV", "development", log),
		Version:     envutil.GetEnv("APP_VERSION", "dev", log),
	})
	if otelShutdown != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := otelShutdown(shutdownCtx); err != nil {
				log.Warn("otel shutdown failed", "error", err)
			}
		}()
	}

	dbService, err := db.New(log)
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := dbService.AutoMigrateAll(); err != nil {
		log.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	gormDB := dbService.DB()
	userRepo := repos.NewUserRepo(gormDB, log)
	chartRepo := repos.NewSavedChartRepo(gormDB, log)
	astrologerRepo := repos.NewAstrologerRepo(gormDB, log)
	consultationRepo := repos.NewConsultationRepo(gormDB, log)

	provider, closeProvider, err := services.NewAstroProvider(log)
	if err != nil {
		log.Error("Failed to init astrology provider", "error", err)
		os.Exit(1)
	}
	defer closeProvider()

	authService, err := services.NewAuthService(log, userRepo)
	if err != nil {
		log.Error("Failed to init auth", "error", err)
		os.Exit(1)
	}
	horoscopeService := services.NewHoroscopeService(provider, log)
	panchangService := services.NewPanchangService(provider, log)
	chartService := services.NewChartService(dbService, log, provider, chartRepo)
	astrologerService := services.NewAstrologerService(log, astrologerRepo)
	consultationService := services.NewConsultationService(dbService, log, astrologerRepo, consultationRepo)
	userService := services.NewUserService(log, userRepo)

	seedPath := envutil.GetEnv("ASTROLOGER_CATALOG_PATH", "config/astrologers.yaml", log)
	if count, err := astrologerService.SeedFromFile(ctx, seedPath); err != nil {
		log.Warn("Astrologer catalog seed failed", "path", seedPath, "error", err)
	} else if count > 0 {
		log.Info("Astrologer catalog seeded", "count", count)
	}

	server := apphttp.NewServer(apphttp.RouterConfig{
		Log:            log,
		AllowedOrigins: envutil.GetEnv("CORS_ALLOWED_ORIGINS", "", log),
		Auth:           middleware.NewAuthMiddleware(log, authService),
		Health:         handlers.NewHealthHandler(),
		Horoscope:      handlers.NewHoroscopeHandler(horoscopeService),
		Panchang:       handlers.NewPanchangHandler(panchangService),
		Chart:          handlers.NewChartHandler(chartService),
		Astrologer:     handlers.NewAstrologerHandler(astrologerService),
		Consultation:   handlers.NewConsultationHandler(consultationService),
		User:           handlers.NewUserHandler(userService),
	})

	address := ":" + envutil.GetEnv("PORT", "8080", log)
	log.Info("Starting server", "address", address)
	if err := server.Run(ctx, address); err != nil {
		log.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
	log.Info("Server stopped")
}
