package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-calendar-remind/internal/app"
	"github.com/KasumiMercury/primind-calendar-remind/internal/bootstrap"
	"github.com/KasumiMercury/primind-calendar-remind/internal/config"
	"github.com/KasumiMercury/primind-calendar-remind/internal/infra/handler"
	"github.com/KasumiMercury/primind-calendar-remind/internal/infra/scheduler"
	"github.com/KasumiMercury/primind-calendar-remind/internal/observability"
	"github.com/KasumiMercury/primind-calendar-remind/internal/observability/logging"
	"github.com/KasumiMercury/primind-calendar-remind/internal/observability/middleware"
)

// Version is set at build time.
var Version = "dev"

const shutdownTimeout = 30 * time.Second

func main() {
	os.Exit(run())
}

func run() int {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)

		return 1
	}

	ctx := context.Background()

	obs, err := initObservability(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize observability", "error", err)

		return 1
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := obs.Shutdown(shutdownCtx); err != nil {
			slog.Warn("failed to flush telemetry", "error", err)
		}
	}()

	backends, err := bootstrap.OpenBackends(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize reminder store", "error", err)

		return 1
	}

	defer func() {
		if err := backends.Close(); err != nil {
			slog.Warn("failed to close backends", "error", err)
		}
	}()

	publisher, err := bootstrap.OpenPublisher(ctx, cfg)
	if err != nil {
		slog.Error("failed to create publisher", "error", err)

		return 1
	}

	if publisher != nil {
		defer func() {
			if err := publisher.Close(); err != nil {
				slog.Warn("failed to close publisher", "error", err)
			}
		}()
	}

	notifier, err := bootstrap.NewGateway(cfg, backends, publisher)
	if err != nil {
		slog.Error("failed to create notification gateway", "error", err)

		return 1
	}

	scanner := bootstrap.NewScanner(cfg, backends, notifier, obs.ScanMetrics)

	sched, err := scheduler.New(scanner, scheduler.Config{
		Interval: cfg.Scanner.TickInterval,
	})
	if err != nil {
		slog.Error("failed to create scheduler", "error", err)

		return 1
	}

	var subscriptionUseCase app.SubscriptionUseCase
	if backends.Subscriptions != nil {
		subscriptionUseCase = app.NewSubscriptionUseCase(backends.Subscriptions)
	}

	reminderHandler := handler.NewReminderHandler(
		app.NewReminderUseCase(backends.Reminders, publisher),
		subscriptionUseCase,
	)

	router := setupRouter(reminderHandler, cfg, obs)

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server", "address", cfg.Server.Address())
		serverErr <- srv.ListenAndServe()
	}()

	sched.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	exitCode := 0

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", "signal", sig.String())
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server exited with error", "error", err)

			exitCode = 1
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := sched.Stop(shutdownCtx); err != nil {
		slog.Warn("scheduler did not stop cleanly", "error", err)
	}

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shutdown server", "error", err)

		exitCode = 1
	}

	slog.Info("server exited", "exit_code", exitCode)

	return exitCode
}

func setupRouter(reminderHandler *handler.ReminderHandler, cfg *config.Config, obs *observability.Resources) *gin.Engine {
	router := gin.New()

	router.Use(middleware.PanicRecoveryGin())
	router.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:   []string{"/ping"},
		Module:      logging.Module("reminder"),
		TracerName:  obs.TracerName,
		HTTPMetrics: obs.HTTPMetrics,
	}))

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	v1 := router.Group("/api/v1")
	reminderHandler.RegisterRoutes(v1, cfg.Auth.JWTSecret)

	return router
}
