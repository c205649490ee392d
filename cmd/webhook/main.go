package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ivanoskov/tracker_bot/internal/app"
	"github.com/ivanoskov/tracker_bot/internal/config"
	"github.com/ivanoskov/tracker_bot/internal/logger"
	"github.com/ivanoskov/tracker_bot/internal/scheduler"
	"github.com/ivanoskov/tracker_bot/internal/server/handlers"
	"github.com/ivanoskov/tracker_bot/internal/server/router"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.LogLevel))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, baseLogger)
	if err != nil {
		baseLogger.Fatal("failed to init bot", zap.Error(err))
	}
	defer func() {
		if err := a.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close slot", zap.Error(err))
		}
	}()

	webhookHandler := handlers.NewWebhookHandler(a.Bot, cfg.WebhookSecret, baseLogger.Named("handlers.webhook"))
	engine := router.New(webhookHandler, baseLogger.Named("router"))

	if cfg.SummaryCron != "" {
		sched := scheduler.NewScheduler(cfg.SummaryCron, cfg.SummaryChats, a.Bot, baseLogger.Named("scheduler"))
		if err := sched.Start(); err != nil {
			baseLogger.Fatal("failed to start scheduler", zap.Error(err))
		}
		defer sched.Stop()
	}

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
