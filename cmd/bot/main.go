package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/ivanoskov/tracker_bot/internal/app"
	"github.com/ivanoskov/tracker_bot/internal/config"
	"github.com/ivanoskov/tracker_bot/internal/logger"
	"github.com/ivanoskov/tracker_bot/internal/scheduler"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.LogLevel))
	defer func() { _ = baseLogger.Sync() }()

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

	if cfg.SummaryCron != "" {
		sched := scheduler.NewScheduler(cfg.SummaryCron, cfg.SummaryChats, a.Bot, baseLogger.Named("scheduler"))
		if err := sched.Start(); err != nil {
			baseLogger.Fatal("failed to start scheduler", zap.Error(err))
		}
		defer sched.Stop()
	}

	if err := a.Bot.Start(ctx); err != nil {
		baseLogger.Error("bot stopped with error", zap.Error(err))
	}
	baseLogger.Info("shutdown complete")
}
