// Package app собирает бота из конфигурации: хранилище, сервисы, графики.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ivanoskov/tracker_bot/internal/bot"
	"github.com/ivanoskov/tracker_bot/internal/charts"
	"github.com/ivanoskov/tracker_bot/internal/config"
	"github.com/ivanoskov/tracker_bot/internal/repository"
	"github.com/ivanoskov/tracker_bot/internal/service"
)

type App struct {
	Bot      *bot.Bot
	Registry *service.Registry

	closeSlot func(context.Context) error
}

// New подключает хранилище и создает бота, подключенного к Telegram
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	return build(ctx, cfg, logger, func(registry *service.Registry, generator *charts.ChartGenerator) (*bot.Bot, error) {
		return bot.NewBot(cfg.TelegramToken, registry, generator, logger.Named("bot"))
	})
}

// NewWithSender собирает бота поверх готового Sender без обращения к Telegram
func NewWithSender(ctx context.Context, cfg *config.Config, sender bot.Sender, logger *zap.Logger) (*App, error) {
	return build(ctx, cfg, logger, func(registry *service.Registry, generator *charts.ChartGenerator) (*bot.Bot, error) {
		return bot.New(sender, registry, generator, logger.Named("bot")), nil
	})
}

type botFactory func(*service.Registry, *charts.ChartGenerator) (*bot.Bot, error)

func build(ctx context.Context, cfg *config.Config, logger *zap.Logger, newBot botFactory) (*App, error) {
	money, err := service.NewMoney(cfg.Locale, cfg.Currency)
	if err != nil {
		return nil, fmt.Errorf("failed to configure money format: %w", err)
	}

	slot, closeSlot, err := repository.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s slot: %w", cfg.SlotBackend, err)
	}
	logger.Info("slot opened", zap.String("backend", cfg.SlotBackend))

	a := &App{
		Registry:  service.NewRegistry(slot, money, logger.Named("registry")),
		closeSlot: closeSlot,
	}

	a.Bot, err = newBot(a.Registry, charts.NewChartGenerator(money.Currency()))
	if err != nil {
		_ = a.Close(ctx)
		return nil, err
	}
	return a, nil
}

// Close освобождает соединение с хранилищем
func (a *App) Close(ctx context.Context) error {
	if err := a.closeSlot(ctx); err != nil {
		return fmt.Errorf("failed to close slot: %w", err)
	}
	return nil
}
