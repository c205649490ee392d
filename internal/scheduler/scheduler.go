package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Notifier отправляет сводку в чат
type Notifier interface {
	SendSummary(ctx context.Context, chatID int64) error
}

// Scheduler рассылает ежедневную сводку по расписанию
type Scheduler struct {
	cron     *cron.Cron
	schedule string
	chats    []int64
	notifier Notifier
	logger   *zap.Logger
}

// NewScheduler создает планировщик. schedule задается cron-выражением из 5 полей.
func NewScheduler(schedule string, chats []int64, notifier Notifier, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:     cron.New(),
		schedule: schedule,
		chats:    chats,
		notifier: notifier,
		logger:   logger,
	}
}

// Start регистрирует задачу и запускает планировщик
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.sendSummaries); err != nil {
		return fmt.Errorf("failed to schedule summary %q: %w", s.schedule, err)
	}

	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule), zap.Int("chats", len(s.chats)))
	s.cron.Start()
	return nil
}

// Stop останавливает планировщик и ждет завершения запущенной задачи
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) sendSummaries() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	sent := 0
	for _, chatID := range s.chats {
		if err := s.notifier.SendSummary(ctx, chatID); err != nil {
			s.logger.Error("failed to send summary", zap.Int64("chat_id", chatID), zap.Error(err))
			continue
		}
		sent++
	}

	s.logger.Info("summaries sent", zap.Int("sent", sent), zap.Int("chats", len(s.chats)))
}
