package app

import (
	"context"
	"path/filepath"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ivanoskov/tracker_bot/internal/config"
	"github.com/ivanoskov/tracker_bot/internal/service"
)

type nopSender struct{}

func (nopSender) Send(tgbotapi.Chattable) (tgbotapi.Message, error) { return tgbotapi.Message{}, nil }

func (nopSender) Request(tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func TestNewWithSender_SQLiteSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{
		SlotBackend: config.BackendSQLite,
		SQLitePath:  filepath.Join(t.TempDir(), "tracker.db"),
		Locale:      "ru",
		Currency:    "RUB",
	}
	body := []byte(`{"update_id":1,"message":{"message_id":1,"chat":{"id":7},"text":"/task Buy milk",` +
		`"entities":[{"type":"bot_command","offset":0,"length":5}]}}`)

	first, err := NewWithSender(ctx, cfg, nopSender{}, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, first.Bot.HandleWebhook(ctx, body))
	require.NoError(t, first.Close(ctx))

	second, err := NewWithSender(ctx, cfg, nopSender{}, zap.NewNop())
	require.NoError(t, err)
	defer func() { _ = second.Close(ctx) }()

	err = second.Registry.WithSession(ctx, 7, func(sess *service.Session) error {
		tasks := sess.Todos.Tasks()
		require.Len(t, tasks, 1)
		assert.Equal(t, "Buy milk", tasks[0].Description)
		return nil
	})
	require.NoError(t, err)
}

func TestNewWithSender_InvalidCurrency(t *testing.T) {
	cfg := &config.Config{SlotBackend: config.BackendMemory, Locale: "ru", Currency: "???"}

	_, err := NewWithSender(context.Background(), cfg, nopSender{}, zap.NewNop())
	assert.Error(t, err)
}
