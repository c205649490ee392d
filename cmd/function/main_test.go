package main

import (
	"context"
	"net/http"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ivanoskov/tracker_bot/internal/app"
	"github.com/ivanoskov/tracker_bot/internal/config"
)

type nopSender struct{}

func (nopSender) Send(tgbotapi.Chattable) (tgbotapi.Message, error) { return tgbotapi.Message{}, nil }

func (nopSender) Request(tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func memoryApp(calls *int) appFactory {
	return func(ctx context.Context, cfg *config.Config, log *zap.Logger) (*app.App, error) {
		*calls++
		return app.NewWithSender(ctx, cfg, nopSender{}, log)
	}
}

func TestHandle_WebhookSecret(t *testing.T) {
	cfg := &config.Config{
		SlotBackend:   config.BackendMemory,
		Locale:        "ru",
		Currency:      "RUB",
		WebhookSecret: "s3cret",
	}
	body := `{"update_id":1}`

	tests := []struct {
		name    string
		headers map[string]string
		want    int
	}{
		{name: "canonical header", headers: map[string]string{"X-Telegram-Bot-Api-Secret-Token": "s3cret"}, want: http.StatusOK},
		{name: "lowercased header", headers: map[string]string{"x-telegram-bot-api-secret-token": "s3cret"}, want: http.StatusOK},
		{name: "wrong secret", headers: map[string]string{"x-telegram-bot-api-secret-token": "guess"}, want: http.StatusUnauthorized},
		{name: "missing header", headers: nil, want: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			resp := handle(context.Background(), Request{Body: body, Headers: tt.headers}, cfg, zap.NewNop(), memoryApp(&calls))

			require.NotNil(t, resp)
			assert.Equal(t, tt.want, resp.StatusCode)
			if tt.want == http.StatusUnauthorized {
				assert.Zero(t, calls)
			}
		})
	}
}

func TestHandle_BadBody(t *testing.T) {
	cfg := &config.Config{SlotBackend: config.BackendMemory, Locale: "ru", Currency: "RUB"}
	calls := 0

	resp := handle(context.Background(), Request{Body: "{broken"}, cfg, zap.NewNop(), memoryApp(&calls))

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, 1, calls)
}
