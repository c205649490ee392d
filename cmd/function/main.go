package main

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/ivanoskov/tracker_bot/internal/app"
	"github.com/ivanoskov/tracker_bot/internal/config"
	"github.com/ivanoskov/tracker_bot/internal/logger"
	"github.com/ivanoskov/tracker_bot/internal/server/handlers"
)

// Request структура входящего запроса от API Gateway
type Request struct {
	Body    string            `json:"body"`
	Headers map[string]string `json:"headers,omitempty"`
}

// Response структура ответа для API Gateway
type Response struct {
	StatusCode int               `json:"statusCode"`
	Body       string            `json:"body"`
	Headers    map[string]string `json:"headers,omitempty"`
}

type appFactory func(ctx context.Context, cfg *config.Config, log *zap.Logger) (*app.App, error)

// Handler обрабатывает одно webhook-обновление. Списки гидратируются из
// хранилища при каждом вызове, так что функция не хранит состояние.
func Handler(ctx context.Context, request Request) (*Response, error) {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		return errorResponse(http.StatusInternalServerError, err), nil
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return errorResponse(http.StatusInternalServerError, err), nil
	}
	defer func() { _ = log.Sync() }()

	return handle(ctx, request, cfg, log, app.New), nil
}

func handle(ctx context.Context, request Request, cfg *config.Config, log *zap.Logger, newApp appFactory) *Response {
	if cfg.WebhookSecret != "" {
		got := handlers.HeaderValue(request.Headers, handlers.SecretHeader)
		if !handlers.ValidSecret(got, cfg.WebhookSecret) {
			log.Warn("webhook secret mismatch")
			return &Response{StatusCode: http.StatusUnauthorized}
		}
	}

	// Инициализация бота
	a, err := newApp(ctx, cfg, log)
	if err != nil {
		return errorResponse(http.StatusInternalServerError, err)
	}
	defer func() {
		if err := a.Close(ctx); err != nil {
			log.Error("failed to close slot", zap.Error(err))
		}
	}()

	// Обработка webhook-обновления
	if err := a.Bot.HandleWebhook(ctx, []byte(request.Body)); err != nil {
		log.Error("failed processing webhook", zap.Error(err))
		return errorResponse(http.StatusInternalServerError, err)
	}

	return &Response{
		StatusCode: http.StatusOK,
		Body:       "",
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}
}

func errorResponse(status int, err error) *Response {
	return &Response{
		StatusCode: status,
		Body:       err.Error(),
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}
}

func main() {
	// Точка входа для локального тестирования
}
