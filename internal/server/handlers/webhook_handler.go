package handlers

import (
	"context"
	"crypto/subtle"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SecretHeader - заголовок, которым Telegram подписывает webhook-запросы
const SecretHeader = "X-Telegram-Bot-Api-Secret-Token"

// UpdateHandler обрабатывает тело webhook-обновления Telegram
type UpdateHandler interface {
	HandleWebhook(ctx context.Context, body []byte) error
}

// WebhookHandler принимает обновления Telegram по HTTP
type WebhookHandler struct {
	bot    UpdateHandler
	secret string
	logger *zap.Logger
}

// NewWebhookHandler создает обработчик; пустой secret отключает проверку заголовка
func NewWebhookHandler(bot UpdateHandler, secret string, logger *zap.Logger) *WebhookHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookHandler{bot: bot, secret: secret, logger: logger}
}

// Receive передает обновление боту
func (h *WebhookHandler) Receive(c *gin.Context) {
	if h.secret != "" {
		if !ValidSecret(c.GetHeader(SecretHeader), h.secret) {
			h.logger.Warn("webhook secret mismatch", zap.String("client_ip", c.ClientIP()))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid secret token"})
			return
		}
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil || len(body) == 0 {
		h.logger.Warn("invalid webhook payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	if err := h.bot.HandleWebhook(c.Request.Context(), body); err != nil {
		h.logger.Error("failed processing webhook", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process webhook"})
		return
	}

	c.Status(http.StatusOK)
}

// ValidSecret сравнивает присланный токен с ожидаемым за постоянное время
func ValidSecret(got, want string) bool {
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

// HeaderValue ищет заголовок без учета регистра: API Gateway может
// передавать имена заголовков в нижнем регистре
func HeaderValue(headers map[string]string, name string) string {
	for k, v := range headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}
