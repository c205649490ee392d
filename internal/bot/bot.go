package bot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/ivanoskov/tracker_bot/internal/charts"
	"github.com/ivanoskov/tracker_bot/internal/service"
	"github.com/ivanoskov/tracker_bot/internal/store"
)

// Sender - часть BotAPI, через которую бот отвечает пользователю
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type Bot struct {
	api      *tgbotapi.BotAPI
	sender   Sender
	registry *service.Registry
	charts   *charts.ChartGenerator
	now      func() time.Time
	logger   *zap.Logger

	mu     sync.Mutex
	states map[int64]*UserState // состояния диалога по ID чата
}

// NewBot подключается к Telegram по токену
func NewBot(token string, registry *service.Registry, generator *charts.ChartGenerator, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot api: %w", err)
	}

	b := New(api, registry, generator, logger)
	b.api = api
	return b, nil
}

// New создает бота поверх произвольного Sender
func New(sender Sender, registry *service.Registry, generator *charts.ChartGenerator, logger *zap.Logger) *Bot {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bot{
		sender:   sender,
		registry: registry,
		charts:   generator,
		now:      time.Now,
		logger:   logger,
		states:   make(map[int64]*UserState),
	}
}

// Start запускает бота в режиме long polling до отмены ctx
func (b *Bot) Start(ctx context.Context) error {
	if b.api == nil {
		return errors.New("long polling requires a telegram api client")
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	b.logger.Info("long polling started", zap.String("bot", b.api.Self.UserName))

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if err := b.HandleUpdate(ctx, update); err != nil {
				// Логируем ошибку, но продолжаем работу
				b.logger.Error("failed handling update", zap.Int("update_id", update.UpdateID), zap.Error(err))
			}
		}
	}
}

// HandleWebhook - точка входа для обработки входящих webhook-обновлений
func (b *Bot) HandleWebhook(ctx context.Context, body []byte) error {
	var update tgbotapi.Update
	if err := json.Unmarshal(body, &update); err != nil {
		return fmt.Errorf("failed to decode update: %w", err)
	}

	return b.HandleUpdate(ctx, update)
}

// HandleUpdate обрабатывает одно обновление. Обновления обрабатываются
// строго по одному.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) error {
	var chatID int64
	switch {
	case update.Message != nil && update.Message.Chat != nil:
		chatID = update.Message.Chat.ID
	case update.CallbackQuery != nil && update.CallbackQuery.Message != nil && update.CallbackQuery.Message.Chat != nil:
		chatID = update.CallbackQuery.Message.Chat.ID
	default:
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	err := b.registry.WithSession(ctx, chatID, func(sess *service.Session) error {
		if update.CallbackQuery != nil {
			return b.handleCallback(ctx, sess, update.CallbackQuery)
		}
		if update.Message.IsCommand() {
			return b.handleCommand(ctx, sess, update.Message)
		}
		return b.handleMessage(ctx, sess, update.Message)
	})

	var herr *store.HydrationError
	if errors.As(err, &herr) {
		// списки не загружены, ничего не меняем до следующей попытки
		b.sendText(chatID, "⚠️ Хранилище временно недоступно, попробуйте еще раз чуть позже.")
	}
	return err
}

// SendSummary отправляет в чат сводку по задачам и расходам
func (b *Bot) SendSummary(ctx context.Context, chatID int64) error {
	var text string
	err := b.registry.WithSession(ctx, chatID, func(sess *service.Session) error {
		text = summaryText(sess)
		return nil
	})
	if err != nil {
		return err
	}

	_, err = b.sender.Send(tgbotapi.NewMessage(chatID, text))
	if err != nil {
		return fmt.Errorf("failed to send summary to chat %d: %w", chatID, err)
	}
	return nil
}

func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.sender.Send(c); err != nil {
		b.logger.Warn("failed to send message", zap.Error(err))
	}
}

func (b *Bot) sendText(chatID int64, text string) {
	b.send(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) sendErrorMessage(chatID int64, text string) {
	b.sendText(chatID, "❌ "+text)
}

// checkMutation сообщает пользователю об ошибке изменения списка.
// Возвращает true, если операция не выполнена. Ошибка записи в хранилище
// не отменяет изменение: пользователь получает предупреждение.
func (b *Bot) checkMutation(chatID int64, err error) bool {
	if err == nil {
		return false
	}

	var verr *store.ValidationError
	var perr *store.PersistenceError
	switch {
	case errors.As(err, &verr):
		b.sendErrorMessage(chatID, validationText(verr))
		return true
	case errors.As(err, &perr):
		b.logger.Warn("mutation kept in memory only", zap.Int64("chat_id", chatID), zap.Error(err))
		b.sendText(chatID, "⚠️ Изменение применено, но не сохранено в хранилище. Повторю запись при следующем изменении.")
		return false
	default:
		b.logger.Error("mutation failed", zap.Int64("chat_id", chatID), zap.Error(err))
		b.sendErrorMessage(chatID, "Внутренняя ошибка, попробуйте позже")
		return true
	}
}

func validationText(err *store.ValidationError) string {
	switch err.Field {
	case "description":
		return "Описание не может быть пустым"
	case "amount":
		return "Сумма должна быть положительным числом не больше 90000"
	case "category_id":
		return "Неизвестная категория"
	default:
		return err.Error()
	}
}
