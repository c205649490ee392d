package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Поддерживаемые хранилища снимков
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendSupabase = "supabase"
	BackendMongoDB  = "mongodb"
)

type Config struct {
	TelegramToken string
	SlotBackend   string
	SQLitePath    string
	SupabaseURL   string
	SupabaseKey   string
	MongoURI      string
	MongoDBName   string
	HTTPPort      string
	WebhookSecret string
	SummaryCron   string
	SummaryChats  []int64
	Locale        string
	Currency      string
	LogLevel      string
}

// LoadConfig читает .env (если он есть) и переменные окружения
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed loading .env: %w", err)
	}

	chats, err := parseChatIDs(os.Getenv("SUMMARY_CHAT_IDS"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
		SlotBackend:   getenvWithDefault("SLOT_BACKEND", BackendSQLite),
		SQLitePath:    getenvWithDefault("SQLITE_PATH", "tracker.db"),
		SupabaseURL:   os.Getenv("SUPABASE_URL"),
		SupabaseKey:   os.Getenv("SUPABASE_KEY"),
		MongoURI:      os.Getenv("MONGODB_URI"),
		MongoDBName:   getenvWithDefault("MONGODB_DB_NAME", "tracker"),
		HTTPPort:      getenvWithDefault("HTTP_PORT", "8080"),
		WebhookSecret: os.Getenv("WEBHOOK_SECRET"),
		SummaryCron:   os.Getenv("SUMMARY_CRON"),
		SummaryChats:  chats,
		Locale:        getenvWithDefault("LOCALE", "ru"),
		Currency:      getenvWithDefault("CURRENCY", "RUB"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет обязательные параметры выбранного хранилища
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.TelegramToken == "" {
		return errors.New("TELEGRAM_TOKEN must be provided")
	}

	switch c.SlotBackend {
	case BackendMemory:
	case BackendSQLite:
		if c.SQLitePath == "" {
			return errors.New("SQLITE_PATH must not be empty")
		}
	case BackendSupabase:
		if c.SupabaseURL == "" || c.SupabaseKey == "" {
			return errors.New("SUPABASE_URL and SUPABASE_KEY must be provided")
		}
	case BackendMongoDB:
		if c.MongoURI == "" {
			return errors.New("MONGODB_URI must be provided")
		}
	default:
		return fmt.Errorf("unknown SLOT_BACKEND %q", c.SlotBackend)
	}

	if c.SummaryCron != "" && len(c.SummaryChats) == 0 {
		return errors.New("SUMMARY_CHAT_IDS must be provided when SUMMARY_CRON is set")
	}

	return nil
}

func parseChatIDs(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid chat id %q in SUMMARY_CHAT_IDS: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
