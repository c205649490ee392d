package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("TELEGRAM_TOKEN", "token")
	t.Setenv("SLOT_BACKEND", "")
	t.Setenv("SUMMARY_CRON", "")
	t.Setenv("SUMMARY_CHAT_IDS", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.SlotBackend)
	assert.Equal(t, "tracker.db", cfg.SQLitePath)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "RUB", cfg.Currency)
	assert.Empty(t, cfg.SummaryChats)
}

func TestLoadConfig_SummaryChats(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("TELEGRAM_TOKEN", "token")
	t.Setenv("SLOT_BACKEND", BackendMemory)
	t.Setenv("SUMMARY_CRON", "0 21 * * *")
	t.Setenv("SUMMARY_CHAT_IDS", "10, -20,")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, []int64{10, -20}, cfg.SummaryChats)

	t.Setenv("SUMMARY_CHAT_IDS", "abc")
	_, err = LoadConfig()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"memory", Config{TelegramToken: "t", SlotBackend: BackendMemory}, false},
		{"missing token", Config{SlotBackend: BackendMemory}, true},
		{"supabase without key", Config{TelegramToken: "t", SlotBackend: BackendSupabase, SupabaseURL: "http://x"}, true},
		{"mongodb without uri", Config{TelegramToken: "t", SlotBackend: BackendMongoDB}, true},
		{"unknown backend", Config{TelegramToken: "t", SlotBackend: "redis"}, true},
		{"cron without chats", Config{TelegramToken: "t", SlotBackend: BackendMemory, SummaryCron: "@daily"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// chdir меняет рабочий каталог на время теста (аналог t.Chdir из Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(prev)
	})
}
