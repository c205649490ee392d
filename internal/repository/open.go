package repository

import (
	"context"
	"fmt"

	"github.com/ivanoskov/tracker_bot/internal/config"
)

// Open подключает хранилище, выбранное в конфигурации.
// Возвращенную функцию close нужно вызвать при завершении работы.
func Open(ctx context.Context, cfg *config.Config) (Slot, func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }

	switch cfg.SlotBackend {
	case config.BackendMemory:
		return NewMemorySlot(), noop, nil

	case config.BackendSQLite:
		slot, err := OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return slot, func(context.Context) error { return slot.Close() }, nil

	case config.BackendSupabase:
		slot, err := NewSupabaseSlot(cfg.SupabaseURL, cfg.SupabaseKey)
		if err != nil {
			return nil, nil, err
		}
		return slot, noop, nil

	case config.BackendMongoDB:
		slot, err := NewMongoSlot(ctx, cfg.MongoURI, cfg.MongoDBName)
		if err != nil {
			return nil, nil, err
		}
		return slot, slot.Close, nil
	}

	return nil, nil, fmt.Errorf("unknown slot backend %q", cfg.SlotBackend)
}
