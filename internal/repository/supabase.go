package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/supabase-community/supabase-go"
)

const slotsTable = "slots"

type slotRow struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SupabaseSlot хранит ячейки в таблице slots (key, value, updated_at)
type SupabaseSlot struct {
	client *supabase.Client
}

func NewSupabaseSlot(url, key string) (*SupabaseSlot, error) {
	client, err := supabase.NewClient(url, key, &supabase.ClientOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}

	return &SupabaseSlot{
		client: client,
	}, nil
}

func (r *SupabaseSlot) Get(ctx context.Context, key string) (string, bool, error) {
	data, _, err := r.client.From(slotsTable).
		Select("*", "", false).
		Eq("key", key).
		Execute()
	if err != nil {
		return "", false, fmt.Errorf("failed to read slot %s: %w", key, err)
	}

	var rows []slotRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return "", false, fmt.Errorf("failed to parse slot %s: %w", key, err)
	}
	if len(rows) == 0 {
		return "", false, nil
	}
	return rows[0].Value, true, nil
}

func (r *SupabaseSlot) Set(ctx context.Context, key, value string) error {
	row := slotRow{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}

	// upsert по первичному ключу key
	_, _, err := r.client.From(slotsTable).Insert(row, true, "key", "minimal", "").Execute()
	if err != nil {
		return fmt.Errorf("failed to write slot %s: %w", key, err)
	}
	return nil
}
