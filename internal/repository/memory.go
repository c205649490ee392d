package repository

import (
	"context"
	"fmt"
	"sync"
)

// MemorySlot хранит ячейки в памяти процесса.
// Квота считается по сумме длин ключей и значений, как у localStorage.
type MemorySlot struct {
	mu     sync.RWMutex
	values map[string]string
	quota  int
}

// MemoryOption настраивает MemorySlot
type MemoryOption func(*MemorySlot)

// WithQuota ограничивает суммарный размер хранилища в байтах
func WithQuota(bytes int) MemoryOption {
	return func(s *MemorySlot) {
		s.quota = bytes
	}
}

// NewMemorySlot создает пустое хранилище в памяти
func NewMemorySlot(opts ...MemoryOption) *MemorySlot {
	s := &MemorySlot{values: make(map[string]string)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemorySlot) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	return value, ok, nil
}

func (s *MemorySlot) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.quota > 0 {
		size := len(key) + len(value)
		for k, v := range s.values {
			if k != key {
				size += len(k) + len(v)
			}
		}
		if size > s.quota {
			return fmt.Errorf("failed to write key %s: %w", key, ErrQuotaExceeded)
		}
	}

	s.values[key] = value
	return nil
}
