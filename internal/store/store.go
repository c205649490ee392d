package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ivanoskov/tracker_bot/internal/model"
	"github.com/ivanoskov/tracker_bot/internal/repository"
)

// Store - сохраняемый список записей типа T. PT - это *T, на нем
// определены изменяющие методы model.Entry.
type Store[T any, PT interface {
	*T
	model.Entry
}] struct {
	slot     repository.Slot
	key      string
	records  []T
	hydrated bool

	now    func() time.Time
	newID  func() string
	logger *zap.Logger
}

// Option настраивает Store
type Option func(*options)

type options struct {
	now    func() time.Time
	newID  func() string
	logger *zap.Logger
}

// WithClock подменяет источник времени для created_at
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithIDGenerator подменяет генератор ID (по умолчанию uuid)
func WithIDGenerator(newID func() string) Option {
	return func(o *options) { o.newID = newID }
}

// WithLogger задает логгер событий гидратации и записи
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// New создает пустое хранилище для ключа key. Перед работой нужен Hydrate.
func New[T any, PT interface {
	*T
	model.Entry
}](slot repository.Slot, key string, opts ...Option) *Store[T, PT] {
	o := options{
		now:    time.Now,
		newID:  uuid.NewString,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Store[T, PT]{
		slot:    slot,
		key:     key,
		records: []T{},
		now:     o.now,
		newID:   o.newID,
		logger:  o.logger.With(zap.String("slot", key)),
	}
}

// Hydrate загружает список из ячейки. Отсутствующее или испорченное
// значение дает пустой список без ошибки. Ошибка чтения возвращается как
// *HydrationError, и хранилище остается негидратированным.
func (s *Store[T, PT]) Hydrate(ctx context.Context) ([]T, error) {
	if s.hydrated {
		return nil, ErrAlreadyHydrated
	}

	raw, ok, err := s.slot.Get(ctx, s.key)
	if err != nil {
		s.logger.Warn("slot read failed", zap.Error(err))
		return nil, &HydrationError{Key: s.key, Err: err}
	}

	records, err := decode[T](raw, ok)
	if err != nil {
		s.logger.Warn("starting with empty list", zap.Error(err))
		records = []T{}
	}
	s.records = records
	s.hydrated = true

	s.logger.Debug("hydrated", zap.Int("records", len(s.records)))
	return s.Snapshot(), nil
}

func decode[T any](raw string, ok bool) ([]T, error) {
	if !ok || strings.TrimSpace(raw) == "" {
		return []T{}, nil
	}

	var records []T
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if records == nil {
		// "null" в ячейке
		records = []T{}
	}
	return records, nil
}

// Add проверяет запись, присваивает ей ID и время создания, добавляет в
// конец и сохраняет список. Запись возвращается и при ошибке записи.
func (s *Store[T, PT]) Add(ctx context.Context, payload T) (T, error) {
	var zero T
	if !s.hydrated {
		return zero, ErrNotHydrated
	}

	entry := PT(&payload)
	if strings.TrimSpace(entry.Label()) == "" {
		return zero, &ValidationError{Field: "description", Reason: "must not be empty"}
	}
	if err := entry.Validate(); err != nil {
		return zero, toValidationError(err)
	}

	entry.Stamp(s.newID(), s.now())
	s.records = append(s.records, payload)

	return payload, s.persist(ctx)
}

// Remove удаляет запись с id. Неизвестный id игнорируется.
func (s *Store[T, PT]) Remove(ctx context.Context, id string) error {
	if !s.hydrated {
		return ErrNotHydrated
	}

	s.records = slices.DeleteFunc(s.records, func(r T) bool {
		return PT(&r).Identity() == id
	})
	return s.persist(ctx)
}

// Toggle переключает булево поле field у записи с id. Неизвестный id
// игнорируется, неизвестное поле дает ValidationError.
func (s *Store[T, PT]) Toggle(ctx context.Context, id, field string) error {
	if !s.hydrated {
		return ErrNotHydrated
	}

	if i := s.indexOf(id); i >= 0 {
		if !PT(&s.records[i]).Toggle(field) {
			return &ValidationError{Field: field, Reason: "not a toggleable field"}
		}
	}
	return s.persist(ctx)
}

// Snapshot возвращает копию списка в порядке добавления
func (s *Store[T, PT]) Snapshot() []T {
	return slices.Clone(s.records)
}

// Get возвращает копию записи с id
func (s *Store[T, PT]) Get(id string) (T, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.records[i], true
	}
	var zero T
	return zero, false
}

// Len возвращает число записей
func (s *Store[T, PT]) Len() int {
	return len(s.records)
}

// Key возвращает ключ ячейки
func (s *Store[T, PT]) Key() string {
	return s.key
}

func (s *Store[T, PT]) indexOf(id string) int {
	return slices.IndexFunc(s.records, func(r T) bool {
		return PT(&r).Identity() == id
	})
}

func (s *Store[T, PT]) persist(ctx context.Context) error {
	data, err := json.Marshal(s.records)
	if err != nil {
		return &PersistenceError{Key: s.key, Err: err}
	}

	if err := s.slot.Set(ctx, s.key, string(data)); err != nil {
		s.logger.Warn("slot write failed, memory is ahead of storage", zap.Error(err))
		return &PersistenceError{Key: s.key, Err: err}
	}
	return nil
}

func toValidationError(err error) error {
	var fe *model.FieldError
	if errors.As(err, &fe) {
		return &ValidationError{Field: fe.Field, Reason: fe.Reason}
	}
	return &ValidationError{Field: "record", Reason: err.Error()}
}
