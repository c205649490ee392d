package service

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/ivanoskov/tracker_bot/internal/model"
	"github.com/ivanoskov/tracker_bot/internal/repository"
	"github.com/ivanoskov/tracker_bot/internal/store"
)

// Session объединяет списки одного чата
type Session struct {
	ChatID   int64
	Todos    *TodoList
	Expenses *ExpenseTracker
}

// Registry открывает и хранит сессии чатов. Все обращения к спискам идут
// через WithSession под одним мьютексом, так что у каждой ячейки один
// владелец.
type Registry struct {
	mu        sync.Mutex
	slot      repository.Slot
	money     *Money
	logger    *zap.Logger
	storeOpts []store.Option
	sessions  map[int64]*Session
}

func NewRegistry(slot repository.Slot, money *Money, logger *zap.Logger, opts ...store.Option) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		slot:      slot,
		money:     money,
		logger:    logger,
		storeOpts: append(slices.Clone(opts), store.WithLogger(logger.Named("store"))),
		sessions:  make(map[int64]*Session),
	}
}

// TasksKey и ExpensesKey возвращают ключи ячеек чата
func TasksKey(chatID int64) string { return fmt.Sprintf("tasks:%d", chatID) }

func ExpensesKey(chatID int64) string { return fmt.Sprintf("expenses:%d", chatID) }

// WithSession вызывает fn с сессией чата, открывая и гидратируя ее при
// первом обращении. Если ячейки не удалось прочитать, сессия не
// запоминается и следующий вызов пробует снова.
func (r *Registry) WithSession(ctx context.Context, chatID int64, fn func(*Session) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, err := r.open(ctx, chatID)
	if err != nil {
		return err
	}
	return fn(sess)
}

// ChatIDs возвращает чаты с открытыми сессиями
func (r *Registry) ChatIDs() []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]int64, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (r *Registry) open(ctx context.Context, chatID int64) (*Session, error) {
	if sess, ok := r.sessions[chatID]; ok {
		return sess, nil
	}

	tasks := store.New[model.Task](r.slot, TasksKey(chatID), r.storeOpts...)
	if _, err := tasks.Hydrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to hydrate tasks of chat %d: %w", chatID, err)
	}

	expenses := store.New[model.Expense](r.slot, ExpensesKey(chatID), r.storeOpts...)
	if _, err := expenses.Hydrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to hydrate expenses of chat %d: %w", chatID, err)
	}

	log := r.logger.With(zap.Int64("chat_id", chatID))
	sess := &Session{
		ChatID:   chatID,
		Todos:    NewTodoList(tasks, log.Named("todo")),
		Expenses: NewExpenseTracker(expenses, r.money, log.Named("expenses")),
	}
	r.sessions[chatID] = sess

	log.Info("session opened",
		zap.Int("tasks", tasks.Len()),
		zap.Int("expenses", expenses.Len()))
	return sess, nil
}
