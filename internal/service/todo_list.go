package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/ivanoskov/tracker_bot/internal/model"
	"github.com/ivanoskov/tracker_bot/internal/store"
)

// TaskStore - хранилище задач одного чата
type TaskStore = store.Store[model.Task, *model.Task]

// TodoList предоставляет операции над списком дел
type TodoList struct {
	store  *TaskStore
	logger *zap.Logger
}

// NewTodoList создает список дел поверх гидратированного хранилища
func NewTodoList(s *TaskStore, logger *zap.Logger) *TodoList {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TodoList{
		store:  s,
		logger: logger,
	}
}

func (l *TodoList) Add(ctx context.Context, description string) (model.Task, error) {
	task, err := l.store.Add(ctx, model.Task{Description: strings.TrimSpace(description)})
	if err == nil {
		l.logger.Debug("task added", zap.String("id", task.ID))
	}
	return task, err
}

func (l *TodoList) Toggle(ctx context.Context, id string) error {
	return l.store.Toggle(ctx, id, model.FieldCompleted)
}

func (l *TodoList) Remove(ctx context.Context, id string) error {
	return l.store.Remove(ctx, id)
}

func (l *TodoList) Get(id string) (model.Task, bool) {
	return l.store.Get(id)
}

// Tasks возвращает задачи в порядке добавления
func (l *TodoList) Tasks() []model.Task {
	return l.store.Snapshot()
}

// Pending возвращает число невыполненных задач
func (l *TodoList) Pending() int {
	n := 0
	for _, t := range l.store.Snapshot() {
		if !t.Completed {
			n++
		}
	}
	return n
}
