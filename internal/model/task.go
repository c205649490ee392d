package model

import "time"

// FieldCompleted - имя флага выполнения задачи
const FieldCompleted = "completed"

// Task представляет задачу списка дел
type Task struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
}

func (t Task) Identity() string { return t.ID }

func (t Task) Label() string { return t.Description }

func (t Task) Validate() error { return nil }

func (t *Task) Stamp(id string, createdAt time.Time) {
	t.ID = id
	t.CreatedAt = createdAt
}

func (t *Task) Toggle(field string) bool {
	if field != FieldCompleted {
		return false
	}
	t.Completed = !t.Completed
	return true
}
