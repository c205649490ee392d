package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotHydrated возвращают изменения, вызванные до Hydrate
	ErrNotHydrated = errors.New("store is not hydrated")
	// ErrAlreadyHydrated возвращает повторный вызов Hydrate
	ErrAlreadyHydrated = errors.New("store is already hydrated")
)

// ValidationError - входные данные отклонены до какого-либо изменения
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// PersistenceError сообщает о неудачной записи в ячейку. Изменение в памяти
// к этому моменту уже применено и не откатывается.
type PersistenceError struct {
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to persist slot %s: %v", e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// HydrationError - ячейку не удалось прочитать. Хранилище остается
// негидратированным, Hydrate можно вызвать снова.
type HydrationError struct {
	Key string
	Err error
}

func (e *HydrationError) Error() string {
	return fmt.Sprintf("failed to hydrate slot %s: %v", e.Key, e.Err)
}

func (e *HydrationError) Unwrap() error {
	return e.Err
}
