package model

import (
	"fmt"
	"time"
)

// Entry описывает запись, которую умеет хранить store.
// Stamp и Toggle меняют запись, поэтому реализуются на указателе.
type Entry interface {
	Identity() string
	Label() string
	Validate() error
	Stamp(id string, createdAt time.Time)
	Toggle(field string) bool
}

// FieldError описывает невалидное поле записи
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}
