package repository

import (
	"context"
	"errors"
)

// ErrQuotaExceeded возвращается, когда запись не помещается в хранилище
var ErrQuotaExceeded = errors.New("slot quota exceeded")

// Slot хранит именованные ячейки долговременного хранилища.
// Каждая ячейка хранит сериализованный снимок целиком.
type Slot interface {
	// Get возвращает значение ячейки; ok == false, если ячейка пуста
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set перезаписывает ячейку целиком
	Set(ctx context.Context, key, value string) error
}
