package repository

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySlot_GetSet(t *testing.T) {
	ctx := context.Background()
	slot := NewMemorySlot()

	_, ok, err := slot.Get(ctx, "tasks")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, slot.Set(ctx, "tasks", "[]"))
	require.NoError(t, slot.Set(ctx, "tasks", `[{"id":"1"}]`))

	value, ok, err := slot.Get(ctx, "tasks")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"1"}]`, value)
}

func TestMemorySlot_Quota(t *testing.T) {
	ctx := context.Background()
	slot := NewMemorySlot(WithQuota(20))

	require.NoError(t, slot.Set(ctx, "a", strings.Repeat("x", 10)))

	err := slot.Set(ctx, "b", strings.Repeat("y", 10))
	assert.ErrorIs(t, err, ErrQuotaExceeded)

	_, ok, err := slot.Get(ctx, "b")
	require.NoError(t, err)
	assert.False(t, ok, "rejected write must not be stored")

	// перезапись той же ячейки не считает старое значение
	require.NoError(t, slot.Set(ctx, "a", strings.Repeat("z", 19)))
}
