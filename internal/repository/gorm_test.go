package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&SlotRecord{})
	require.NoError(t, err)

	return db
}

func TestGormSlot_ReadWrite(t *testing.T) {
	ctx := context.Background()
	slot := NewGormSlot(setupTestDB(t))

	_, ok, err := slot.Get(ctx, "expenses:1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, slot.Set(ctx, "expenses:1", "[]"))

	value, ok, err := slot.Get(ctx, "expenses:1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", value)
}

func TestGormSlot_Overwrite(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	slot := NewGormSlot(db)

	require.NoError(t, slot.Set(ctx, "tasks:1", "[1]"))
	require.NoError(t, slot.Set(ctx, "tasks:1", "[1,2]"))

	value, ok, err := slot.Get(ctx, "tasks:1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[1,2]", value)

	var count int64
	require.NoError(t, db.Model(&SlotRecord{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestOpenSQLite_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "slots.db")

	first, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "tasks:7", `[{"id":"a"}]`))
	require.NoError(t, first.Close())

	second, err := OpenSQLite(path)
	require.NoError(t, err)
	defer second.Close()

	value, ok, err := second.Get(ctx, "tasks:7")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"a"}]`, value)
}
