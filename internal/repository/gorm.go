package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// SlotRecord - строка таблицы slots
type SlotRecord struct {
	Key       string `gorm:"primaryKey"`
	Value     string
	UpdatedAt time.Time
}

func (SlotRecord) TableName() string { return "slots" }

// GormSlot хранит ячейки в любой базе, поддерживаемой gorm
type GormSlot struct {
	db *gorm.DB
}

func NewGormSlot(db *gorm.DB) *GormSlot {
	return &GormSlot{db: db}
}

// OpenSQLite открывает файл SQLite и создает таблицу slots при необходимости
func OpenSQLite(path string) (*GormSlot, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite %s: %w", path, err)
	}

	if err := db.AutoMigrate(&SlotRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate slots table: %w", err)
	}

	return NewGormSlot(db), nil
}

func (s *GormSlot) Get(ctx context.Context, key string) (string, bool, error) {
	var record SlotRecord
	// Find вместо First, чтобы gorm не логировал "record not found"
	result := s.db.WithContext(ctx).Where("key = ?", key).Find(&record)
	if result.Error != nil {
		return "", false, fmt.Errorf("failed to read key %s: %w", key, result.Error)
	}
	if result.RowsAffected == 0 {
		return "", false, nil
	}
	return record.Value, true, nil
}

func (s *GormSlot) Set(ctx context.Context, key, value string) error {
	record := SlotRecord{
		Key:   key,
		Value: value,
	}

	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&record)
	if result.Error != nil {
		return fmt.Errorf("failed to write key %s: %w", key, result.Error)
	}
	return nil
}

// Close закрывает соединение с базой
func (s *GormSlot) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
