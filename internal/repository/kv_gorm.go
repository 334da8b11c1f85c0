package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/s9b/memenem/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormKV stores items as rows of the kv_entries table.
type GormKV struct {
	db *gorm.DB
}

// NewGormKV creates a KV store over an initialized database.
func NewGormKV(db *gorm.DB) *GormKV {
	return &GormKV{db: db}
}

func (r *GormKV) GetItem(ctx context.Context, key string) (string, error) {
	var entry domain.KVEntry
	if err := r.db.WithContext(ctx).First(&entry, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to get %q: %w", key, err)
	}
	return entry.Value, nil
}

// SetItem upserts the value for key.
func (r *GormKV) SetItem(ctx context.Context, key, value string) error {
	entry := &domain.KVEntry{Key: key, Value: value}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(entry).Error
	if err != nil {
		return fmt.Errorf("failed to set %q: %w", key, err)
	}
	return nil
}

func (r *GormKV) RemoveItem(ctx context.Context, key string) error {
	if err := r.db.WithContext(ctx).Delete(&domain.KVEntry{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("failed to remove %q: %w", key, err)
	}
	return nil
}

func (r *GormKV) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	if err := r.db.WithContext(ctx).
		Model(&domain.KVEntry{}).
		Order("key").
		Pluck("key", &keys).Error; err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	return keys, nil
}

func (r *GormKV) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
