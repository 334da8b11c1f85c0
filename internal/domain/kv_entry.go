package domain

import "time"

// KVEntry is one local-storage item persisted in the database.
type KVEntry struct {
	Key       string    `gorm:"type:text;primaryKey" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for KVEntry.
func (KVEntry) TableName() string {
	return "kv_entries"
}
