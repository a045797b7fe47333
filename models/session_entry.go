package models

import "time"

// SessionEntry 会话键值（数据库会话存储），每个会话的每个键一行
type SessionEntry struct {
	SessionID string    `gorm:"primaryKey;size:64"`
	Key       string    `gorm:"primaryKey;size:32"`
	Value     string    `gorm:"type:text"`
	ExpiresAt time.Time `gorm:"index;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName 设置表名
func (SessionEntry) TableName() string {
	return "session_entries"
}
