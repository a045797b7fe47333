package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"ledgerconsole/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// purgeInterval Set 顺带清理过期行的最小间隔
const purgeInterval = 10 * time.Minute

// GormStore 会话保存在数据库 session_entries 表，每个键一行
type GormStore struct {
	db  *gorm.DB
	now func() time.Time

	mu        sync.Mutex
	lastPurge time.Time
}

// NewGormStore 创建数据库存储
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db, now: time.Now}
}

// Get 读取未过期的会话键
func (s *GormStore) Get(ctx context.Context, id string) (Record, error) {
	var rows []models.SessionEntry
	err := s.db.WithContext(ctx).
		Where("session_id = ? AND expires_at > ?", id, s.now()).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("session: db get: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	rec := make(Record, len(rows))
	for _, r := range rows {
		rec[r.Key] = r.Value
	}
	return rec, nil
}

// Set 在事务中整体替换会话
func (s *GormStore) Set(ctx context.Context, id string, rec Record, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	expiresAt := s.now().Add(ttl)
	rows := make([]models.SessionEntry, 0, len(rec))
	for _, k := range Keys {
		v, ok := rec[k]
		if !ok {
			continue
		}
		rows = append(rows, models.SessionEntry{SessionID: id, Key: k, Value: v, ExpiresAt: expiresAt})
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", id).Delete(&models.SessionEntry{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return fmt.Errorf("session: db set: %w", err)
	}
	s.purgeExpired(ctx)
	return nil
}

// purgeExpired 距上次清理超过 purgeInterval 时删除过期行，失败只记录日志
func (s *GormStore) purgeExpired(ctx context.Context) {
	now := s.now()
	s.mu.Lock()
	if !s.lastPurge.IsZero() && now.Sub(s.lastPurge) < purgeInterval {
		s.mu.Unlock()
		return
	}
	s.lastPurge = now
	s.mu.Unlock()

	n, err := s.Purge(ctx)
	if err != nil {
		logrus.WithError(err).Warn("清理过期会话失败")
		return
	}
	if n > 0 {
		logrus.WithField("rows", n).Debug("已清理过期会话")
	}
}

// Clear 删除会话全部键
func (s *GormStore) Clear(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Where("session_id = ?", id).Delete(&models.SessionEntry{}).Error; err != nil {
		return fmt.Errorf("session: db clear: %w", err)
	}
	return nil
}

// Purge 清理已过期的会话键，返回删除的行数
func (s *GormStore) Purge(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).Where("expires_at <= ?", s.now()).Delete(&models.SessionEntry{})
	if res.Error != nil {
		return 0, fmt.Errorf("session: db purge: %w", res.Error)
	}
	return res.RowsAffected, nil
}
