package session

import (
	"context"
	"sync"
	"time"
)

type memoryItem struct {
	rec       Record
	expiresAt time.Time
}

func (i memoryItem) expired(now time.Time) bool {
	return !i.expiresAt.IsZero() && !now.Before(i.expiresAt)
}

// MemoryStore 进程内会话存储（开发、测试）
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]memoryItem
	now   func() time.Time
}

// NewMemoryStore 创建内存存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]memoryItem), now: time.Now}
}

// Get 读取会话，过期视为不存在
func (s *MemoryStore) Get(_ context.Context, id string) (Record, error) {
	s.mu.RLock()
	item, ok := s.items[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	if now := s.now(); item.expired(now) {
		s.mu.Lock()
		// 释放读锁期间可能已被 Set 覆盖
		if cur, ok := s.items[id]; ok && cur.expired(now) {
			delete(s.items, id)
		}
		s.mu.Unlock()
		return nil, ErrNotFound
	}
	out := make(Record, len(item.rec))
	for k, v := range item.rec {
		out[k] = v
	}
	return out, nil
}

// Set 写入会话，ttl<=0 表示不过期
func (s *MemoryStore) Set(_ context.Context, id string, rec Record, ttl time.Duration) error {
	cp := make(Record, len(rec))
	for k, v := range rec {
		cp[k] = v
	}
	item := memoryItem{rec: cp}
	if ttl > 0 {
		item.expiresAt = s.now().Add(ttl)
	}
	s.mu.Lock()
	s.items[id] = item
	s.mu.Unlock()
	return nil
}

// Clear 删除会话全部键
func (s *MemoryStore) Clear(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.items, id)
	s.mu.Unlock()
	return nil
}

// Len 当前会话数
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
