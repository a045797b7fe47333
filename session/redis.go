package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore 会话以 hash 保存在 Redis，键为 session:<id>
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore 创建 Redis 存储
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, prefix: "session:"}
}

// NewRedisClient 创建客户端并 ping
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("session: redis ping: %w", err)
	}
	return client, nil
}

func (s *RedisStore) key(id string) string {
	return s.prefix + id
}

// Get 读取会话
func (s *RedisStore) Get(ctx context.Context, id string) (Record, error) {
	values, err := s.client.HGetAll(ctx, s.key(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("session: redis get: %w", err)
	}
	if len(values) == 0 {
		return nil, ErrNotFound
	}
	return Record(values), nil
}

// Set 整体替换会话并设置过期时间
func (s *RedisStore) Set(ctx context.Context, id string, rec Record, ttl time.Duration) error {
	key := s.key(id)
	fields := make(map[string]interface{}, len(rec))
	for k, v := range rec {
		fields[k] = v
	}
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		if len(fields) > 0 {
			pipe.HSet(ctx, key, fields)
		}
		if ttl > 0 {
			pipe.Expire(ctx, key, ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("session: redis set: %w", err)
	}
	return nil
}

// Clear 删除会话
func (s *RedisStore) Clear(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("session: redis clear: %w", err)
	}
	return nil
}
