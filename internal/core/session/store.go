package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNoSession 令牌不存在或已过期
var ErrNoSession = errors.New("session not found")

// Store 会话 KV 抽象，生产走 redis，测试用内存实现
type Store interface {
	Get(ctx context.Context, token string) ([]byte, error)
	Set(ctx context.Context, token string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, token string) error
}

const keyPrefix = "session:"

type RedisStore struct{ rdb *redis.Client }

func NewRedisStore(rdb *redis.Client) *RedisStore { return &RedisStore{rdb: rdb} }

func (s *RedisStore) Get(ctx context.Context, token string) ([]byte, error) {
	b, err := s.rdb.Get(ctx, keyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoSession
	}
	return b, err
}

func (s *RedisStore) Set(ctx context.Context, token string, value []byte, ttl time.Duration) error {
	return s.rdb.Set(ctx, keyPrefix+token, value, ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, keyPrefix+token).Err()
}
