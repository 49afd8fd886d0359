package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/xiebiao/bookshelf/internal/domain/user"
	"github.com/xiebiao/bookshelf/pkg/circuitbreaker"
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
	"github.com/xiebiao/bookshelf/pkg/logger"
)

const blacklistPrefix = "bookshelf:blacklist:"

// NewTokenBlacklist client为nil时返回进程内实现
func NewTokenBlacklist(client *redis.Client) user.TokenBlacklist {
	if client == nil {
		return NewMemoryBlacklist()
	}
	return &redisBlacklist{client: client, breaker: newBreaker()}
}

// redisBlacklist Token黑名单
// Key: bookshelf:blacklist:{sha256(token)}，TTL与Token剩余有效期一致
// Redis连续故障时熔断，认证请求快速失败而不是逐个等待超时
type redisBlacklist struct {
	client  *redis.Client
	breaker *circuitbreaker.Breaker
}

func newBreaker() *circuitbreaker.Breaker {
	return circuitbreaker.New("redis_blacklist", circuitbreaker.Config{
		FailureThreshold: 5,
		OpenTimeout:      15 * time.Second,
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			logger.L().Warn("熔断器状态变化",
				zap.String("name", name),
				zap.Stringer("from", from),
				zap.Stringer("to", to),
			)
		},
	})
}

func blacklistKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return blacklistPrefix + hex.EncodeToString(sum[:])
}

func (b *redisBlacklist) Add(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	err := b.breaker.Execute(func() error {
		return b.client.Set(ctx, blacklistKey(token), "1", ttl).Err()
	})
	if err != nil {
		return redisError(err, "加入黑名单失败")
	}
	return nil
}

func (b *redisBlacklist) Contains(ctx context.Context, token string) (bool, error) {
	var n int64
	err := b.breaker.Execute(func() error {
		var err error
		n, err = b.client.Exists(ctx, blacklistKey(token)).Result()
		return err
	})
	if err != nil {
		return false, redisError(err, "查询黑名单失败")
	}
	return n > 0, nil
}

func redisError(err error, message string) error {
	return &apperrors.AppError{Code: apperrors.ErrCodeRedisError, Message: message, Err: err}
}

// MemoryBlacklist 进程内黑名单（未启用Redis时使用，重启后失效）
type MemoryBlacklist struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

func NewMemoryBlacklist() *MemoryBlacklist {
	return &MemoryBlacklist{entries: make(map[string]time.Time), now: time.Now}
}

func (m *MemoryBlacklist) Add(_ context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	// 顺带清理已过期的条目
	for k, exp := range m.entries {
		if !exp.After(now) {
			delete(m.entries, k)
		}
	}
	m.entries[token] = now.Add(ttl)
	return nil
}

func (m *MemoryBlacklist) Contains(_ context.Context, token string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	exp, ok := m.entries[token]
	if !ok {
		return false, nil
	}
	if !exp.After(m.now()) {
		delete(m.entries, token)
		return false, nil
	}
	return true, nil
}
