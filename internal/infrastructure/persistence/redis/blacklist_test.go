package redis

import (
	"context"
	"os"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
	"github.com/xiebiao/bookshelf/pkg/circuitbreaker"
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

func TestMemoryBlacklist(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	bl := NewMemoryBlacklist()
	bl.now = func() time.Time { return now }

	require.NoError(t, bl.Add(ctx, "token-a", time.Minute))
	require.NoError(t, bl.Add(ctx, "token-b", 0)) // 已过期的Token无需拉黑

	ok, err := bl.Contains(ctx, "token-a")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = bl.Contains(ctx, "token-b")
	require.NoError(t, err)
	assert.False(t, ok)

	now = now.Add(2 * time.Minute)
	ok, err = bl.Contains(ctx, "token-a")
	require.NoError(t, err)
	assert.False(t, ok, "过期后自动移出黑名单")
}

func TestNewTokenBlacklist_FallsBackToMemory(t *testing.T) {
	_, ok := NewTokenBlacklist(nil).(*MemoryBlacklist)
	assert.True(t, ok)

	client, err := NewClient(&config.Config{Redis: config.RedisConfig{Enabled: false}})
	require.NoError(t, err)
	assert.Nil(t, client)
}

// TestRedisBlacklist 需要本地Redis: REDIS_ADDR=127.0.0.1:6379 go test ./...
func TestRedisBlacklist(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("未设置REDIS_ADDR，跳过Redis测试")
	}

	client := goredis.NewClient(&goredis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	bl := NewTokenBlacklist(client)
	token := "token-" + time.Now().Format(time.RFC3339Nano)

	require.NoError(t, bl.Add(ctx, token, time.Minute))
	ok, err := bl.Contains(ctx, token)
	require.NoError(t, err)
	assert.True(t, ok)

	ttl, err := client.TTL(ctx, blacklistKey(token)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	ok, err = bl.Contains(ctx, "never-added")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisBlacklist_BreakerOpensWhenUnreachable(t *testing.T) {
	// 端口1上没有Redis,每次调用都会失败
	client := goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	bl := NewTokenBlacklist(client)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := bl.Contains(ctx, "token")
		require.Error(t, err)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeRedisError))
	}

	_, err := bl.Contains(ctx, "token")
	assert.ErrorIs(t, err, circuitbreaker.ErrOpen)

	err = bl.Add(ctx, "token", time.Minute)
	assert.ErrorIs(t, err, circuitbreaker.ErrOpen)
}
