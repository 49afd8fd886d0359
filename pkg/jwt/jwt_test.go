package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

func newTestManager() *Manager {
	return NewManager("test-secret", 24*time.Hour, 7*24*time.Hour)
}

func TestGenerateAndParse(t *testing.T) {
	m := newTestManager()

	pair, err := m.GenerateToken(42, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(86400), pair.ExpiresIn)

	t.Run("Access Token可以解析", func(t *testing.T) {
		claims, err := m.ParseAccessToken(pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, uint(42), claims.UserID)
		assert.Equal(t, "alice", claims.Username)
		assert.Equal(t, TokenTypeAccess, claims.TokenType)
	})

	t.Run("Refresh Token不能当作Access Token", func(t *testing.T) {
		_, err := m.ParseAccessToken(pair.RefreshToken)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("Access Token不能用于刷新", func(t *testing.T) {
		_, err := m.RefreshAccessToken(pair.AccessToken)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("刷新得到新的Access Token", func(t *testing.T) {
		access, err := m.RefreshAccessToken(pair.RefreshToken)
		require.NoError(t, err)
		claims, err := m.ParseAccessToken(access)
		require.NoError(t, err)
		assert.Equal(t, uint(42), claims.UserID)
	})
}

func TestParseToken_Invalid(t *testing.T) {
	m := newTestManager()

	t.Run("签名密钥不同", func(t *testing.T) {
		other := NewManager("another-secret", time.Hour, time.Hour)
		pair, err := other.GenerateToken(1, "bob")
		require.NoError(t, err)

		_, err = m.ParseToken(pair.AccessToken)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("格式错误", func(t *testing.T) {
		_, err := m.ParseToken("not-a-jwt")
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("已过期", func(t *testing.T) {
		expired := newTestManager()
		expired.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }
		pair, err := expired.GenerateToken(1, "bob")
		require.NoError(t, err)

		_, err = m.ParseAccessToken(pair.AccessToken)
		assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
	})
}
