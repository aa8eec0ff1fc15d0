package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/bookstore-backend/pkg/errors"
)

func TestManager_GenerateAndParse(t *testing.T) {
	m := NewManager("test-secret", 2*time.Hour, 24*time.Hour)

	pair, err := m.GenerateToken(7, "reader@example.com", "reader")
	require.NoError(t, err)
	assert.Equal(t, int64(7200), pair.ExpiresIn)

	claims, err := m.ParseToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "reader@example.com", claims.Email)
	assert.Equal(t, TokenTypeAccess, claims.Type)

	t.Run("Refresh Token不能当Access Token用", func(t *testing.T) {
		_, err := m.ParseToken(pair.RefreshToken)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("刷新Access Token", func(t *testing.T) {
		token, rc, err := m.RefreshAccessToken(pair.RefreshToken, "reader@example.com", "reader")
		require.NoError(t, err)
		assert.Equal(t, uint(7), rc.UserID)

		c, err := m.ParseToken(token)
		require.NoError(t, err)
		assert.Equal(t, "reader", c.Nickname)
	})
}

func TestManager_Expired(t *testing.T) {
	m := NewManager("test-secret", time.Minute, time.Hour)
	pair, err := m.GenerateToken(1, "a@b.com", "ab")
	require.NoError(t, err)

	m.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = m.ParseToken(pair.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestManager_WrongSecret(t *testing.T) {
	pair, err := NewManager("secret-a", time.Hour, time.Hour).GenerateToken(1, "a@b.com", "ab")
	require.NoError(t, err)

	_, err = NewManager("secret-b", time.Hour, time.Hour).ParseToken(pair.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	_, err = NewManager("secret-a", time.Hour, time.Hour).ParseToken("not-a-token")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}
