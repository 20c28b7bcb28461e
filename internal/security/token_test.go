package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager(t *testing.T) {
	mgr := NewTokenManager("test-secret", time.Hour, 7*24*time.Hour)

	t.Run("Access token round trip", func(t *testing.T) {
		token, err := mgr.GenerateAccessToken(42, "owner@fleet.example")
		require.NoError(t, err)

		claims, err := mgr.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, int32(42), claims.UserID)
		assert.Equal(t, "owner@fleet.example", claims.Email)
		assert.Equal(t, TokenTypeAccess, claims.Type)
	})

	t.Run("Refresh token carries refresh type", func(t *testing.T) {
		token, err := mgr.GenerateRefreshToken(42, "owner@fleet.example")
		require.NoError(t, err)

		claims, err := mgr.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, TokenTypeRefresh, claims.Type)
	})

	t.Run("Wrong secret is rejected", func(t *testing.T) {
		token, err := mgr.GenerateAccessToken(42, "owner@fleet.example")
		require.NoError(t, err)

		other := NewTokenManager("other-secret", time.Hour, time.Hour)
		_, err = other.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Expired token is rejected", func(t *testing.T) {
		short := NewTokenManager("test-secret", -time.Minute, time.Hour)
		token, err := short.GenerateAccessToken(42, "owner@fleet.example")
		require.NoError(t, err)

		_, err = short.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("Garbage token is rejected", func(t *testing.T) {
		_, err := mgr.ValidateToken("not-a-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
