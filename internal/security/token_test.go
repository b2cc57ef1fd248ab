package security

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestTokenManager(t *testing.T) {
	manager := NewTokenManager(testSecret)

	t.Run("RoundTrip", func(t *testing.T) {
		token, err := manager.GenerateToken("uid-1", "admin@test.com", time.Hour)
		assert.NoError(t, err)
		assert.NotEmpty(t, token)

		claims, err := manager.ValidateToken(token)
		assert.NoError(t, err)
		assert.Equal(t, "uid-1", claims.UID)
		assert.Equal(t, "admin@test.com", claims.Email)
	})

	t.Run("Expired", func(t *testing.T) {
		token, err := manager.GenerateToken("uid-1", "admin@test.com", -time.Minute)
		assert.NoError(t, err)

		_, err = manager.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		other := NewTokenManager("ffffffffffffffffffffffffffffffff")
		token, err := other.GenerateToken("uid-1", "", time.Hour)
		assert.NoError(t, err)

		_, err = manager.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := manager.ValidateToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestLocalVerifier(t *testing.T) {
	manager := NewTokenManager(testSecret)
	verifier := NewLocalVerifier(manager)

	token, err := manager.GenerateToken("uid-1", "admin@test.com", time.Hour)
	assert.NoError(t, err)

	identity, err := verifier.Verify(context.Background(), token)
	assert.NoError(t, err)
	assert.Equal(t, "uid-1", identity.UID)
	assert.Equal(t, "admin@test.com", identity.Email)

	_, err = verifier.Verify(context.Background(), "garbage")
	assert.Error(t, err)
}
