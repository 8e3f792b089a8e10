package auth

import (
	"testing"
	"time"

	"github.com/ckobasti77/alati-sub000/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(expiration time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars-long",
		AccessTokenExpiration: expiration,
		Issuer:                "alati-backend-test",
	})
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	service := newTestService(time.Hour)
	userID := uuid.New()

	token, expiresAt, err := service.GenerateToken(userID, "gazda", []string{"alati", "sub000"})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "gazda", claims.Username)
	assert.Equal(t, "alati-backend-test", claims.Issuer)
	assert.True(t, claims.HasScope("alati"))
	assert.True(t, claims.HasScope("sub000"))
	assert.False(t, claims.HasScope("other"))

	parsed, err := claims.GetUserUUID()
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestJWTService_ValidateExpiredToken(t *testing.T) {
	service := newTestService(-time.Minute)

	token, _, err := service.GenerateToken(uuid.New(), "gazda", nil)
	require.NoError(t, err)

	_, err = service.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTService_ValidateWrongSecret(t *testing.T) {
	service := newTestService(time.Hour)
	other := NewJWTService(config.JWTConfig{
		Secret:                "another-secret-key-also-32-chars-xx",
		AccessTokenExpiration: time.Hour,
		Issuer:                "alati-backend-test",
	})

	token, _, err := service.GenerateToken(uuid.New(), "gazda", nil)
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_ValidateGarbage(t *testing.T) {
	service := newTestService(time.Hour)

	_, err := service.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
