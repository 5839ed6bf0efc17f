package security_test

import (
	"testing"
	"time"

	"github.com/ecofinds/ecofinds-api/internal/security"
	"github.com/stretchr/testify/assert"
)

func TestJWTManager_AccessTokenRoundTrip(t *testing.T) {
	m := security.NewJWTManager("test-secret", 15*time.Minute, time.Hour)

	token, err := m.GenerateAccessToken("user-1", "eco@example.com", "ecouser")
	assert.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "eco@example.com", claims.Email)
	assert.Equal(t, "ecouser", claims.Username)
	assert.Equal(t, "ecofinds", claims.Issuer)
}

func TestJWTManager_RefreshTokenRoundTrip(t *testing.T) {
	m := security.NewJWTManager("test-secret", 15*time.Minute, time.Hour)

	token, err := m.GenerateRefreshToken("user-1")
	assert.NoError(t, err)

	userID, err := m.ValidateRefreshToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestJWTManager_RejectsExpiredToken(t *testing.T) {
	m := security.NewJWTManager("test-secret", -time.Minute, time.Hour)

	token, err := m.GenerateAccessToken("user-1", "eco@example.com", "ecouser")
	assert.NoError(t, err)

	_, err = m.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestJWTManager_RejectsWrongSecret(t *testing.T) {
	m := security.NewJWTManager("test-secret", 15*time.Minute, time.Hour)
	other := security.NewJWTManager("different-secret", 15*time.Minute, time.Hour)

	token, err := m.GenerateAccessToken("user-1", "eco@example.com", "ecouser")
	assert.NoError(t, err)

	_, err = other.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestJWTManager_TokenPairExpiry(t *testing.T) {
	m := security.NewJWTManager("test-secret", 15*time.Minute, time.Hour)

	access, refresh, expiresIn, err := m.GenerateTokenPair("user-1", "eco@example.com", "ecouser")
	assert.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.Equal(t, int64(900), expiresIn)
}
