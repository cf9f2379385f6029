package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/tireshop-backend/internal/config"
)

func jwtTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "tireshop-test"},
		JWT: config.JWTConfig{
			Secret:             "jwt-test-secret-at-least-32-chars!!",
			AccessTokenExpiry:  time.Hour,
			RefreshTokenExpiry: 24 * time.Hour,
		},
	}
}

func TestTokenRoundTrip(t *testing.T) {
	m := NewJWTManager(jwtTestConfig())

	token, err := m.GenerateAccessToken(7, "buyer@example.com", true)
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "buyer@example.com", claims.Email)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
}

func TestTokenKindsAreNotInterchangeable(t *testing.T) {
	m := NewJWTManager(jwtTestConfig())

	access, err := m.GenerateAccessToken(7, "buyer@example.com", false)
	require.NoError(t, err)
	refresh, err := m.GenerateRefreshToken(7, "buyer@example.com")
	require.NoError(t, err)

	_, err = m.ValidateRefreshToken(access)
	assert.Error(t, err)

	_, err = m.ValidateAccessToken(refresh)
	assert.Error(t, err)
}

func TestRefreshTokenNeverCarriesAdmin(t *testing.T) {
	m := NewJWTManager(jwtTestConfig())

	refresh, err := m.GenerateRefreshToken(9, "admin@example.com")
	require.NoError(t, err)

	claims, err := m.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.False(t, claims.IsAdmin)
}

func TestValidateRejectsForeignSignature(t *testing.T) {
	m := NewJWTManager(jwtTestConfig())

	other := jwtTestConfig()
	other.JWT.Secret = "a-completely-different-signing-key!!"
	foreign, err := NewJWTManager(other).GenerateAccessToken(7, "buyer@example.com", false)
	require.NoError(t, err)

	_, err = m.ValidateToken(foreign)
	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	assert.Equal(t, "abc.def.ghi", ExtractTokenFromHeader("Bearer abc.def.ghi"))
	assert.Empty(t, ExtractTokenFromHeader("Token abc.def.ghi"))
	assert.Empty(t, ExtractTokenFromHeader(""))
	assert.Empty(t, ExtractTokenFromHeader("Bearer"))
}
