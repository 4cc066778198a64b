package auth

import (
	"testing"
	"time"

	"synergyblood/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTConfig() *config.JWTConfig {
	return &config.JWTConfig{
		AccessSecret:  "test-access-secret",
		RefreshSecret: "test-refresh-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 168 * time.Hour,
		Issuer:        "synergyblood-test",
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	cfg := testJWTConfig()
	tok, err := GenerateAccessToken(cfg, 42, "donor@example.com")
	require.NoError(t, err)

	claims, err := ParseAccessToken(cfg, tok)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "donor@example.com", claims.Email)
	assert.Equal(t, "synergyblood-test", claims.Issuer)
}

func TestParseAccessTokenRejectsGarbage(t *testing.T) {
	cfg := testJWTConfig()
	_, err := ParseAccessToken(cfg, "not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseAccessTokenRejectsWrongSecret(t *testing.T) {
	cfg := testJWTConfig()
	tok, err := GenerateAccessToken(cfg, 1, "a@b.com")
	require.NoError(t, err)

	other := testJWTConfig()
	other.AccessSecret = "different-secret"
	_, err = ParseAccessToken(other, tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
