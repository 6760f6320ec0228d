package utils

import (
	"testing"

	"github.com/gameonmart/GameOnMart/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Secret123!")
	require.NoError(t, err)
	assert.NotEqual(t, "Secret123!", hash)

	assert.True(t, CheckPassword("Secret123!", hash))
	assert.False(t, CheckPassword("wrong", hash))
}

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "test-access-secret")
	t.Setenv("JWT_REFRESH_SECRET", "test-refresh-secret")

	user := &models.User{ID: uuid.New(), Email: "player@example.com", Role: models.RoleUser}

	tokens, err := GenerateTokens(user)
	require.NoError(t, err)
	require.NotEmpty(t, tokens.AccessToken)
	require.NotEmpty(t, tokens.RefreshToken)
	assert.NotEqual(t, tokens.AccessToken, tokens.RefreshToken)

	userID, err := ValidateAccessToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), userID)

	userID, err = ValidateRefreshToken(tokens.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), userID)
}

func TestTokenSecretsNotInterchangeable(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "test-access-secret")
	t.Setenv("JWT_REFRESH_SECRET", "test-refresh-secret")

	user := &models.User{ID: uuid.New(), Email: "player@example.com", Role: models.RoleUser}

	tokens, err := GenerateTokens(user)
	require.NoError(t, err)

	// a refresh token must not pass access validation and vice versa
	_, err = ValidateAccessToken(tokens.RefreshToken)
	assert.Error(t, err)

	_, err = ValidateRefreshToken(tokens.AccessToken)
	assert.Error(t, err)
}

func TestValidateAccessTokenRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_ACCESS_SECRET", "test-access-secret")

	_, err := ValidateAccessToken("not-a-token")
	assert.Error(t, err)
}
