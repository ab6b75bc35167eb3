package utils_test

import (
	"testing"

	"event-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	userID := uuid.New()

	token, expiresAt, err := utils.GenerateAccessToken("secret", userID, "admin", 2)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.False(t, expiresAt.IsZero())

	parsedID, role, err := utils.ParseAccessToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, userID, parsedID)
	assert.Equal(t, "admin", role)
}

func TestParseAccessTokenRejectsWrongSecret(t *testing.T) {
	token, _, err := utils.GenerateAccessToken("secret-a", uuid.New(), "user", 1)
	require.NoError(t, err)

	_, _, err = utils.ParseAccessToken("secret-b", token)
	assert.ErrorIs(t, err, utils.ErrInvalidToken)
}

func TestParseAccessTokenRejectsGarbage(t *testing.T) {
	_, _, err := utils.ParseAccessToken("secret", "not.a.token")
	assert.ErrorIs(t, err, utils.ErrInvalidToken)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := utils.HashPassword("kata-sandi-rahasia")
	require.NoError(t, err)
	assert.NotEqual(t, "kata-sandi-rahasia", hash)

	assert.True(t, utils.CheckPasswordHash("kata-sandi-rahasia", hash))
	assert.False(t, utils.CheckPasswordHash("tebakan", hash))
}
