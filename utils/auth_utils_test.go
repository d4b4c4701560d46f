package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateAccessToken(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
}

func TestParseAccessTokenGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := ParseAccessToken("not-a-token")
	require.Error(t, err)
}

func TestParseAccessTokenWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-one")
	token, err := GenerateAccessToken(7)
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "secret-two")
	_, err = ParseAccessToken(token)
	require.Error(t, err)
}
