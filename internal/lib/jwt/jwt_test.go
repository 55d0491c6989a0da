package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenRoundTrip(t *testing.T) {
	token, err := NewToken("admin@example.org", "ADMIN", "secret", time.Hour)
	require.NoError(t, err)

	claims, err := Parse(token, "secret")
	require.NoError(t, err)

	assert.Equal(t, "admin@example.org", claims["email"])
	assert.Equal(t, "ADMIN", claims["role"])
}

func TestParse_WrongSecret(t *testing.T) {
	token, err := NewToken("admin@example.org", "ADMIN", "secret", time.Hour)
	require.NoError(t, err)

	_, err = Parse(token, "other-secret")
	assert.Error(t, err)
}

func TestParse_Expired(t *testing.T) {
	token, err := NewToken("admin@example.org", "ADMIN", "secret", -time.Minute)
	require.NoError(t, err)

	_, err = Parse(token, "secret")
	assert.Error(t, err)
}
