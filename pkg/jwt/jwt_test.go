package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateParse_RoundTrip(t *testing.T) {
	tok, err := Generate("secret", "ops", "operator", "manufacturing-dashboard", 5)
	require.NoError(t, err)

	claims, err := Parse("secret", tok)
	require.NoError(t, err)
	assert.Equal(t, "ops", claims.Subject)
	assert.Equal(t, "operator", claims.Role)
	assert.Equal(t, "manufacturing-dashboard", claims.Issuer)
}

func TestParse_Rejects(t *testing.T) {
	tok, err := Generate("secret", "ops", "operator", "x", 5)
	require.NoError(t, err)

	_, err = Parse("other", tok)
	assert.Error(t, err, "wrong secret")

	expired, err := Generate("secret", "ops", "operator", "x", -5)
	require.NoError(t, err)
	_, err = Parse("secret", expired)
	assert.Error(t, err, "expired")

	_, err = Parse("", tok)
	assert.Error(t, err)
}
