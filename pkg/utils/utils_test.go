package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	h, err := HashPassword("secret1")
	require.NoError(t, err)
	require.NotEqual(t, "secret1", h)

	assert.True(t, CheckPassword("secret1", h))
	assert.False(t, CheckPassword("wrong", h))
}

func TestNewToken(t *testing.T) {
	a, err := NewToken()
	require.NoError(t, err)
	b, err := NewToken()
	require.NoError(t, err)

	assert.Len(t, a, 64) // 32 bytes hex-encoded
	assert.NotEqual(t, a, b)
}
