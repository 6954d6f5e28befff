package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("secret123", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.True(t, VerifyPassword(hash, "secret123"))
	assert.False(t, VerifyPassword(hash, "secret124"))
	assert.False(t, VerifyPassword("not-a-hash", "secret123"))
}

func TestHashPasswordCostFallback(t *testing.T) {
	hash, err := HashPassword("secret123", 0)
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}
