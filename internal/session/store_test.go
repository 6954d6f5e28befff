package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndVerifyToken(t *testing.T) {
	token, err := NewToken()
	require.NoError(t, err)
	assert.Len(t, token, 64)

	signed := SignToken("secret", token)
	got, ok := VerifyToken("secret", signed)
	require.True(t, ok)
	assert.Equal(t, token, got)
}

func TestVerifyTokenRejectsTampering(t *testing.T) {
	token, err := NewToken()
	require.NoError(t, err)
	signed := SignToken("secret", token)

	cases := []struct {
		name  string
		value string
	}{
		{"wrong secret", SignToken("other", token)},
		{"truncated signature", signed[:len(signed)-2]},
		{"no separator", token},
		{"empty signature", token + "."},
		{"empty value", ""},
		{"signature moved to another token", "aaaa" + signed[64:]},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := VerifyToken("secret", tc.value)
			assert.False(t, ok)
		})
	}
}
