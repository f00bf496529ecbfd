package cryptox_test

import (
	"strings"
	"testing"

	"github.com/clefworks/scorebook/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := cryptox.HashPassword("secret123")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))

	require.NoError(t, cryptox.VerifyPassword("secret123", hash))
	require.ErrorIs(t, cryptox.VerifyPassword("wrong", hash), cryptox.ErrMismatch)
}

func TestHashesAreSalted(t *testing.T) {
	h1, err := cryptox.HashPassword("same-password")
	require.NoError(t, err)
	h2, err := cryptox.HashPassword("same-password")
	require.NoError(t, err)
	require.NotEqual(t, h1, h2)

	require.NoError(t, cryptox.VerifyPassword("same-password", h1))
	require.NoError(t, cryptox.VerifyPassword("same-password", h2))
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	cases := []string{
		"",
		"not-a-hash",
		"$argon2i$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA",
		"$argon2id$v=18$m=65536,t=3,p=2$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=3,p=2$!!$aGFzaA",
	}
	for _, c := range cases {
		require.ErrorIs(t, cryptox.VerifyPassword("whatever", c), cryptox.ErrMismatch, c)
	}
}
