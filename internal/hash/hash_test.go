package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	h, err := HashPassword("longenough1")
	require.NoError(t, err)
	require.NotEmpty(t, h)
	require.NotEqual(t, "longenough1", h)

	require.True(t, CheckPassword(h, "longenough1"))
	require.False(t, CheckPassword(h, "longenough2"))
	require.False(t, CheckPassword(h, ""))
}

func TestHashIsSalted(t *testing.T) {
	h1, err := HashPassword("password")
	require.NoError(t, err)
	h2, err := HashPassword("password")
	require.NoError(t, err)

	require.NotEqual(t, h1, h2)
	require.True(t, CheckPassword(h1, "password"))
	require.True(t, CheckPassword(h2, "password"))
}

func TestCheckPasswordMalformedHash(t *testing.T) {
	require.False(t, CheckPassword("not-a-bcrypt-hash", "password"))
	require.False(t, CheckPassword("", "password"))
}
