package tokens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIssueAndVerifyAccess(t *testing.T) {
	svc := NewService("test_secret")

	raw, err := svc.IssueAccess("user-42")
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	claims, err := svc.VerifyAccess(raw)
	require.NoError(t, err)
	require.Equal(t, "user-42", claims.Subject)
	require.NotNil(t, claims.IssuedAt)
	require.NotNil(t, claims.ExpiresAt)
	require.WithinDuration(t, time.Now().Add(AccessTTL), claims.ExpiresAt.Time, time.Minute)
}

func TestIssueAndVerifyRefresh(t *testing.T) {
	svc := NewService("test_secret")

	raw, err := svc.IssueRefresh("user-42")
	require.NoError(t, err)

	claims, err := svc.VerifyRefresh(raw)
	require.NoError(t, err)
	require.Equal(t, "user-42", claims.Subject)
	require.WithinDuration(t, time.Now().Add(RefreshTTL), claims.ExpiresAt.Time, time.Minute)
}

func TestSecretSeparation(t *testing.T) {
	svc := NewService("test_secret")

	access, err := svc.IssueAccess("user-42")
	require.NoError(t, err)
	refresh, err := svc.IssueRefresh("user-42")
	require.NoError(t, err)

	_, err = svc.VerifyRefresh(access)
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.VerifyAccess(refresh)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyExpiredToken(t *testing.T) {
	svc := NewService("test_secret")

	raw, err := sign("user-42", -time.Minute, svc.accessSecret)
	require.NoError(t, err)

	_, err = svc.VerifyAccess(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyGarbage(t *testing.T) {
	svc := NewService("test_secret")

	for _, raw := range []string{"", "garbage", "a.b.c"} {
		_, err := svc.VerifyAccess(raw)
		require.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestDifferentRootsDoNotCrossVerify(t *testing.T) {
	a := NewService("secret_a")
	b := NewService("secret_b")

	raw, err := a.IssueAccess("user-42")
	require.NoError(t, err)

	_, err = b.VerifyAccess(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}
