package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/bookworm/book-inventory/internal/models"
	"github.com/bookworm/book-inventory/internal/repo"
	"github.com/bookworm/book-inventory/internal/tokens"
)

const testRootSecret = "test_secret"

func newGate(t *testing.T) (*Gate, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Book{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return NewGate(tokens.NewService(testRootSecret), &repo.GormRepo{DB: db}), db
}

func seedUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	user := &models.User{
		ID:           "user-1",
		Email:        "a@x.com",
		PasswordHash: "irrelevant",
		Role:         models.RoleUser,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func runGate(g *Gate, header string) (*echo.HTTPError, echo.Context) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/books", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	err := g.RequireAuth(next)(c)
	if err == nil {
		return nil, c
	}
	return err.(*echo.HTTPError), c
}

// expiredAccessToken signs a token with the real access secret but an
// expiry in the past.
func expiredAccessToken(t *testing.T, sub string) string {
	t.Helper()

	claims := jwt.RegisteredClaims{
		Subject:   sub,
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-30 * time.Minute)),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testRootSecret))
	require.NoError(t, err)
	return raw
}

func TestRequireAuthSuccess(t *testing.T) {
	g, db := newGate(t)
	user := seedUser(t, db)

	access, err := g.Tokens.IssueAccess(user.ID)
	require.NoError(t, err)

	he, c := runGate(g, "Bearer "+access)
	require.Nil(t, he)

	got, ok := c.Get(CtxUser).(*models.User)
	require.True(t, ok, "expected user in context")
	require.Equal(t, user.ID, got.ID)
	require.Equal(t, user.Email, got.Email)
}

func TestRequireAuthRejections(t *testing.T) {
	g, db := newGate(t)
	user := seedUser(t, db)

	access, err := g.Tokens.IssueAccess(user.ID)
	require.NoError(t, err)

	refresh, err := g.Tokens.IssueRefresh(user.ID)
	require.NoError(t, err)

	orphan, err := g.Tokens.IssueAccess("no-such-user")
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"malformed header", "Token " + access},
		{"bare token", access},
		{"garbage token", "Bearer garbage"},
		{"expired token", "Bearer " + expiredAccessToken(t, user.ID)},
		{"refresh token on access route", "Bearer " + refresh},
		{"deleted account", "Bearer " + orphan},
	}

	var messages []any
	for _, tc := range cases {
		he, c := runGate(g, tc.header)
		require.NotNil(t, he, "%s: expected rejection", tc.name)
		require.Equal(t, http.StatusUnauthorized, he.Code, tc.name)
		require.Nil(t, c.Get(CtxUser), "%s: no user should be attached", tc.name)
		messages = append(messages, he.Message)
	}

	// the invalid-token branches must not reveal which check failed
	for _, msg := range messages[3:] {
		require.Equal(t, messages[3], msg)
	}
}

func TestRequireAuthDeletedAfterIssue(t *testing.T) {
	g, db := newGate(t)
	user := seedUser(t, db)

	access, err := g.Tokens.IssueAccess(user.ID)
	require.NoError(t, err)

	require.NoError(t, db.Delete(&models.User{}, "id = ?", user.ID).Error)

	he, _ := runGate(g, "Bearer "+access)
	require.NotNil(t, he)
	require.Equal(t, http.StatusUnauthorized, he.Code)
}
