package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/bookworm/book-inventory/internal/logging"
	"github.com/bookworm/book-inventory/internal/models"
	"github.com/bookworm/book-inventory/internal/tokens"
)

const CtxUser = "user"

// UserResolver is the slice of the account directory the gate needs.
type UserResolver interface {
	FindUserByID(ctx context.Context, id string) (*models.User, error)
}

// Gate authorizes requests carrying a bearer access token. Every
// failure branch answers 401 with a generic message; only the logs
// say what actually went wrong. A token whose subject no longer
// exists is reported exactly like a bad signature.
type Gate struct {
	Tokens *tokens.Service
	Users  UserResolver
}

func NewGate(tokens *tokens.Service, users UserResolver) *Gate {
	return &Gate{Tokens: tokens, Users: users}
}

func (g *Gate) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		l := logging.FromContext(ctx).With("middleware", "require_auth")

		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			l.Warn("auth_rejected", "status", 401, "reason", "missing bearer token")
			return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized: No token provided")
		}

		claims, err := g.Tokens.VerifyAccess(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			l.Warn("auth_rejected", "status", 401, "reason", "invalid or expired token")
			return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized: Invalid token")
		}

		user, err := g.Users.FindUserByID(ctx, claims.Subject)
		if err != nil {
			l.Warn("auth_rejected", "status", 401, "reason", "subject not found", "sub", claims.Subject)
			return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized: Invalid token")
		}

		c.Set(CtxUser, user)
		return next(c)
	}
}
