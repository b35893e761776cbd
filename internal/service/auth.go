package service

import (
	"context"
	"errors"

	"github.com/bookworm/book-inventory/internal/hash"
	"github.com/bookworm/book-inventory/internal/logging"
	"github.com/bookworm/book-inventory/internal/models"
	"github.com/bookworm/book-inventory/internal/repo"
	"github.com/bookworm/book-inventory/internal/tokens"
)

// ErrInvalidCredentials is returned for an unknown email and for a
// wrong password alike, so a caller cannot tell which one failed.
var ErrInvalidCredentials = errors.New("invalid email or password")

// UserDirectory is the account storage the flows depend on.
// Implementations report a miss with repo.ErrNotFound and a
// uniqueness conflict with repo.ErrUserExists.
type UserDirectory interface {
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	CreateUser(ctx context.Context, u *models.User) error
	UpdateUser(ctx context.Context, u *models.User) error
}

type AuthService struct {
	Users  UserDirectory
	Tokens *tokens.Service
}

type AuthResult struct {
	User         *models.User
	AccessToken  string
	RefreshToken string
}

func (s *AuthService) Register(ctx context.Context, email, password, name string) (*AuthResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	_, err := s.Users.FindUserByEmail(ctx, email)
	if err == nil {
		l.Warn("register_conflict", "reason", "email taken")
		return nil, repo.ErrUserExists
	}
	if !errors.Is(err, repo.ErrNotFound) {
		l.Error("register_failed", "error", err)
		return nil, err
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("register_failed", "reason", "cannot hash password", "error", err)
		return nil, err
	}

	user := &models.User{
		Email:        email,
		Name:         name,
		PasswordHash: pwHash,
		Role:         models.RoleUser,
	}

	// The pre-check above is advisory; the store's unique constraint
	// decides a concurrent-registration race.
	if err := s.Users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repo.ErrUserExists) {
			l.Warn("register_conflict", "reason", "lost create race")
			return nil, repo.ErrUserExists
		}
		l.Error("register_failed", "error", err)
		return nil, err
	}

	return s.issuePair(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	user, err := s.Users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			l.Warn("login_failed", "reason", "unknown email")
			return nil, ErrInvalidCredentials
		}
		l.Error("login_failed", "error", err)
		return nil, err
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login_failed", "reason", "wrong password")
		return nil, ErrInvalidCredentials
	}

	return s.issuePair(ctx, user)
}

// Refresh mints a new access token from a valid refresh token. The
// refresh token itself is not rotated.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.Tokens.VerifyRefresh(refreshToken)
	if err != nil {
		logging.FromContext(ctx).Warn("refresh_failed", "svc", "auth.refresh", "error", err)
		return "", tokens.ErrInvalidToken
	}
	return s.Tokens.IssueAccess(claims.Subject)
}

func (s *AuthService) issuePair(ctx context.Context, user *models.User) (*AuthResult, error) {
	l := logging.FromContext(ctx)

	access, err := s.Tokens.IssueAccess(user.ID)
	if err != nil {
		l.Error("token_issue_failed", "kind", "access", "error", err)
		return nil, err
	}
	refresh, err := s.Tokens.IssueRefresh(user.ID)
	if err != nil {
		l.Error("token_issue_failed", "kind", "refresh", "error", err)
		return nil, err
	}

	return &AuthResult{User: user, AccessToken: access, RefreshToken: refresh}, nil
}
