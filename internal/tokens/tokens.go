package tokens

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	AccessTTL  = 15 * time.Minute
	RefreshTTL = 7 * 24 * time.Hour
)

// ErrInvalidToken covers every verification failure: bad signature,
// malformed token, wrong signing method, expiry. Callers must not be
// able to tell these apart.
var ErrInvalidToken = errors.New("invalid token")

// Service signs and verifies the access/refresh token pair. Both
// signing keys are derived from one root secret, so a leaked access
// key cannot forge refresh tokens and vice versa. The service holds
// no mutable state and is safe for concurrent use.
type Service struct {
	accessSecret  []byte
	refreshSecret []byte
}

func NewService(rootSecret string) *Service {
	return &Service{
		accessSecret:  []byte(rootSecret),
		refreshSecret: []byte(rootSecret + "_refresh"),
	}
}

func (s *Service) IssueAccess(userID string) (string, error) {
	return sign(userID, AccessTTL, s.accessSecret)
}

func (s *Service) IssueRefresh(userID string) (string, error) {
	return sign(userID, RefreshTTL, s.refreshSecret)
}

func (s *Service) VerifyAccess(raw string) (*jwt.RegisteredClaims, error) {
	return parse(raw, s.accessSecret)
}

func (s *Service) VerifyRefresh(raw string) (*jwt.RegisteredClaims, error) {
	return parse(raw, s.refreshSecret)
}

func sign(sub string, ttl time.Duration, secret []byte) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   sub,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func parse(raw string, secret []byte) (*jwt.RegisteredClaims, error) {
	var claims jwt.RegisteredClaims
	tkn, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}
