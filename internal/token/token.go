// Package token issues and verifies the signed access and refresh tokens
// that make sessions stateless: a token's validity is a pure function of
// its signature, its expiry and the current time. There is no server-side
// session table and no revocation, so a token stays valid until it expires.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"storeapi/internal/models"
)

// Kind selects which signing key a token is issued and verified under.
// Access and refresh tokens use distinct keys, so presenting a token of the
// wrong kind fails signature verification.
type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

// Verification failure sentinels, checked in this order: a token that cannot
// be parsed is Malformed, a parseable token with a bad signature is Invalid,
// and only a well-signed token past its expiry is Expired.
var (
	ErrMalformed = errors.New("token malformed")
	ErrInvalid   = errors.New("token invalid")
	ErrExpired   = errors.New("token expired")
)

// Claims carried by issued tokens. Refresh tokens omit the role; it is
// re-read from the user record when a new access token is issued.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Service signs and verifies tokens with per-kind HMAC keys and an injected
// clock, so expiry is testable without real time passing.
type Service struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

func NewService(accessSecret, refreshSecret []byte, accessTTL, refreshTTL time.Duration) *Service {
	return &Service{
		accessSecret:  accessSecret,
		refreshSecret: refreshSecret,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           time.Now,
	}
}

// WithClock replaces the service's time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// IssueAccess signs a short-lived access token carrying the user's identity
// and role.
func (s *Service) IssueAccess(user *models.User) (string, error) {
	return s.issue(user.UserID, user.Role, KindAccess)
}

// IssueRefresh signs a longer-lived refresh token carrying only the user id.
func (s *Service) IssueRefresh(user *models.User) (string, error) {
	return s.issue(user.UserID, "", KindRefresh)
}

func (s *Service) issue(userID, role string, kind Kind) (string, error) {
	now := s.now()
	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl(kind))),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(s.secret(kind))
}

// Verify parses the token under the given kind's key and returns its claims.
// Failures map to ErrMalformed, ErrInvalid or ErrExpired; any mutation of a
// signed claim surfaces as ErrInvalid, as does a token of the wrong kind.
func (s *Service) Verify(tokenString string, kind Kind) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			return s.secret(kind), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrMalformed
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
			return nil, ErrInvalid
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpired
		default:
			return nil, ErrInvalid
		}
	}

	if !tok.Valid || claims.UserID == "" {
		return nil, ErrInvalid
	}

	return claims, nil
}

func (s *Service) secret(kind Kind) []byte {
	if kind == KindRefresh {
		return s.refreshSecret
	}
	return s.accessSecret
}

func (s *Service) ttl(kind Kind) time.Duration {
	if kind == KindRefresh {
		return s.refreshTTL
	}
	return s.accessTTL
}
