package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"faqhub.org/internal/ids"
)

const tokenIssuer = "faqhub"

// TokenKind distinguishes the two token families, each signed with its own
// secret and carrying an independent TTL.
type TokenKind string

const (
	AccessToken  TokenKind = "access"
	RefreshToken TokenKind = "refresh"
)

// Claims are the signed assertions carried by both token kinds.
type Claims struct {
	Role      Role      `json:"role"`
	TokenKind TokenKind `json:"token_kind"`
	jwt.RegisteredClaims
}

// Issuer mints and verifies access and refresh tokens (HS256).
type Issuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

// IssuerOption configures an Issuer.
type IssuerOption func(*Issuer)

// WithIssuerClock overrides the time source, for deterministic expiry tests.
func WithIssuerClock(fn func() time.Time) IssuerOption {
	return func(i *Issuer) {
		if fn != nil {
			i.now = fn
		}
	}
}

// NewIssuer constructs an Issuer. Missing secrets are a construction error;
// the process must not start without them.
func NewIssuer(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration, opts ...IssuerOption) (*Issuer, error) {
	if strings.TrimSpace(accessSecret) == "" || strings.TrimSpace(refreshSecret) == "" {
		return nil, errors.New("auth: token secrets are not configured")
	}
	if accessTTL <= 0 || refreshTTL <= 0 {
		return nil, errors.New("auth: token TTLs must be positive")
	}
	iss := &Issuer{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(iss)
	}
	return iss, nil
}

// AccessTTL reports the configured access token lifetime.
func (i *Issuer) AccessTTL() time.Duration { return i.accessTTL }

// RefreshTTL reports the configured refresh token lifetime.
func (i *Issuer) RefreshTTL() time.Duration { return i.refreshTTL }

// IssueAccess signs a short-lived stateless access token for the identity.
func (i *Issuer) IssueAccess(id Identity) (string, time.Time, error) {
	return i.sign(id, AccessToken, i.accessSecret, i.accessTTL)
}

// IssueRefresh signs a refresh token. The caller is responsible for
// registering it; the signature alone does not make it honored.
func (i *Issuer) IssueRefresh(id Identity) (string, time.Time, error) {
	return i.sign(id, RefreshToken, i.refreshSecret, i.refreshTTL)
}

func (i *Issuer) sign(id Identity, kind TokenKind, secret []byte, ttl time.Duration) (string, time.Time, error) {
	username := strings.TrimSpace(id.Username)
	if username == "" {
		return "", time.Time{}, errors.New("auth: username is required")
	}
	now := i.now().UTC()
	exp := now.Add(ttl)
	claims := Claims{
		Role:      id.Role,
		TokenKind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        ids.New(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

// ParseAccess verifies an access token's signature and expiry and returns
// the embedded identity.
func (i *Issuer) ParseAccess(token string) (Identity, error) {
	return i.parse(token, AccessToken, i.accessSecret)
}

// ParseRefresh verifies a refresh token's signature and expiry. Registry
// membership is checked separately by the Service.
func (i *Issuer) ParseRefresh(token string) (Identity, error) {
	return i.parse(token, RefreshToken, i.refreshSecret)
}

func (i *Issuer) parse(token string, kind TokenKind, secret []byte) (Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Identity{}, ErrUnauthenticated
	}
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrUnauthenticated
		}
		return secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return i.now().UTC() }))
	if err != nil {
		return Identity{}, ErrUnauthenticated
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return Identity{}, ErrUnauthenticated
	}
	if err := validateClaims(claims, kind); err != nil {
		return Identity{}, ErrUnauthenticated
	}
	return Identity{Username: claims.Subject, Role: claims.Role}, nil
}

func validateClaims(claims *Claims, kind TokenKind) error {
	if claims.Issuer != tokenIssuer {
		return fmt.Errorf("unexpected issuer: %s", claims.Issuer)
	}
	if claims.TokenKind != kind {
		return fmt.Errorf("unexpected token kind: %s", claims.TokenKind)
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return errors.New("subject missing")
	}
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		return errors.New("timestamps missing")
	}
	if claims.ExpiresAt.Time.Before(claims.IssuedAt.Time) {
		return errors.New("token expiry precedes issued-at")
	}
	if _, ok := ParseRole(string(claims.Role)); !ok {
		return fmt.Errorf("unknown role: %s", claims.Role)
	}
	return nil
}
