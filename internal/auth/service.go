package auth

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Service ties the credential store, token issuer and refresh registry into
// the login / refresh / logout protocol and the two request gates.
type Service struct {
	store    CredentialStore
	issuer   *Issuer
	registry *Registry
	verifier *PasswordVerifier
}

// ServiceOption configures optional Service behavior.
type ServiceOption func(*Service)

// WithPasswordVerifier replaces the default bounded bcrypt pool.
func WithPasswordVerifier(v *PasswordVerifier) ServiceOption {
	return func(s *Service) {
		if v != nil {
			s.verifier = v
		}
	}
}

// NewService constructs the auth service.
func NewService(store CredentialStore, issuer *Issuer, registry *Registry, opts ...ServiceOption) (*Service, error) {
	if store == nil {
		return nil, errors.New("auth: credential store is required")
	}
	if issuer == nil {
		return nil, errors.New("auth: issuer is required")
	}
	if registry == nil {
		registry = NewRegistry()
	}
	svc := &Service{
		store:    store,
		issuer:   issuer,
		registry: registry,
		verifier: NewPasswordVerifier(0),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Registry exposes the refresh registry, mainly for tests.
func (s *Service) Registry() *Registry { return s.registry }

// Credentials exposes the credential store for the admin-management
// handlers; the auth core itself only reads from it.
func (s *Service) Credentials() CredentialStore { return s.store }

// AccessTTL reports the access token lifetime.
func (s *Service) AccessTTL() time.Duration { return s.issuer.AccessTTL() }

// RefreshTTL reports the refresh token lifetime.
func (s *Service) RefreshTTL() time.Duration { return s.issuer.RefreshTTL() }

// Session is the result of a successful login.
type Session struct {
	Identity         Identity
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// Grant is the result of a successful refresh exchange.
type Grant struct {
	Identity        Identity
	AccessToken     string
	AccessExpiresAt time.Time
}

// Login verifies the password against the stored hash and, on success,
// issues an access/refresh pair and registers the refresh token. A repeated
// login for the same user produces an independent session; earlier refresh
// tokens stay valid.
func (s *Service) Login(ctx context.Context, username, password string) (Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return Session{}, ErrValidation
	}
	cred, err := s.store.Lookup(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Session{}, ErrInvalidCredential
		}
		return Session{}, err
	}
	if err := s.verifier.Verify(ctx, cred.PasswordHash, password); err != nil {
		if errors.Is(err, ErrInvalidCredential) {
			return Session{}, ErrInvalidCredential
		}
		return Session{}, err
	}

	id := Identity{Username: cred.Username, Role: cred.Role}
	access, accessExp, err := s.issuer.IssueAccess(id)
	if err != nil {
		return Session{}, err
	}
	refresh, refreshExp, err := s.issuer.IssueRefresh(id)
	if err != nil {
		return Session{}, err
	}
	s.registry.Add(refresh)

	return Session{
		Identity:         id,
		AccessToken:      access,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refresh,
		RefreshExpiresAt: refreshExp,
	}, nil
}

// Refresh exchanges a still-valid refresh token for a new access token.
//
// The registry membership check runs first: a well-formed token that was
// logged out reports ErrRevokedToken, not ErrUnauthenticated. A registered
// token that then fails signature or expiry checks is dropped from the
// registry so a leaked or garbage value cannot be retried.
//
// The new access token carries the identity and role captured at original
// issuance; the credential store is not consulted here.
func (s *Service) Refresh(ctx context.Context, token string) (Grant, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Grant{}, ErrUnauthenticated
	}
	if !s.registry.Contains(token) {
		return Grant{}, ErrRevokedToken
	}
	id, err := s.issuer.ParseRefresh(token)
	if err != nil {
		s.registry.Remove(token)
		return Grant{}, ErrUnauthenticated
	}
	access, exp, err := s.issuer.IssueAccess(id)
	if err != nil {
		return Grant{}, err
	}
	return Grant{Identity: id, AccessToken: access, AccessExpiresAt: exp}, nil
}

// Logout removes the refresh token from the registry. It is idempotent and
// never fails; an unknown token is already logged out.
func (s *Service) Logout(token string) {
	if token == "" {
		return
	}
	s.registry.Remove(token)
}

// Authenticate is the authentication gate: it verifies an access token's
// signature and expiry and returns the embedded caller identity.
func (s *Service) Authenticate(token string) (Identity, error) {
	return s.issuer.ParseAccess(token)
}

// Authorize is the role gate. It re-fetches the caller's credential so the
// decision uses the current role, not the snapshot inside the token: a
// downgraded or deleted user is rejected on their very next request.
func (s *Service) Authorize(ctx context.Context, id Identity, allowed ...Role) (Credential, error) {
	if strings.TrimSpace(id.Username) == "" {
		return Credential{}, ErrUnauthenticated
	}
	cred, err := s.store.Lookup(ctx, id.Username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Credential{}, ErrUnauthenticated
		}
		return Credential{}, err
	}
	if !cred.Role.In(allowed...) {
		return Credential{}, ErrForbidden
	}
	return cred, nil
}

// CurrentRole resolves the caller's current role from the store, used by
// endpoints that report identity without gating on a role set.
func (s *Service) CurrentRole(ctx context.Context, username string) (Role, error) {
	cred, err := s.store.Lookup(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrUnauthenticated
		}
		return "", err
	}
	return cred.Role, nil
}
