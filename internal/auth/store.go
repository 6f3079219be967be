package auth

import "context"

// CredentialStore describes persistence for admin credentials. The auth core
// only reads from it; writes belong to the admin-management handlers.
//
// Lookup is consulted on every protected request rather than cached, so a
// role change takes effect on the caller's next call even while an older
// access token is still in flight.
type CredentialStore interface {
	Lookup(ctx context.Context, username string) (Credential, error)
	Find(ctx context.Context, id string) (Credential, error)
	List(ctx context.Context) ([]Credential, error)
	Create(ctx context.Context, cred Credential) error
	Update(ctx context.Context, cred Credential) error
	Delete(ctx context.Context, id string) error
}
