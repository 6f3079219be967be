package auth

import "context"

type identityContextKey struct{}
type credentialContextKey struct{}

// ContextWithIdentity attaches the authenticated caller identity to the
// context.
func ContextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, id)
}

// IdentityFromContext extracts the caller identity set by the
// authentication gate.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	if ctx == nil {
		return Identity{}, false
	}
	id, ok := ctx.Value(identityContextKey{}).(Identity)
	if !ok || id.Username == "" {
		return Identity{}, false
	}
	return id, true
}

// ContextWithCredential attaches the freshly resolved credential after the
// role gate passes.
func ContextWithCredential(ctx context.Context, cred Credential) context.Context {
	return context.WithValue(ctx, credentialContextKey{}, &cred)
}

// CredentialFromContext returns the credential resolved by the role gate.
func CredentialFromContext(ctx context.Context) (Credential, bool) {
	if ctx == nil {
		return Credential{}, false
	}
	v, ok := ctx.Value(credentialContextKey{}).(*Credential)
	if !ok || v == nil {
		return Credential{}, false
	}
	return *v, true
}
