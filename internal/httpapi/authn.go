package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"faqhub.org/internal/auth"
)

const (
	authHeader = "Authorization"
	bearer     = "Bearer "
)

// authenticate runs the authentication gate: it extracts the bearer token,
// verifies signature and expiry and attaches the decoded identity to the
// request context. On failure it writes 401 and reports false.
func (a *API) authenticate(w http.ResponseWriter, r *http.Request) (auth.Identity, bool) {
	token, err := extractBearerToken(r.Header.Get(authHeader))
	if err != nil {
		handleAuthError(w, r, auth.ErrUnauthenticated)
		return auth.Identity{}, false
	}
	id, err := a.auth.Authenticate(token)
	if err != nil {
		handleAuthError(w, r, err)
		return auth.Identity{}, false
	}
	*r = *r.WithContext(auth.ContextWithIdentity(r.Context(), id))
	return id, true
}

// requireRole chains the authentication gate with the role gate. The role
// decision uses the credential store's current role, never the snapshot in
// the token; a gate failure writes the response and reports false.
func (a *API) requireRole(w http.ResponseWriter, r *http.Request, allowed ...auth.Role) (auth.Credential, bool) {
	id, ok := a.authenticate(w, r)
	if !ok {
		return auth.Credential{}, false
	}
	cred, err := a.auth.Authorize(r.Context(), id, allowed...)
	if err != nil {
		handleAuthError(w, r, err)
		return auth.Credential{}, false
	}
	*r = *r.WithContext(auth.ContextWithCredential(r.Context(), cred))
	return cred, true
}

func extractBearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", errors.New("missing bearer token")
	}
	if !strings.HasPrefix(strings.ToLower(header), strings.ToLower(bearer)) {
		return "", errors.New("invalid authorization scheme")
	}
	token := strings.TrimSpace(header[len(bearer):])
	if token == "" {
		return "", errors.New("missing bearer token")
	}
	return token, nil
}
