package httpapi

import (
	"net/http"
	"strings"
	"time"
)

const refreshCookieName = "refreshToken"

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type accessResponse struct {
	AccessToken     string `json:"accessToken"`
	AccessExpiresIn int64  `json:"accessExpiresIn"` // seconds
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		writeError(w, r, http.StatusBadRequest, "username and password are required")
		return
	}

	sess, err := a.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		handleAuthError(w, r, err)
		return
	}

	a.setRefreshCookie(w, sess.RefreshToken)
	writeJSON(w, http.StatusOK, accessResponse{
		AccessToken:     sess.AccessToken,
		AccessExpiresIn: int64(a.auth.AccessTTL().Seconds()),
	})
}

func (a *API) handleToken(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	cookie, err := r.Cookie(refreshCookieName)
	if err != nil {
		writeError(w, r, http.StatusUnauthorized, "no refresh token")
		return
	}

	grant, err := a.auth.Refresh(r.Context(), cookie.Value)
	if err != nil {
		handleAuthError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, accessResponse{
		AccessToken:     grant.AccessToken,
		AccessExpiresIn: int64(a.auth.AccessTTL().Seconds()),
	})
}

func (a *API) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	if cookie, err := r.Cookie(refreshCookieName); err == nil {
		a.auth.Logout(cookie.Value)
	}
	a.clearRefreshCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}

func (a *API) handleWhoami(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}

	id, ok := a.authenticate(w, r)
	if !ok {
		return
	}
	// Report the store's current role, not the snapshot inside the token.
	role, err := a.auth.CurrentRole(r.Context(), id.Username)
	if err != nil {
		handleAuthError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"username": id.Username,
		"role":     role,
	})
}

// setRefreshCookie delivers the refresh token out-of-band: httpOnly so
// scripts cannot read it, SameSite=None so the cross-site admin UI can send
// it, scoped to the root path for the whole token lifetime.
func (a *API) setRefreshCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(a.auth.RefreshTTL() / time.Second),
		HttpOnly: true,
		Secure:   strings.HasPrefix(a.origin, "https://"),
		SameSite: http.SameSiteNoneMode,
	})
}

func (a *API) clearRefreshCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   strings.HasPrefix(a.origin, "https://"),
		SameSite: http.SameSiteNoneMode,
	})
}
