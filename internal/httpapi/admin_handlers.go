package httpapi

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"faqhub.org/internal/auth"
)

type createAdminRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type updateAdminRequest struct {
	Role     *string `json:"role"`
	Password *string `json:"password"`
}

var logReviewerRoles = []auth.Role{auth.RoleAdmin, auth.RoleSuperadmin}

func (a *API) handleAdminCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		a.listAdmins(w, r)
	case http.MethodPost:
		a.createAdmin(w, r)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) listAdmins(w http.ResponseWriter, r *http.Request) {
	if _, ok := a.requireRole(w, r, auth.RoleSuperadmin); !ok {
		return
	}
	creds, err := a.auth.Credentials().List(r.Context())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "could not list admins")
		return
	}
	public := make([]auth.Credential, 0, len(creds))
	for _, c := range creds {
		public = append(public, c.Public())
	}
	writeJSON(w, http.StatusOK, map[string]any{"admins": public})
}

func (a *API) createAdmin(w http.ResponseWriter, r *http.Request) {
	if _, ok := a.requireRole(w, r, auth.RoleSuperadmin); !ok {
		return
	}

	var req createAdminRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" || req.Role == "" {
		writeError(w, r, http.StatusBadRequest, "username, password and role are required")
		return
	}
	role, ok := auth.ParseRole(req.Role)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "unknown role")
		return
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "could not hash password")
		return
	}

	cred := auth.Credential{ID: uuid.NewString(), Username: username, PasswordHash: hash, Role: role}
	if err := a.auth.Credentials().Create(r.Context(), cred); err != nil {
		handleAuthError(w, r, err)
		return
	}
	w.Header().Set("Location", "/admins/"+cred.ID)
	writeJSON(w, http.StatusCreated, cred.Public())
}

func (a *API) handleAdminResource(w http.ResponseWriter, r *http.Request) {
	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/admins/"), "/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}

	switch r.Method {
	case http.MethodPut:
		a.updateAdmin(w, r, id)
	case http.MethodDelete:
		a.deleteAdmin(w, r, id)
	default:
		methodNotAllowed(w, r, http.MethodPut, http.MethodDelete)
	}
}

func (a *API) updateAdmin(w http.ResponseWriter, r *http.Request, id string) {
	if _, ok := a.requireRole(w, r, auth.RoleSuperadmin); !ok {
		return
	}

	var req updateAdminRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.Role == nil && req.Password == nil {
		writeError(w, r, http.StatusBadRequest, "role or password is required")
		return
	}

	cred, err := a.auth.Credentials().Find(r.Context(), id)
	if err != nil {
		handleAuthError(w, r, err)
		return
	}
	if req.Role != nil {
		role, ok := auth.ParseRole(*req.Role)
		if !ok {
			writeError(w, r, http.StatusBadRequest, "unknown role")
			return
		}
		cred.Role = role
	}
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			writeError(w, r, http.StatusInternalServerError, "could not hash password")
			return
		}
		cred.PasswordHash = hash
	}
	if err := a.auth.Credentials().Update(r.Context(), cred); err != nil {
		handleAuthError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cred.Public())
}

func (a *API) deleteAdmin(w http.ResponseWriter, r *http.Request, id string) {
	if _, ok := a.requireRole(w, r, auth.RoleSuperadmin); !ok {
		return
	}
	if err := a.auth.Credentials().Delete(r.Context(), id); err != nil {
		handleAuthError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleFeedbacks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	if _, ok := a.requireRole(w, r, logReviewerRoles...); !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"feedbacks": a.feedback.Lines()})
}

func (a *API) handleUnanswered(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	if _, ok := a.requireRole(w, r, logReviewerRoles...); !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"unanswered": a.unanswered.Lines()})
}

func (a *API) handleResetLogs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	if _, ok := a.requireRole(w, r, logReviewerRoles...); !ok {
		return
	}
	if err := a.feedback.Reset(); err != nil {
		writeError(w, r, http.StatusInternalServerError, "could not reset feedback log")
		return
	}
	if err := a.unanswered.Reset(); err != nil {
		writeError(w, r, http.StatusInternalServerError, "could not reset unanswered log")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
