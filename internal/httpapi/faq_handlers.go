package httpapi

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"faqhub.org/internal/auth"
	"faqhub.org/internal/faq"
)

type createFAQRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type updateFAQRequest struct {
	Question *string `json:"question"`
	Answer   *string `json:"answer"`
}

var faqEditorRoles = []auth.Role{auth.RoleEditor, auth.RoleAdmin, auth.RoleSuperadmin}

func (a *API) handleFAQCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		a.listFAQs(w, r)
	case http.MethodPost:
		a.createFAQ(w, r)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

// listFAQs is public: the chat widget renders the catalog without a session.
func (a *API) listFAQs(w http.ResponseWriter, r *http.Request) {
	faqs, err := a.faqs.List(r.Context())
	if err != nil {
		faqs = []faq.FAQ{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"faqs": faqs})
}

func (a *API) createFAQ(w http.ResponseWriter, r *http.Request) {
	if _, ok := a.requireRole(w, r, faqEditorRoles...); !ok {
		return
	}

	var req createFAQRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	question := strings.TrimSpace(req.Question)
	answer := strings.TrimSpace(req.Answer)
	if question == "" || answer == "" {
		writeError(w, r, http.StatusBadRequest, "question and answer are required")
		return
	}

	created := faq.FAQ{ID: uuid.NewString(), Question: question, Answer: answer}
	if err := a.faqs.Create(r.Context(), created); err != nil {
		writeError(w, r, http.StatusInternalServerError, "could not store faq")
		return
	}
	w.Header().Set("Location", "/faqs/"+created.ID)
	writeJSON(w, http.StatusCreated, created)
}

func (a *API) handleFAQResource(w http.ResponseWriter, r *http.Request) {
	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/faqs/"), "/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}

	switch r.Method {
	case http.MethodPut:
		a.updateFAQ(w, r, id)
	case http.MethodDelete:
		a.deleteFAQ(w, r, id)
	default:
		methodNotAllowed(w, r, http.MethodPut, http.MethodDelete)
	}
}

func (a *API) updateFAQ(w http.ResponseWriter, r *http.Request, id string) {
	if _, ok := a.requireRole(w, r, faqEditorRoles...); !ok {
		return
	}

	var req updateFAQRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.Question == nil && req.Answer == nil {
		writeError(w, r, http.StatusBadRequest, "question or answer is required")
		return
	}

	updated, err := a.faqs.Update(r.Context(), id, faq.Update{Question: req.Question, Answer: req.Answer})
	if err != nil {
		handleAuthError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// deleteFAQ requires admin or above; editors may not remove entries.
func (a *API) deleteFAQ(w http.ResponseWriter, r *http.Request, id string) {
	if _, ok := a.requireRole(w, r, auth.RoleAdmin, auth.RoleSuperadmin); !ok {
		return
	}
	if err := a.faqs.Delete(r.Context(), id); err != nil {
		handleAuthError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
