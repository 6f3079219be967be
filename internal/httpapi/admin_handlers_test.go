package httpapi

import (
	"net/http"
	"testing"

	"faqhub.org/internal/auth"
)

func TestAdminCRUDRequiresSuperadmin(t *testing.T) {
	env := newTestEnv(t)
	env.seedAdmin("boss", "pw", auth.RoleAdmin)
	env.seedAdmin("root", "pw", auth.RoleSuperadmin)

	body := map[string]string{"username": "newhire", "password": "pw123", "role": "editor"}

	adminToken := env.login("boss", "pw")
	denied := env.do(http.MethodPost, "/admins", body, bearerHeader(adminToken))
	denied.Body.Close()
	if denied.StatusCode != http.StatusForbidden {
		t.Fatalf("admin create returned %d, want 403", denied.StatusCode)
	}

	rootToken := env.login("root", "pw")
	created := env.do(http.MethodPost, "/admins", body, bearerHeader(rootToken))
	if created.StatusCode != http.StatusCreated {
		t.Fatalf("superadmin create returned %d", created.StatusCode)
	}
	var cred auth.Credential
	decodeBody(t, created, &cred)
	if cred.PasswordHash != "" {
		t.Fatalf("response leaked password hash")
	}
	if cred.Username != "newhire" || cred.Role != auth.RoleEditor {
		t.Fatalf("unexpected created credential: %+v", cred)
	}

	// The new account can log in right away.
	env.login("newhire", "pw123")

	list := env.do(http.MethodGet, "/admins", nil, bearerHeader(rootToken))
	var out struct {
		Admins []auth.Credential `json:"admins"`
	}
	decodeBody(t, list, &out)
	if len(out.Admins) != 3 {
		t.Fatalf("expected 3 admins, got %d", len(out.Admins))
	}
	for _, c := range out.Admins {
		if c.PasswordHash != "" {
			t.Fatalf("list leaked password hash for %s", c.Username)
		}
	}

	update := env.do(http.MethodPut, "/admins/"+cred.ID, map[string]string{"role": "admin"}, bearerHeader(rootToken))
	var updated auth.Credential
	if update.StatusCode != http.StatusOK {
		t.Fatalf("update returned %d", update.StatusCode)
	}
	decodeBody(t, update, &updated)
	if updated.Role != auth.RoleAdmin {
		t.Fatalf("role not updated: %+v", updated)
	}

	del := env.do(http.MethodDelete, "/admins/"+cred.ID, nil, bearerHeader(rootToken))
	del.Body.Close()
	if del.StatusCode != http.StatusNoContent {
		t.Fatalf("delete returned %d", del.StatusCode)
	}

	again := env.do(http.MethodDelete, "/admins/"+cred.ID, nil, bearerHeader(rootToken))
	again.Body.Close()
	if again.StatusCode != http.StatusNotFound {
		t.Fatalf("second delete returned %d, want 404", again.StatusCode)
	}
}

func TestCreateAdminRejectsDuplicateUsername(t *testing.T) {
	env := newTestEnv(t)
	env.seedAdmin("root", "pw", auth.RoleSuperadmin)
	token := env.login("root", "pw")

	body := map[string]string{"username": "twin", "password": "pw", "role": "viewer"}
	first := env.do(http.MethodPost, "/admins", body, bearerHeader(token))
	first.Body.Close()
	if first.StatusCode != http.StatusCreated {
		t.Fatalf("first create returned %d", first.StatusCode)
	}

	second := env.do(http.MethodPost, "/admins", body, bearerHeader(token))
	second.Body.Close()
	if second.StatusCode != http.StatusBadRequest {
		t.Fatalf("duplicate create returned %d, want 400", second.StatusCode)
	}
}

func TestCreateAdminRejectsUnknownRole(t *testing.T) {
	env := newTestEnv(t)
	env.seedAdmin("root", "pw", auth.RoleSuperadmin)
	token := env.login("root", "pw")

	resp := env.do(http.MethodPost, "/admins",
		map[string]string{"username": "x", "password": "pw", "role": "emperor"},
		bearerHeader(token))
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("unknown role returned %d, want 400", resp.StatusCode)
	}
}

func TestReviewLogsAndReset(t *testing.T) {
	env := newTestEnv(t)
	env.seedAdmin("boss", "pw", auth.RoleAdmin)
	env.seedAdmin("viewer", "pw", auth.RoleViewer)

	// A missed chat question and a feedback note land in the logs.
	chat := env.do(http.MethodPost, "/chat", map[string]string{"message": "something nobody asked before"}, nil)
	chat.Body.Close()
	fb := env.do(http.MethodPost, "/feedback",
		map[string]string{"question": "opening hours", "feedback": "answer was outdated"}, nil)
	fb.Body.Close()

	viewerToken := env.login("viewer", "pw")
	denied := env.do(http.MethodGet, "/feedbacks", nil, bearerHeader(viewerToken))
	denied.Body.Close()
	if denied.StatusCode != http.StatusForbidden {
		t.Fatalf("viewer feedbacks returned %d, want 403", denied.StatusCode)
	}

	token := env.login("boss", "pw")

	feedbacks := env.do(http.MethodGet, "/feedbacks", nil, bearerHeader(token))
	var fbOut struct {
		Feedbacks []string `json:"feedbacks"`
	}
	decodeBody(t, feedbacks, &fbOut)
	if len(fbOut.Feedbacks) != 1 || fbOut.Feedbacks[0] != "opening hours - answer was outdated" {
		t.Fatalf("unexpected feedbacks: %v", fbOut.Feedbacks)
	}

	unanswered := env.do(http.MethodGet, "/unanswered", nil, bearerHeader(token))
	var unOut struct {
		Unanswered []string `json:"unanswered"`
	}
	decodeBody(t, unanswered, &unOut)
	if len(unOut.Unanswered) != 1 {
		t.Fatalf("unexpected unanswered: %v", unOut.Unanswered)
	}

	reset := env.do(http.MethodPost, "/admin/reset-logs", nil, bearerHeader(token))
	var status map[string]string
	decodeBody(t, reset, &status)
	if status["status"] != "cleared" {
		t.Fatalf("unexpected reset response: %v", status)
	}

	after := env.do(http.MethodGet, "/feedbacks", nil, bearerHeader(token))
	fbOut.Feedbacks = nil
	decodeBody(t, after, &fbOut)
	if len(fbOut.Feedbacks) != 0 {
		t.Fatalf("feedback log not cleared: %v", fbOut.Feedbacks)
	}
}
