package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"faqhub.org/internal/auth"
	"faqhub.org/internal/chat"
	"faqhub.org/internal/store/file"
)

const testOrigin = "http://localhost:5000"

type testEnv struct {
	t       *testing.T
	baseURL string
	client  *http.Client
	creds   *file.CredentialStore
	auth    *auth.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()

	creds, err := file.NewCredentialStore(dir)
	if err != nil {
		t.Fatalf("NewCredentialStore: %v", err)
	}
	faqs, err := file.NewFAQStore(dir)
	if err != nil {
		t.Fatalf("NewFAQStore: %v", err)
	}
	feedback, err := file.NewLogbook(dir, "feedback.txt")
	if err != nil {
		t.Fatalf("NewLogbook: %v", err)
	}
	unanswered, err := file.NewLogbook(dir, "unanswered.txt")
	if err != nil {
		t.Fatalf("NewLogbook: %v", err)
	}

	issuer, err := auth.NewIssuer("test-access-secret", "test-refresh-secret", 15*time.Minute, 7*24*time.Hour)
	if err != nil {
		t.Fatalf("NewIssuer: %v", err)
	}
	authSvc, err := auth.NewService(creds, issuer, auth.NewRegistry())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	chatSvc, err := chat.NewService(faqs, unanswered, nil)
	if err != nil {
		t.Fatalf("chat.NewService: %v", err)
	}

	api := New(authSvc, faqs, chatSvc, feedback, unanswered, testOrigin, ReadyProbe{}, "test")
	srv := httptest.NewServer(api.Handler())
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar: %v", err)
	}
	client := srv.Client()
	client.Jar = jar

	return &testEnv{
		t:       t,
		baseURL: srv.URL,
		client:  client,
		creds:   creds,
		auth:    authSvc,
	}
}

// seedAdmin stores a credential with a fast test hash and returns it.
func (e *testEnv) seedAdmin(username, password string, role auth.Role) auth.Credential {
	e.t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		e.t.Fatalf("bcrypt: %v", err)
	}
	cred := auth.Credential{ID: "seed-" + username, Username: username, PasswordHash: string(hash), Role: role}
	if err := e.creds.Create(context.Background(), cred); err != nil {
		e.t.Fatalf("seed credential: %v", err)
	}
	return cred
}

func (e *testEnv) do(method, path string, body any, headers map[string]string) *http.Response {
	e.t.Helper()
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			e.t.Fatalf("marshal body: %v", err)
		}
	}
	req, err := http.NewRequest(method, e.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		e.t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := e.client.Do(req)
	if err != nil {
		e.t.Fatalf("do request: %v", err)
	}
	return resp
}

func (e *testEnv) login(username, password string) string {
	e.t.Helper()
	resp := e.do(http.MethodPost, "/login", map[string]string{"username": username, "password": password}, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		e.t.Fatalf("login returned %d", resp.StatusCode)
	}
	var out accessResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		e.t.Fatalf("decode login response: %v", err)
	}
	if out.AccessToken == "" || out.AccessExpiresIn <= 0 {
		e.t.Fatalf("unexpected login response: %+v", out)
	}
	return out.AccessToken
}

func bearerHeader(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func decodeBody(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}
