package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOpenAIClientRespond(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header: %q", got)
		}
		var req completionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Model != "test-model" || len(req.Messages) != 2 {
			t.Errorf("unexpected request: %+v", req)
		}
		_ = json.NewEncoder(w).Encode(completionResponse{
			Choices: []struct {
				Message chatMessage `json:"message"`
			}{{Message: chatMessage{Role: "assistant", Content: "the answer"}}},
		})
	}))
	defer srv.Close()

	client, err := NewOpenAIClient(srv.URL, "test-key", "test-model")
	if err != nil {
		t.Fatalf("NewOpenAIClient: %v", err)
	}
	answer, err := client.Respond(context.Background(), "a question")
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if answer != "the answer" {
		t.Fatalf("answer = %q", answer)
	}
}

func TestOpenAIClientErrors(t *testing.T) {
	if _, err := NewOpenAIClient("http://localhost", "", "model"); err == nil {
		t.Fatalf("expected error for missing api key")
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client, err := NewOpenAIClient(srv.URL, "key", "model")
	if err != nil {
		t.Fatalf("NewOpenAIClient: %v", err)
	}
	if _, err := client.Respond(context.Background(), "question"); err == nil {
		t.Fatalf("expected error for non-200 response")
	}
}
