package completion_client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/openai/v1/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing bearer token, got %q", r.Header.Get("Authorization"))
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func TestCompleteSuccess(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{"choices":[{"message":{"content":"hello there"}}]}`)
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", "llama-3.3-70b-versatile", 800, 0.7)
	got, err := c.Complete(context.Background(), []Turn{
		{Role: "system", Content: "be kind"},
		{Role: "user", Content: "hi"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "hello there" {
		t.Fatalf("expected generated text, got %q", got)
	}
}

func TestCompleteSendsOrderedTurns(t *testing.T) {
	var received chatCompletionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", "test-model", 100, 0.5)
	_, err := c.Complete(context.Background(), []Turn{
		{Role: "system", Content: "first"},
		{Role: "user", Content: "second"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if received.Model != "test-model" || received.MaxTokens != 100 {
		t.Fatalf("request fields not carried: %+v", received)
	}
	if len(received.Messages) != 2 || received.Messages[0].Role != "system" || received.Messages[1].Role != "user" {
		t.Fatalf("turn order not preserved: %+v", received.Messages)
	}
}

func TestCompleteNotConfigured(t *testing.T) {
	c := NewClient("", "", "model", 100, 0.5)
	_, err := c.Complete(context.Background(), []Turn{{Role: "user", Content: "hi"}})
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestCompleteFailureClassification(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusTooManyRequests, ErrRateLimited},
		{http.StatusNotFound, ErrModelNotFound},
	}
	for _, tt := range tests {
		srv := newTestServer(t, tt.status, `{"error":"nope"}`)
		c := NewClient(srv.URL, "test-key", "model", 100, 0.5)
		_, err := c.Complete(context.Background(), []Turn{{Role: "user", Content: "hi"}})
		srv.Close()
		if !errors.Is(err, tt.want) {
			t.Fatalf("status %d: expected %v, got %v", tt.status, tt.want, err)
		}
	}
}

func TestCompleteGenericFailure(t *testing.T) {
	srv := newTestServer(t, http.StatusInternalServerError, "boom")
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", "model", 100, 0.5)
	_, err := c.Complete(context.Background(), []Turn{{Role: "user", Content: "hi"}})
	if err == nil {
		t.Fatal("expected an error for 500 response")
	}
}

func TestCompleteEmptyChoices(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{"choices":[]}`)
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", "model", 100, 0.5)
	_, err := c.Complete(context.Background(), []Turn{{Role: "user", Content: "hi"}})
	if !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}
}
