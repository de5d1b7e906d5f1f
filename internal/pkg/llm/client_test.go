package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func completionServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func TestCompleteReturnsContent(t *testing.T) {
	server := completionServer(t, http.StatusOK,
		`{"choices":[{"index":0,"message":{"role":"assistant","content":"{\"score\": 80}"},"finish_reason":"stop"}]}`)
	defer server.Close()

	client := NewClient("test-key", "test-model", server.URL)

	text, err := client.Complete(context.Background(), "system", "user", Options{})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if text != `{"score": 80}` {
		t.Errorf("unexpected content: %q", text)
	}
}

func TestCompleteEmptyContentIsNotAnError(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty message", `{"choices":[{"index":0,"message":{"role":"assistant","content":""},"finish_reason":"stop"}]}`},
		{"no choices", `{"choices":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := completionServer(t, http.StatusOK, tt.body)
			defer server.Close()

			client := NewClient("test-key", "test-model", server.URL)

			text, err := client.Complete(context.Background(), "system", "user", Options{})
			if err != nil {
				t.Fatalf("received-but-empty output must not be an error, got %v", err)
			}
			if text != "" {
				t.Errorf("expected empty content, got %q", text)
			}
		})
	}
}

func TestCompleteTransportFailure(t *testing.T) {
	server := completionServer(t, http.StatusInternalServerError, `{"error":{"message":"boom"}}`)
	defer server.Close()

	client := NewClient("test-key", "test-model", server.URL)

	if _, err := client.Complete(context.Background(), "system", "user", Options{}); err == nil {
		t.Fatal("expected an error for a failed request")
	}
}

func TestNewClientDefaults(t *testing.T) {
	client := NewClient("key", "", "")
	if client.Model != "gpt-4o-mini" {
		t.Errorf("default model = %q", client.Model)
	}
	if client.BaseURL != "https://api.openai.com/v1" {
		t.Errorf("default base url = %q", client.BaseURL)
	}
}
