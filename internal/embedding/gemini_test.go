package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewGeminiClient(t *testing.T) {
	client := NewGeminiClient("https://generativelanguage.googleapis.com/", "key", "gemini-embedding-001", 3072)
	if client == nil {
		t.Fatal("expected non-nil client")
	}
	if client.baseURL != "https://generativelanguage.googleapis.com" {
		t.Errorf("expected trailing slash trimmed, got %s", client.baseURL)
	}
	if client.Dimensions() != 3072 {
		t.Errorf("expected dimensions 3072, got %d", client.Dimensions())
	}
	if client.httpClient == nil {
		t.Fatal("expected non-nil httpClient")
	}
}

func TestEmbed_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/v1beta/models/gemini-embedding-001:embedContent" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected Content-Type application/json, got %s", ct)
		}
		if key := r.Header.Get("x-goog-api-key"); key != "test-key" {
			t.Errorf("expected api key header, got %q", key)
		}

		var req embedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		if len(req.Content.Parts) != 1 || req.Content.Parts[0].Text != "how does parsing work" {
			t.Errorf("unexpected request content: %+v", req.Content)
		}
		if req.OutputDimensionality != 3 {
			t.Errorf("expected outputDimensionality 3, got %d", req.OutputDimensionality)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"embedding": map[string]any{"values": []float32{0.1, 0.2, 0.3}},
		})
	}))
	defer server.Close()

	client := NewGeminiClient(server.URL, "test-key", "gemini-embedding-001", 3)
	vector, err := client.Embed(context.Background(), "how does parsing work")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vector) != 3 {
		t.Fatalf("expected 3 values, got %d", len(vector))
	}
	if vector[0] != 0.1 {
		t.Errorf("expected first value 0.1, got %f", vector[0])
	}
}

func TestEmbed_BlankInput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("blank input must not reach the API")
	}))
	defer server.Close()

	client := NewGeminiClient(server.URL, "test-key", "gemini-embedding-001", 3072)

	for _, text := range []string{"", "   ", "\t\n"} {
		vector, err := client.Embed(context.Background(), text)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", text, err)
		}
		if vector != nil {
			t.Errorf("expected nil vector for %q, got %v", text, vector)
		}
	}
}

func TestEmbed_ProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": {"code": 400, "message": "API key not valid", "status": "INVALID_ARGUMENT"}}`))
	}))
	defer server.Close()

	client := NewGeminiClient(server.URL, "bad-key", "gemini-embedding-001", 3072)
	_, err := client.Embed(context.Background(), "some text")

	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "status 400") {
		t.Errorf("expected status in error, got %q", err.Error())
	}
	if !strings.Contains(err.Error(), "API key not valid") {
		t.Errorf("expected provider message in error, got %q", err.Error())
	}
}

func TestEmbed_ProviderErrorRawBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("upstream overloaded"))
	}))
	defer server.Close()

	client := NewGeminiClient(server.URL, "test-key", "gemini-embedding-001", 3072)
	_, err := client.Embed(context.Background(), "some text")

	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "upstream overloaded") {
		t.Errorf("expected raw body in error, got %q", err.Error())
	}
}

func TestEmbed_BadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("invalid json"))
	}))
	defer server.Close()

	client := NewGeminiClient(server.URL, "test-key", "gemini-embedding-001", 3072)
	_, err := client.Embed(context.Background(), "some text")

	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.HasPrefix(err.Error(), "failed to decode response") {
		t.Errorf("expected decode error, got %q", err.Error())
	}
}

func TestEmbed_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Simulate slow response
		<-r.Context().Done()
	}))
	defer server.Close()

	client := NewGeminiClient(server.URL, "test-key", "gemini-embedding-001", 3072)
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	_, err := client.Embed(ctx, "some text")

	if err == nil {
		t.Fatal("expected error due to context cancellation, got nil")
	}
}

func TestEmbed_NetworkError(t *testing.T) {
	// Use invalid URL to trigger network error
	client := NewGeminiClient("http://invalid-host-that-does-not-exist:9999", "test-key", "gemini-embedding-001", 3072)
	_, err := client.Embed(context.Background(), "some text")

	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.HasPrefix(err.Error(), "failed to send request") {
		t.Errorf("expected send error, got %q", err.Error())
	}
}

func TestAPIErrorMessage(t *testing.T) {
	msg := apiErrorMessage([]byte(`{"error": {"message": "quota exceeded"}}`))
	if msg != "quota exceeded" {
		t.Errorf("expected parsed message, got %q", msg)
	}

	msg = apiErrorMessage([]byte("  plain text failure\n"))
	if msg != "plain text failure" {
		t.Errorf("expected trimmed raw body, got %q", msg)
	}
}
