package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGenerate_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/v1beta/models/gemini-2.5-flash:generateContent" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if key := r.Header.Get("x-goog-api-key"); key != "test-key" {
			t.Errorf("expected api key header, got %q", key)
		}

		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		if len(req.Contents) != 1 || len(req.Contents[0].Parts) != 1 {
			t.Fatalf("unexpected request contents: %+v", req.Contents)
		}
		if req.Contents[0].Parts[0].Text != "explain the parser" {
			t.Errorf("unexpected prompt %q", req.Contents[0].Parts[0].Text)
		}
		if req.GenerationConfig.Temperature != 0.3 {
			t.Errorf("expected temperature 0.3, got %f", req.GenerationConfig.Temperature)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates": [{"content": {"parts": [{"text": "The parser "}, {"text": "reads tokens."}]}}]}`))
	}))
	defer server.Close()

	client := NewGeminiClient(server.URL, "test-key", "gemini-2.5-flash")
	text, err := client.Generate(context.Background(), "explain the parser", GenerateOptions{Temperature: 0.3})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "The parser reads tokens." {
		t.Errorf("expected concatenated parts, got %q", text)
	}
}

func TestGenerate_ProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"code": 429, "message": "quota exceeded", "status": "RESOURCE_EXHAUSTED"}}`))
	}))
	defer server.Close()

	client := NewGeminiClient(server.URL, "test-key", "gemini-2.5-flash")
	_, err := client.Generate(context.Background(), "prompt", GenerateOptions{Temperature: 0.3})

	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "status 429") {
		t.Errorf("expected status in error, got %q", err.Error())
	}
	if !strings.Contains(err.Error(), "quota exceeded") {
		t.Errorf("expected provider message in error, got %q", err.Error())
	}
}

func TestGenerate_NoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates": []}`))
	}))
	defer server.Close()

	client := NewGeminiClient(server.URL, "test-key", "gemini-2.5-flash")
	_, err := client.Generate(context.Background(), "prompt", GenerateOptions{Temperature: 0.3})

	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "no candidates") {
		t.Errorf("expected no-candidates error, got %q", err.Error())
	}
}

func TestGenerate_BadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewGeminiClient(server.URL, "test-key", "gemini-2.5-flash")
	_, err := client.Generate(context.Background(), "prompt", GenerateOptions{Temperature: 0.3})

	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.HasPrefix(err.Error(), "failed to decode response") {
		t.Errorf("expected decode error, got %q", err.Error())
	}
}

func TestGenerate_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	client := NewGeminiClient(server.URL, "test-key", "gemini-2.5-flash")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Generate(ctx, "prompt", GenerateOptions{Temperature: 0.3})

	if err == nil {
		t.Fatal("expected error due to context cancellation, got nil")
	}
}
