package embed

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func embeddingsHandler(t *testing.T, respond func(w http.ResponseWriter, req embeddingsRequest)) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/embeddings" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}
		var req embeddingsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		respond(w, req)
	}
}

func TestClient_EmbedBatch(t *testing.T) {
	srv := httptest.NewServer(embeddingsHandler(t, func(w http.ResponseWriter, req embeddingsRequest) {
		if req.Model != "all-MiniLM-L6-v2" {
			t.Errorf("unexpected model: %q", req.Model)
		}
		if len(req.Input) != 2 {
			t.Fatalf("expected 2 inputs, got %d", len(req.Input))
		}
		// Respond out of order; the index field is authoritative.
		resp := map[string]any{
			"data": []map[string]any{
				{"index": 1, "embedding": []float32{0, 1}},
				{"index": 0, "embedding": []float32{1, 0}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "all-MiniLM-L6-v2")
	defer c.Close()

	vectors, err := c.Embed(context.Background(), []string{"first", "second"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vectors) != 2 {
		t.Fatalf("expected 2 vectors, got %d", len(vectors))
	}
	if vectors[0][0] != 1 || vectors[1][1] != 1 {
		t.Errorf("vectors not restored to input order: %v", vectors)
	}

	snap := c.Stats().Snapshot()
	if snap.Count != 1 || snap.TextsTotal != 2 {
		t.Errorf("expected 1 recorded call with 2 texts, got %+v", snap)
	}
}

func TestClient_EmptyInput(t *testing.T) {
	c := NewClient("http://localhost:1", "m")
	vectors, err := c.Embed(context.Background(), nil)
	if err != nil || vectors != nil {
		t.Errorf("expected nil, nil for empty input, got %v, %v", vectors, err)
	}
}

func TestClient_RetryableStatuses(t *testing.T) {
	for _, status := range []int{http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "overloaded", status)
		}))

		c := NewClient(srv.URL, "m")
		_, err := c.Embed(context.Background(), []string{"text"})
		srv.Close()
		c.Close()

		var retryErr *RetryableError
		if !errors.As(err, &retryErr) {
			t.Errorf("status %d: expected RetryableError, got %v", status, err)
			continue
		}
		if retryErr.StatusCode != status {
			t.Errorf("expected status %d in error, got %d", status, retryErr.StatusCode)
		}
	}
}

func TestClient_BadRequestNotRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad input", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "m")
	defer c.Close()

	_, err := c.Embed(context.Background(), []string{"text"})
	if err == nil {
		t.Fatal("expected error")
	}
	var retryErr *RetryableError
	if errors.As(err, &retryErr) {
		t.Errorf("4xx other than 429 must not be retryable: %v", err)
	}
}

func TestClient_CountMismatch(t *testing.T) {
	srv := httptest.NewServer(embeddingsHandler(t, func(w http.ResponseWriter, req embeddingsRequest) {
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"index": 0, "embedding": []float32{1}}},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "m")
	defer c.Close()

	_, err := c.Embed(context.Background(), []string{"one", "two"})
	if err == nil || !strings.Contains(err.Error(), "count mismatch") {
		t.Errorf("expected count mismatch error, got %v", err)
	}
}

func TestClient_APIErrorBody(t *testing.T) {
	srv := httptest.NewServer(embeddingsHandler(t, func(w http.ResponseWriter, req embeddingsRequest) {
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"type": "invalid_request", "message": "unknown model"},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "m")
	defer c.Close()

	_, err := c.Embed(context.Background(), []string{"text"})
	if err == nil || !strings.Contains(err.Error(), "unknown model") {
		t.Errorf("expected api error message surfaced, got %v", err)
	}
}

func TestClient_EmptyEmbeddingRejected(t *testing.T) {
	srv := httptest.NewServer(embeddingsHandler(t, func(w http.ResponseWriter, req embeddingsRequest) {
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"index": 0, "embedding": []float32{}}},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "m")
	defer c.Close()

	_, err := c.Embed(context.Background(), []string{"text"})
	if err == nil || !strings.Contains(err.Error(), "empty embedding") {
		t.Errorf("expected empty embedding error, got %v", err)
	}
}
