package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/hadley31/chess-image-generator/pkg/cache"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := New(Options{Cache: cache.NewNullCache()})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, ts *httptest.Server, path string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	if err != nil {
		t.Fatalf("GET %s error: %v", path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body error: %v", err)
	}
	return resp, body
}

func TestBoardEndpoint(t *testing.T) {
	ts := newTestServer(t)

	fen := url.QueryEscape("8/8/8/8/8/8/8/4K3 w - - 0 1")
	resp, body := get(t, ts, "/board.png?fen="+fen+"&size=160")

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q, want image/png", ct)
	}
	if !strings.HasPrefix(string(body), "\x89PNG") {
		t.Error("body is not a PNG")
	}
	if resp.Header.Get("X-Request-Id") == "" {
		t.Error("missing X-Request-Id header")
	}
}

func TestBoardEndpointBadFEN(t *testing.T) {
	ts := newTestServer(t)

	resp, body := get(t, ts, "/board.png?fen=garbage")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	var payload map[string]string
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("unmarshal error body: %v", err)
	}
	if payload["code"] != "INVALID_NOTATION" {
		t.Errorf("code = %q, want INVALID_NOTATION", payload["code"])
	}
}

func TestBoardEndpointMissingPosition(t *testing.T) {
	ts := newTestServer(t)

	resp, _ := get(t, ts, "/board.png")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestBoardEndpointUnknownStyle(t *testing.T) {
	ts := newTestServer(t)

	fen := url.QueryEscape("8/8/8/8/8/8/8/4K3 w - - 0 1")
	resp, _ := get(t, ts, "/board.png?fen="+fen+"&style=staunton")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestBoardEndpointCaches(t *testing.T) {
	fileCache, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	srv := New(Options{Cache: fileCache})
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	fen := url.QueryEscape("8/8/8/8/8/8/8/4K3 w - - 0 1")
	_, first := get(t, ts, "/board.png?fen="+fen+"&size=160")
	_, second := get(t, ts, "/board.png?fen="+fen+"&size=160")

	if string(first) != string(second) {
		t.Error("cached response differs from the original render")
	}
}

func TestStylesEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp, body := get(t, ts, "/styles")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var payload struct {
		Styles  []string `json:"styles"`
		Default string   `json:"default"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(payload.Styles) == 0 || payload.Default == "" {
		t.Errorf("payload = %+v, want styles and a default", payload)
	}
}

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp, _ := get(t, ts, "/healthz")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

// countingCache records every store so tests can observe key reuse.
type countingCache struct {
	entries map[string][]byte
	sets    int
}

func newCountingCache() *countingCache {
	return &countingCache{entries: make(map[string][]byte)}
}

func (c *countingCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok := c.entries[key]
	return data, ok, nil
}

func (c *countingCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	c.sets++
	c.entries[key] = data
	return nil
}

func (c *countingCache) Delete(ctx context.Context, key string) error {
	delete(c.entries, key)
	return nil
}

func (c *countingCache) Close() error { return nil }

func TestBoardCacheKeyNormalized(t *testing.T) {
	store := newCountingCache()
	srv := New(Options{Cache: store})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	fen := url.QueryEscape("8/8/8/8/8/8/8/4K3 w - - 0 1")

	resp1, body1 := get(t, ts, "/board.png?fen="+fen)
	if resp1.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp1.StatusCode)
	}

	// Spelling out the defaults must reuse the first request's entry.
	resp2, body2 := get(t, ts, "/board.png?fen="+fen+"&size=480&style=merida&flipped=false")
	if resp2.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp2.StatusCode)
	}

	if store.sets != 1 {
		t.Errorf("cache stores = %d, want 1", store.sets)
	}
	if !bytes.Equal(body1, body2) {
		t.Error("default and explicit-default requests should serve the same image")
	}
}
