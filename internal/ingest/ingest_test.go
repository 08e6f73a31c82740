package ingest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestReadFileText(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	path := filepath.Join(dir, "standup.md")
	if err := os.WriteFile(path, []byte("\n  Alice will send the report.  \n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got != "Alice will send the report." {
		t.Fatalf("ReadFile = %q", got)
	}
}

func TestReadFileEmpty(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	path := filepath.Join(dir, "blank.txt")
	if err := os.WriteFile(path, []byte(" \n\t "), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := ReadFile(path); !errors.Is(err, ErrEmpty) {
		t.Fatalf("err = %v, want ErrEmpty", err)
	}
	if _, err := ReadFile(filepath.Join(dir, "missing.txt")); err == nil || errors.Is(err, ErrEmpty) {
		t.Fatalf("missing file err = %v", err)
	}
}

func TestReadFileBrokenPDF(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	path := filepath.Join(dir, "notes.PDF")
	if err := os.WriteFile(path, []byte("not a pdf"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := ReadFile(path); err == nil {
		t.Fatal("expected pdf parse error")
	}
}

func TestIsPDF(t *testing.T) {
	t.Parallel()

	tests := []struct {
		source string
		want   bool
	}{
		{"notes.pdf", true},
		{"NOTES.PDF", true},
		{"notes.txt", false},
		{"https://example.test/minutes.pdf?dl=1", true},
		{"https://example.test/minutes?format=pdf", false},
	}
	for _, tt := range tests {
		if got := isPDF(tt.source); got != tt.want {
			t.Fatalf("isPDF(%q) = %v, want %v", tt.source, got, tt.want)
		}
	}
}

func TestReadRemoteUsesCache(t *testing.T) {
	t.Setenv(cacheEnvVar, t.TempDir())

	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Etag", `"v1"`)
		_, _ = w.Write([]byte("Bob will book the room."))
	}))
	t.Cleanup(server.Close)

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		got, err := Read(ctx, server.URL+"/standup.txt")
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
		if got != "Bob will book the room." {
			t.Fatalf("Read = %q", got)
		}
	}
	if hits != 1 {
		t.Fatalf("expected a single download, got %d", hits)
	}
}

func TestCacheRevalidatesStaleCopy(t *testing.T) {
	t.Setenv(cacheEnvVar, t.TempDir())

	var conditional int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("If-None-Match") == `"v1"` {
			conditional++
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("Etag", `"v1"`)
		_, _ = w.Write([]byte("first copy"))
	}))
	t.Cleanup(server.Close)

	c, err := newCache(server.Client())
	if err != nil {
		t.Fatalf("newCache: %v", err)
	}
	ctx := context.Background()
	path, err := c.Fetch(ctx, server.URL+"/a.txt")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	old := time.Now().Add(-2 * cacheTTL)
	if err := os.Chtimes(path, old, old); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	again, err := c.Fetch(ctx, server.URL+"/a.txt")
	if err != nil {
		t.Fatalf("second Fetch: %v", err)
	}
	if again != path || conditional != 1 {
		t.Fatalf("path=%s conditional=%d", again, conditional)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "first copy" {
		t.Fatalf("cached body = %q", data)
	}
}

func TestCacheServesStaleCopyWhenOffline(t *testing.T) {
	t.Setenv(cacheEnvVar, t.TempDir())

	var fail atomic.Bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			http.Error(w, "down", http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte("kept"))
	}))
	t.Cleanup(server.Close)

	c, err := newCache(server.Client())
	if err != nil {
		t.Fatalf("newCache: %v", err)
	}
	ctx := context.Background()
	path, err := c.Fetch(ctx, server.URL+"/b.txt")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	old := time.Now().Add(-2 * cacheTTL)
	_ = os.Chtimes(path, old, old)

	fail.Store(true)
	if got, err := c.Fetch(ctx, server.URL+"/b.txt"); err != nil || got != path {
		t.Fatalf("stale fetch = %q, %v", got, err)
	}
	if _, err := c.Fetch(ctx, server.URL+"/never-cached.txt"); err == nil {
		t.Fatal("expected error for an uncached failing download")
	}
}
