package ingest

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/natefinch/atomic"
)

const (
	cacheEnvVar        = "MINUTES_CACHE_DIR"
	cacheSubdir        = "minutes/transcripts"
	cacheTTL           = 24 * time.Hour
	metaSuffix         = ".meta"
	defaultHTTPTimeout = 60 * time.Second
	maxTranscriptBytes = 32 << 20
)

// cache keeps downloaded transcript files on disk and revalidates them with
// ETag / Last-Modified once they are older than cacheTTL.
type cache struct {
	dir    string
	client *http.Client
}

type cacheMeta struct {
	URL          string    `json:"url"`
	ETag         string    `json:"etag"`
	LastModified string    `json:"lastModified"`
	CachedAt     time.Time `json:"cachedAt"`
	Size         int64     `json:"size"`
}

func newCache(client *http.Client) (*cache, error) {
	dir := os.Getenv(cacheEnvVar)
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			base = filepath.Join(os.TempDir(), "minutes-cache")
		}
		dir = filepath.Join(base, cacheSubdir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &cache{dir: dir, client: client}, nil
}

// Fetch returns a local path holding the body of rawURL. A stale copy is
// served when revalidation fails.
func (c *cache) Fetch(ctx context.Context, rawURL string) (string, error) {
	dataPath, metaPath := c.pathsFor(rawURL)
	info, statErr := os.Stat(dataPath)
	if statErr == nil && info.Size() > 0 && time.Since(info.ModTime()) < cacheTTL {
		return dataPath, nil
	}
	if statErr != nil {
		info = nil
	}

	meta, _ := readMeta(metaPath)
	path, err := c.download(ctx, rawURL, dataPath, metaPath, meta, info)
	if err == nil {
		return path, nil
	}
	if info != nil && info.Size() > 0 {
		return dataPath, nil
	}
	return "", err
}

func (c *cache) download(ctx context.Context, rawURL, dataPath, metaPath string, meta cacheMeta, current os.FileInfo) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	if current != nil && current.Size() > 0 {
		if meta.ETag != "" {
			req.Header.Set("If-None-Match", meta.ETag)
		}
		if meta.LastModified != "" {
			req.Header.Set("If-Modified-Since", meta.LastModified)
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNotModified:
		if current != nil && current.Size() > 0 {
			meta.CachedAt = time.Now().UTC()
			_ = writeMeta(metaPath, meta)
			now := time.Now()
			_ = os.Chtimes(dataPath, now, now)
			return dataPath, nil
		}
		return c.download(ctx, rawURL, dataPath, metaPath, cacheMeta{}, nil)
	case http.StatusOK:
		return c.saveBody(resp, dataPath, metaPath)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("download failed: %s (%s)", resp.Status, strings.TrimSpace(string(body)))
	}
}

func (c *cache) saveBody(resp *http.Response, dataPath, metaPath string) (string, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxTranscriptBytes+1))
	if err != nil {
		return "", err
	}
	if len(body) > maxTranscriptBytes {
		return "", fmt.Errorf("download exceeds %d bytes", maxTranscriptBytes)
	}
	if err := atomic.WriteFile(dataPath, bytes.NewReader(body)); err != nil {
		return "", err
	}

	meta := cacheMeta{
		URL:          resp.Request.URL.String(),
		ETag:         resp.Header.Get("Etag"),
		LastModified: resp.Header.Get("Last-Modified"),
		CachedAt:     time.Now().UTC(),
		Size:         int64(len(body)),
	}
	if err := writeMeta(metaPath, meta); err != nil {
		return "", err
	}
	return dataPath, nil
}

func (c *cache) pathsFor(rawURL string) (string, string) {
	key := cacheKey(rawURL)
	ext := ".txt"
	if isPDF(rawURL) {
		ext = ".pdf"
	}
	return filepath.Join(c.dir, key+ext), filepath.Join(c.dir, key+metaSuffix)
}

func cacheKey(rawURL string) string {
	sum := sha1.Sum([]byte(strings.TrimSpace(rawURL)))
	return hex.EncodeToString(sum[:])
}

func readMeta(path string) (cacheMeta, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return cacheMeta{}, err
	}
	var meta cacheMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return cacheMeta{}, err
	}
	return meta, nil
}

func writeMeta(path string, meta cacheMeta) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	return atomic.WriteFile(path, bytes.NewReader(data))
}
