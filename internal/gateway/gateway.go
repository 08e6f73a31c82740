// Package gateway talks to the action item backend over HTTP.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/csheth/minutes/internal/meeting"
)

const (
	// DefaultBaseURL is the local development backend.
	DefaultBaseURL        = "http://localhost:4000"
	defaultRequestTimeout = 15 * time.Second
	errorSnippetLimit     = 512
	requestIDHeader       = "X-Request-ID"
)

// Config describes how to reach the backend.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client issues requests against the backend's /api surface.
type Client struct {
	base    string
	timeout time.Duration
	http    *http.Client
}

// NewItem is the payload for creating a single action item.
type NewItem struct {
	Task         string  `json:"task"`
	TranscriptID string  `json:"transcriptId"`
	Owner        *string `json:"owner,omitempty"`
	DueDate      *string `json:"dueDate,omitempty"`
}

// ItemPatch carries the fields an update touches. Nil fields are not sent.
type ItemPatch struct {
	Tags      *[]string `json:"tags,omitempty"`
	Completed *bool     `json:"completed,omitempty"`
}

// TagsPatch builds a patch replacing the tag set wholesale.
func TagsPatch(tags []string) ItemPatch {
	if tags == nil {
		tags = []string{}
	}
	return ItemPatch{Tags: &tags}
}

// CompletedPatch builds a patch setting the completion flag.
func CompletedPatch(completed bool) ItemPatch {
	return ItemPatch{Completed: &completed}
}

// New builds a Client, filling defaults for unset fields.
func New(cfg Config) *Client {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &Client{
		base:    base,
		timeout: timeout,
		http:    pickHTTPClient(cfg.HTTPClient),
	}
}

func pickHTTPClient(custom *http.Client) *http.Client {
	if custom != nil {
		return custom
	}
	// Per-request deadlines come from the caller's context; this is a backstop.
	return &http.Client{Timeout: 2 * defaultRequestTimeout}
}

// BaseURL reports the normalized backend address.
func (c *Client) BaseURL() string {
	return c.base
}

// ListTranscripts returns every transcript with its nested items.
func (c *Client) ListTranscripts(ctx context.Context) ([]meeting.Transcript, error) {
	var transcripts []meeting.Transcript
	if err := c.do(ctx, "list transcripts", http.MethodGet, "/api/transcripts", nil, &transcripts); err != nil {
		return nil, err
	}
	if transcripts == nil {
		transcripts = []meeting.Transcript{}
	}
	for i := range transcripts {
		if transcripts[i].Items == nil {
			transcripts[i].Items = []meeting.ActionItem{}
		}
	}
	return transcripts, nil
}

// Extract submits raw transcript text and returns the normalized result.
func (c *Client) Extract(ctx context.Context, text string) (Extraction, error) {
	if strings.TrimSpace(text) == "" {
		return Extraction{}, ErrEmptyTranscript
	}
	var raw json.RawMessage
	payload := map[string]string{"text": text}
	if err := c.do(ctx, "extract", http.MethodPost, "/api/transcripts", payload, &raw); err != nil {
		return Extraction{}, err
	}
	ex, err := decodeExtraction(raw)
	if err != nil {
		return Extraction{}, fmt.Errorf("extract: %w", err)
	}
	return ex, nil
}

// DeleteTranscript removes a transcript. Only a 2xx status counts as success.
func (c *Client) DeleteTranscript(ctx context.Context, id string) error {
	return c.do(ctx, "delete transcript", http.MethodDelete, "/api/transcripts/"+url.PathEscape(id), nil, nil)
}

// CreateItem attaches one new item to a transcript.
func (c *Client) CreateItem(ctx context.Context, item NewItem) (meeting.ActionItem, error) {
	if strings.TrimSpace(item.TranscriptID) == "" {
		return meeting.ActionItem{}, errors.New("create item: transcript id is required")
	}
	var created meeting.ActionItem
	if err := c.do(ctx, "create item", http.MethodPost, "/api/items", item, &created); err != nil {
		return meeting.ActionItem{}, err
	}
	return normalizeItem(created), nil
}

// UpdateItem applies a partial update and returns the server's representation.
func (c *Client) UpdateItem(ctx context.Context, id string, patch ItemPatch) (meeting.ActionItem, error) {
	var updated meeting.ActionItem
	if err := c.do(ctx, "update item", http.MethodPut, "/api/items/"+url.PathEscape(id), patch, &updated); err != nil {
		return meeting.ActionItem{}, err
	}
	if updated.ID == "" {
		updated.ID = id
	}
	return normalizeItem(updated), nil
}

// DeleteItem removes an item. Only a 2xx status counts as success.
func (c *Client) DeleteItem(ctx context.Context, id string) error {
	return c.do(ctx, "delete item", http.MethodDelete, "/api/items/"+url.PathEscape(id), nil, nil)
}

func (c *Client) do(ctx context.Context, op, method, path string, body any, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	requestID := uuid.NewString()
	req.Header.Set(requestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("[gateway] %s %s failed after %s (id=%s): %v", method, path, time.Since(started), requestID, err)
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()
	log.Printf("[gateway] %s %s %d %s (id=%s)", method, path, resp.StatusCode, time.Since(started), requestID)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, errorSnippetLimit))
		return &StatusError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(snippet)),
		}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: read response: %w", op, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return fmt.Errorf("%s: %w: empty body", op, ErrUnexpectedShape)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

func normalizeItem(item meeting.ActionItem) meeting.ActionItem {
	if item.Tags == nil {
		item.Tags = []string{}
	}
	return item
}
