// Package ingest turns transcript sources (plain text, markdown, PDF, or an
// http(s) URL to one of those) into the text submitted for extraction.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrEmpty means the source held no usable text.
var ErrEmpty = errors.New("transcript source is empty")

var extraneousWhitespace = regexp.MustCompile(`\s+`)

// Read loads a transcript from a local path or an http(s) URL. Remote files
// go through the download cache first.
func Read(ctx context.Context, source string) (string, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return "", ErrEmpty
	}
	if isRemote(source) {
		cache, err := newCache(nil)
		if err != nil {
			return "", err
		}
		path, err := cache.Fetch(ctx, source)
		if err != nil {
			return "", fmt.Errorf("fetch %s: %w", source, err)
		}
		if isPDF(source) {
			return readPDF(path)
		}
		return readText(path)
	}
	return ReadFile(source)
}

// ReadFile reads a local transcript. Files ending in .pdf are run through
// plain-text extraction; anything else is read as UTF-8 text.
func ReadFile(path string) (string, error) {
	if isPDF(path) {
		return readPDF(path)
	}
	return readText(path)
}

func readText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read transcript: %w", err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("%s: %w", filepath.Base(path), ErrEmpty)
	}
	return text, nil
}

func readPDF(path string) (string, error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}
	defer file.Close()

	content, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract pdf text: %w", err)
	}

	var builder strings.Builder
	if _, err := io.Copy(&builder, content); err != nil {
		return "", err
	}

	text := strings.TrimSpace(extraneousWhitespace.ReplaceAllString(builder.String(), " "))
	if text == "" {
		return "", fmt.Errorf("%s: %w", filepath.Base(path), ErrEmpty)
	}
	return text, nil
}

func isRemote(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func isPDF(source string) bool {
	if i := strings.IndexAny(source, "?#"); i >= 0 && isRemote(source) {
		source = source[:i]
	}
	return strings.EqualFold(filepath.Ext(source), ".pdf")
}
