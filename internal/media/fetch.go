package media

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// Fetcher retrieves raw audio bytes for a source reference into a local
// file owned by the calling job.
type Fetcher interface {
	Fetch(ctx context.Context, sourceRef, destPath string) error
}

// FetchFunc adapts a function to the Fetcher interface.
type FetchFunc func(ctx context.Context, sourceRef, destPath string) error

func (f FetchFunc) Fetch(ctx context.Context, sourceRef, destPath string) error {
	return f(ctx, sourceRef, destPath)
}

// HTTPFetcher downloads source references over HTTP(S).
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher builds an HTTP fetcher. A nil client uses the default.
func NewHTTPFetcher(client *http.Client) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPFetcher{client: client}
}

// Fetch streams the reference into destPath. Partial downloads are removed.
func (f *HTTPFetcher) Fetch(ctx context.Context, sourceRef, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceRef, nil)
	if err != nil {
		return fmt.Errorf("build fetch request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %q: %w", sourceRef, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch %q returned %d", sourceRef, resp.StatusCode)
	}

	dest, err := os.OpenFile(destPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("create fetch destination: %w", err)
	}

	if _, err := io.Copy(dest, resp.Body); err != nil {
		_ = dest.Close()
		_ = os.Remove(destPath)
		return fmt.Errorf("download %q: %w", sourceRef, err)
	}
	if err := dest.Close(); err != nil {
		_ = os.Remove(destPath)
		return fmt.Errorf("finish download %q: %w", sourceRef, err)
	}
	return nil
}

// guessExtension keeps the source extension for transcoder input when the
// reference ends with a recognizable one.
func guessExtension(sourceRef string) string {
	trimmed := sourceRef
	if i := strings.IndexAny(trimmed, "?#"); i >= 0 {
		trimmed = trimmed[:i]
	}
	if i := strings.LastIndex(trimmed, "."); i >= 0 && len(trimmed)-i <= 5 {
		return trimmed[i:]
	}
	return ""
}
