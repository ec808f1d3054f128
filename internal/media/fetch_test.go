package media

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetcherDownloadsToDestination(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("opus-bytes"))
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "source.oga")
	f := NewHTTPFetcher(nil)
	require.NoError(t, f.Fetch(context.Background(), srv.URL+"/voice/a.oga", dest))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "opus-bytes", string(data))
}

func TestHTTPFetcherNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "source.oga")
	f := NewHTTPFetcher(nil)
	err := f.Fetch(context.Background(), srv.URL, dest)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")

	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr), "no file left behind on failure")
}

func TestGuessExtension(t *testing.T) {
	assert.Equal(t, ".oga", guessExtension("https://files.example/voice/a.oga"))
	assert.Equal(t, ".mp3", guessExtension("https://files.example/a.mp3?token=x"))
	assert.Equal(t, "", guessExtension("https://files.example/opaque-ref"))
	assert.Equal(t, "", guessExtension("https://files.example/file.longext"))
}
