package transcribe

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeAudioFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "answer.mp3")
	require.NoError(t, os.WriteFile(path, []byte("not-really-mp3"), 0o600))
	return path
}

func TestWhisperTranscribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/audio/transcriptions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "whisper-1", r.FormValue("model"))
		assert.Equal(t, "en", r.FormValue("language"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "answer.mp3", header.Filename)

		_ = json.NewEncoder(w).Encode(map[string]string{"text": "I would build rapport."})
	}))
	defer srv.Close()

	w := NewWhisper("test-key", WithBaseURL(srv.URL))
	text, err := w.Transcribe(context.Background(), writeAudioFixture(t))
	require.NoError(t, err)
	assert.Equal(t, "I would build rapport.", text)
}

func TestWhisperTranscribeHTTPFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	w := NewWhisper("test-key", WithBaseURL(srv.URL))
	_, err := w.Transcribe(context.Background(), writeAudioFixture(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestWhisperTranscribeMissingFile(t *testing.T) {
	w := NewWhisper("test-key")
	_, err := w.Transcribe(context.Background(), filepath.Join(t.TempDir(), "absent.mp3"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open audio")
}

func TestWhisperOptions(t *testing.T) {
	w := NewWhisper("k", WithModel("whisper-large"), WithLanguage("es"), WithBaseURL("http://example/"))
	assert.Equal(t, "whisper-large", w.model)
	assert.Equal(t, "es", w.language)
	assert.Equal(t, "http://example", w.baseURL)
}
