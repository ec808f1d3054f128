// Package transcribe converts transcoded audio files to text through the
// Whisper transcription API.
package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	whisperBaseURL         = "https://api.openai.com/v1"
	whisperEndpoint        = "/audio/transcriptions"
	defaultWhisperModel    = "whisper-1"
	defaultWhisperLanguage = "en"
	defaultWhisperTimeout  = 60 * time.Second
)

// Whisper transcribes audio through the hosted Whisper endpoint.
type Whisper struct {
	apiKey   string
	baseURL  string
	model    string
	language string
	client   *http.Client
}

// Option configures a Whisper client.
type Option func(*Whisper)

// WithBaseURL overrides the API base URL (tests, proxies).
func WithBaseURL(url string) Option {
	return func(w *Whisper) {
		w.baseURL = strings.TrimSuffix(url, "/")
	}
}

// WithModel overrides the transcription model.
func WithModel(model string) Option {
	return func(w *Whisper) {
		w.model = model
	}
}

// WithLanguage overrides the transcription language hint.
func WithLanguage(language string) Option {
	return func(w *Whisper) {
		w.language = language
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(w *Whisper) {
		w.client = client
	}
}

// NewWhisper builds a Whisper transcription client.
func NewWhisper(apiKey string, opts ...Option) *Whisper {
	w := &Whisper{
		apiKey:   apiKey,
		baseURL:  whisperBaseURL,
		model:    defaultWhisperModel,
		language: defaultWhisperLanguage,
		client:   &http.Client{Timeout: defaultWhisperTimeout},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

type transcriptionResponse struct {
	Text string `json:"text"`
}

// Transcribe uploads the audio file and returns the recognized text.
func (w *Whisper) Transcribe(ctx context.Context, audioPath string) (string, error) {
	file, err := os.Open(audioPath)
	if err != nil {
		return "", fmt.Errorf("open audio %q: %w", audioPath, err)
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return "", fmt.Errorf("build transcription form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("copy audio into form: %w", err)
	}
	if err := writer.WriteField("model", w.model); err != nil {
		return "", fmt.Errorf("build transcription form: %w", err)
	}
	if w.language != "" {
		if err := writer.WriteField("language", w.language); err != nil {
			return "", fmt.Errorf("build transcription form: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("finalize transcription form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.baseURL+whisperEndpoint, &buf)
	if err != nil {
		return "", fmt.Errorf("build transcription request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+w.apiKey)

	resp, err := w.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("transcription request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("transcription request returned %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var decoded transcriptionResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode transcription response: %w", err)
	}
	return decoded.Text, nil
}
