package score

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	openAIBaseURL         = "https://api.openai.com/v1"
	openAIChatEndpoint    = "/chat/completions"
	defaultOpenAIModel    = "gpt-4o-mini"
	defaultOpenAITimeout  = 30 * time.Second
	scoringSystemTemplate = "You are a point-scoring bot that strictly replies with 0, 5 or 10.\nThis is the question: %s\n\nFollow the following points break down: %s"
)

// OpenAIScorer obtains rubric verdicts from the OpenAI chat completion API.
type OpenAIScorer struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// OpenAIOption configures an OpenAIScorer.
type OpenAIOption func(*OpenAIScorer)

// WithBaseURL overrides the API base URL (tests, proxies).
func WithBaseURL(url string) OpenAIOption {
	return func(s *OpenAIScorer) {
		s.baseURL = strings.TrimSuffix(url, "/")
	}
}

// WithModel overrides the completion model.
func WithModel(model string) OpenAIOption {
	return func(s *OpenAIScorer) {
		s.model = model
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) OpenAIOption {
	return func(s *OpenAIScorer) {
		s.client = client
	}
}

// NewOpenAIScorer builds a scorer against the OpenAI chat completion API.
func NewOpenAIScorer(apiKey string, opts ...OpenAIOption) *OpenAIScorer {
	s := &OpenAIScorer{
		apiKey:  apiKey,
		baseURL: openAIBaseURL,
		model:   defaultOpenAIModel,
		client:  &http.Client{Timeout: defaultOpenAITimeout},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// ScoreText sends the rubric system prompt and the answer, expecting a bare
// integer reply. Temperature is pinned to zero for determinism.
func (s *OpenAIScorer) ScoreText(ctx context.Context, question, rubric, answer string) (int, error) {
	payload := chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: fmt.Sprintf(scoringSystemTemplate, question, rubric)},
			{Role: "user", Content: answer},
		},
		Temperature: 0,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("marshal scoring request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+openAIChatEndpoint, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("build scoring request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("scoring request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return 0, fmt.Errorf("scoring request returned %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return 0, fmt.Errorf("decode scoring response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return 0, fmt.Errorf("scoring response has no choices")
	}

	verdict := strings.TrimSpace(decoded.Choices[0].Message.Content)
	n, err := strconv.Atoi(verdict)
	if err != nil {
		return 0, fmt.Errorf("scoring verdict %q is not an integer", verdict)
	}
	return n, nil
}
