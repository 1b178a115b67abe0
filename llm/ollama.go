package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	defaultOllamaBaseURL = "http://localhost:11434"
	defaultOllamaModel   = "mistral"
)

// OllamaClient talks to an Ollama-compatible /api/generate endpoint.
type OllamaClient struct {
	BaseURL string
	Model   string

	httpClient *http.Client
}

// NewOllamaClient reads LLM_BASE_URL and LLM_MODEL from the environment.
func NewOllamaClient() *OllamaClient {
	baseURL := strings.TrimRight(os.Getenv("LLM_BASE_URL"), "/")
	if baseURL == "" {
		baseURL = defaultOllamaBaseURL
	}
	model := os.Getenv("LLM_MODEL")
	if model == "" {
		model = defaultOllamaModel
	}
	return &OllamaClient{
		BaseURL: baseURL,
		Model:   model,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

type ollamaRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options"`
}

type ollamaResponse struct {
	Response string `json:"response"`
}

func (c *OllamaClient) Generate(ctx context.Context, prompt, system string) (string, error) {
	fullPrompt := prompt
	if system != "" {
		fullPrompt = system + "\n" + prompt
	}

	body, err := json.Marshal(ollamaRequest{
		Model:  c.Model,
		Prompt: fullPrompt,
		Stream: false,
		Options: map[string]any{
			"temperature": 0.7,
			"num_predict": 2000,
		},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", parseOllamaError(resp)
	}

	var response ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", err
	}

	text := strings.TrimSpace(response.Response)
	if text == "" {
		return "", errors.New("assistant returned an empty message")
	}
	return text, nil
}

func parseOllamaError(resp *http.Response) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil || len(data) == 0 {
		return fmt.Errorf("llm api error: %s", resp.Status)
	}

	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("llm api error: %s", resp.Status)
	}

	if msg, ok := payload["error"].(string); ok && msg != "" {
		return errors.New(msg)
	}
	return fmt.Errorf("llm api error: %s", resp.Status)
}
