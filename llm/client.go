// Package llm wraps the generative backends used by the travel pipeline.
// Two backends are supported: OpenAI chat completions and a local
// Ollama-compatible server. Both produce plain text; structured output is
// recovered by extracting the first JSON object from the reply.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const defaultSystemMessage = "You are an assistant specialized in generating travel programs. Always answer with valid JSON."

// Client generates a text completion for a prompt with an optional system
// framing message.
type Client interface {
	Generate(ctx context.Context, prompt, system string) (string, error)
}

var jsonBlockPattern = regexp.MustCompile(`(?s)(\{.*\})`)

// ErrNoJSON is returned when a generative reply contains no parseable JSON
// object.
var ErrNoJSON = errors.New("response is not valid JSON")

// GenerateDocument asks the backend for a structured reply and parses the
// first brace-delimited JSON block found in the raw text. A reply with no
// valid JSON fails with ErrNoJSON; nothing is retried.
func GenerateDocument(ctx context.Context, c Client, prompt, system string) (map[string]any, error) {
	if system == "" {
		system = defaultSystemMessage
	}
	reply, err := c.Generate(ctx, prompt, system)
	if err != nil {
		return nil, err
	}
	return ExtractDocument(reply)
}

// ExtractDocument pulls the first JSON object out of free text.
func ExtractDocument(text string) (map[string]any, error) {
	match := jsonBlockPattern.FindStringSubmatch(text)
	if match == nil {
		return nil, ErrNoJSON
	}
	var doc map[string]any
	if err := json.Unmarshal([]byte(match[1]), &doc); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNoJSON, err)
	}
	return doc, nil
}

// NewFromEnv selects a backend from LLM_PROVIDER ("openai" or "ollama",
// defaulting to ollama so the service runs against a local model out of the
// box).
func NewFromEnv() Client {
	if strings.EqualFold(os.Getenv("LLM_PROVIDER"), "openai") {
		return NewOpenAIClient()
	}
	return NewOllamaClient()
}

// OpenAIClient talks to the OpenAI chat completions API.
type OpenAIClient struct {
	client openai.Client
	model  string
}

// NewOpenAIClient reads OPENAI_API_KEY and LLM_MODEL from the environment.
func NewOpenAIClient() *OpenAIClient {
	model := os.Getenv("LLM_MODEL")
	if model == "" {
		model = openai.ChatModelGPT4oMini
	}
	return &OpenAIClient{
		client: openai.NewClient(option.WithAPIKey(strings.TrimSpace(os.Getenv("OPENAI_API_KEY")))),
		model:  model,
	}
}

func (c *OpenAIClient) Generate(ctx context.Context, prompt, system string) (string, error) {
	messages := []openai.ChatCompletionMessageParamUnion{}
	if system != "" {
		messages = append(messages, openai.SystemMessage(system))
	}
	messages = append(messages, openai.UserMessage(prompt))

	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    c.model,
		Messages: messages,
	})
	if err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("assistant returned an empty message")
	}
	text := strings.TrimSpace(completion.Choices[0].Message.Content)
	if text == "" {
		return "", errors.New("assistant returned an empty message")
	}
	return text, nil
}
