package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

// ollamaDefaultURL is where a stock desktop install listens.
const ollamaDefaultURL = "http://localhost:11434"

var errEmptyCompletion = errors.New("model returned no completion")

// OllamaClient serves booking-assistant chats from a local Ollama
// server via langchaingo, so the assistant works without any API key.
type OllamaClient struct {
	backend *ollama.LLM
	model   string
}

// NewOllamaClient connects to the Ollama server at baseURL, or the
// default local port when baseURL is empty.
func NewOllamaClient(model, baseURL string) (*OllamaClient, error) {
	if model == "" {
		return nil, errors.New("ollama model is required")
	}
	if baseURL == "" {
		baseURL = ollamaDefaultURL
	}

	backend, err := ollama.New(
		ollama.WithModel(model),
		ollama.WithServerURL(baseURL),
	)
	if err != nil {
		return nil, fmt.Errorf("creating ollama client: %w", err)
	}
	return &OllamaClient{backend: backend, model: model}, nil
}

func (c *OllamaClient) Chat(ctx context.Context, messages []Message) (string, error) {
	return c.generate(ctx, messages)
}

// ChatJSON asks for a JSON-mode completion and unmarshals it into
// result. Local models still sneak prose around the body, so the
// response goes through the shared fence stripper first.
func (c *OllamaClient) ChatJSON(ctx context.Context, messages []Message, result any) error {
	text, err := c.generate(ctx, messages, llms.WithJSONMode())
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(extractJSON(text)), result); err != nil {
		return fmt.Errorf("parsing JSON response: %w (content: %s)", err, text)
	}
	return nil
}

func (c *OllamaClient) generate(ctx context.Context, messages []Message, opts ...llms.CallOption) (string, error) {
	opts = append(opts, llms.WithModel(c.model))
	resp, err := c.backend.GenerateContent(ctx, chatHistory(messages), opts...)
	if err != nil {
		return "", fmt.Errorf("ollama: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errEmptyCompletion
	}
	return resp.Choices[0].Content, nil
}

// chatHistory converts the provider-neutral transcript to langchaingo
// parts. Unknown roles degrade to human turns.
func chatHistory(messages []Message) []llms.MessageContent {
	history := make([]llms.MessageContent, 0, len(messages))
	for _, m := range messages {
		var role llms.ChatMessageType
		switch strings.ToLower(m.Role) {
		case "system":
			role = llms.ChatMessageTypeSystem
		case "assistant":
			role = llms.ChatMessageTypeAI
		default:
			role = llms.ChatMessageTypeHuman
		}
		history = append(history, llms.TextParts(role, m.Content))
	}
	return history
}
