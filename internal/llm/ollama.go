package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const defaultOllamaBaseURL = "http://localhost:11434/v1"

// Ollama implements Provider against a local Ollama daemon via its
// OpenAI-compatible chat completions endpoint. It differs from the cloud
// provider only in transport: plain HTTP to localhost, no credential.
type Ollama struct {
	baseURL string
	config  Config
	client  *http.Client
}

// NewOllama creates a local-daemon provider. An empty base URL falls back
// to the daemon's default address.
func NewOllama(config Config) (*Ollama, error) {
	if config.Model == "" {
		return nil, fmt.Errorf("%w: missing model name", ErrInvalidConfig)
	}
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = defaultOllamaBaseURL
	}
	return &Ollama{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		config:  config,
		client:  &http.Client{},
	}, nil
}

// chatRequest and chatResponse mirror the OpenAI-compatible API shapes.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Stream      bool          `json:"stream"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Complete sends a single non-streaming chat completion to the daemon.
func (p *Ollama) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if userPrompt == "" {
		return "", fmt.Errorf("%w: prompt cannot be empty", ErrInvalidConfig)
	}

	reqBody := chatRequest{
		Model: p.config.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Stream:      false,
		Temperature: p.config.Temperature,
		MaxTokens:   p.config.MaxTokens,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: ollama request deadline exceeded", ErrTimeout)
		}
		if errors.Is(err, context.Canceled) {
			return "", err
		}
		return "", fmt.Errorf("%w: cannot reach ollama daemon: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if resp.StatusCode >= http.StatusInternalServerError {
			return "", fmt.Errorf("%w: ollama returned status %d", ErrUnavailable, resp.StatusCode)
		}
		return "", fmt.Errorf("%w: ollama returned status %d: %s", ErrRejected, resp.StatusCode, string(respBody))
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("%w: undecodable ollama response: %v", ErrUnavailable, err)
	}
	if chatResp.Error != nil {
		return "", fmt.Errorf("%w: ollama error: %s", ErrRejected, chatResp.Error.Message)
	}
	if len(chatResp.Choices) == 0 || chatResp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: empty completion", ErrRejected)
	}

	return chatResp.Choices[0].Message.Content, nil
}

// Name returns the provider identifier.
func (p *Ollama) Name() string {
	return "ollama"
}
