package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// OpenAI implements Provider against the OpenAI API or any
// OpenAI-compatible gateway (OpenRouter) selected via Config.BaseURL.
type OpenAI struct {
	client openai.Client
	config Config
	name   string
}

// NewOpenAI creates a cloud-backed provider. The API key falls back to the
// OPENAI_API_KEY environment variable. The client's built-in retries are
// disabled: the orchestrator owns retry policy.
func NewOpenAI(config Config) (*OpenAI, error) {
	apiKey := config.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%w: missing API key (set OPENAI_API_KEY or provide in config)", ErrInvalidConfig)
	}
	if config.Model == "" {
		return nil, fmt.Errorf("%w: missing model name", ErrInvalidConfig)
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	name := "openai"
	if config.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(config.BaseURL))
		name = "openrouter"
	}

	return &OpenAI{
		client: openai.NewClient(opts...),
		config: config,
		name:   name,
	}, nil
}

// Complete sends the prompts as a single chat completion request.
func (o *OpenAI) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if userPrompt == "" {
		return "", fmt.Errorf("%w: prompt cannot be empty", ErrInvalidConfig)
	}

	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(o.config.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
	}
	if o.config.Temperature > 0 {
		params.Temperature = openai.Float(o.config.Temperature)
	}
	if o.config.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(o.config.MaxTokens))
	}

	completion, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", o.classify(err)
	}

	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: empty completion", ErrRejected)
	}
	return completion.Choices[0].Message.Content, nil
}

// Name returns the provider identifier.
func (o *OpenAI) Name() string {
	return o.name
}

// classify maps transport and API failures onto the uniform taxonomy.
func (o *OpenAI) classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s request deadline exceeded", ErrTimeout, o.name)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == http.StatusRequestTimeout:
			return fmt.Errorf("%w: %s returned status %d", ErrTimeout, o.name, apiErr.StatusCode)
		case apiErr.StatusCode >= http.StatusInternalServerError,
			apiErr.StatusCode == http.StatusTooManyRequests:
			return fmt.Errorf("%w: %s returned status %d", ErrUnavailable, o.name, apiErr.StatusCode)
		default:
			return fmt.Errorf("%w: %s returned status %d", ErrRejected, o.name, apiErr.StatusCode)
		}
	}

	return fmt.Errorf("%w: %s request failed: %v", ErrUnavailable, o.name, err)
}
