// Package orchestrator composes prompt building, provider invocation,
// outline parsing, and deck rendering into one end-to-end generation
// transaction, and owns the retry policy between those stages.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"github.com/slidewise/deckgen/internal/deck"
	"github.com/slidewise/deckgen/internal/llm"
	"github.com/slidewise/deckgen/internal/outline"
	"github.com/slidewise/deckgen/internal/pptx"
)

// Config tunes one Generator. Retry state is local to each Generate call;
// nothing here mutates after construction.
type Config struct {
	// ProviderTimeout bounds each individual provider call.
	ProviderTimeout time.Duration

	// MaxRetries is how many times a retryable provider failure is retried
	// after the initial attempt.
	MaxRetries uint64

	// InitialBackoff seeds the exponential backoff between provider
	// retries. Zero means the backoff package default.
	InitialBackoff time.Duration

	// DownloadBasePath prefixes the download URL in successful results.
	DownloadBasePath string
}

// DefaultConfig returns the production retry policy.
func DefaultConfig() Config {
	return Config{
		ProviderTimeout:  90 * time.Second,
		MaxRetries:       2,
		DownloadBasePath: "/api/v1/presentation/download/",
	}
}

// Generator runs the generation pipeline. Safe for concurrent use: all
// per-request state lives on the stack of Generate.
type Generator struct {
	provider llm.Provider
	renderer *pptx.Renderer
	config   Config
	logger   *slog.Logger
}

// NewGenerator wires a provider and renderer into a generator.
func NewGenerator(provider llm.Provider, renderer *pptx.Renderer, config Config, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		provider: provider,
		renderer: renderer,
		config:   config,
		logger:   logger,
	}
}

// Generate runs one request through the full pipeline and always returns a
// result envelope: no internal error kind escapes to the caller.
//
// Retry policy: provider timeouts and unavailability are retried up to
// Config.MaxRetries with exponential backoff; provider rejections are not.
// A malformed outline re-asks the full prompt+provider cycle once. Render
// failures are fatal and never retried.
func (g *Generator) Generate(ctx context.Context, req deck.GenerationRequest) deck.GenerationResult {
	id := uuid.NewString()
	logger := g.logger.With("generation_id", id, "topic", req.Topic, "provider", g.provider.Name())
	logger.Info("generation started", "slides", req.SlideCount, "style", req.Style)

	out, warning, err := g.produceOutline(ctx, req, logger)
	if err != nil {
		return g.failure(id, err, logger)
	}

	filePath, err := g.renderer.Render(ctx, out, deck.ThemeFor(req.Style), req.Language, id)
	if err != nil {
		return g.failure(id, err, logger)
	}

	message := fmt.Sprintf("Generated %d slides", len(out.Slides))
	if warning != "" {
		message += " (" + warning + ")"
	}
	logger.Info("generation finished", "path", filePath)

	return deck.GenerationResult{
		Success:        true,
		PresentationID: id,
		FilePath:       filePath,
		DownloadURL:    path.Join(g.config.DownloadBasePath, filepath.Base(filePath)),
		Message:        message,
	}
}

// produceOutline runs the prompt+provider+parse cycle, re-asking once if
// the response was malformed. The returned warning is non-empty when the
// outline was salvaged short of the requested count.
func (g *Generator) produceOutline(ctx context.Context, req deck.GenerationRequest, logger *slog.Logger) (deck.Outline, string, error) {
	userPrompt := outline.BuildPrompt(req)
	systemPrompt := outline.SystemPrompt()

	const asks = 2 // initial ask plus one re-ask on a malformed response
	var lastErr error

	for attempt := 1; attempt <= asks; attempt++ {
		raw, err := g.completeWithRetry(ctx, systemPrompt, userPrompt)
		if err != nil {
			return deck.Outline{}, "", err
		}

		out, err := outline.Parse(raw, req)
		switch {
		case err == nil:
			return out, "", nil
		case errors.Is(err, outline.ErrIncomplete):
			warning := fmt.Sprintf("model produced %d of %d requested slides; extras were not fabricated",
				len(out.Slides), req.SlideCount)
			return out, warning, nil
		case errors.Is(err, outline.ErrMalformed):
			lastErr = err
			logger.Warn("malformed model response, re-asking", "attempt", attempt, "error", err)
		default:
			return deck.Outline{}, "", err
		}
	}
	return deck.Outline{}, "", lastErr
}

// completeWithRetry issues the provider call under the configured timeout,
// retrying transient failures. Backoff state lives in this invocation.
func (g *Generator) completeWithRetry(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	policy := backoff.NewExponentialBackOff()
	if g.config.InitialBackoff > 0 {
		policy.InitialInterval = g.config.InitialBackoff
	}

	operation := func() (string, error) {
		callCtx, cancel := context.WithTimeout(ctx, g.config.ProviderTimeout)
		defer cancel()

		raw, err := g.provider.Complete(callCtx, systemPrompt, userPrompt)
		if err != nil {
			if errors.Is(err, llm.ErrRejected) || errors.Is(err, llm.ErrInvalidConfig) {
				return "", backoff.Permanent(err)
			}
			return "", err
		}
		return raw, nil
	}

	return backoff.RetryWithData(operation,
		backoff.WithContext(backoff.WithMaxRetries(policy, g.config.MaxRetries), ctx))
}

// failure maps internal errors onto a caller-safe envelope. Raw provider
// messages never reach the caller.
func (g *Generator) failure(id string, err error, logger *slog.Logger) deck.GenerationResult {
	logger.Error("generation failed", "error", err)

	var message string
	switch {
	case errors.Is(err, llm.ErrTimeout):
		message = fmt.Sprintf("The language model did not answer within the time limit after %d attempts.", 1+g.config.MaxRetries)
	case errors.Is(err, llm.ErrUnavailable):
		message = fmt.Sprintf("The language model backend is unavailable after %d attempts.", 1+g.config.MaxRetries)
	case errors.Is(err, llm.ErrRejected), errors.Is(err, llm.ErrInvalidConfig):
		message = "The language model backend rejected the request. Check the provider configuration."
	case errors.Is(err, outline.ErrMalformed):
		message = "The model response could not be parsed into slides, even after a retry. Please try again."
	case errors.Is(err, pptx.ErrRender):
		message = "The presentation file could not be written to disk."
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		message = "The request was cancelled before the presentation was finished."
	default:
		message = "An internal error occurred while generating the presentation."
	}

	return deck.GenerationResult{
		Success:        false,
		PresentationID: id,
		Message:        message,
	}
}
