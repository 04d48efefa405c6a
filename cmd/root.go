package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/slidewise/deckgen/internal/config"
	"github.com/slidewise/deckgen/internal/llm"
)

var rootCmd = &cobra.Command{
	Use:   "deckgen",
	Short: "Deckgen - LLM-backed slide deck generator",
	Long: `Deckgen turns a topic into a finished PowerPoint deck.

It prompts a language model for a structured outline, parses the response
with tolerance for the noise models produce, and renders the outline into
a styled .pptx file. Run it as a one-shot CLI or as an HTTP service.`,
}

// Execute runs the root command
func Execute() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger builds the process logger from config.
func newLogger(cfg config.Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
}

// newProvider builds the configured LLM provider.
func newProvider(cfg config.Config) (llm.Provider, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return llm.NewOpenAI(llm.Config{
			Model:       cfg.OpenAIModel,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
			APIKey:      cfg.OpenAIAPIKey,
			BaseURL:     cfg.OpenAIBaseURL,
		})
	case config.ProviderOpenRouter:
		return llm.NewOpenAI(llm.Config{
			Model:       cfg.OpenRouterModel,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
			APIKey:      cfg.OpenAIAPIKey,
			BaseURL:     cfg.OpenAIBaseURL,
		})
	case config.ProviderOllama:
		return llm.NewOllama(llm.Config{
			Model:       cfg.OllamaModel,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
			BaseURL:     cfg.OllamaBaseURL,
		})
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}
