// Package config loads process-wide configuration from the environment.
// Configuration is read once at startup and treated as read-only for the
// lifetime of the process.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Provider selector values.
const (
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
	ProviderOllama     = "ollama"
)

const openRouterBaseURL = "https://openrouter.ai/api/v1"

// Config holds everything the service needs at startup.
type Config struct {
	HTTPAddr  string
	OutputDir string
	LogLevel  slog.Level

	Provider        string
	OpenAIAPIKey    string
	OpenAIBaseURL   string
	OpenAIModel     string
	OpenRouterModel string
	OllamaBaseURL   string
	OllamaModel     string

	Temperature float64
	MaxTokens   int

	LLMTimeout    time.Duration
	LLMMaxRetries uint64
}

// Load reads configuration from the environment and validates the parts
// the selected provider needs.
func Load() (Config, error) {
	c := Config{
		HTTPAddr:        envOr("HTTP_ADDR", ":8000"),
		OutputDir:       envOr("OUTPUT_DIR", "presentations"),
		Provider:        strings.ToLower(envOr("LLM_PROVIDER", ProviderOpenAI)),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:   os.Getenv("OPENAI_BASE_URL"),
		OpenAIModel:     envOr("OPENAI_MODEL", "gpt-4o-mini"),
		OpenRouterModel: envOr("OPENROUTER_MODEL", "google/gemini-flash-1.5"),
		OllamaBaseURL:   envOr("OLLAMA_BASE_URL", "http://localhost:11434/v1"),
		OllamaModel:     envOr("OLLAMA_MODEL", "llama3.2"),
		Temperature:     0.7,
		MaxTokens:       4000,
		LLMTimeout:      90 * time.Second,
		LLMMaxRetries:   2,
	}

	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 || f > 2 {
			return Config{}, fmt.Errorf("invalid LLM_TEMPERATURE %q (want a number in [0, 2])", v)
		}
		c.Temperature = f
	}

	if v := os.Getenv("LLM_MAX_TOKENS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("invalid LLM_MAX_TOKENS %q (want a positive integer)", v)
		}
		c.MaxTokens = n
	}

	if v := os.Getenv("LLM_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid LLM_TIMEOUT %q: %w", v, err)
		}
		c.LLMTimeout = d
	}

	if v := os.Getenv("LLM_MAX_RETRIES"); v != "" {
		n, err := strconv.ParseUint(v, 10, 8)
		if err != nil {
			return Config{}, fmt.Errorf("invalid LLM_MAX_RETRIES %q: %w", v, err)
		}
		c.LLMMaxRetries = n
	}

	level, err := parseLogLevel(envOr("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, err
	}
	c.LogLevel = level

	switch c.Provider {
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return Config{}, fmt.Errorf("OPENAI_API_KEY is required when LLM_PROVIDER=%s", ProviderOpenAI)
		}
	case ProviderOpenRouter:
		if c.OpenAIAPIKey == "" {
			return Config{}, fmt.Errorf("OPENAI_API_KEY is required when LLM_PROVIDER=%s", ProviderOpenRouter)
		}
		if c.OpenAIBaseURL == "" {
			c.OpenAIBaseURL = openRouterBaseURL
		}
	case ProviderOllama:
		// The local daemon needs no credential.
	default:
		return Config{}, fmt.Errorf("invalid LLM_PROVIDER %q (want %s, %s, or %s)",
			c.Provider, ProviderOpenAI, ProviderOpenRouter, ProviderOllama)
	}

	return c, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
}
