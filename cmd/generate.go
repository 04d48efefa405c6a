package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/slidewise/deckgen/internal/config"
	"github.com/slidewise/deckgen/internal/deck"
	"github.com/slidewise/deckgen/internal/orchestrator"
	"github.com/slidewise/deckgen/internal/pptx"
)

var (
	slideCount    int
	styleName     string
	language      string
	includeImages bool
	outputDir     string
)

var generateCmd = &cobra.Command{
	Use:   "generate [topic]",
	Short: "Generate a slide deck for a topic",
	Long: `Generate a PowerPoint deck for a topic in one shot.

The topic is sent to the configured language model, the response is parsed
into an outline, and the outline is rendered into a .pptx file in the
output directory.

Required environment variables (depending on LLM_PROVIDER):
  OPENAI_API_KEY     - API key for openai or openrouter
  OLLAMA_BASE_URL    - Ollama endpoint (default: http://localhost:11434/v1)

Examples:
  deckgen generate "The history of tea"
  deckgen generate "Quarterly results" --slides 8 --style professional
  deckgen generate "Kubernetes basics" --images --language German`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().IntVar(&slideCount, "slides", 5, "Number of slides to request")
	generateCmd.Flags().StringVar(&styleName, "style", "professional", "Deck style: professional, casual, or academic")
	generateCmd.Flags().StringVar(&language, "language", "English", "Language of the generated content")
	generateCmd.Flags().BoolVar(&includeImages, "images", false, "Ask the model for an image suggestion per slide")
	generateCmd.Flags().StringVar(&outputDir, "output", "", "Output directory (overrides OUTPUT_DIR)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	topic := args[0]
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}
	logger := newLogger(cfg)

	// Styling
	var (
		headerColor  = lipgloss.Color("#F780FF") // Bright pink
		topicColor   = lipgloss.Color("#8BE9FD") // Cyan
		detailColor  = lipgloss.Color("#6272A4") // Muted purple
		errorColor   = lipgloss.Color("#FF5555") // Red
		successColor = lipgloss.Color("#50FA7B") // Green
	)

	headerStyle := lipgloss.NewStyle().
		Foreground(headerColor).
		Bold(true)

	topicStyle := lipgloss.NewStyle().
		Foreground(topicColor).
		Italic(true)

	detailStyle := lipgloss.NewStyle().
		Foreground(detailColor).
		Italic(true)

	errorStyle := lipgloss.NewStyle().
		Foreground(errorColor).
		Bold(true)

	successStyle := lipgloss.NewStyle().
		Foreground(successColor)

	fmt.Println()
	fmt.Println(headerStyle.Render("Topic:"))
	fmt.Println(topicStyle.Render(topic))
	fmt.Println()

	req, err := deck.NewGenerationRequest(topic, slideCount, styleName, language, includeImages)
	if err != nil {
		return fmt.Errorf("%s %w", errorStyle.Render("Error:"), err)
	}

	provider, err := newProvider(cfg)
	if err != nil {
		return fmt.Errorf("%s %w", errorStyle.Render("Error:"), err)
	}

	renderer, err := pptx.NewRenderer(cfg.OutputDir, logger)
	if err != nil {
		return fmt.Errorf("%s %w", errorStyle.Render("Error:"), err)
	}

	genCfg := orchestrator.DefaultConfig()
	genCfg.ProviderTimeout = cfg.LLMTimeout
	genCfg.MaxRetries = cfg.LLMMaxRetries
	gen := orchestrator.NewGenerator(provider, renderer, genCfg, logger)

	fmt.Println(detailStyle.Render(fmt.Sprintf("→ Asking %s for %d slides...", provider.Name(), req.SlideCount)))

	result := gen.Generate(ctx, req)
	if !result.Success {
		return fmt.Errorf("%s %s", errorStyle.Render("Error:"), result.Message)
	}

	fmt.Println(successStyle.Render("✓ " + strings.TrimSpace(result.Message)))
	fmt.Println()
	fmt.Println(headerStyle.Render("Saved to:"))
	fmt.Println(result.FilePath)
	fmt.Println()

	return nil
}
