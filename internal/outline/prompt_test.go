package outline

import (
	"strings"
	"testing"

	"github.com/slidewise/deckgen/internal/deck"
)

func mustRequest(t *testing.T, topic string, count int, style string, images bool) deck.GenerationRequest {
	t.Helper()
	req, err := deck.NewGenerationRequest(topic, count, style, "English", images)
	if err != nil {
		t.Fatalf("unexpected request error: %v", err)
	}
	return req
}

func TestBuildPrompt_EmbedsContract(t *testing.T) {
	req := mustRequest(t, "Intro to ML", 5, "academic", false)
	prompt := BuildPrompt(req)

	for _, want := range []string{
		`"Intro to ML"`,
		"exactly 5 slides",
		"Language: English",
		"scholarly language",
		"## Slide 1",
		"Title: <short slide title>",
		"numbered 1 through 5",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}

	if strings.Contains(prompt, "Image:") {
		t.Error("prompt mentions images although none were requested")
	}
}

func TestBuildPrompt_ImageInstruction(t *testing.T) {
	req := mustRequest(t, "Coral reefs", 3, "casual", true)
	prompt := BuildPrompt(req)

	if !strings.Contains(prompt, "Image: <one-line description of a supporting image>") {
		t.Error("prompt missing image format line")
	}
	if !strings.Contains(prompt, "one Image: line") {
		t.Error("prompt missing per-slide image instruction")
	}
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	req := mustRequest(t, "Quantum computing", 7, "professional", true)
	if BuildPrompt(req) != BuildPrompt(req) {
		t.Error("identical requests produced different prompts")
	}
}

func TestSystemPrompt_NotEmpty(t *testing.T) {
	if SystemPrompt() == "" {
		t.Error("system prompt is empty")
	}
}
