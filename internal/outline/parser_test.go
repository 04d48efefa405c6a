package outline

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/slidewise/deckgen/internal/deck"
)

// wellFormed builds a response with n complete slide blocks.
func wellFormed(n int, withImages bool) string {
	var b strings.Builder
	b.WriteString("# Test Presentation\n")
	b.WriteString("> A short summary of the deck.\n\n")
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "## Slide %d\n", i)
		fmt.Fprintf(&b, "Title: Topic %d\n", i)
		fmt.Fprintf(&b, "- First point of slide %d\n", i)
		fmt.Fprintf(&b, "- Second point of slide %d\n", i)
		if withImages {
			fmt.Fprintf(&b, "Image: Illustration for slide %d\n", i)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func TestParse_WellFormed(t *testing.T) {
	req := mustRequest(t, "Intro to ML", 5, "professional", false)

	out, err := Parse(wellFormed(5, false), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.Title != "Test Presentation" {
		t.Errorf("unexpected deck title: %q", out.Title)
	}
	if out.Summary != "A short summary of the deck." {
		t.Errorf("unexpected summary: %q", out.Summary)
	}
	if len(out.Slides) != 5 {
		t.Fatalf("expected 5 slides, got %d", len(out.Slides))
	}
	if out.Slides[2].Title != "Topic 3" {
		t.Errorf("slide order broken: %q", out.Slides[2].Title)
	}
	if len(out.Slides[0].Bullets) != 2 {
		t.Errorf("expected 2 bullets, got %d", len(out.Slides[0].Bullets))
	}
}

func TestParse_Deterministic(t *testing.T) {
	req := mustRequest(t, "Intro to ML", 4, "professional", true)
	raw := wellFormed(4, true)

	first, err1 := Parse(raw, req)
	second, err2 := Parse(raw, req)

	if err1 != nil || err2 != nil {
		t.Fatalf("unexpected errors: %v, %v", err1, err2)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("parsing the same raw text twice yielded different outlines")
	}
}

func TestParse_ToleratesProseAndFences(t *testing.T) {
	req := mustRequest(t, "Intro to ML", 2, "professional", false)
	raw := "Sure! Here is your presentation:\n\n```\n" + wellFormed(2, false) + "```\nHope this helps!"

	out, err := Parse(raw, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Slides) != 2 {
		t.Fatalf("expected 2 slides, got %d", len(out.Slides))
	}
}

func TestParse_DiscardsDefectiveBlocks(t *testing.T) {
	req := mustRequest(t, "Intro to ML", 3, "professional", false)
	raw := wellFormed(2, false) +
		"## Slide 3\nTitle: No bullets here\n\n" + // zero bullets: discarded
		"## Slide 4\n- orphan bullet without any title line\n"

	out, err := Parse(raw, req)
	if !errors.Is(err, ErrIncomplete) {
		t.Fatalf("expected ErrIncomplete, got %v", err)
	}
	if len(out.Slides) != 2 {
		t.Fatalf("expected 2 salvaged slides, got %d", len(out.Slides))
	}
	if out.Slides[1].Title != "Topic 2" {
		t.Errorf("salvage broke ordering: %q", out.Slides[1].Title)
	}
}

func TestParse_MalformedBelowThreshold(t *testing.T) {
	req := mustRequest(t, "Intro to ML", 6, "professional", false)

	_, err := Parse(wellFormed(2, false), req)
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}

	_, err = Parse("complete garbage with no structure at all", req)
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed for garbage, got %v", err)
	}
}

func TestParse_TruncatesExtras(t *testing.T) {
	req := mustRequest(t, "Intro to ML", 3, "professional", false)

	out, err := Parse(wellFormed(7, false), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Slides) != 3 {
		t.Fatalf("expected truncation to 3 slides, got %d", len(out.Slides))
	}
	// Order preserved, tail dropped.
	for i, slide := range out.Slides {
		want := fmt.Sprintf("Topic %d", i+1)
		if slide.Title != want {
			t.Errorf("slide %d: expected %q, got %q", i, want, slide.Title)
		}
	}
}

func TestParse_IncompleteAboveThreshold(t *testing.T) {
	req := mustRequest(t, "Intro to ML", 5, "professional", false)

	out, err := Parse(wellFormed(3, false), req)
	if !errors.Is(err, ErrIncomplete) {
		t.Fatalf("expected ErrIncomplete, got %v", err)
	}
	if len(out.Slides) != 3 {
		t.Fatalf("expected 3 salvaged slides, got %d", len(out.Slides))
	}
}

func TestParse_BulletClamp(t *testing.T) {
	req := mustRequest(t, "Intro to ML", 1, "professional", false)
	long := strings.Repeat("word ", 200)
	raw := "## Slide 1\nTitle: Long bullet\n- " + long + "\n"

	out, err := Parse(raw, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := []rune(out.Slides[0].Bullets[0])
	if len(got) > deck.MaxBulletRunes {
		t.Errorf("bullet not clamped: %d runes", len(got))
	}
	if got[len(got)-1] != '…' {
		t.Error("clamped bullet missing ellipsis")
	}
}

func TestParse_ImagePromptsOnlyWhenRequested(t *testing.T) {
	raw := wellFormed(2, true)

	withImages := mustRequest(t, "Intro to ML", 2, "professional", true)
	out, err := Parse(raw, withImages)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Slides[0].ImagePrompt != "Illustration for slide 1" {
		t.Errorf("missing image prompt: %q", out.Slides[0].ImagePrompt)
	}

	withoutImages := mustRequest(t, "Intro to ML", 2, "professional", false)
	out, err = Parse(raw, withoutImages)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Slides[0].ImagePrompt != "" {
		t.Error("image prompt attached although images were not requested")
	}

	// Absent image lines are not an error even when images were requested.
	out, err = Parse(wellFormed(2, false), withImages)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Slides[0].ImagePrompt != "" {
		t.Errorf("unexpected image prompt: %q", out.Slides[0].ImagePrompt)
	}
}

func TestParse_MissingTitleLabelFallsBack(t *testing.T) {
	req := mustRequest(t, "Intro to ML", 1, "professional", false)
	raw := "## Slide 1\nNeural Networks\n- forward pass\n- backpropagation\n"

	out, err := Parse(raw, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Slides[0].Title != "Neural Networks" {
		t.Errorf("fallback title not used: %q", out.Slides[0].Title)
	}
}
