package outline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/slidewise/deckgen/internal/deck"
)

var (
	// ErrMalformed means the response structure could not be recovered:
	// fewer than half the requested slides survived shape checks.
	ErrMalformed = errors.New("malformed outline")

	// ErrIncomplete is a soft warning: the model under-produced but enough
	// slides were salvaged to return a usable outline. The returned outline
	// is valid despite the non-nil error.
	ErrIncomplete = errors.New("incomplete outline")
)

// Parse turns a raw model response into a validated outline.
//
// The raw text is split into candidate slide blocks on the "## Slide"
// delimiters mandated by BuildPrompt. Blocks that fail minimal shape checks
// (no title, no bullets) are discarded rather than failing the whole parse.
// If fewer than half the requested slides survive, parsing fails with
// ErrMalformed. Extra slides are truncated in order; a short-but-usable
// parse returns the outline together with ErrIncomplete.
//
// Parsing is deterministic: identical input yields an identical outline.
func Parse(raw string, req deck.GenerationRequest) (deck.Outline, error) {
	lines := strings.Split(stripCodeFences(raw), "\n")

	out := deck.Outline{Title: req.Topic}

	var (
		slides  []deck.Slide
		current *rawBlock
		inBlock bool
	)

	flush := func() {
		if current == nil {
			return
		}
		if slide, ok := current.toSlide(req.IncludeImages); ok {
			slides = append(slides, slide)
		}
		current = nil
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		switch {
		case isSlideDelimiter(trimmed):
			flush()
			current = &rawBlock{}
			inBlock = true

		case !inBlock:
			// Preamble: deck title and summary, anything else is prose noise.
			if t, ok := strings.CutPrefix(trimmed, "# "); ok {
				out.Title = strings.TrimSpace(t)
			} else if s, ok := strings.CutPrefix(trimmed, "> "); ok {
				out.Summary = strings.TrimSpace(s)
			}

		case current != nil:
			current.addLine(trimmed)
		}
	}
	flush()

	minimum := (req.SlideCount + 1) / 2
	if len(slides) < minimum {
		return deck.Outline{}, fmt.Errorf("%w: salvaged %d of %d requested slides",
			ErrMalformed, len(slides), req.SlideCount)
	}

	if len(slides) > req.SlideCount {
		slides = slides[:req.SlideCount]
	}
	out.Slides = slides

	if len(slides) < req.SlideCount {
		return out, fmt.Errorf("%w: salvaged %d of %d requested slides",
			ErrIncomplete, len(slides), req.SlideCount)
	}
	return out, nil
}

// rawBlock accumulates the labelled lines of one candidate slide block.
type rawBlock struct {
	title       string
	bullets     []string
	imagePrompt string
}

func (b *rawBlock) addLine(trimmed string) {
	switch {
	case trimmed == "":

	case hasLabel(trimmed, "Title:"):
		if b.title == "" {
			b.title = strings.TrimSpace(trimmed[len("Title:"):])
		}

	case hasLabel(trimmed, "Image:"):
		if b.imagePrompt == "" {
			b.imagePrompt = strings.TrimSpace(trimmed[len("Image:"):])
		}

	case isBullet(trimmed):
		bullet := clampBullet(cutBulletMarker(trimmed))
		if bullet != "" {
			b.bullets = append(b.bullets, bullet)
		}

	case b.title == "":
		// Models sometimes drop the Title: label; take the first plain line.
		b.title = trimmed
	}
}

// toSlide applies the minimal shape checks. A block without a title or
// without bullets is not salvageable.
func (b *rawBlock) toSlide(includeImages bool) (deck.Slide, bool) {
	if b.title == "" || len(b.bullets) == 0 {
		return deck.Slide{}, false
	}
	slide := deck.Slide{Title: b.title, Bullets: b.bullets}
	if includeImages {
		slide.ImagePrompt = b.imagePrompt
	}
	return slide, true
}

func isSlideDelimiter(trimmed string) bool {
	lower := strings.ToLower(trimmed)
	return strings.HasPrefix(lower, "## slide") || strings.HasPrefix(lower, "##slide")
}

var bulletMarkers = []string{"- ", "* ", "• "}

func isBullet(trimmed string) bool {
	for _, m := range bulletMarkers {
		if strings.HasPrefix(trimmed, m) {
			return true
		}
	}
	return false
}

func cutBulletMarker(trimmed string) string {
	for _, m := range bulletMarkers {
		if rest, ok := strings.CutPrefix(trimmed, m); ok {
			return strings.TrimSpace(rest)
		}
	}
	return trimmed
}

func hasLabel(trimmed, label string) bool {
	return len(trimmed) >= len(label) && strings.EqualFold(trimmed[:len(label)], label)
}

// clampBullet enforces the per-bullet length ceiling.
func clampBullet(s string) string {
	runes := []rune(s)
	if len(runes) <= deck.MaxBulletRunes {
		return s
	}
	return string(runes[:deck.MaxBulletRunes-1]) + "…"
}

// stripCodeFences drops Markdown fence lines; models wrap output in them
// despite instructions not to.
func stripCodeFences(raw string) string {
	if !strings.Contains(raw, "```") {
		return raw
	}
	var b strings.Builder
	for _, line := range strings.Split(raw, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
