// Package deck defines the domain model for presentation generation:
// the validated request, the parsed slide outline, the style theme table,
// and the result envelope handed back to callers.
package deck

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidRequest = errors.New("invalid generation request")
)

const (
	// MinSlides and MaxSlides bound the accepted slide count.
	MinSlides = 1
	MaxSlides = 50

	// MaxBulletRunes is the per-bullet length ceiling. Longer bullets are
	// clamped during parsing so runaway model output cannot corrupt layout.
	MaxBulletRunes = 280

	// DefaultLanguage is used when the request leaves the language empty.
	DefaultLanguage = "English"
)

// Style selects the visual and editorial tone of the generated deck.
type Style string

const (
	StyleProfessional Style = "professional"
	StyleCasual       Style = "casual"
	StyleAcademic     Style = "academic"
)

// ParseStyle validates a raw style string. An empty string maps to
// StyleProfessional, the original default.
func ParseStyle(s string) (Style, error) {
	switch Style(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return StyleProfessional, nil
	case StyleProfessional:
		return StyleProfessional, nil
	case StyleCasual:
		return StyleCasual, nil
	case StyleAcademic:
		return StyleAcademic, nil
	default:
		return "", fmt.Errorf("%w: unknown style %q", ErrInvalidRequest, s)
	}
}

// GenerationRequest is one validated request for a slide deck.
// Construct it with NewGenerationRequest; zero values are not usable.
type GenerationRequest struct {
	Topic         string
	SlideCount    int
	Style         Style
	Language      string
	IncludeImages bool
}

// NewGenerationRequest validates raw inputs and returns a request the
// pipeline can trust. All failures wrap ErrInvalidRequest.
func NewGenerationRequest(topic string, slideCount int, style, language string, includeImages bool) (GenerationRequest, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return GenerationRequest{}, fmt.Errorf("%w: topic is required", ErrInvalidRequest)
	}
	if slideCount < MinSlides || slideCount > MaxSlides {
		return GenerationRequest{}, fmt.Errorf("%w: slide count must be between %d and %d, got %d",
			ErrInvalidRequest, MinSlides, MaxSlides, slideCount)
	}
	parsedStyle, err := ParseStyle(style)
	if err != nil {
		return GenerationRequest{}, err
	}
	language = strings.TrimSpace(language)
	if language == "" {
		language = DefaultLanguage
	}

	return GenerationRequest{
		Topic:         topic,
		SlideCount:    slideCount,
		Style:         parsedStyle,
		Language:      language,
		IncludeImages: includeImages,
	}, nil
}

// Slide is one validated slide: a non-empty title, at least one bullet,
// and an optional image description when images were requested.
type Slide struct {
	Title       string
	Bullets     []string
	ImagePrompt string
}

// Outline is the validated intermediate representation between raw model
// text and the rendered file. It is transient: built by the parser,
// consumed immediately by the renderer.
type Outline struct {
	Title   string
	Summary string
	Slides  []Slide
}

// GenerationResult is the envelope handed back to callers. It is created
// and owned solely by the orchestrator.
type GenerationResult struct {
	Success        bool   `json:"success"`
	PresentationID string `json:"presentation_id,omitempty"`
	FilePath       string `json:"file_path,omitempty"`
	DownloadURL    string `json:"download_url,omitempty"`
	Message        string `json:"message"`
}
