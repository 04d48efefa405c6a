// Package pptx renders a validated slide outline into a PowerPoint file.
// The package writes PresentationML directly into a zip container with no
// external dependencies, and includes a minimal reader used to verify
// rendered decks. It performs no network I/O and no LLM calls.
package pptx

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/slidewise/deckgen/internal/deck"
)

// ErrRender wraps I/O failures while writing a deck. Data-shape problems
// never surface here: the outline is validated before it reaches Render.
var ErrRender = errors.New("render failed")

// Renderer writes decks into a fixed output directory.
type Renderer struct {
	outputDir string
	logger    *slog.Logger
}

// NewRenderer creates a renderer, ensuring the output directory exists.
func NewRenderer(outputDir string, logger *slog.Logger) (*Renderer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create output dir: %v", ErrRender, err)
	}
	return &Renderer{outputDir: outputDir, logger: logger}, nil
}

// OutputDir returns the directory rendered files are written to.
func (r *Renderer) OutputDir() string {
	return r.outputDir
}

// Render writes the outline as <slug>_<id>.pptx under the output
// directory and returns the full path. The id is the generation
// identifier, which makes concurrent file names collision-resistant.
//
// The deck is written through a temp file and renamed into place, so a
// cancelled or failed render never leaves a half-written file at the
// returned path.
func (r *Renderer) Render(ctx context.Context, outline deck.Outline, theme deck.StyleTheme, language, id string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	finalPath := filepath.Join(r.outputDir, fileName(outline.Title, id))

	tmp, err := os.CreateTemp(r.outputDir, ".deckgen-*")
	if err != nil {
		return "", fmt.Errorf("%w: create temp file: %v", ErrRender, err)
	}
	tmpPath := tmp.Name()

	if err := r.writeDeck(tmp, outline, theme, language); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("%w: close temp file: %v", ErrRender, err)
	}

	if err := ctx.Err(); err != nil {
		os.Remove(tmpPath)
		return "", err
	}

	if err := os.Rename(tmpPath, finalPath); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("%w: move deck into place: %v", ErrRender, err)
	}

	r.logger.Info("deck rendered", "path", finalPath, "slides", 1+len(outline.Slides), "theme", theme.Name)
	return finalPath, nil
}

type part struct {
	name    string
	content string
}

func (r *Renderer) writeDeck(f *os.File, outline deck.Outline, theme deck.StyleTheme, language string) error {
	// Title slide plus one slide per outline entry.
	total := 1 + len(outline.Slides)

	parts := []part{
		{"[Content_Types].xml", contentTypesXML(total)},
		{"_rels/.rels", rootRelsXML()},
		{"docProps/core.xml", corePropsXML(outline.Title, language)},
		{"docProps/app.xml", appPropsXML(total)},
		{"ppt/presentation.xml", presentationXML(total)},
		{"ppt/_rels/presentation.xml.rels", presentationRelsXML(total)},
		{"ppt/slideMasters/slideMaster1.xml", slideMasterXML()},
		{"ppt/slideMasters/_rels/slideMaster1.xml.rels", slideMasterRelsXML()},
		{"ppt/slideLayouts/slideLayout1.xml", slideLayoutXML()},
		{"ppt/slideLayouts/_rels/slideLayout1.xml.rels", slideLayoutRelsXML()},
		{"ppt/theme/theme1.xml", themeXML(theme)},
		{"ppt/slides/slide1.xml", titleSlideXML(outline, theme)},
		{"ppt/slides/_rels/slide1.xml.rels", slideRelsXML()},
	}
	for i, slide := range outline.Slides {
		n := i + 2
		parts = append(parts,
			part{fmt.Sprintf("ppt/slides/slide%d.xml", n), contentSlideXML(slide, theme)},
			part{fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n), slideRelsXML()},
		)
	}

	zw := zip.NewWriter(f)
	for _, part := range parts {
		w, err := zw.Create(part.name)
		if err != nil {
			zw.Close()
			return fmt.Errorf("%w: add %s: %v", ErrRender, part.name, err)
		}
		if _, err := w.Write([]byte(part.content)); err != nil {
			zw.Close()
			return fmt.Errorf("%w: write %s: %v", ErrRender, part.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("%w: finalize package: %v", ErrRender, err)
	}
	return nil
}

// fileName builds a collision-resistant name from a title slug and the
// generation identifier.
func fileName(title, id string) string {
	return slugify(title) + "_" + id + ".pptx"
}

func slugify(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteRune('_')
		}
		if b.Len() >= 40 {
			break
		}
	}
	if b.Len() == 0 {
		return "presentation"
	}
	return b.String()
}
