package deck

import (
	"errors"
	"strings"
	"testing"
)

func TestNewGenerationRequest_Valid(t *testing.T) {
	req, err := NewGenerationRequest("  Intro to ML  ", 5, "professional", "", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if req.Topic != "Intro to ML" {
		t.Errorf("topic not trimmed: %q", req.Topic)
	}
	if req.SlideCount != 5 {
		t.Errorf("expected 5 slides, got %d", req.SlideCount)
	}
	if req.Style != StyleProfessional {
		t.Errorf("unexpected style: %s", req.Style)
	}
	if req.Language != DefaultLanguage {
		t.Errorf("expected default language, got %q", req.Language)
	}
}

func TestNewGenerationRequest_Invalid(t *testing.T) {
	cases := []struct {
		name  string
		topic string
		count int
		style string
	}{
		{"empty topic", "", 5, "professional"},
		{"whitespace topic", "   ", 5, "professional"},
		{"zero slides", "Go", 0, "professional"},
		{"negative slides", "Go", -1, "professional"},
		{"too many slides", "Go", 51, "professional"},
		{"unknown style", "Go", 5, "dramatic"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewGenerationRequest(tc.topic, tc.count, tc.style, "English", false)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, ErrInvalidRequest) {
				t.Errorf("expected ErrInvalidRequest, got %v", err)
			}
		})
	}
}

func TestParseStyle_Normalizes(t *testing.T) {
	style, err := ParseStyle("  Academic ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if style != StyleAcademic {
		t.Errorf("expected academic, got %s", style)
	}

	style, err = ParseStyle("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if style != StyleProfessional {
		t.Errorf("empty style should default to professional, got %s", style)
	}
}

func TestThemeFor_AllStyles(t *testing.T) {
	for _, style := range []Style{StyleProfessional, StyleCasual, StyleAcademic} {
		theme := ThemeFor(style)
		if theme.Name != string(style) {
			t.Errorf("theme name %q does not match style %q", theme.Name, style)
		}
		for _, c := range []string{theme.Background, theme.Box, theme.Title, theme.Body, theme.Accent} {
			if len(c) != 6 || strings.HasPrefix(c, "#") {
				t.Errorf("style %s: color %q is not bare RRGGBB hex", style, c)
			}
		}
		if theme.FontFamily == "" || theme.TitleSize == 0 || theme.BodySize == 0 {
			t.Errorf("style %s: incomplete theme %+v", style, theme)
		}
	}
}

func TestThemeFor_UnknownFallsBack(t *testing.T) {
	theme := ThemeFor(Style("dramatic"))
	if theme.Name != "professional" {
		t.Errorf("unknown style should fall back to professional, got %s", theme.Name)
	}
}
