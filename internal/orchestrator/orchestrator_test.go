package orchestrator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/slidewise/deckgen/internal/deck"
	"github.com/slidewise/deckgen/internal/llm"
	"github.com/slidewise/deckgen/internal/outline"
	"github.com/slidewise/deckgen/internal/pptx"
)

// wellFormedResponse builds a provider response with n complete slide blocks.
func wellFormedResponse(n int) string {
	var b strings.Builder
	b.WriteString("# Generated Deck\n> A compact summary.\n\n")
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "## Slide %d\nTitle: Section %d\n- point one\n- point two\n\n", i, i)
	}
	return b.String()
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.ProviderTimeout = time.Second
	cfg.MaxRetries = 2
	cfg.InitialBackoff = time.Millisecond
	return cfg
}

func newTestGenerator(t *testing.T, provider llm.Provider, cfg Config) (*Generator, string) {
	t.Helper()
	dir := t.TempDir()
	renderer, err := pptx.NewRenderer(dir, nil)
	if err != nil {
		t.Fatalf("unexpected renderer error: %v", err)
	}
	return NewGenerator(provider, renderer, cfg, nil), dir
}

func mustRequest(t *testing.T, count int) deck.GenerationRequest {
	t.Helper()
	req, err := deck.NewGenerationRequest("Intro to ML", count, "professional", "English", false)
	if err != nil {
		t.Fatalf("unexpected request error: %v", err)
	}
	return req
}

func TestGenerate_Success(t *testing.T) {
	mock := llm.NewMock(wellFormedResponse(5))
	gen, _ := newTestGenerator(t, mock, testConfig())

	result := gen.Generate(context.Background(), mustRequest(t, 5))

	if !result.Success {
		t.Fatalf("expected success, got: %s", result.Message)
	}
	if !strings.HasSuffix(result.FilePath, ".pptx") {
		t.Errorf("file path %q does not end in .pptx", result.FilePath)
	}
	if result.PresentationID == "" {
		t.Error("missing presentation ID")
	}
	if !strings.Contains(result.DownloadURL, filepath.Base(result.FilePath)) {
		t.Errorf("download URL %q does not reference the file", result.DownloadURL)
	}

	slides, err := pptx.ReadDeck(result.FilePath)
	if err != nil {
		t.Fatalf("cannot read rendered deck: %v", err)
	}
	if got := len(slides) - 1; got != 5 {
		t.Errorf("expected exactly 5 content slides, got %d", got)
	}

	if mock.Calls() != 1 {
		t.Errorf("expected a single provider call, got %d", mock.Calls())
	}
	if !strings.Contains(mock.LastUserPrompt(), "exactly 5 slides") {
		t.Error("provider did not receive the built prompt")
	}
	if mock.LastSystemPrompt() != outline.SystemPrompt() {
		t.Error("provider did not receive the system prompt")
	}
}

func TestGenerate_TimeoutRetriesExhausted(t *testing.T) {
	mock := llm.NewMockWithError(fmt.Errorf("%w: stub", llm.ErrTimeout))
	cfg := testConfig()
	cfg.MaxRetries = 2
	gen, dir := newTestGenerator(t, mock, cfg)

	result := gen.Generate(context.Background(), mustRequest(t, 5))

	if result.Success {
		t.Fatal("expected failure")
	}
	// Exactly the configured retries: one initial attempt plus two retries.
	if mock.Calls() != 3 {
		t.Errorf("expected 3 provider calls, got %d", mock.Calls())
	}
	if !strings.Contains(result.Message, "time limit") {
		t.Errorf("unexpected message: %q", result.Message)
	}
	assertNoDecks(t, dir)
}

func TestGenerate_RejectedNotRetried(t *testing.T) {
	mock := llm.NewMockWithError(fmt.Errorf("%w: bad credentials", llm.ErrRejected))
	gen, _ := newTestGenerator(t, mock, testConfig())

	result := gen.Generate(context.Background(), mustRequest(t, 5))

	if result.Success {
		t.Fatal("expected failure")
	}
	if mock.Calls() != 1 {
		t.Errorf("rejection must not be retried, got %d calls", mock.Calls())
	}
	if strings.Contains(result.Message, "bad credentials") {
		t.Error("raw provider message leaked into the result")
	}
}

func TestGenerate_TransientUnavailableRecovers(t *testing.T) {
	mock := &llm.Mock{
		Script: []llm.Step{
			{Err: fmt.Errorf("%w: stub", llm.ErrUnavailable)},
			{Response: wellFormedResponse(3)},
		},
	}
	gen, _ := newTestGenerator(t, mock, testConfig())

	result := gen.Generate(context.Background(), mustRequest(t, 3))

	if !result.Success {
		t.Fatalf("expected recovery, got: %s", result.Message)
	}
	if mock.Calls() != 2 {
		t.Errorf("expected 2 provider calls, got %d", mock.Calls())
	}
}

func TestGenerate_MalformedReasksOnce(t *testing.T) {
	mock := &llm.Mock{
		Script: []llm.Step{
			{Response: "no structure here at all"},
			{Response: wellFormedResponse(4)},
		},
	}
	gen, _ := newTestGenerator(t, mock, testConfig())

	result := gen.Generate(context.Background(), mustRequest(t, 4))

	if !result.Success {
		t.Fatalf("expected success after re-ask, got: %s", result.Message)
	}
	if mock.Calls() != 2 {
		t.Errorf("expected 2 provider calls, got %d", mock.Calls())
	}
}

func TestGenerate_MalformedTwiceFails(t *testing.T) {
	mock := llm.NewMock("still no structure")
	gen, dir := newTestGenerator(t, mock, testConfig())

	result := gen.Generate(context.Background(), mustRequest(t, 5))

	if result.Success {
		t.Fatal("expected failure")
	}
	if mock.Calls() != 2 {
		t.Errorf("expected exactly one re-ask (2 calls), got %d", mock.Calls())
	}
	if result.FilePath != "" {
		t.Errorf("failure result references a file: %q", result.FilePath)
	}
	assertNoDecks(t, dir)
}

func TestGenerate_IncompleteOutlineSurfacesWarning(t *testing.T) {
	mock := llm.NewMock(wellFormedResponse(3))
	gen, _ := newTestGenerator(t, mock, testConfig())

	result := gen.Generate(context.Background(), mustRequest(t, 5))

	if !result.Success {
		t.Fatalf("expected success with warning, got: %s", result.Message)
	}
	if !strings.Contains(result.Message, "3 of 5") {
		t.Errorf("reconciliation not documented in message: %q", result.Message)
	}

	slides, err := pptx.ReadDeck(result.FilePath)
	if err != nil {
		t.Fatalf("cannot read rendered deck: %v", err)
	}
	if got := len(slides) - 1; got != 3 {
		t.Errorf("expected 3 content slides, got %d", got)
	}
}

func TestGenerate_RenderErrorFatal(t *testing.T) {
	mock := llm.NewMock(wellFormedResponse(2))
	dir := t.TempDir()
	renderer, err := pptx.NewRenderer(dir, nil)
	if err != nil {
		t.Fatalf("unexpected renderer error: %v", err)
	}
	// Pull the output directory out from under the renderer so the file
	// write fails regardless of the uid the tests run as.
	if err := os.RemoveAll(dir); err != nil {
		t.Fatalf("remove output dir: %v", err)
	}

	gen := NewGenerator(mock, renderer, testConfig(), nil)
	result := gen.Generate(context.Background(), mustRequest(t, 2))

	if result.Success {
		t.Fatal("expected failure")
	}
	if mock.Calls() != 1 {
		t.Errorf("render failures must not re-invoke the provider, got %d calls", mock.Calls())
	}
	if !strings.Contains(result.Message, "could not be written") {
		t.Errorf("unexpected message: %q", result.Message)
	}
}

func assertNoDecks(t *testing.T, dir string) {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, "*.pptx"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("failure left rendered files behind: %v", matches)
	}
}
