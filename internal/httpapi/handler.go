// Package httpapi exposes the generation pipeline over HTTP: a generate
// endpoint returning the result envelope, a download endpoint for rendered
// files, and a health probe.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/slidewise/deckgen/internal/deck"
)

// Generator is the slice of the orchestrator the handler needs.
type Generator interface {
	Generate(ctx context.Context, req deck.GenerationRequest) deck.GenerationResult
}

// Handler serves the presentation API.
type Handler struct {
	generator Generator
	outputDir string
	provider  string
	logger    *slog.Logger
}

// NewHandler wires the orchestrator and output directory into a handler.
func NewHandler(generator Generator, outputDir, providerName string, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		generator: generator,
		outputDir: outputDir,
		provider:  providerName,
		logger:    logger,
	}
}

// Routes returns the API router.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Route("/api/v1/presentation", func(r chi.Router) {
		r.Post("/generate", h.generate)
		r.Get("/download/{filename}", h.download)
		r.Get("/health", h.health)
	})
	return r
}

// generateRequest mirrors the inbound request body. NumberOfSlides is a
// pointer so an omitted field (defaulted) is distinguishable from an
// explicit zero (rejected).
type generateRequest struct {
	Topic          string `json:"topic"`
	NumberOfSlides *int   `json:"number_of_slides"`
	Format         string `json:"format"`
	Style          string `json:"style"`
	Language       string `json:"language"`
	IncludeImages  bool   `json:"include_images"`
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request) {
	var body generateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeResult(w, http.StatusUnprocessableEntity, deck.GenerationResult{
			Success: false,
			Message: "Request body is not valid JSON.",
		})
		return
	}

	slideCount := 5
	if body.NumberOfSlides != nil {
		slideCount = *body.NumberOfSlides
	}
	switch body.Format {
	case "", "pptx":
	case "google-slides":
		h.writeResult(w, http.StatusNotImplemented, deck.GenerationResult{
			Success: false,
			Message: "Google Slides export is not enabled.",
		})
		return
	default:
		h.writeResult(w, http.StatusUnprocessableEntity, deck.GenerationResult{
			Success: false,
			Message: "Unsupported format: " + body.Format,
		})
		return
	}

	req, err := deck.NewGenerationRequest(body.Topic, slideCount, body.Style, body.Language, body.IncludeImages)
	if err != nil {
		if errors.Is(err, deck.ErrInvalidRequest) {
			h.writeResult(w, http.StatusUnprocessableEntity, deck.GenerationResult{
				Success: false,
				Message: err.Error(),
			})
			return
		}
		h.writeResult(w, http.StatusInternalServerError, deck.GenerationResult{
			Success: false,
			Message: "Internal error while validating the request.",
		})
		return
	}

	result := h.generator.Generate(r.Context(), req)
	status := http.StatusOK
	if !result.Success {
		status = http.StatusBadGateway
	}
	h.writeResult(w, status, result)
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")

	// The output directory is flat; anything path-like is an escape attempt.
	if filename == "" || filename != filepath.Base(filename) ||
		strings.ContainsAny(filename, "/\\") || strings.HasPrefix(filename, ".") {
		http.Error(w, "invalid file name", http.StatusBadRequest)
		return
	}
	if !strings.HasSuffix(filename, ".pptx") {
		http.Error(w, "file not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.presentationml.presentation")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	http.ServeFile(w, r, filepath.Join(h.outputDir, filename))
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"status":       "healthy",
		"llm_provider": h.provider,
	})
}

func (h *Handler) writeResult(w http.ResponseWriter, status int, result deck.GenerationResult) {
	h.writeJSON(w, status, result)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("write response", "error", err)
	}
}
