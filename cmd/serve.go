package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/slidewise/deckgen/internal/config"
	"github.com/slidewise/deckgen/internal/httpapi"
	"github.com/slidewise/deckgen/internal/orchestrator"
	"github.com/slidewise/deckgen/internal/pptx"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the presentation API server",
	Long: `Run the HTTP API for slide deck generation.

Endpoints:
  POST /api/v1/presentation/generate             - generate a deck
  GET  /api/v1/presentation/download/{filename}  - download a rendered deck
  GET  /api/v1/presentation/health               - health probe

Configuration comes from the environment; see HTTP_ADDR, OUTPUT_DIR, and
the LLM_PROVIDER family of variables.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	provider, err := newProvider(cfg)
	if err != nil {
		return err
	}

	renderer, err := pptx.NewRenderer(cfg.OutputDir, logger)
	if err != nil {
		return err
	}

	genCfg := orchestrator.DefaultConfig()
	genCfg.ProviderTimeout = cfg.LLMTimeout
	genCfg.MaxRetries = cfg.LLMMaxRetries
	gen := orchestrator.NewGenerator(provider, renderer, genCfg, logger)

	handler := httpapi.NewHandler(gen, cfg.OutputDir, cfg.Provider, logger)
	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", cfg.HTTPAddr, "provider", cfg.Provider)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
