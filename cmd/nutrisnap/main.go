package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/vbonduro/nutrisnap/internal/config"
	"github.com/vbonduro/nutrisnap/internal/domain"
	"github.com/vbonduro/nutrisnap/internal/logging"
	"github.com/vbonduro/nutrisnap/internal/lookup"
	"github.com/vbonduro/nutrisnap/internal/nutrition"
	"github.com/vbonduro/nutrisnap/internal/nutrition/claude"
	"github.com/vbonduro/nutrisnap/internal/nutrition/gemini"
	"github.com/vbonduro/nutrisnap/internal/nutrition/ollama"
	"github.com/vbonduro/nutrisnap/internal/web"
	"github.com/vbonduro/nutrisnap/internal/web/templates"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFormat, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	analyzer := newAnalyzer(cfg, logger)
	sessions := lookup.NewRegistry(analyzer, cfg.SessionIdleTTL, logger,
		lookup.WithTransitionHook(func(from, to domain.Lifecycle) {
			logger.Debug("lookup transition", "from", from, "to", to)
		}),
	)
	go sessions.Run(ctx)

	srv := web.NewServer(sessions, templates.FS, logger).HTTPServer(cfg.ListenAddr)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", "error", err)
			return
		}
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

// newAnalyzer picks the model backend. A missing credential is only warned
// about: every lookup then fails with the backend's own error.
func newAnalyzer(cfg *config.Config, logger *slog.Logger) nutrition.Analyzer {
	switch cfg.LLMBackend {
	case "claude":
		if cfg.ClaudeAPIKey == "" {
			logger.Warn("CLAUDE_API_KEY is not set; lookups will fail")
		}
		logger.Info("using Claude backend", "model", cfg.ClaudeModel)
		return claude.NewClaudeAnalyzer(cfg.ClaudeAPIKey, cfg.ClaudeModel)
	case "ollama":
		logger.Info("using Ollama backend", "host", cfg.OllamaHost, "model", cfg.OllamaModel)
		return ollama.NewOllamaAnalyzer(cfg.OllamaHost, cfg.OllamaModel)
	default:
		if cfg.LLMBackend != "gemini" {
			logger.Warn("unknown LLM_BACKEND, falling back to gemini", "backend", cfg.LLMBackend)
		}
		if cfg.GeminiAPIKey == "" {
			logger.Warn("GEMINI_API_KEY is not set; lookups will fail")
		}
		logger.Info("using Gemini backend", "model", cfg.GeminiModel)
		return gemini.NewGeminiAnalyzer(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiBaseURL)
	}
}
