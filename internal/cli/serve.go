package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/cyberdesk/internal/assistant"
	"github.com/aretw0/cyberdesk/internal/config"
	"github.com/aretw0/cyberdesk/internal/manuals"
	httpadapter "github.com/aretw0/cyberdesk/pkg/adapters/http"
	"github.com/aretw0/cyberdesk/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

// Serve exposes the conversation over HTTP until ctx is cancelled.
func Serve(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observability.NewMetrics(reg)

	desk, err := OpenDesk(ctx, cfg, logger, observability.Chain(metrics.Hooks(), observability.LogHooks(logger)))
	if err != nil {
		return err
	}
	defer desk.Close()

	notes, closeNotes, err := OpenNotes(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeNotes(); err != nil {
			logger.Warn("Failed to close notes store", "err", err)
		}
	}()

	opts := []httpadapter.Option{
		httpadapter.WithNotes(notes),
		httpadapter.WithLogger(logger),
	}
	if cfg.Metrics {
		opts = append(opts, httpadapter.WithMetrics(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpadapter.NewHandler(desk, desk.Document(), opts...),
		ReadHeaderTimeout: 10 * time.Second,
	}
	// Closing the desk ends open event streams, which Shutdown would otherwise wait out.
	srv.RegisterOnShutdown(desk.Close)
	logger.Info("Starting CyberDesk server", "addr", cfg.Addr, "tree", cfg.TreePath, "notes", cfg.NotesBackend)
	return listen(ctx, srv, logger)
}

// ServeAssistant runs the manuals-backed assistant backend until ctx is cancelled.
func ServeAssistant(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	if cfg.OpenAIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required")
	}
	if cfg.ManualsPath == "" {
		return fmt.Errorf("CYBERDESK_MANUALS is required")
	}
	client := assistant.NewClient(cfg.OpenAIKey, cfg.OpenAIBaseURL)
	retriever, err := OpenManuals(ctx, cfg, client, logger)
	if err != nil {
		return err
	}

	answerer := assistant.NewOpenAIAnswerer(client, cfg.OpenAIModel, retriever, cfg.TopK)
	srv := &http.Server{
		Addr:              cfg.AssistantAddr,
		Handler:           assistant.NewServer(answerer, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}
	logger.Info("Starting assistant backend", "addr", cfg.AssistantAddr, "model", cfg.OpenAIModel, "retrieval", cfg.Retrieval, "top_k", cfg.TopK)
	return listen(ctx, srv, logger)
}

// OpenManuals loads and chunks the manuals, then indexes them for retrieval.
func OpenManuals(ctx context.Context, cfg config.Config, embedder manuals.Embedder, logger *slog.Logger) (manuals.Retriever, error) {
	pages, err := manuals.Load(cfg.ManualsPath)
	if err != nil {
		return nil, err
	}
	chunks := manuals.Split(pages, manuals.DefaultChunkConfig())
	logger.Info("Loaded manuals", "path", cfg.ManualsPath, "pages", len(pages), "chunks", len(chunks))

	switch cfg.Retrieval {
	case config.RetrievalKeyword:
		return manuals.NewKeywordIndex(chunks), nil
	case config.RetrievalEmbedding:
		idx, err := manuals.NewEmbeddingIndex(ctx, embedder, cfg.EmbeddingModel, chunks)
		if err != nil {
			return nil, err
		}
		return idx, nil
	default:
		return nil, fmt.Errorf("unknown retrieval mode %q", cfg.Retrieval)
	}
}

// listen serves srv and shuts it down gracefully once ctx is done.
func listen(ctx context.Context, srv *http.Server, logger *slog.Logger) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
			return srv.Close()
		}
		logger.Info("Server stopped gracefully", "addr", srv.Addr)
		return nil
	})

	return g.Wait()
}
