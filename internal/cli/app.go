// Package cli wires configuration, adapters and the conversation together for the cyberdesk commands.
package cli

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"

	"github.com/aretw0/cyberdesk"
	"github.com/aretw0/cyberdesk/internal/config"
	"github.com/aretw0/cyberdesk/internal/logging"
	"github.com/aretw0/cyberdesk/pkg/adapters/file"
	"github.com/aretw0/cyberdesk/pkg/adapters/memory"
	"github.com/aretw0/cyberdesk/pkg/adapters/postgres"
	"github.com/aretw0/cyberdesk/pkg/adapters/redis"
	"github.com/aretw0/cyberdesk/pkg/assistant"
	"github.com/aretw0/cyberdesk/pkg/domain"
	"github.com/aretw0/cyberdesk/pkg/i18n"
	"github.com/aretw0/cyberdesk/pkg/persistence/middleware"
	"github.com/aretw0/cyberdesk/pkg/ports"
)

// NewLogger builds the application logger from cfg.
func NewLogger(cfg config.Config) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	format, err := logging.ParseFormat(cfg.LogFormat)
	if err != nil {
		return nil, err
	}
	return logging.New(level, format), nil
}

// LoadTranslator returns the translator for cfg.Language, or nil when no catalog is configured.
func LoadTranslator(cfg config.Config) (domain.Translator, error) {
	if cfg.LocalePath == "" {
		return nil, nil
	}
	catalog, err := i18n.LoadFile(cfg.LocalePath)
	if err != nil {
		return nil, err
	}
	return catalog.Translator(cfg.Language), nil
}

// OpenDesk loads the decision tree and starts a conversation wired to the remote assistant.
func OpenDesk(ctx context.Context, cfg config.Config, logger *slog.Logger, hooks domain.LifecycleHooks) (*cyberdesk.Desk, error) {
	translator, err := LoadTranslator(cfg)
	if err != nil {
		return nil, err
	}

	desk, err := cyberdesk.New(ctx, cfg.TreePath,
		cyberdesk.WithTranslator(translator),
		cyberdesk.WithLifecycleHooks(hooks),
		cyberdesk.WithLogger(logger),
		cyberdesk.WithGateway(assistant.NewClient(cfg.AssistantURL)),
		cyberdesk.WithPacing(cfg.Pacing),
		cyberdesk.WithGatewayTimeout(cfg.GatewayTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("error initializing cyberdesk: %w", err)
	}
	return desk, nil
}

// OpenNotes returns the case notes store selected by cfg.NotesBackend, wrapped with
// PII masking and encryption when configured, and a function releasing it.
func OpenNotes(ctx context.Context, cfg config.Config, logger *slog.Logger) (ports.NoteStore, func() error, error) {
	mws, err := notesMiddleware(cfg)
	if err != nil {
		return nil, nil, err
	}
	store, closeFn, err := openNotesBackend(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return middleware.Chain(store, mws...), closeFn, nil
}

func notesMiddleware(cfg config.Config) ([]middleware.Middleware, error) {
	var mws []middleware.Middleware
	if cfg.NotesMaskPII {
		pii, err := middleware.NewPIIMiddleware(middleware.DefaultPIIPatterns)
		if err != nil {
			return nil, err
		}
		mws = append(mws, pii)
	}
	if cfg.NotesKey != "" {
		active, err := decodeKey(cfg.NotesKey)
		if err != nil {
			return nil, fmt.Errorf("CYBERDESK_NOTES_KEY: %w", err)
		}
		var fallback [][]byte
		for _, raw := range cfg.NotesFallbackKeys {
			key, err := decodeKey(raw)
			if err != nil {
				return nil, fmt.Errorf("CYBERDESK_NOTES_FALLBACK_KEYS: %w", err)
			}
			fallback = append(fallback, key)
		}
		enc, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: active, FallbackKeys: fallback})
		if err != nil {
			return nil, err
		}
		mws = append(mws, enc)
	}
	return mws, nil
}

func decodeKey(raw string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("key is not valid base64: %w", err)
	}
	return key, nil
}

func openNotesBackend(ctx context.Context, cfg config.Config, logger *slog.Logger) (ports.NoteStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.NotesBackend {
	case config.NotesMemory, "":
		return memory.NewStore(), noop, nil
	case config.NotesFile:
		logger.Info("Case notes on disk", "dir", cfg.NotesDir)
		return file.NewStore(cfg.NotesDir), noop, nil
	case config.NotesRedis:
		store := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := store.Ping(ctx); err != nil {
			store.Close()
			return nil, nil, fmt.Errorf("failed to reach redis at %s: %w", cfg.RedisAddr, err)
		}
		logger.Info("Case notes in redis", "addr", cfg.RedisAddr)
		return store, store.Close, nil
	case config.NotesPostgres:
		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Case notes in postgres")
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown notes backend %q", cfg.NotesBackend)
	}
}
