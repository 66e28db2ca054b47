// Package config reads cyberdesk settings from CYBERDESK_* environment variables.
// Command-line flags override the values loaded here.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Manual retrieval modes.
const (
	RetrievalEmbedding = "embedding"
	RetrievalKeyword   = "keyword"
)

// Notes backends.
const (
	NotesMemory   = "memory"
	NotesFile     = "file"
	NotesRedis    = "redis"
	NotesPostgres = "postgres"
)

type Config struct {
	// Decision tree and localization
	TreePath   string
	LocalePath string
	Language   string

	// Session API
	Addr    string
	Metrics bool

	// Conversation timing
	Pacing         time.Duration
	GatewayTimeout time.Duration

	// Remote assistant gateway (client side)
	AssistantURL string

	// Assistant backend (server side)
	AssistantAddr string
	OpenAIKey     string
	OpenAIBaseURL string
	OpenAIModel   string
	// ManualsPath is a manual file or a directory of .pdf, .txt and .md manuals.
	ManualsPath    string
	Retrieval      string
	EmbeddingModel string
	TopK           int

	// Case notes
	NotesBackend  string
	NotesDir      string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	PostgresDSN   string
	// NotesKey is a base64 AES-256 key; when set notes are encrypted at rest.
	NotesKey          string
	NotesFallbackKeys []string
	NotesMaskPII      bool

	// Logging
	LogLevel  string
	LogFormat string
}

func Load() Config {
	cfg := Config{
		TreePath:   envOr("CYBERDESK_TREE", "examples/intake/tree.yaml"),
		LocalePath: os.Getenv("CYBERDESK_LOCALES"),
		Language:   envOr("CYBERDESK_LANG", "en"),

		Addr:    envOr("CYBERDESK_ADDR", ":8080"),
		Metrics: envBool("CYBERDESK_METRICS", true),

		Pacing:         envDuration("CYBERDESK_PACING", 500*time.Millisecond),
		GatewayTimeout: envDuration("CYBERDESK_GATEWAY_TIMEOUT", 60*time.Second),

		AssistantURL: envOr("CYBERDESK_ASSISTANT_URL", "http://localhost:5000/ask"),

		AssistantAddr:  envOr("CYBERDESK_ASSISTANT_ADDR", ":5000"),
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:  os.Getenv("OPENAI_BASE_URL"),
		OpenAIModel:    envOr("OPENAI_MODEL_CHAT", "gpt-4o-mini"),
		ManualsPath:    os.Getenv("CYBERDESK_MANUALS"),
		Retrieval:      strings.ToLower(envOr("CYBERDESK_RETRIEVAL", RetrievalEmbedding)),
		EmbeddingModel: envOr("OPENAI_MODEL_EMBEDDING", "text-embedding-ada-002"),
		TopK:           envInt("CYBERDESK_TOP_K", 5),

		NotesBackend:  strings.ToLower(envOr("CYBERDESK_NOTES", NotesMemory)),
		NotesDir:      envOr("CYBERDESK_NOTES_DIR", ".cyberdesk/notes"),
		RedisAddr:     envOr("CYBERDESK_REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("CYBERDESK_REDIS_PASSWORD"),
		RedisDB:       envInt("CYBERDESK_REDIS_DB", 0),
		PostgresDSN:   os.Getenv("CYBERDESK_POSTGRES_DSN"),

		NotesKey:          os.Getenv("CYBERDESK_NOTES_KEY"),
		NotesFallbackKeys: envList("CYBERDESK_NOTES_FALLBACK_KEYS"),
		NotesMaskPII:      envBool("CYBERDESK_NOTES_MASK_PII", false),

		LogLevel:  envOr("CYBERDESK_LOG_LEVEL", "info"),
		LogFormat: envOr("CYBERDESK_LOG_FORMAT", "text"),
	}

	if cfg.Pacing < 0 {
		cfg.Pacing = 500 * time.Millisecond
	}
	if cfg.GatewayTimeout <= 0 {
		cfg.GatewayTimeout = 60 * time.Second
	}
	if cfg.TopK <= 0 {
		cfg.TopK = 5
	}
	return cfg
}

// Validate checks settings every command needs.
func (c Config) Validate() error {
	if c.TreePath == "" {
		return fmt.Errorf("CYBERDESK_TREE is required")
	}
	switch c.NotesBackend {
	case NotesMemory, NotesFile, NotesRedis:
	case NotesPostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("CYBERDESK_POSTGRES_DSN is required for the postgres notes backend")
		}
	default:
		return fmt.Errorf("unknown notes backend %q", c.NotesBackend)
	}
	switch c.Retrieval {
	case RetrievalEmbedding, RetrievalKeyword:
	default:
		return fmt.Errorf("unknown retrieval mode %q", c.Retrieval)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envList(key string) []string {
	var out []string
	for _, v := range strings.Split(os.Getenv(key), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
