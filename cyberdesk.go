package cyberdesk

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/cyberdesk/internal/runtime"
	"github.com/aretw0/cyberdesk/pkg/adapters/file"
	"github.com/aretw0/cyberdesk/pkg/domain"
	"github.com/aretw0/cyberdesk/pkg/ports"
	"github.com/aretw0/cyberdesk/pkg/session"
)

// Version is the release of this build. Overridden with -ldflags at release time.
var Version = "0.1.0"

// Desk bundles a loaded decision tree with one live intake conversation.
type Desk struct {
	*session.Conversation
	document *domain.Document
}

type settings struct {
	loader         ports.DocumentLoader
	translator     domain.Translator
	hooks          domain.LifecycleHooks
	logger         *slog.Logger
	gateway        ports.Gateway
	pacing         *time.Duration
	gatewayTimeout time.Duration
	caseID         func() string
}

// Option configures a Desk.
type Option func(*settings)

// WithLoader injects a DocumentLoader, bypassing the file loader.
func WithLoader(l ports.DocumentLoader) Option {
	return func(s *settings) { s.loader = l }
}

// WithTranslator sets the display-string translator.
func WithTranslator(t domain.Translator) Option {
	return func(s *settings) { s.translator = t }
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *settings) { s.hooks = hooks }
}

// WithLogger sets the structured logger for the engine and the session.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) { s.logger = logger }
}

// WithGateway sets the remote assistant used in AI mode.
func WithGateway(g ports.Gateway) Option {
	return func(s *settings) { s.gateway = g }
}

// WithPacing sets the delay before a bot reply is shown.
func WithPacing(d time.Duration) Option {
	return func(s *settings) { s.pacing = &d }
}

// WithGatewayTimeout bounds each assistant call.
func WithGatewayTimeout(d time.Duration) Option {
	return func(s *settings) { s.gatewayTimeout = d }
}

// WithCaseIDGenerator overrides how new case identifiers are minted.
func WithCaseIDGenerator(fn func() string) Option {
	return func(s *settings) { s.caseID = fn }
}

// New loads the decision tree at treePath and starts a conversation on it.
// treePath may be empty when WithLoader is given.
func New(ctx context.Context, treePath string, opts ...Option) (*Desk, error) {
	s := &settings{}
	for _, opt := range opts {
		opt(s)
	}

	if s.loader == nil {
		if treePath == "" {
			return nil, fmt.Errorf("treePath is required when no custom loader is provided")
		}
		s.loader = file.NewLoader(treePath)
	}

	doc, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	engine, err := runtime.NewEngine(doc,
		runtime.WithTranslator(s.translator),
		runtime.WithLifecycleHooks(s.hooks),
		runtime.WithLogger(s.logger),
		runtime.WithCaseIDGenerator(s.caseID),
	)
	if err != nil {
		return nil, err
	}

	sessionOpts := []session.Option{
		session.WithLogger(s.logger),
		session.WithGateway(s.gateway),
		session.WithGatewayTimeout(s.gatewayTimeout),
	}
	if s.pacing != nil {
		sessionOpts = append(sessionOpts, session.WithPacing(*s.pacing))
	}

	conv, err := session.New(ctx, engine, sessionOpts...)
	if err != nil {
		return nil, err
	}
	return &Desk{Conversation: conv, document: doc}, nil
}

// Document returns the loaded decision tree.
func (d *Desk) Document() *domain.Document {
	return d.document
}
