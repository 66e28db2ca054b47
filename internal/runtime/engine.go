package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/cyberdesk/internal/logging"
	"github.com/aretw0/cyberdesk/pkg/document"
	"github.com/aretw0/cyberdesk/pkg/domain"
	"github.com/google/uuid"
)

// Engine is the intake state machine. It is pure: every operation takes a state
// and returns a new one, never mutating its input.
type Engine struct {
	doc       *domain.Document
	translate domain.Translator
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	newCaseID func() string
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithTranslator sets the localization function used for prompts, labels and checklist items.
func WithTranslator(t domain.Translator) EngineOption {
	return func(e *Engine) {
		if t != nil {
			e.translate = t
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithCaseIDGenerator overrides how case IDs are minted (tests use fixed IDs).
func WithCaseIDGenerator(fn func() string) EngineOption {
	return func(e *Engine) {
		if fn != nil {
			e.newCaseID = fn
		}
	}
}

// NewEngine creates an engine over a validated document.
func NewEngine(doc *domain.Document, opts ...EngineOption) (*Engine, error) {
	if err := document.Validate(doc); err != nil {
		return nil, err
	}
	e := &Engine{
		doc:       doc,
		translate: domain.IdentityTranslator,
		logger:    logging.NewNop(),
		newCaseID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Document returns the decision tree the engine interprets.
func (e *Engine) Document() *domain.Document {
	return e.doc
}

// Start produces a fresh case at the start node holding exactly one bot message.
func (e *Engine) Start(ctx context.Context) (*domain.State, error) {
	node, err := document.Get(e.doc, domain.StartNodeID)
	if err != nil {
		return nil, err
	}
	state := domain.NewState(e.newCaseID(), node.ID)
	state.Transcript = append(state.Transcript, e.botMessage(node))

	e.logger.Debug("case started", "case_id", state.CaseID)
	e.emit(ctx, e.hooks.OnNodeEnter, domain.EventNodeEnter, state.CaseID, node.ID)
	return state, nil
}

// CurrentOptions returns the options the officer may pick right now.
// Free-text mode offers none.
func (e *Engine) CurrentOptions(state *domain.State) []domain.RenderedOption {
	if state == nil || state.AIModeActive() {
		return []domain.RenderedOption{}
	}
	msg, ok := state.LastBotMessage()
	if !ok || msg.Options == nil {
		return []domain.RenderedOption{}
	}
	return msg.Options
}

func (e *Engine) emit(ctx context.Context, hook func(context.Context, *domain.NodeEvent), typ domain.EventType, caseID, nodeID string) {
	if hook == nil {
		return
	}
	hook(ctx, &domain.NodeEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: typ, CaseID: caseID},
		NodeID:    nodeID,
	})
}

// mustNode resolves a transition target. A miss is a configuration defect.
func (e *Engine) mustNode(id string) (*domain.Node, error) {
	node, err := document.Get(e.doc, id)
	if err != nil {
		e.logger.Error("transition to unknown node", "node_id", id, "err", err)
		return nil, fmt.Errorf("transition failed: %w", err)
	}
	return node, nil
}
