package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/cyberdesk/internal/logging"
	"github.com/aretw0/cyberdesk/internal/runtime"
	"github.com/aretw0/cyberdesk/pkg/domain"
	"github.com/aretw0/cyberdesk/pkg/ports"
)

const (
	// DefaultPacing is the pause between the officer's echo and the bot reply.
	DefaultPacing = 500 * time.Millisecond
	// DefaultGatewayTimeout bounds a single assistant round-trip.
	DefaultGatewayTimeout = 60 * time.Second

	subscriberBuffer = 16
)

// Conversation is the live case. It is safe for concurrent use.
type Conversation struct {
	engine  *runtime.Engine
	gateway ports.Gateway
	logger  *slog.Logger

	pacing         time.Duration
	gatewayTimeout time.Duration

	mu         sync.Mutex
	state      *domain.State
	generation uint64
	cancelTurn func()
	idle       chan struct{}

	subs    map[int]chan *domain.State
	nextSub int
}

// Option configures a Conversation.
type Option func(*Conversation)

// WithGateway sets the remote assistant. Without one every question is answered with the apology.
func WithGateway(g ports.Gateway) Option {
	return func(c *Conversation) {
		c.gateway = g
	}
}

// WithPacing sets the delay before scripted bot replies. Zero commits them immediately.
func WithPacing(d time.Duration) Option {
	return func(c *Conversation) {
		if d >= 0 {
			c.pacing = d
		}
	}
}

// WithGatewayTimeout bounds each assistant call.
func WithGatewayTimeout(d time.Duration) Option {
	return func(c *Conversation) {
		if d > 0 {
			c.gatewayTimeout = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Conversation) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New starts a conversation at the start node.
func New(ctx context.Context, engine *runtime.Engine, opts ...Option) (*Conversation, error) {
	c := &Conversation{
		engine:         engine,
		logger:         logging.NewNop(),
		pacing:         DefaultPacing,
		gatewayTimeout: DefaultGatewayTimeout,
		idle:           closedChan(),
		subs:           make(map[int]chan *domain.State),
	}
	for _, opt := range opts {
		opt(c)
	}

	state, err := engine.Start(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to start conversation: %w", err)
	}
	c.state = state
	return c, nil
}

var _ ports.Conversation = (*Conversation)(nil)

// Snapshot returns a copy of the current state.
func (c *Conversation) Snapshot() *domain.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// View returns the current state with its rendering hints.
func (c *Conversation) View() domain.View {
	return c.engine.View(c.Snapshot())
}

// Options returns the options of the latest bot message.
func (c *Conversation) Options() []domain.RenderedOption {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.engine.CurrentOptions(c.state)
}

// Select applies an option. While a reply is outstanding only "New Case" is accepted.
func (c *Conversation) Select(ctx context.Context, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	isReset := value == domain.ValueNewCase
	if c.state.Pending && !isReset {
		return fmt.Errorf("select %q: %w", value, domain.ErrTurnPending)
	}

	step, err := c.engine.Select(ctx, c.state, value)
	if err != nil {
		return err
	}

	if isReset {
		c.cancelLocked()
	}

	if !step.Paced || c.pacing <= 0 {
		c.finishLocked(step.Final)
		return nil
	}

	interim := step.Interim
	interim.Pending = true
	c.beginLocked(interim)

	gen := c.generation
	final := step.Final
	timer := time.AfterFunc(c.pacing, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.generation != gen {
			return
		}
		c.finishLocked(final)
	})
	c.cancelTurn = func() { timer.Stop() }
	return nil
}

// Reset starts a new case, abandoning any outstanding reply.
func (c *Conversation) Reset(ctx context.Context) error {
	return c.Select(ctx, domain.ValueNewCase)
}

// Submit sends free text to the assistant. Blank text is ignored.
// The answer, or the apology on failure, is appended asynchronously.
func (c *Conversation) Submit(ctx context.Context, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Pending {
		return fmt.Errorf("submit: %w", domain.ErrTurnPending)
	}
	asked, appended, err := c.engine.Ask(c.state, text)
	if err != nil || !appended {
		return err
	}

	asked.Pending = true
	asked.PendingInput = text
	c.beginLocked(asked)

	gen := c.generation
	callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.gatewayTimeout)
	c.cancelTurn = cancel

	go func() {
		defer cancel()
		started := time.Now()
		response, err := c.ask(callCtx, text)
		took := time.Since(started)

		c.mu.Lock()
		defer c.mu.Unlock()
		if c.generation != gen {
			c.logger.Debug("discarding assistant answer for abandoned turn", "case_id", asked.CaseID)
			return
		}
		answered := c.engine.Answer(ctx, c.state, response, err, took)
		answered.PendingInput = ""
		c.finishLocked(answered)
	}()
	return nil
}

func (c *Conversation) ask(ctx context.Context, query string) (string, error) {
	if c.gateway == nil {
		return "", fmt.Errorf("%w: no assistant configured", domain.ErrGatewayFailure)
	}
	return c.gateway.Ask(ctx, query)
}

// Wait blocks until no reply is outstanding or ctx is done.
func (c *Conversation) Wait(ctx context.Context) error {
	for {
		c.mu.Lock()
		pending := c.state.Pending
		idle := c.idle
		c.mu.Unlock()
		if !pending {
			return nil
		}
		select {
		case <-idle:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Close abandons any outstanding reply and closes all subscriptions.
func (c *Conversation) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelLocked()
	if c.state.Pending {
		c.state = c.state.Clone()
		c.state.Pending = false
		close(c.idle)
	}
	for id, ch := range c.subs {
		close(ch)
		delete(c.subs, id)
	}
}

// Subscribe registers for state changes. Slow subscribers only miss intermediate states.
func (c *Conversation) Subscribe() (<-chan *domain.State, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.subscribeLocked()
}

// SubscribeWithSnapshot registers for state changes and returns the view they start from.
func (c *Conversation) SubscribeWithSnapshot() (domain.View, <-chan *domain.State, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	view := c.engine.View(c.state.Clone())
	ch, cancel := c.subscribeLocked()
	return view, ch, cancel
}

func (c *Conversation) subscribeLocked() (<-chan *domain.State, func()) {
	id := c.nextSub
	c.nextSub++
	ch := make(chan *domain.State, subscriberBuffer)
	c.subs[id] = ch

	return ch, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if sub, ok := c.subs[id]; ok {
			close(sub)
			delete(c.subs, id)
		}
	}
}

// beginLocked commits a state that has a reply outstanding.
func (c *Conversation) beginLocked(state *domain.State) {
	c.generation++
	if !c.state.Pending {
		c.idle = make(chan struct{})
	}
	c.commitLocked(state)
}

// finishLocked commits a settled state.
func (c *Conversation) finishLocked(state *domain.State) {
	wasPending := c.state.Pending
	state.Pending = false
	c.cancelTurn = nil
	c.commitLocked(state)
	if wasPending {
		close(c.idle)
	}
}

// cancelLocked stops the outstanding timer or gateway call, and invalidates its callback.
func (c *Conversation) cancelLocked() {
	c.generation++
	if c.cancelTurn != nil {
		c.cancelTurn()
		c.cancelTurn = nil
	}
}

func (c *Conversation) commitLocked(state *domain.State) {
	c.state = state
	for _, ch := range c.subs {
		snapshot := state.Clone()
		select {
		case ch <- snapshot:
		default:
			// Drop the oldest queued snapshot to make room for the newest.
			select {
			case <-ch:
			default:
			}
			ch <- snapshot
		}
	}
}

func closedChan() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
