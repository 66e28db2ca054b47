package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/aretw0/cyberdesk/pkg/domain"
	"github.com/aretw0/cyberdesk/pkg/ports"
)

// Runner is the interactive loop over a Conversation.
type Runner struct {
	Handler IOHandler
	Logger  *slog.Logger

	renderedCase string
	renderedLen  int
}

// Option configures the Runner.
type Option func(*Runner)

// WithHandler sets the IO strategy. Defaults to a TextHandler on stdin/stdout.
func WithHandler(h IOHandler) Option {
	return func(r *Runner) {
		r.Handler = h
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.Logger = logger
		}
	}
}

// New creates a Runner.
func New(opts ...Option) *Runner {
	r := &Runner{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.Handler == nil {
		r.Handler = NewTextHandler(os.Stdin, os.Stdout)
	}
	return r
}

// Run loops until input ends or ctx is cancelled. End of input returns nil.
func (r *Runner) Run(ctx context.Context, conv ports.Conversation) error {
	for {
		if err := conv.Wait(ctx); err != nil {
			return err
		}
		if err := r.render(ctx, conv); err != nil {
			return fmt.Errorf("output error: %w", err)
		}

		line, err := r.Handler.Input(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if err := r.apply(ctx, conv, line); err != nil {
			r.Logger.Debug("intent rejected", "input", line, "err", err)
			if outErr := r.Handler.SystemOutput(ctx, describe(err)); outErr != nil {
				return outErr
			}
		}
	}
}

// render shows transcript entries appended since the last render.
func (r *Runner) render(ctx context.Context, conv ports.Conversation) error {
	view := conv.View()
	state := view.State

	replaced := false
	start := r.renderedLen
	if state.CaseID != r.renderedCase || len(state.Transcript) < r.renderedLen {
		replaced = r.renderedCase != ""
		start = 0
	}
	fresh := state.Transcript[start:]

	if err := r.Handler.Render(ctx, view, fresh, replaced); err != nil {
		return err
	}
	r.renderedCase = state.CaseID
	r.renderedLen = len(state.Transcript)
	return nil
}

// apply interprets a line: "New Case" always resets; in assistant mode anything
// else is a question; otherwise it selects an option.
func (r *Runner) apply(ctx context.Context, conv ports.Conversation, line string) error {
	if strings.EqualFold(line, domain.ValueNewCase) {
		return conv.Reset(ctx)
	}
	if conv.Snapshot().AIModeActive() {
		return conv.Submit(ctx, line)
	}
	if line == "" {
		return nil
	}
	return conv.Select(ctx, ResolveOption(conv.Options(), line))
}

// ResolveOption maps officer input to an option value. It accepts a 1-based
// index, an exact value, or a case-insensitive label or value. Unmatched input
// is returned unchanged so the engine can reject it.
func ResolveOption(options []domain.RenderedOption, input string) string {
	if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(options) {
		return options[n-1].Value
	}
	for _, opt := range options {
		if opt.Value == input {
			return opt.Value
		}
	}
	for _, opt := range options {
		if strings.EqualFold(opt.Label, input) || strings.EqualFold(opt.Value, input) {
			return opt.Value
		}
	}
	return input
}

func describe(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidOption):
		return "That is not one of the offered options."
	case errors.Is(err, domain.ErrTurnPending):
		return "Please wait for the current reply."
	default:
		return err.Error()
	}
}
