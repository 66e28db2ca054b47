package runtime

import (
	"context"
	"fmt"

	"github.com/aretw0/cyberdesk/pkg/domain"
)

// Step is the outcome of an option selection.
//
// Interim is the state visible as soon as the officer acts (their own message echoed).
// Final is the state once the bot has replied. When Paced is false both are the same
// state and no presentation delay applies.
type Step struct {
	Interim *domain.State
	Final   *domain.State
	Paced   bool
}

// Select applies an option value to state. It is the core transition function.
func (e *Engine) Select(ctx context.Context, state *domain.State, value string) (*Step, error) {
	if state == nil {
		return nil, fmt.Errorf("select %q: nil state", value)
	}

	// "New Case" is honoured from any mode, even though free-text mode offers no options.
	if value == domain.ValueNewCase {
		return e.reset(ctx, state)
	}

	if state.AIModeActive() {
		return nil, fmt.Errorf("%w: %q offered no options in assistant mode", domain.ErrInvalidOption, value)
	}

	node, err := e.mustNode(state.CurrentNodeID)
	if err != nil {
		return nil, err
	}

	if value == domain.ValueOther {
		return e.handoff(ctx, state)
	}

	opt, ok := node.Option(value)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not offered by node %q", domain.ErrInvalidOption, value, node.ID)
	}

	switch opt.ResolvedIntent() {
	case domain.IntentHandoff:
		return e.handoff(ctx, state)
	case domain.IntentReset:
		return e.reset(ctx, state)
	case domain.IntentAdvance:
		return e.advance(ctx, state, opt)
	default:
		return nil, fmt.Errorf("%w: option %q of node %q is a dead end", domain.ErrInvalidOption, value, node.ID)
	}
}

func (e *Engine) advance(ctx context.Context, state *domain.State, opt domain.Option) (*Step, error) {
	target, err := e.mustNode(opt.NextStep)
	if err != nil {
		return nil, err
	}

	interim := state.Clone()
	interim.Transcript = append(interim.Transcript, domain.OfficerMessage(e.translate.T(opt.Label, opt.Label)))

	final := interim.Clone()
	final.Transcript = append(final.Transcript, e.botMessage(target))
	final.Checklist = e.checklist(target)
	final.CurrentNodeID = target.ID

	e.logger.Debug("advance", "case_id", state.CaseID, "from", state.CurrentNodeID, "to", target.ID, "value", opt.Value)
	e.emit(ctx, e.hooks.OnNodeEnter, domain.EventNodeEnter, state.CaseID, target.ID)

	return &Step{Interim: interim, Final: final, Paced: true}, nil
}

// handoff switches to free-text mode. The tree position is kept so a later
// reset restores pure scripted semantics.
func (e *Engine) handoff(ctx context.Context, state *domain.State) (*Step, error) {
	ai, err := e.mustNode(domain.AssistantNodeID)
	if err != nil {
		return nil, err
	}

	next := state.Clone()
	bot := e.botMessage(ai)
	bot.Options = []domain.RenderedOption{}
	next.Transcript = append(next.Transcript, domain.OfficerMessage(domain.ValueOther), bot)
	next.Mode = domain.ModeFreeText

	e.logger.Debug("assistant handoff", "case_id", state.CaseID, "node_id", state.CurrentNodeID)
	e.emit(ctx, e.hooks.OnHandoff, domain.EventHandoff, state.CaseID, state.CurrentNodeID)

	return &Step{Interim: next, Final: next}, nil
}

func (e *Engine) reset(ctx context.Context, state *domain.State) (*Step, error) {
	interim := state.Clone()
	interim.Transcript = append(interim.Transcript, domain.OfficerMessage(e.translate.T(domain.ValueNewCase, domain.ValueNewCase)))
	interim.Checklist = []string{}
	interim.Mode = domain.ModeScripted
	interim.CurrentNodeID = domain.StartNodeID
	interim.PendingInput = ""

	e.emit(ctx, e.hooks.OnCaseReset, domain.EventCaseReset, state.CaseID, state.CurrentNodeID)

	final, err := e.Start(ctx)
	if err != nil {
		return nil, err
	}
	e.logger.Info("new case", "previous_case_id", state.CaseID, "case_id", final.CaseID)

	return &Step{Interim: interim, Final: final, Paced: true}, nil
}
