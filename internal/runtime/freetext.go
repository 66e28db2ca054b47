package runtime

import (
	"context"
	"strings"
	"time"

	"github.com/aretw0/cyberdesk/pkg/domain"
)

// Ask appends the officer's free-text question. It reports false, leaving state
// untouched, when text is blank.
func (e *Engine) Ask(state *domain.State, text string) (*domain.State, bool, error) {
	if !state.AIModeActive() {
		return nil, false, domain.ErrNotFreeText
	}
	if strings.TrimSpace(text) == "" {
		return state, false, nil
	}
	next := state.Clone()
	next.Transcript = append(next.Transcript, domain.OfficerMessage(text))
	return next, true, nil
}

// Answer appends the assistant's reply, or the fixed apology when err is non-nil.
// Either way exactly one bot message is appended.
func (e *Engine) Answer(ctx context.Context, state *domain.State, response string, err error, took time.Duration) *domain.State {
	next := state.Clone()
	text := response
	if err != nil {
		e.logger.Warn("assistant unavailable", "case_id", state.CaseID, "err", err)
		text = domain.ApologyMessage
	}
	next.Transcript = append(next.Transcript, domain.Message{Sender: domain.SenderBot, Text: text})

	if e.hooks.OnAssistantReply != nil {
		e.hooks.OnAssistantReply(ctx, &domain.AssistantEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventAssistantReply, CaseID: state.CaseID},
			Duration:  took,
			IsError:   err != nil,
		})
	}
	return next
}
