package ports

import (
	"context"

	"github.com/aretw0/cyberdesk/pkg/domain"
)

// Conversation is the live case driven by presentation adapters (CLI, HTTP, MCP).
type Conversation interface {
	// Snapshot returns a copy of the current state.
	Snapshot() *domain.State

	// View returns the snapshot together with its localized rendering hints.
	View() domain.View

	// Select applies an option value offered by the latest bot message.
	Select(ctx context.Context, value string) error

	// Submit sends free text to the assistant. Only valid in free-text mode.
	Submit(ctx context.Context, text string) error

	// Reset starts a new case.
	Reset(ctx context.Context) error

	// Options returns the option set currently offered to the officer.
	Options() []domain.RenderedOption

	// Wait blocks until no bot reply is outstanding.
	Wait(ctx context.Context) error

	// Subscribe returns a channel receiving a snapshot after every change, and a cancel func.
	Subscribe() (<-chan *domain.State, func())

	// SubscribeWithSnapshot is Subscribe plus the view the first update follows.
	// No change can land between the view and the subscription.
	SubscribeWithSnapshot() (domain.View, <-chan *domain.State, func())
}
