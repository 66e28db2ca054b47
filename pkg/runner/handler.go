package runner

import (
	"context"

	"github.com/aretw0/cyberdesk/pkg/domain"
)

// IOHandler abstracts how the conversation is shown and how officer input is read.
type IOHandler interface {
	// Render presents transcript entries not shown before, followed by the current
	// options and checklist. When replaced is true a new case started and fresh
	// holds its whole transcript.
	Render(ctx context.Context, view domain.View, fresh []domain.Message, replaced bool) error

	// Input reads one line from the officer.
	Input(ctx context.Context) (string, error)

	// SystemOutput reports a problem that is not part of the transcript.
	SystemOutput(ctx context.Context, msg string) error
}

// ContentRenderer transforms text before output, e.g. markdown to ANSI.
type ContentRenderer func(string) (string, error)

// InputFeeder is implemented by handlers that can take input read by an
// external source, such as a lifecycle router, instead of their own Reader.
type InputFeeder interface {
	AttachInput()
	FeedInput(ctx context.Context, text string, err error) error
}
