package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/aretw0/cyberdesk/pkg/ports"
	"github.com/aretw0/cyberdesk/pkg/runner"
	"github.com/aretw0/lifecycle"
)

// Input modes for the interactive router.
const (
	ModeInteractive = "interactive"
	ModeJSON        = "json"
)

// eofCommand is the line the router sees once the input stream is exhausted.
const eofCommand = "\x04"

// InteractiveHandler renders the conversation and accepts lines read by the router.
type InteractiveHandler interface {
	runner.IOHandler
	runner.InputFeeder
}

// RunInteractive drives conv with the runner while a lifecycle router reads
// officer input from in. It returns when input ends, the officer quits or ctx
// is cancelled.
func RunInteractive(ctx context.Context, conv ports.Conversation, handler InteractiveHandler, in io.Reader, mode string, logger *slog.Logger) error {
	routerCtx, stop := context.WithCancel(ctx)
	defer stop()

	handler.AttachInput()
	router := newInteractiveRouter(routerCtx, handler, in, mode)
	lifecycle.Go(routerCtx, router.Start)

	return runner.New(runner.WithHandler(handler), runner.WithLogger(logger)).Run(ctx, conv)
}

// newInteractiveRouter wires the router input source to handler. In
// interactive mode q, quit and exit end the session; in JSON mode every line
// is data. Signals belong to the signal context, not the router.
func newInteractiveRouter(ctx context.Context, handler runner.InputFeeder, in io.Reader, mode string) *lifecycle.Router {
	mappings := map[string]lifecycle.Event{
		eofCommand: lifecycle.ShutdownEvent{Reason: "eof"},
	}
	if mode != ModeJSON {
		mappings["q"] = lifecycle.ShutdownEvent{Reason: "manual"}
		mappings["quit"] = lifecycle.ShutdownEvent{Reason: "manual"}
		mappings["exit"] = lifecycle.ShutdownEvent{Reason: "manual"}
	}

	return lifecycle.NewInteractiveRouter(
		lifecycle.WithSignal(false),
		lifecycle.WithInputOptions(
			lifecycle.WithInputReader(&eofMarker{r: in}),
			lifecycle.WithInputMappings(mappings),
		),
		lifecycle.WithDefaultHandler(lifecycle.HandlerFunc(func(ctx context.Context, e lifecycle.Event) error {
			switch ev := e.(type) {
			case lifecycle.LineEvent:
				return handler.FeedInput(ctx, ev.Line, nil)
			case lifecycle.InputEvent:
				return handler.FeedInput(ctx, ev.Command, nil)
			}
			return lifecycle.ErrNotHandled
		})),
		lifecycle.WithShutdown(func() {
			_ = handler.FeedInput(ctx, "", io.EOF)
		}),
	)
}

// eofMarker passes r through and then yields one eofCommand line, so the end
// of input reaches the router after every line before it.
type eofMarker struct {
	r     io.Reader
	last  byte
	ended bool
	tail  []byte
}

func (m *eofMarker) Read(p []byte) (int, error) {
	if m.ended {
		if len(m.tail) == 0 {
			return 0, io.EOF
		}
		n := copy(p, m.tail)
		m.tail = m.tail[n:]
		return n, nil
	}

	n, err := m.r.Read(p)
	if n > 0 {
		m.last = p[n-1]
	}
	if errors.Is(err, io.EOF) {
		m.ended = true
		var tail bytes.Buffer
		if m.last != 0 && m.last != '\n' {
			tail.WriteByte('\n')
		}
		tail.WriteString(eofCommand + "\n")
		m.tail = tail.Bytes()
		return n, nil
	}
	return n, err
}
