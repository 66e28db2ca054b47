package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/cyberdesk/pkg/domain"
	"github.com/aretw0/lifecycle"
)

// TextHandler implements IOHandler for a human at a terminal.
type TextHandler struct {
	Reader   *bufio.Reader
	Writer   io.Writer
	Renderer ContentRenderer

	inputFeed
}

// TextHandlerOption configures a TextHandler.
type TextHandlerOption func(*TextHandler)

// WithRenderer sets the renderer used for bot messages and templates.
func WithRenderer(renderer ContentRenderer) TextHandlerOption {
	return func(h *TextHandler) {
		h.Renderer = renderer
	}
}

// NewTextHandler creates a handler reading r and writing w.
func NewTextHandler(r io.Reader, w io.Writer, opts ...TextHandlerOption) *TextHandler {
	if r == nil {
		r = ResolveInputReader(os.Stdin)
	}
	if w == nil {
		w = os.Stdout
	}
	h := &TextHandler{
		Reader: bufio.NewReader(r),
		Writer: w,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Render prints fresh messages, then the option list or the assistant prompt,
// then the evidence checklist.
func (h *TextHandler) Render(_ context.Context, view domain.View, fresh []domain.Message, replaced bool) error {
	if replaced {
		fmt.Fprintln(h.Writer, "\n--- New Case ---")
	}
	for _, msg := range fresh {
		h.printMessage(msg)
	}
	if len(fresh) == 0 {
		return nil
	}

	state := view.State
	if state.Pending {
		return nil
	}

	if state.AIModeActive() {
		fmt.Fprintf(h.Writer, "(%s Type \"New Case\" to start over.)\n", view.Placeholder)
	} else {
		for i, opt := range view.Options {
			fmt.Fprintf(h.Writer, "  %d) %s\n", i+1, opt.Label)
		}
	}

	fmt.Fprintf(h.Writer, "\n[%s]\n", view.ChecklistTitle)
	if len(state.Checklist) == 0 {
		fmt.Fprintf(h.Writer, "  %s\n", view.ChecklistEmpty)
	}
	for _, item := range state.Checklist {
		fmt.Fprintf(h.Writer, "  - %s\n", item)
	}
	return nil
}

func (h *TextHandler) printMessage(msg domain.Message) {
	if msg.Sender == domain.SenderOfficer {
		fmt.Fprintf(h.Writer, "You: %s\n", msg.Text)
		return
	}
	fmt.Fprintln(h.Writer, h.render(msg.Text))
	if msg.TemplateContent != "" {
		fmt.Fprintln(h.Writer, h.render(msg.TemplateContent))
	}
}

func (h *TextHandler) render(text string) string {
	out := text
	if h.Renderer != nil {
		if rendered, err := h.Renderer(text); err == nil {
			out = rendered
		}
	}
	return strings.TrimSpace(out)
}

// Input prompts and reads one sanitized line. Invalid lines are reported and re-read.
func (h *TextHandler) Input(ctx context.Context) (string, error) {
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
			fmt.Fprint(h.Writer, "> ")
		}

		res, err := h.next(ctx, h.Reader)
		if err != nil {
			return "", err
		}
		if res.err != nil {
			return "", res.err
		}
		clean, err := SanitizeInput(strings.TrimSpace(res.text))
		if err != nil {
			fmt.Fprintf(h.Writer, "Error: %v. Please try again.\n", err)
			continue
		}
		return clean, nil
	}
}

// SystemOutput prints msg with a [System] prefix.
func (h *TextHandler) SystemOutput(_ context.Context, msg string) error {
	_, err := fmt.Fprintf(h.Writer, "[System] %s\n", msg)
	return err
}

// ResolveInputReader upgrades r to a platform terminal reader (CONIN$ on
// Windows) when it is an interactive terminal, and returns r otherwise.
func ResolveInputReader(r io.Reader) io.Reader {
	if upgraded, err := lifecycle.UpgradeTerminal(r); err == nil && upgraded != nil {
		return upgraded
	}
	return r
}
