package runner

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/aretw0/cyberdesk/pkg/domain"
)

// JSONEvent is one line written by JSONHandler.
type JSONEvent struct {
	Type     string           `json:"type"`
	Messages []domain.Message `json:"messages,omitempty"`
	Replaced bool             `json:"replaced,omitempty"`
	View     *domain.View     `json:"view,omitempty"`
	Error    string           `json:"error,omitempty"`
}

// JSONHandler implements IOHandler over JSON Lines, for driving the runner from
// another program. Input lines may be a JSON string or raw text.
type JSONHandler struct {
	Reader  *bufio.Reader
	Encoder *json.Encoder

	inputFeed
}

// NewJSONHandler creates a handler reading r and writing w.
func NewJSONHandler(r io.Reader, w io.Writer) *JSONHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{
		Reader:  bufio.NewReader(r),
		Encoder: json.NewEncoder(w),
	}
}

// Render emits a "render" event.
func (h *JSONHandler) Render(_ context.Context, view domain.View, fresh []domain.Message, replaced bool) error {
	if len(fresh) == 0 {
		return nil
	}
	return h.Encoder.Encode(JSONEvent{Type: "render", Messages: fresh, Replaced: replaced, View: &view})
}

// Input reads one line, either a JSON string or raw text.
func (h *JSONHandler) Input(ctx context.Context) (string, error) {
	res, err := h.next(ctx, h.Reader)
	if err != nil {
		return "", err
	}
	if res.err != nil {
		return "", res.err
	}
	line := strings.TrimSpace(res.text)

	var text string
	if json.Unmarshal([]byte(line), &text) != nil {
		text = line
	}
	return SanitizeInput(text)
}

// SystemOutput emits an "error" event.
func (h *JSONHandler) SystemOutput(_ context.Context, msg string) error {
	return h.Encoder.Encode(JSONEvent{Type: "error", Error: msg})
}
