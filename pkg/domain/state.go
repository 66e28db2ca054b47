package domain

// Mode is the conversation mode of a session.
type Mode string

const (
	// ModeScripted follows the decision tree.
	ModeScripted Mode = "scripted"
	// ModeFreeText routes officer input to the remote assistant.
	ModeFreeText Mode = "free_text"
)

// State represents the current snapshot of a case.
type State struct {
	// CaseID changes on every "New Case".
	CaseID string `json:"case_id"`

	// CurrentNodeID is the tree position. Free-text mode does not move it.
	CurrentNodeID string `json:"current_node_id"`

	Transcript []Message `json:"transcript"`

	// Checklist holds the localized evidence items of the current node.
	Checklist []string `json:"checklist"`

	Mode Mode `json:"mode"`

	// Pending is true while a paced reply or an assistant call is outstanding.
	Pending bool `json:"pending"`

	// PendingInput is the text of the in-flight free-text submission.
	PendingInput string `json:"pending_input,omitempty"`
}

// NewState creates a clean scripted state at nodeID.
func NewState(caseID, nodeID string) *State {
	return &State{
		CaseID:        caseID,
		CurrentNodeID: nodeID,
		Transcript:    []Message{},
		Checklist:     []string{},
		Mode:          ModeScripted,
	}
}

// AIModeActive reports whether the officer handed off to the assistant.
func (s *State) AIModeActive() bool {
	return s.Mode == ModeFreeText
}

// LastBotMessage returns the most recent bot message, if any.
func (s *State) LastBotMessage() (Message, bool) {
	for i := len(s.Transcript) - 1; i >= 0; i-- {
		if s.Transcript[i].Sender == SenderBot {
			return s.Transcript[i], true
		}
	}
	return Message{}, false
}

// Clone returns a copy whose slices can be appended to without aliasing src.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	next := *s
	next.Transcript = append(make([]Message, 0, len(s.Transcript)+2), s.Transcript...)
	next.Checklist = append([]string(nil), s.Checklist...)
	if next.Checklist == nil {
		next.Checklist = []string{}
	}
	return &next
}
