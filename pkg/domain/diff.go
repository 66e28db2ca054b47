package domain

import "slices"

// StateDiff represents the changes between two states.
// It is designed to be serialized to JSON for partial updates on the client.
type StateDiff struct {
	// CaseID is always present to identify the target.
	CaseID string `json:"case_id"`

	CurrentNodeID *string `json:"current_node_id,omitempty"`
	Mode          *Mode   `json:"mode,omitempty"`
	Pending       *bool   `json:"pending,omitempty"`

	// Checklist is sent whole when any item changed, including when it was emptied.
	Checklist *[]string `json:"checklist,omitempty"`

	// Transcript holds appended messages. When Replaced is true the client must
	// drop its local transcript first (a new case started).
	Transcript *TranscriptDelta `json:"transcript,omitempty"`
}

// TranscriptDelta represents changes to the transcript.
type TranscriptDelta struct {
	Replaced bool      `json:"replaced,omitempty"`
	Appended []Message `json:"appended"`
}

// Diff calculates the difference between oldState and newState.
// If oldState is nil, it returns a diff representing the entire newState (initial load).
// It returns nil when nothing changed.
func Diff(oldState, newState *State) *StateDiff {
	if newState == nil {
		return nil
	}

	diff := &StateDiff{CaseID: newState.CaseID}

	if oldState == nil || oldState.CurrentNodeID != newState.CurrentNodeID {
		diff.CurrentNodeID = &newState.CurrentNodeID
	}
	if oldState == nil || oldState.Mode != newState.Mode {
		diff.Mode = &newState.Mode
	}
	if oldState == nil || oldState.Pending != newState.Pending {
		diff.Pending = &newState.Pending
	}
	if oldState == nil || !slices.Equal(oldState.Checklist, newState.Checklist) {
		items := append([]string{}, newState.Checklist...)
		diff.Checklist = &items
	}
	diff.Transcript = diffTranscript(oldState, newState)

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

// diffTranscript assumes append-only transcripts within a case.
func diffTranscript(old, new *State) *TranscriptDelta {
	if old == nil || old.CaseID != new.CaseID || len(new.Transcript) < len(old.Transcript) {
		if len(new.Transcript) == 0 && old == nil {
			return nil
		}
		return &TranscriptDelta{Replaced: true, Appended: new.Transcript}
	}
	if len(new.Transcript) > len(old.Transcript) {
		return &TranscriptDelta{Appended: new.Transcript[len(old.Transcript):]}
	}
	return nil
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *StateDiff) IsEmpty() bool {
	return d.CurrentNodeID == nil &&
		d.Mode == nil &&
		d.Pending == nil &&
		d.Checklist == nil &&
		d.Transcript == nil
}
