package domain

// View is what a presentation adapter needs to render the conversation.
type View struct {
	State   *State           `json:"state"`
	Options []RenderedOption `json:"options"`

	ChecklistTitle string `json:"checklist_title"`
	// ChecklistEmpty is set only when the checklist has no items.
	ChecklistEmpty string `json:"checklist_empty,omitempty"`
	// Placeholder hints the free-text input. Empty outside assistant mode.
	Placeholder string `json:"placeholder,omitempty"`
}
