package domain

// Well-known node IDs every decision tree must define.
const (
	// StartNodeID is the entry node of the interview.
	StartNodeID = "start"
	// AssistantNodeID is the node whose query is shown when handing off to the assistant.
	AssistantNodeID = "aiChatStart"
)

// Reserved option values interpreted by the engine itself.
const (
	ValueOther   = "Other"
	ValueNewCase = "New Case"
)

// Translation keys used by presentation adapters.
const (
	KeyChecklistTitle = "evidence_checklist_title"
	KeyChecklistEmpty = "no_checklist_items"
	KeyNotesTitle     = "case_notes_title"
	KeyAskPlaceholder = "ask_placeholder"
)

// NotesKey is the storage key of the officer's free-text case notes.
const NotesKey = "caseNotes"

// ApologyMessage is shown when the assistant cannot be reached.
const ApologyMessage = "Sorry, I'm having trouble connecting to the AI assistant."
