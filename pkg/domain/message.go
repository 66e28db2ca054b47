package domain

// Sender identifies who authored a transcript entry.
type Sender string

const (
	SenderOfficer Sender = "officer"
	SenderBot     Sender = "bot"
)

// RenderedOption is an option as offered to the officer: the label is already localized.
type RenderedOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Message is a single transcript entry.
type Message struct {
	Sender Sender `json:"sender"`

	// Text is the localized display string, or the raw assistant response in free-text mode.
	Text string `json:"text"`

	// Options offered alongside this message. Only meaningful on the latest bot message.
	Options []RenderedOption `json:"options,omitempty"`

	TemplateContent string `json:"templateContent,omitempty"`
}

// OfficerMessage builds an officer transcript entry.
func OfficerMessage(text string) Message {
	return Message{Sender: SenderOfficer, Text: text}
}
