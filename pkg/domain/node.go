package domain

// OptionIntent describes what selecting an option does.
// It is derived once, when the document is loaded, so the engine never
// compares raw option values at runtime.
type OptionIntent string

const (
	// IntentAdvance moves the interview to Option.NextStep.
	IntentAdvance OptionIntent = "advance"
	// IntentHandoff switches the session to free-text mode.
	IntentHandoff OptionIntent = "handoff"
	// IntentReset starts a new case.
	IntentReset OptionIntent = "reset"
	// IntentTerminal has no NextStep and no special meaning. Selecting it is a
	// configuration defect.
	IntentTerminal OptionIntent = "terminal"
)

// Option is a selectable choice of a Node.
type Option struct {
	Label    string       `json:"label" yaml:"label"`
	Value    string       `json:"value" yaml:"value"`
	NextStep string       `json:"nextStep,omitempty" yaml:"nextStep,omitempty"`
	Intent   OptionIntent `json:"-" yaml:"-"`
}

// IntentFor classifies an option by its value and target.
func IntentFor(value, nextStep string) OptionIntent {
	switch {
	case value == ValueOther:
		return IntentHandoff
	case value == ValueNewCase:
		return IntentReset
	case nextStep != "":
		return IntentAdvance
	default:
		return IntentTerminal
	}
}

// Node represents a single step of the scripted interview.
type Node struct {
	ID string `json:"id" yaml:"id"`

	// Query is the translation key (and fallback text) of the prompt.
	Query string `json:"query" yaml:"query"`

	// Options are offered in order alongside the prompt.
	Options []Option `json:"options" yaml:"options"`

	// Checklist holds translation keys of the evidence items relevant once this node is reached.
	Checklist []string `json:"checklist,omitempty" yaml:"checklist,omitempty"`

	// TemplateContent is literal text (e.g. a complaint form) attached to the bot message.
	TemplateContent string `json:"templateContent,omitempty" yaml:"templateContent,omitempty"`
}

// Option returns the option offered under value, if any.
func (n *Node) Option(value string) (Option, bool) {
	for _, opt := range n.Options {
		if opt.Value == value {
			return opt, true
		}
	}
	return Option{}, false
}

// ResolvedIntent returns Intent, deriving it when the option was built by hand
// without going through the document loader.
func (o Option) ResolvedIntent() OptionIntent {
	if o.Intent != "" {
		return o.Intent
	}
	return IntentFor(o.Value, o.NextStep)
}
