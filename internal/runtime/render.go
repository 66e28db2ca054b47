package runtime

import "github.com/aretw0/cyberdesk/pkg/domain"

// botMessage renders a node into a bot transcript entry: localized prompt,
// localized option labels and the attached template text.
func (e *Engine) botMessage(node *domain.Node) domain.Message {
	msg := domain.Message{
		Sender:          domain.SenderBot,
		Text:            e.translate.T(node.Query, node.Query),
		Options:         make([]domain.RenderedOption, 0, len(node.Options)),
		TemplateContent: node.TemplateContent,
	}
	for _, opt := range node.Options {
		msg.Options = append(msg.Options, domain.RenderedOption{
			Label: e.translate.T(opt.Label, opt.Label),
			Value: opt.Value,
		})
	}
	return msg
}

// checklist localizes the evidence items of a node. It never returns nil.
func (e *Engine) checklist(node *domain.Node) []string {
	items := make([]string, 0, len(node.Checklist))
	for _, key := range node.Checklist {
		items = append(items, e.translate.T(key, key))
	}
	return items
}

// View assembles the localized rendering hints for state.
func (e *Engine) View(state *domain.State) domain.View {
	view := domain.View{
		State:          state,
		Options:        e.CurrentOptions(state),
		ChecklistTitle: e.translate.T(domain.KeyChecklistTitle, "Evidence Checklist"),
	}
	if len(state.Checklist) == 0 {
		view.ChecklistEmpty = e.translate.T(domain.KeyChecklistEmpty, "No checklist items for this step.")
	}
	if state.AIModeActive() {
		view.Placeholder = e.translate.T(domain.KeyAskPlaceholder, "Ask the AI assistant...")
	}
	return view
}
