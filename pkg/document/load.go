package document

import (
	"fmt"
	"io"
	"sort"

	"github.com/aretw0/cyberdesk/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// nodeMetadata is the wire shape of a node. It uses "mapstructure" tags to match
// the document keys after the source is decoded into generic maps.
type nodeMetadata struct {
	Query           string           `mapstructure:"query"`
	Options         []optionMetadata `mapstructure:"options"`
	Checklist       []string         `mapstructure:"checklist"`
	TemplateContent string           `mapstructure:"templateContent"`
}

type optionMetadata struct {
	Label    string `mapstructure:"label"`
	Value    string `mapstructure:"value"`
	NextStep string `mapstructure:"nextStep"`
}

// Load reads and validates a document from r.
func Load(r io.Reader) (*domain.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return Parse(data)
}

// Parse decodes a JSON or YAML document and validates it.
func Parse(data []byte) (*domain.Document, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &AggregateError{Errors: []error{
			&ValidationError{Reason: fmt.Sprintf("cannot decode document: %v", err)},
		}}
	}

	var errs []error
	doc := &domain.Document{Nodes: make(map[string]domain.Node, len(raw))}

	ids := make([]string, 0, len(raw))
	for id := range raw {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		var meta nodeMetadata
		if err := decodeNode(raw[id], &meta); err != nil {
			errs = append(errs, &ValidationError{NodeID: id, Reason: err.Error()})
			continue
		}
		doc.Nodes[id] = toNode(id, meta)
	}

	errs = append(errs, validate(doc)...)
	if len(errs) > 0 {
		return nil, &AggregateError{Errors: errs}
	}
	return doc, nil
}

func decodeNode(input any, out *nodeMetadata) error {
	if _, ok := input.(map[string]any); !ok {
		return fmt.Errorf("expected an object, got %T", input)
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

func toNode(id string, meta nodeMetadata) domain.Node {
	node := domain.Node{
		ID:              id,
		Query:           meta.Query,
		Options:         make([]domain.Option, 0, len(meta.Options)),
		Checklist:       meta.Checklist,
		TemplateContent: meta.TemplateContent,
	}
	for _, o := range meta.Options {
		node.Options = append(node.Options, domain.Option{
			Label:    o.Label,
			Value:    o.Value,
			NextStep: o.NextStep,
			Intent:   domain.IntentFor(o.Value, o.NextStep),
		})
	}
	return node
}

// Get returns the node registered under key, or an error wrapping domain.ErrUnknownNode.
func Get(doc *domain.Document, key string) (*domain.Node, error) {
	node, ok := doc.Lookup(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownNode, key)
	}
	return &node, nil
}
