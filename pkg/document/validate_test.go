package document_test

import (
	"testing"

	"github.com/aretw0/cyberdesk/pkg/document"
	"github.com/aretw0/cyberdesk/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestValidate_InMemory(t *testing.T) {
	doc := domain.NewDocument(
		domain.Node{ID: "start", Options: []domain.Option{{Label: "A", Value: "a", NextStep: "missing"}}},
	)
	err := document.Validate(doc)
	assert.ErrorIs(t, err, domain.ErrMalformedDocument)
	assert.Len(t, document.ValidationErrors(err), 2)
}

func TestUnreachable(t *testing.T) {
	doc := domain.NewDocument(
		domain.Node{ID: "start", Options: []domain.Option{
			{Value: "a", NextStep: "n2", Intent: domain.IntentAdvance},
		}},
		domain.Node{ID: "n2"},
		domain.Node{ID: "orphan"},
		domain.Node{ID: "aiChatStart"},
	)
	assert.NoError(t, document.Validate(doc))
	assert.Equal(t, []string{"start", "aiChatStart", "n2"}, document.Reachable(doc))
	assert.Equal(t, []string{"orphan"}, document.Unreachable(doc))
}
