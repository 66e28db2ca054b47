package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestState_CloneDoesNotAlias(t *testing.T) {
	src := NewState("case", "start")
	src.Transcript = append(src.Transcript, Message{Sender: SenderBot, Text: "Q1"})
	src.Checklist = []string{"a"}

	c := src.Clone()
	c.Transcript = append(c.Transcript, OfficerMessage("x"))
	c.Checklist[0] = "b"

	assert.Len(t, src.Transcript, 1)
	assert.Equal(t, []string{"a"}, src.Checklist)
}

func TestIntentFor(t *testing.T) {
	assert.Equal(t, IntentHandoff, IntentFor(ValueOther, ""))
	assert.Equal(t, IntentReset, IntentFor(ValueNewCase, "start"))
	assert.Equal(t, IntentAdvance, IntentFor("a", "n2"))
	assert.Equal(t, IntentTerminal, IntentFor("a", ""))
}

func TestState_LastBotMessage(t *testing.T) {
	s := NewState("case", "start")
	_, ok := s.LastBotMessage()
	assert.False(t, ok)

	s.Transcript = []Message{{Sender: SenderBot, Text: "Q1"}, OfficerMessage("A")}
	msg, ok := s.LastBotMessage()
	assert.True(t, ok)
	assert.Equal(t, "Q1", msg.Text)
}
