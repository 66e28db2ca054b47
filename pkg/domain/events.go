package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventNodeEnter      EventType = "node_enter"
	EventHandoff        EventType = "handoff"
	EventCaseReset      EventType = "case_reset"
	EventAssistantReply EventType = "assistant_reply"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	CaseID    string    `json:"case_id"`
}

// NodeEvent represents entering a node, handing off from it, or resetting away from it.
type NodeEvent struct {
	EventBase
	NodeID string `json:"node_id"`
}

// AssistantEvent represents a completed assistant round-trip.
type AssistantEvent struct {
	EventBase
	Duration time.Duration `json:"duration"`
	IsError  bool          `json:"is_error,omitempty"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnNodeEnter      func(context.Context, *NodeEvent)
	OnHandoff        func(context.Context, *NodeEvent)
	OnCaseReset      func(context.Context, *NodeEvent)
	OnAssistantReply func(context.Context, *AssistantEvent)
}
