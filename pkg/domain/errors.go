package domain

import "errors"

// ErrMalformedDocument is returned when a decision tree fails structural validation.
var ErrMalformedDocument = errors.New("malformed document")

// ErrUnknownNode is returned when a node key is not present in the document.
var ErrUnknownNode = errors.New("unknown node")

// ErrInvalidOption is returned when a selected value is not offered by the current node,
// or resolves to a dead-end option.
var ErrInvalidOption = errors.New("invalid option")

// ErrNotFreeText is returned when free text is submitted outside assistant mode.
var ErrNotFreeText = errors.New("free text is only accepted in assistant mode")

// ErrTurnPending is returned when an intent arrives while a reply is still outstanding.
var ErrTurnPending = errors.New("a reply is still pending")

// ErrGatewayFailure is returned by assistant gateways for any transport or protocol failure.
var ErrGatewayFailure = errors.New("assistant gateway failure")

// ErrNoteNotFound is returned when a note key has never been saved.
var ErrNoteNotFound = errors.New("note not found")
