package graph

import (
	"errors"
	"strings"
)

var (
	// ErrNilNode is returned when a nil node is passed where one is required.
	ErrNilNode = errors.New("node is nil")
	// ErrInvalidSlot is returned when a connector index is outside the addressable slots.
	ErrInvalidSlot = errors.New("invalid connector slot")
	// ErrSlotOccupied is returned when connecting to a slot that already holds an edge.
	ErrSlotOccupied = errors.New("connector slot already connected")
	// ErrDuplicateSource is returned when a source already feeds another slot of the same node.
	ErrDuplicateSource = errors.New("source already connected to this node")
	// ErrSelfConnection is returned when a node is wired to itself.
	ErrSelfConnection = errors.New("node cannot be connected to itself")
	// ErrNoOutput is returned when the source operator produces no output.
	ErrNoOutput = errors.New("source node has no output")
	// ErrNotConnected is returned when disconnecting an empty slot.
	ErrNotConnected = errors.New("connector slot is not connected")
	// ErrForeignNode is returned when nodes of different managers are wired together.
	ErrForeignNode = errors.New("node belongs to another graph")
	// ErrNodeNotFound is returned when a node is not registered in the manager.
	ErrNodeNotFound = errors.New("node not found")
	// ErrDuplicateID is returned when restoring a node whose id is already taken.
	ErrDuplicateID = errors.New("node id already in use")
	// ErrInteractionDisabled is returned for structural edits while a validation pass runs.
	ErrInteractionDisabled = errors.New("graph interaction is disabled during validation")
)

// CycleError is returned when a connection would close a cycle. Path lists
// the node ids along the data flow, starting and ending with the same node.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return "connection would create a cycle: " + strings.Join(e.Path, " -> ")
}
