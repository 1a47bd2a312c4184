package graph

import (
	"fmt"
	"sort"
)

// Input is one occupied connector of a node.
type Input struct {
	Index  int
	Name   string
	Source *Node
}

// Input returns the node connected at the given slot, or nil.
func (n *Node) Input(index int) *Node { return n.inputs[index] }

// Sources returns the occupied connectors in index order.
func (n *Node) Sources() []Input {
	out := make([]Input, 0, len(n.inputs))
	for idx, src := range n.inputs {
		out = append(out, Input{Index: idx, Name: n.metadata.InputName(idx), Source: src})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// IsConnected reports whether any slot holds an edge.
func (n *Node) IsConnected() bool { return len(n.inputs) > 0 }

// IsComplete reports whether every mandatory input is connected.
func (n *Node) IsComplete() bool {
	for _, name := range n.metadata.MandatoryInputs() {
		idx := n.metadata.InputIndex(name)
		if idx < 0 {
			return false
		}
		if _, ok := n.inputs[idx]; !ok {
			return false
		}
	}
	return true
}

// CanConnect reports whether Connect would accept the edge, without mutating anything.
func (n *Node) CanConnect(source *Node, index int) error {
	switch {
	case source == nil:
		return ErrNilNode
	case source == n:
		return ErrSelfConnection
	case source.owner != n.owner:
		return ErrForeignNode
	case !source.metadata.HasOutput():
		return ErrNoOutput
	case !n.addressable(index):
		return fmt.Errorf("%w: %d (node %s has %d inputs)", ErrInvalidSlot, index, n.id, n.numInputs)
	}
	if _, occupied := n.inputs[index]; occupied {
		return fmt.Errorf("%w: %s[%d]", ErrSlotOccupied, n.id, index)
	}
	for idx, src := range n.inputs {
		if src == source {
			return fmt.Errorf("%w: %s already feeds %s[%d]", ErrDuplicateSource, source.id, n.id, idx)
		}
	}
	if path := upstreamPath(source, n); path != nil {
		return &CycleError{Path: append(path, n.id)}
	}
	return nil
}

// Connect wires source into the given input slot. A rejected connection
// leaves the graph untouched.
func (n *Node) Connect(source *Node, index int) error {
	if err := n.guard(); err != nil {
		return err
	}
	if err := n.CanConnect(source, index); err != nil {
		n.trace(fmt.Sprintf("connection rejected: %v", err))
		return err
	}
	n.inputs[index] = source
	if n.metadata.IsVariadic() && index >= n.metadata.VariadicStart() {
		n.numInputs = max(n.metadata.MinInputs(), n.highestOccupied()+1)
	}
	n.dirty = true
	n.emit(Event{Type: ConnectionAdded, Node: n, Source: source, Index: index})
	return nil
}

// Disconnect removes the edge at the given slot. For variable-arity nodes the
// slots after a removed variadic input shift down by one.
func (n *Node) Disconnect(index int) error {
	if err := n.guard(); err != nil {
		return err
	}
	source, ok := n.inputs[index]
	if !ok {
		err := fmt.Errorf("%w: %s[%d]", ErrNotConnected, n.id, index)
		n.trace(fmt.Sprintf("disconnection rejected: %v", err))
		return err
	}
	delete(n.inputs, index)
	if n.metadata.IsVariadic() && index >= n.metadata.VariadicStart() {
		n.compact(index)
		n.numInputs = max(n.metadata.MinInputs(), n.numInputs-1)
	}
	n.dirty = true
	n.emit(Event{Type: ConnectionRemoved, Node: n, Source: source, Index: index})
	return nil
}

// addressable reports whether index names a slot that may accept an edge.
// A variable-arity node offers one extra slot past its current inputs, but
// only once the last shown slot is filled, so the variadic region stays dense.
func (n *Node) addressable(index int) bool {
	if index < 0 {
		return false
	}
	if index < n.numInputs {
		return true
	}
	if !n.metadata.IsVariadic() || index != n.numInputs {
		return false
	}
	if n.numInputs == 0 {
		return true
	}
	_, lastFilled := n.inputs[n.numInputs-1]
	return lastFilled
}

func (n *Node) highestOccupied() int {
	highest := -1
	for idx := range n.inputs {
		if idx > highest {
			highest = idx
		}
	}
	return highest
}

// compact shifts every input above removed down by one slot.
func (n *Node) compact(removed int) {
	highest := n.highestOccupied()
	for j := removed + 1; j <= highest; j++ {
		if src, ok := n.inputs[j]; ok {
			n.inputs[j-1] = src
			delete(n.inputs, j)
		}
	}
}

// detach drops every incoming edge without compaction or events. Used when
// the node itself is being removed.
func (n *Node) detach() {
	for idx := range n.inputs {
		delete(n.inputs, idx)
	}
	n.numInputs = n.metadata.MinInputs()
}

func (n *Node) guard() error {
	if n.owner != nil && n.owner.busy {
		return ErrInteractionDisabled
	}
	return nil
}
