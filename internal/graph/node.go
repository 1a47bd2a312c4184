package graph

import (
	"github.com/specialistvlad/nodegraph/internal/catalog"
	"github.com/zclconf/go-cty/cty"
)

// Artifact is the opaque handle to the product a node computed. The graph
// never inspects it; it only passes it downstream.
type Artifact = any

// Position is the display position of a node in the editor canvas.
type Position struct {
	X int
	Y int
}

// Node is one operator instance in the graph. Its incoming edges are keyed
// by connector index; the node does not know its consumers.
type Node struct {
	id       string
	metadata *catalog.Metadata
	owner    *Manager
	position Position

	inputs    map[int]*Node
	numInputs int

	params  map[string]cty.Value
	status  Status
	message string
	output  Artifact
	dirty   bool
}

// NewNode creates a detached node. Nodes that take part in a graph are
// created through Manager.CreateNode; detached nodes are used when a layout
// document is decoded before it is applied.
func NewNode(id string, md *catalog.Metadata) *Node {
	return &Node{
		id:        id,
		metadata:  md,
		inputs:    make(map[int]*Node),
		numInputs: md.MinInputs(),
		params:    make(map[string]cty.Value),
		status:    Unchecked,
	}
}

// ID returns the identifier of the node, unique within its manager.
func (n *Node) ID() string { return n.id }

// Kind returns the operator kind of the node.
func (n *Node) Kind() string { return n.metadata.Kind() }

// Metadata returns the shared connector metadata of the node's operator.
func (n *Node) Metadata() *catalog.Metadata { return n.metadata }

// Position returns the display position of the node.
func (n *Node) Position() Position { return n.position }

// SetPosition moves the node. Moving does not affect validation state.
func (n *Node) SetPosition(x, y int) { n.position = Position{X: x, Y: y} }

// NumInputs returns the number of connector slots the node currently shows.
func (n *Node) NumInputs() int { return n.numInputs }

// Status returns the validation status of the last recompute.
func (n *Node) Status() Status { return n.status }

// Message returns the warning or error text of the last recompute, if any.
func (n *Node) Message() string { return n.message }

// Output returns the artifact of the last successful recompute. It is nil
// unless the status is Validated.
func (n *Node) Output() Artifact { return n.output }

// Dirty reports whether the node changed since its last recompute.
func (n *Node) Dirty() bool { return n.dirty }

// Pending reports whether the node awaits a recompute.
func (n *Node) Pending() bool { return n.dirty }

// MarkDirty flags the node for recompute.
func (n *Node) MarkDirty() { n.dirty = true }

// Parameters returns a copy of the parameter values last pushed by the form.
func (n *Node) Parameters() map[string]cty.Value {
	out := make(map[string]cty.Value, len(n.params))
	for k, v := range n.params {
		out[k] = v
	}
	return out
}

// SetParameters replaces the node's parameter values. The node becomes dirty
// when the new values differ from the current ones.
func (n *Node) SetParameters(params map[string]cty.Value) bool {
	if sameParameters(n.params, params) {
		return false
	}
	next := make(map[string]cty.Value, len(params))
	for k, v := range params {
		next[k] = v
	}
	n.params = next
	n.dirty = true
	n.emit(Event{Type: Updated, Node: n})
	return true
}

func sameParameters(a, b map[string]cty.Value) bool {
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok || !av.RawEquals(bv) {
			return false
		}
	}
	return true
}

// MarkValidated records a successful recompute.
func (n *Node) MarkValidated(output Artifact) {
	n.status = Validated
	n.message = ""
	n.output = output
	n.dirty = false
}

// MarkWarning records a recompute that stopped on a warning. The output is
// dropped and the node stays dirty until a recompute succeeds.
func (n *Node) MarkWarning(msg string) {
	n.status = Warning
	n.message = msg
	n.output = nil
}

// MarkError records a recompute that failed. The output is dropped and the
// dirty flag is left as is.
func (n *Node) MarkError(msg string) {
	n.status = Error
	n.message = msg
	n.output = nil
}

// Invalidate forces the node into Warning without recomputing it. It is used
// when an upstream node failed and this node cannot be validated.
func (n *Node) Invalidate(reason string) {
	n.status = Warning
	n.message = reason
	n.output = nil
}

// IsSource reports whether the node takes no inputs.
func (n *Node) IsSource() bool { return n.metadata.MaxInputs() == 0 }

// IsTarget reports whether the node produces no output.
func (n *Node) IsTarget() bool { return !n.metadata.HasOutput() }

// Depth returns the length of the longest upstream path ending at the node.
// Nodes without connected inputs have depth 0.
func (n *Node) Depth() int {
	return depth(n, make(map[*Node]int))
}

func depth(n *Node, memo map[*Node]int) int {
	if d, ok := memo[n]; ok {
		return d
	}
	best := 0
	for _, src := range n.inputs {
		if d := depth(src, memo) + 1; d > best {
			best = d
		}
	}
	memo[n] = best
	return best
}

func (n *Node) emit(ev Event) {
	if n.owner != nil {
		n.owner.dispatch(ev)
	}
}

func (n *Node) trace(msg string) {
	if n.owner != nil && n.owner.channel != nil {
		n.owner.channel.Info(n.id, msg)
	}
}
