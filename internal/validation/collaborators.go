package validation

import (
	"context"

	"github.com/specialistvlad/nodegraph/internal/graph"
	"github.com/zclconf/go-cty/cty"
)

// State is the verdict of a parameter form.
type State int

const (
	OK State = iota
	Warning
	Error
)

func (s State) String() string {
	switch s {
	case OK:
		return "ok"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Validation is the result of ValidateParameters.
type Validation struct {
	State State
	Msg   string
}

// Valid is the Validation of accepted parameters.
var Valid = Validation{State: OK}

// Inputs maps input names to the outputs of the connected upstream nodes.
type Inputs map[string]graph.Artifact

// ParameterForm is the parameter-editing collaborator of a node.
type ParameterForm interface {
	// UpdateParameters pushes pending edits into the node's parameters.
	UpdateParameters(n *graph.Node)
	// ValidateParameters checks params against the node's schema and the
	// resolved upstream outputs.
	ValidateParameters(n *graph.Node, params map[string]cty.Value, inputs Inputs) Validation
	// Parameters returns the parameter values to execute the node with.
	Parameters(n *graph.Node) map[string]cty.Value
	// SetSources shows the currently resolved upstream outputs in the form.
	SetSources(n *graph.Node, inputs Inputs)
}

// Executor runs an operator and returns its artifact. A returned error is
// reported on the node; its message should be human readable.
type Executor interface {
	Execute(ctx context.Context, n *graph.Node, params map[string]cty.Value, inputs Inputs) (graph.Artifact, error)
}
