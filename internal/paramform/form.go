// Package paramform is the reference parameter form of the headless host.
// It stages parameter edits per node, resolves them against the operator's
// parameter schema and validates the result with cty conversion rules.
package paramform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/specialistvlad/nodegraph/internal/graph"
	"github.com/specialistvlad/nodegraph/internal/validation"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Form holds pending edits and the last resolved upstream outputs of every node.
type Form struct {
	pending map[string]map[string]cty.Value
	sources map[string]validation.Inputs
}

// New creates an empty form.
func New() *Form {
	return &Form{
		pending: make(map[string]map[string]cty.Value),
		sources: make(map[string]validation.Inputs),
	}
}

// Edit stages a parameter value for a node. It is applied on the next
// UpdateParameters call, as a user edit is applied when the form is left.
func (f *Form) Edit(nodeID, name string, value cty.Value) {
	edits, ok := f.pending[nodeID]
	if !ok {
		edits = make(map[string]cty.Value)
		f.pending[nodeID] = edits
	}
	edits[name] = value
}

// EditAll stages several parameter values for a node.
func (f *Form) EditAll(nodeID string, values map[string]cty.Value) {
	for name, v := range values {
		f.Edit(nodeID, name, v)
	}
}

// Forget drops everything the form holds about a node.
func (f *Form) Forget(nodeID string) {
	delete(f.pending, nodeID)
	delete(f.sources, nodeID)
}

var _ graph.Listener = (*Form)(nil)

// OnGraphEvent forgets deleted nodes, whose ids the manager may hand out again.
func (f *Form) OnGraphEvent(ev graph.Event) {
	if ev.Type == graph.Deleted && ev.Node != nil {
		f.Forget(ev.Node.ID())
	}
}

// UpdateParameters merges the staged edits into the node's parameters.
func (f *Form) UpdateParameters(n *graph.Node) {
	edits, ok := f.pending[n.ID()]
	if !ok {
		return
	}
	params := n.Parameters()
	for name, v := range edits {
		params[name] = v
	}
	n.SetParameters(params)
	delete(f.pending, n.ID())
}

// Parameters returns the node's parameters completed with schema defaults
// and converted to the declared types where possible. Values that cannot be
// converted are returned as is; ValidateParameters reports them.
func (f *Form) Parameters(n *graph.Node) map[string]cty.Value {
	current := n.Parameters()
	out := make(map[string]cty.Value, len(current))
	for name, v := range current {
		out[name] = v
	}
	for _, p := range n.Metadata().Parameters() {
		v, ok := current[p.Name]
		if !ok || v.IsNull() {
			out[p.Name] = p.DefaultOrNull()
			continue
		}
		if converted, err := convert.Convert(v, p.Type); err == nil {
			out[p.Name] = converted
		}
	}
	return out
}

// ValidateParameters checks params against the node's schema. A missing
// required value or a value of the wrong type is an error; a parameter the
// schema does not declare is a warning.
func (f *Form) ValidateParameters(n *graph.Node, params map[string]cty.Value, _ validation.Inputs) validation.Validation {
	md := n.Metadata()
	for _, p := range md.Parameters() {
		v, ok := params[p.Name]
		if !ok || v.IsNull() {
			if p.IsRequired() {
				return invalid(fmt.Sprintf("parameter '%s' is required", p.Name))
			}
			continue
		}
		if !v.IsWhollyKnown() {
			return invalid(fmt.Sprintf("parameter '%s' has an unknown value", p.Name))
		}
		if _, err := convert.Convert(v, p.Type); err != nil {
			return invalid(fmt.Sprintf("parameter '%s' must be %s: %s", p.Name, p.Type.FriendlyName(), err))
		}
	}

	var unknown []string
	for name := range params {
		if _, declared := md.Parameter(name); !declared {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return validation.Validation{
			State: validation.Warning,
			Msg:   "unknown parameters: " + strings.Join(unknown, ", "),
		}
	}
	return validation.Valid
}

func invalid(reason string) validation.Validation {
	return validation.Validation{
		State: validation.Error,
		Msg:   "Operator UI could not be validated `" + reason + "`",
	}
}

// SetSources records the upstream outputs currently visible to the node's form.
func (f *Form) SetSources(n *graph.Node, inputs validation.Inputs) {
	f.sources[n.ID()] = inputs
}

// Sources returns the upstream outputs last shown for a node.
func (f *Form) Sources(nodeID string) validation.Inputs {
	return f.sources[nodeID]
}
