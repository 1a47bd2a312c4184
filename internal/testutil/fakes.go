package testutil

import (
	"context"
	"errors"

	"github.com/specialistvlad/nodegraph/internal/graph"
	"github.com/specialistvlad/nodegraph/internal/validation"
	"github.com/zclconf/go-cty/cty"
)

// FakeForm is a ParameterForm that returns scripted verdicts and records
// every call.
type FakeForm struct {
	// Verdicts maps node ids to the Validation to report. Missing ids are valid.
	Verdicts map[string]validation.Validation
	// Edits maps node ids to parameter values pushed by the next UpdateParameters.
	Edits map[string]map[string]cty.Value

	Updated   []string
	Validated []string
	Sources   map[string]validation.Inputs
}

// NewFakeForm creates a form that accepts everything.
func NewFakeForm() *FakeForm {
	return &FakeForm{
		Verdicts: make(map[string]validation.Validation),
		Edits:    make(map[string]map[string]cty.Value),
		Sources:  make(map[string]validation.Inputs),
	}
}

func (f *FakeForm) UpdateParameters(n *graph.Node) {
	f.Updated = append(f.Updated, n.ID())
	if edit, ok := f.Edits[n.ID()]; ok {
		n.SetParameters(edit)
		delete(f.Edits, n.ID())
	}
}

func (f *FakeForm) ValidateParameters(n *graph.Node, _ map[string]cty.Value, _ validation.Inputs) validation.Validation {
	f.Validated = append(f.Validated, n.ID())
	if v, ok := f.Verdicts[n.ID()]; ok {
		return v
	}
	return validation.Valid
}

func (f *FakeForm) Parameters(n *graph.Node) map[string]cty.Value { return n.Parameters() }

func (f *FakeForm) SetSources(n *graph.Node, inputs validation.Inputs) {
	f.Sources[n.ID()] = inputs
}

// FakeExecutor is an Executor that produces "<id>-out" artifacts, or fails
// for the node ids listed in Failures.
type FakeExecutor struct {
	Failures map[string]string
	Calls    []string
	Inputs   map[string]validation.Inputs
}

// NewFakeExecutor creates an executor that always succeeds.
func NewFakeExecutor() *FakeExecutor {
	return &FakeExecutor{
		Failures: make(map[string]string),
		Inputs:   make(map[string]validation.Inputs),
	}
}

func (f *FakeExecutor) Execute(_ context.Context, n *graph.Node, _ map[string]cty.Value, inputs validation.Inputs) (graph.Artifact, error) {
	f.Calls = append(f.Calls, n.ID())
	f.Inputs[n.ID()] = inputs
	if msg, ok := f.Failures[n.ID()]; ok {
		return nil, errors.New(msg)
	}
	return n.ID() + "-out", nil
}
