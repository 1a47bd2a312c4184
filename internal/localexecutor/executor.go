// Package localexecutor provides the in-process execution collaborator: it
// runs the Go handler registered for a node's operator kind.
package localexecutor

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/nodegraph/internal/ctxlog"
	"github.com/specialistvlad/nodegraph/internal/graph"
	"github.com/specialistvlad/nodegraph/internal/handlers"
	"github.com/specialistvlad/nodegraph/internal/validation"
	"github.com/zclconf/go-cty/cty"
)

// ErrNoHandler is returned when no Go handler implements an operator kind.
var ErrNoHandler = errors.New("no handler registered for operator")

// Executor implements validation.Executor for local execution.
type Executor struct {
	handlers *handlers.Handlers
}

var _ validation.Executor = (*Executor)(nil)

// New creates a new local executor.
func New(h *handlers.Handlers) *Executor {
	return &Executor{handlers: h}
}

// Execute decodes the parameters into the handler's input struct and runs
// it. A panicking handler is reported as an execution failure.
func (e *Executor) Execute(ctx context.Context, n *graph.Node, params map[string]cty.Value, inputs validation.Inputs) (out graph.Artifact, err error) {
	logger := ctxlog.FromContext(ctx).With("node", n.ID(), "kind", n.Kind())

	h, ok := e.handlers.Handler(n.Kind())
	if !ok {
		return nil, fmt.Errorf("%w '%s'", ErrNoHandler, n.Kind())
	}

	var input any
	if h.Input != nil {
		input = h.Input()
		if err := handlers.DecodeParams(ctx, params, input); err != nil {
			return nil, err
		}
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Error("Operator handler panicked.", "panic", r)
			out, err = nil, fmt.Errorf("operator %s panicked: %v", n.Kind(), r)
		}
	}()

	logger.Debug("Executing operator.", "inputs", len(inputs))
	return h.Fn(ctxlog.WithLogger(ctx, logger), input, handlers.Sources(inputs))
}
