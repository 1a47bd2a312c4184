// Package handlers holds the Go implementations of operators, keyed by
// operator kind.
package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/specialistvlad/nodegraph/internal/graph"
)

// Sources maps input names to the artifacts of the connected upstream nodes.
type Sources map[string]graph.Artifact

// Func computes the artifact of one operator instance. input is the value
// returned by RegisteredHandler.Input, populated from the node's parameters.
type Func func(ctx context.Context, input any, sources Sources) (graph.Artifact, error)

// RegisteredHandler holds the compiled Go parts of an operator.
type RegisteredHandler struct {
	// Input returns a pointer to a fresh parameter struct. Fields are bound
	// to parameters with the `param:"name"` tag. Nil means no parameters.
	Input func() any
	Fn    Func
}

// Handlers holds all the registered handlers.
type Handlers struct {
	all map[string]*RegisteredHandler
}

// New creates an empty handler store.
func New() *Handlers {
	return &Handlers{
		all: make(map[string]*RegisteredHandler),
	}
}

// RegisterHandler registers the Go implementation of an operator kind.
func (h *Handlers) RegisterHandler(kind string, handler *RegisteredHandler) {
	if _, exists := h.all[kind]; exists {
		panic(fmt.Sprintf("operator handler for kind '%s' already registered", kind))
	}
	if handler == nil || handler.Fn == nil {
		panic(fmt.Sprintf("operator handler for kind '%s' has no function", kind))
	}
	slog.Debug("Registering operator handler.", "kind", kind)
	h.all[kind] = handler
}

// Handler returns the handler of an operator kind.
func (h *Handlers) Handler(kind string) (*RegisteredHandler, bool) {
	handler, ok := h.all[kind]
	return handler, ok
}

// Kinds returns the registered kinds in lexical order.
func (h *Handlers) Kinds() []string {
	kinds := make([]string, 0, len(h.all))
	for k := range h.all {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Module is a bundle of operator handlers compiled into the binary.
type Module interface {
	Register(h *Handlers)
}
