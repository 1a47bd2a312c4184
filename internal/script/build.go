package script

import (
	"context"
	"fmt"

	"github.com/specialistvlad/nodegraph/internal/ctxlog"
	"github.com/specialistvlad/nodegraph/internal/graph"
	"github.com/zclconf/go-cty/cty"
)

// ParameterSink receives the declared parameter values of a node, typically
// the parameter form.
type ParameterSink interface {
	EditAll(nodeID string, values map[string]cty.Value)
}

// Build creates every node of the script in m, stages its parameters in sink
// and then wires the declared sources.
func Build(ctx context.Context, s *Script, m *graph.Manager, sink ParameterSink) error {
	logger := ctxlog.FromContext(ctx)

	for _, n := range s.Nodes {
		if _, err := m.RestoreNode(n.ID, n.Operator, n.X, n.Y); err != nil {
			return fmt.Errorf("%s: node '%s': %w", n.File, n.ID, err)
		}
		if sink != nil && len(n.Parameters) > 0 {
			sink.EditAll(n.ID, n.Parameters)
		}
	}

	for _, n := range s.Nodes {
		target, _ := m.Node(n.ID)
		for index, sourceID := range n.Sources {
			if sourceID == "" {
				continue
			}
			source, ok := m.Node(sourceID)
			if !ok {
				return fmt.Errorf("%s: node '%s' slot %d: %w: %s", n.File, n.ID, index, graph.ErrNodeNotFound, sourceID)
			}
			if err := m.Connect(target, source, index); err != nil {
				return fmt.Errorf("%s: node '%s' slot %d: %w", n.File, n.ID, index, err)
			}
		}
	}

	logger.Debug("Graph built from script.", "nodes", m.Len())
	return nil
}
