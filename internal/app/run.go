package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/nodegraph/internal/ctxlog"
	"github.com/specialistvlad/nodegraph/internal/graph"
	"github.com/specialistvlad/nodegraph/internal/layout"
	"github.com/specialistvlad/nodegraph/internal/script"
	"github.com/specialistvlad/nodegraph/internal/statusrelay"
)

// Run loads the graph script, validates every node, and reports the result.
// With a status port configured it then keeps serving the final snapshot
// until ctx is done.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	s := a.NewSession(ctx)
	defer s.Close()
	ctx = ctxlog.With(ctx, "session", s.ID)
	logger := ctxlog.FromContext(ctx)

	if a.status != nil {
		s.Subscribe(a.status)
		a.status.Start()
		defer a.status.Close(context.WithoutCancel(ctx))
	}

	if a.config.RelayURL != "" {
		relay, err := statusrelay.Dial(ctx, statusrelay.Config{
			URL:       a.config.RelayURL,
			Namespace: a.config.RelayNamespace,
		}, s.ID)
		if err != nil {
			return fmt.Errorf("failed to connect status relay: %w", err)
		}
		defer relay.Close()
		s.Subscribe(relay)
	}

	sc, err := script.LoadPath(ctx, a.config.GraphPath)
	if err != nil {
		return fmt.Errorf("failed to load graph: %w", err)
	}
	if err := script.Build(ctx, sc, s.Graph, s.Form); err != nil {
		return fmt.Errorf("failed to build graph: %w", err)
	}
	logger.Debug("Graph built.", "node_count", s.Graph.Len())

	if s.Graph.Len() == 0 {
		logger.Warn("No nodes found in graph, validation not required.")
	} else {
		logger.Info("🚀 Validating graph...", "nodes", s.Graph.Len())
		if err := s.Engine.ValidateAll(ctx); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		logger.Info("🏁 Validation finished.")
	}

	nodes := Snapshot(s.Graph)
	if a.status != nil {
		a.status.Publish(nodes)
	}
	if err := writeReport(a.outW, nodes); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if a.config.LayoutOut != "" {
		if err := layout.Save(a.config.LayoutOut, layout.Snapshot(s.Graph)); err != nil {
			return fmt.Errorf("failed to save layout: %w", err)
		}
		logger.Info("Layout saved.", "path", a.config.LayoutOut)
	}

	if a.status != nil {
		// The snapshot stays reachable on /nodes until the run is interrupted.
		logger.Info("🩺 Serving node status until interrupted.", "port", a.config.StatusPort)
		<-ctx.Done()
	}

	if failed := Summary(nodes)[graph.Error.String()]; failed > 0 {
		return fmt.Errorf("%w: %d of %d nodes", ErrInvalidGraph, failed, len(nodes))
	}
	a.logger.Debug("App.Run method finished.")
	return nil
}
