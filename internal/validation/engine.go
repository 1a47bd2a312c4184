package validation

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/specialistvlad/nodegraph/internal/ctxlog"
	"github.com/specialistvlad/nodegraph/internal/graph"
	"github.com/specialistvlad/nodegraph/internal/notify"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Notification texts.
const (
	MsgInputsMissing = "Some input products are missing. Node can not be validated"
	MsgValidated     = "Validated"
)

// Engine recomputes the nodes of one graph.
type Engine struct {
	graph   *graph.Manager
	form    ParameterForm
	exec    Executor
	channel *notify.Channel

	metrics instruments
	busy    bool
}

// NewEngine creates an engine for the nodes of m. Notifications go to the
// manager's channel.
func NewEngine(m *graph.Manager, form ParameterForm, exec Executor) *Engine {
	ch := m.Channel()
	if ch == nil {
		ch = notify.NewChannel()
	}
	return &Engine{graph: m, form: form, exec: exec, channel: ch}
}

// Busy reports whether a validation pass is running.
func (e *Engine) Busy() bool { return e.busy }

// Recompute re-derives the validation state and output of n from its
// parameters and the outputs of its upstream nodes. Direct dependents are
// marked dirty afterwards. Structural edits are rejected while it runs.
func (e *Engine) Recompute(ctx context.Context, n *graph.Node) graph.Status {
	logger := ctxlog.FromContext(ctx)
	e.metrics.init(logger)

	// ValidateAll already holds the guard; only the outermost caller releases it.
	if e.graph.InteractionEnabled() {
		e.graph.SetInteractionEnabled(false)
		defer e.graph.SetInteractionEnabled(true)
	}

	ctx, span := tracer.Start(ctx, "validation.Recompute",
		trace.WithAttributes(
			attribute.String("node.id", n.ID()),
			attribute.String("node.kind", n.Kind()),
		),
	)
	defer span.End()

	start := time.Now()
	status := e.recompute(ctx, n)
	elapsed := time.Since(start)

	e.metrics.record(ctx, n, status, elapsed)
	span.SetAttributes(attribute.String("node.status", status.String()))
	if status == graph.Error {
		span.SetStatus(codes.Error, n.Message())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	logger.Debug("Node recomputed.", "node", n.ID(), "status", status.String(), "duration", elapsed)

	for _, dep := range e.graph.Dependents(n) {
		dep.MarkDirty()
	}
	return status
}

func (e *Engine) recompute(ctx context.Context, n *graph.Node) graph.Status {
	id := n.ID()
	if !n.IsComplete() {
		return e.incomplete(n)
	}

	inputs := make(Inputs)
	for _, in := range n.Sources() {
		out := in.Source.Output()
		if out == nil {
			return e.incomplete(n)
		}
		inputs[in.Name] = out
		e.channel.Info(id, "source: "+in.Source.ID())
	}

	e.form.UpdateParameters(n)
	params := e.form.Parameters(n)
	switch v := e.form.ValidateParameters(n, params, inputs); v.State {
	case Error:
		n.MarkError(v.Msg)
		e.channel.Error(id, v.Msg)
		return n.Status()
	case Warning:
		n.MarkWarning(v.Msg)
		e.channel.Warning(id, v.Msg)
		return n.Status()
	}

	out, err := e.exec.Execute(ctx, n, params, inputs)
	if err == nil && out == nil {
		err = fmt.Errorf("operator %s produced no output", n.Kind())
	}
	if err != nil {
		trace.SpanFromContext(ctx).RecordError(err)
		n.MarkError(err.Error())
		e.channel.Error(id, err.Error())
		return n.Status()
	}

	n.MarkValidated(out)
	e.channel.OK(id, MsgValidated)
	return n.Status()
}

func (e *Engine) incomplete(n *graph.Node) graph.Status {
	n.MarkWarning(MsgInputsMissing)
	e.channel.Warning(n.ID(), MsgInputsMissing)
	return n.Status()
}

// ResolveInputs returns the outputs of n's connected upstream nodes that are
// currently available, keyed by input name.
func ResolveInputs(n *graph.Node) Inputs {
	inputs := make(Inputs)
	for _, in := range n.Sources() {
		if out := in.Source.Output(); out != nil {
			inputs[in.Name] = out
		}
	}
	return inputs
}

// UpdateSources pushes the resolved upstream outputs of n to the parameter form.
func (e *Engine) UpdateSources(n *graph.Node) {
	e.form.SetSources(n, ResolveInputs(n))
}

// Select focuses n. It refreshes the form's view of the upstream outputs but
// does not recompute.
func (e *Engine) Select(n *graph.Node) {
	e.graph.Select(n)
	e.UpdateSources(n)
}

// Deselect leaves n and recomputes it when it is dirty, has no output or its
// parameters were edited in the form. It reports whether a recompute ran.
func (e *Engine) Deselect(ctx context.Context, n *graph.Node) bool {
	e.graph.Deselect(n)
	e.form.UpdateParameters(n)
	if !n.Dirty() && n.Output() != nil {
		return false
	}
	e.Recompute(ctx, n)
	return true
}

// ValidateAll recomputes every node in dependency order. Nodes downstream of
// a node that failed to validate are invalidated without consulting the
// collaborators. Structural edits are rejected while the pass runs.
func (e *Engine) ValidateAll(ctx context.Context) error {
	if e.busy {
		return ErrBusy
	}
	e.busy = true
	e.graph.SetInteractionEnabled(false)
	defer func() {
		e.graph.SetInteractionEnabled(true)
		e.busy = false
	}()

	logger := ctxlog.FromContext(ctx)
	ctx, span := tracer.Start(ctx, "validation.ValidateAll")
	defer span.End()

	nodes := e.graph.Nodes()
	depths := make(map[*graph.Node]int, len(nodes))
	for _, n := range nodes {
		depths[n] = n.Depth()
	}
	sort.SliceStable(nodes, func(i, j int) bool {
		if depths[nodes[i]] != depths[nodes[j]] {
			return depths[nodes[i]] < depths[nodes[j]]
		}
		return nodes[i].ID() < nodes[j].ID()
	})
	span.SetAttributes(attribute.Int("nodes", len(nodes)))
	logger.Info("Starting validation pass.", "nodes", len(nodes))

	e.channel.ProcessStart()
	defer e.channel.ProcessEnd()

	failed := make(map[*graph.Node]bool)
	counts := make(map[graph.Status]int)
	for i, n := range nodes {
		if err := ctx.Err(); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "context canceled")
			return err
		}
		if upstreamFailed(n, failed) {
			n.Invalidate(MsgInputsMissing)
			e.channel.Warning(n.ID(), MsgInputsMissing)
			failed[n] = true
		} else if e.Recompute(ctx, n) != graph.Validated {
			failed[n] = true
		}
		counts[n.Status()]++
		e.channel.Progress((i + 1) * 100 / len(nodes))
	}

	logger.Info("Validation pass finished.",
		slog.Int("validated", counts[graph.Validated]),
		slog.Int("warning", counts[graph.Warning]),
		slog.Int("error", counts[graph.Error]),
	)
	span.SetStatus(codes.Ok, "")
	return nil
}

func upstreamFailed(n *graph.Node, failed map[*graph.Node]bool) bool {
	for _, in := range n.Sources() {
		if failed[in.Source] {
			return true
		}
	}
	return false
}
