package validation

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/specialistvlad/nodegraph/internal/graph"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	tracer = otel.Tracer("nodegraph.validation")
	meter  = otel.Meter("nodegraph.validation")
)

type instruments struct {
	once       sync.Once
	recomputes metric.Int64Counter
	duration   metric.Float64Histogram
}

// init lazily creates the instruments. A failure only degrades observability.
func (in *instruments) init(logger *slog.Logger) {
	in.once.Do(func() {
		var initErrors []string

		var err error
		in.recomputes, err = meter.Int64Counter("nodegraph_recompute_total",
			metric.WithDescription("Number of node recomputes by resulting status"),
		)
		if err != nil {
			initErrors = append(initErrors, "recompute_total: "+err.Error())
		}

		in.duration, err = meter.Float64Histogram("nodegraph_recompute_duration_seconds",
			metric.WithDescription("Time spent recomputing a node"),
			metric.WithUnit("s"),
		)
		if err != nil {
			initErrors = append(initErrors, "recompute_duration: "+err.Error())
		}

		if len(initErrors) > 0 {
			logger.Error("Failed to initialize validation metrics.",
				slog.Int("failed_count", len(initErrors)),
				slog.Any("errors", initErrors),
			)
		}
	})
}

func (in *instruments) record(ctx context.Context, n *graph.Node, status graph.Status, elapsed time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("kind", n.Kind()),
		attribute.String("status", status.String()),
	)
	if in.recomputes != nil {
		in.recomputes.Add(ctx, 1, attrs)
	}
	if in.duration != nil {
		in.duration.Record(ctx, elapsed.Seconds(), attrs)
	}
}
