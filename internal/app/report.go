package app

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/specialistvlad/nodegraph/internal/graph"
)

// writeReport prints one row per node followed by a status summary.
func writeReport(w io.Writer, nodes []NodeStatus) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NODE\tKIND\tSTATUS\tMESSAGE")
	for _, n := range nodes {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", n.ID, n.Kind, n.Status, n.Message)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	counts := Summary(nodes)
	_, err := fmt.Fprintf(w, "%d nodes: %d validated, %d warning, %d error\n",
		len(nodes),
		counts[graph.Validated.String()],
		counts[graph.Warning.String()],
		counts[graph.Error.String()])
	return err
}
