package app

import (
	"github.com/specialistvlad/nodegraph/internal/graph"
)

// NodeStatus is the externally visible validation state of one node.
type NodeStatus struct {
	ID      string `json:"id"`
	Kind    string `json:"kind"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Depth   int    `json:"depth"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
}

// Snapshot captures the status of every node in creation order.
func Snapshot(m *graph.Manager) []NodeStatus {
	nodes := m.Nodes()
	out := make([]NodeStatus, 0, len(nodes))
	for _, n := range nodes {
		pos := n.Position()
		out = append(out, NodeStatus{
			ID:      n.ID(),
			Kind:    n.Kind(),
			Status:  n.Status().String(),
			Message: n.Message(),
			Depth:   n.Depth(),
			X:       pos.X,
			Y:       pos.Y,
		})
	}
	return out
}

// Summary counts nodes per status name.
func Summary(nodes []NodeStatus) map[string]int {
	counts := make(map[string]int, 4)
	for _, n := range nodes {
		counts[n.Status]++
	}
	return counts
}
