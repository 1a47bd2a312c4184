// Package layout persists the display position of every node. It owns only
// the `{id, displayPosition}` part of a saved graph document; operator kinds,
// parameters and edges belong to the graph script.
package layout

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/specialistvlad/nodegraph/internal/graph"
)

// ErrUnknownNode is returned by Apply when the document names nodes the graph lacks.
var ErrUnknownNode = errors.New("layout refers to unknown nodes")

// Position is the display position of a node.
type Position struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Node is the saved state of one node.
type Node struct {
	ID              string   `yaml:"id"`
	DisplayPosition Position `yaml:"displayPosition"`
}

// Document is the saved layout of a graph.
type Document struct {
	Nodes []Node `yaml:"nodes"`
}

// Snapshot captures the positions of the manager's nodes in creation order.
func Snapshot(m *graph.Manager) Document {
	var doc Document
	for _, n := range m.Nodes() {
		doc.Nodes = append(doc.Nodes, Capture(n))
	}
	return doc
}

// Capture returns the saved state of a single node.
func Capture(n *graph.Node) Node {
	p := n.Position()
	return Node{ID: n.ID(), DisplayPosition: Position{X: p.X, Y: p.Y}}
}

// Restore moves n to its saved position.
func (s Node) Restore(n *graph.Node) {
	n.SetPosition(s.DisplayPosition.X, s.DisplayPosition.Y)
}

// Apply restores the position of every node of the document found in m.
// Nodes missing from m are skipped and reported with ErrUnknownNode.
func Apply(m *graph.Manager, doc Document) error {
	var missing []string
	for _, saved := range doc.Nodes {
		n, ok := m.Node(saved.ID)
		if !ok {
			missing = append(missing, saved.ID)
			continue
		}
		m.Move(n, saved.DisplayPosition.X, saved.DisplayPosition.Y)
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("%w: %s", ErrUnknownNode, strings.Join(missing, ", "))
	}
	return nil
}

// Lookup returns the saved state of a node by id.
func (d Document) Lookup(id string) (Node, bool) {
	for _, n := range d.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

func (d Document) validate() error {
	seen := make(map[string]struct{}, len(d.Nodes))
	for _, n := range d.Nodes {
		if n.ID == "" {
			return errors.New("layout node without id")
		}
		if _, dup := seen[n.ID]; dup {
			return fmt.Errorf("layout node '%s' appears twice", n.ID)
		}
		seen[n.ID] = struct{}{}
	}
	return nil
}
