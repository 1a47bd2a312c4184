package graph

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/nodegraph/internal/catalog"
	"github.com/specialistvlad/nodegraph/internal/nodeid"
	"github.com/specialistvlad/nodegraph/internal/notify"
)

// Manager is the registry of the nodes of one editing session. It allocates
// node ids, owns the event bus and enforces the interaction guard.
type Manager struct {
	describer catalog.Describer
	channel   *notify.Channel
	ids       *nodeid.Allocator

	order     []*Node
	byID      map[string]*Node
	listeners []listenerEntry
	nextLID   int
	busy      bool
}

type listenerEntry struct {
	id int
	l  Listener
}

// NewManager creates an empty graph. channel may be nil, in which case
// internal consistency traces are dropped.
func NewManager(describer catalog.Describer, channel *notify.Channel) *Manager {
	return &Manager{
		describer: describer,
		channel:   channel,
		ids:       nodeid.NewAllocator(),
		byID:      make(map[string]*Node),
	}
}

// Channel returns the notification channel of the session.
func (m *Manager) Channel() *notify.Channel { return m.channel }

// CreateNode adds a node of the given operator kind at the given position.
// The id is derived from the operator label: "Read", "Read(2)", ...
func (m *Manager) CreateNode(kind string, x, y int) (*Node, error) {
	if m.busy {
		return nil, ErrInteractionDisabled
	}
	md, err := m.describer.Describe(kind)
	if err != nil {
		return nil, err
	}
	n := NewNode(m.ids.Next(md.Label()), md)
	m.add(n, x, y)
	return n, nil
}

// RestoreNode adds a node with a given id, typically one read from a saved document.
func (m *Manager) RestoreNode(id, kind string, x, y int) (*Node, error) {
	if m.busy {
		return nil, ErrInteractionDisabled
	}
	md, err := m.describer.Describe(kind)
	if err != nil {
		return nil, err
	}
	if _, exists := m.byID[id]; exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateID, id)
	}
	if err := m.ids.Reserve(id); err != nil {
		if errors.Is(err, nodeid.ErrTaken) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, id)
		}
		return nil, fmt.Errorf("restoring node %q: %w", id, err)
	}
	n := NewNode(id, md)
	m.add(n, x, y)
	return n, nil
}

func (m *Manager) add(n *Node, x, y int) {
	n.owner = m
	n.position = Position{X: x, Y: y}
	n.dirty = true
	m.order = append(m.order, n)
	m.byID[n.id] = n
	m.dispatch(Event{Type: Created, Node: n})
}

// RemoveNode deletes a node and every edge it takes part in. Downstream
// variable-arity nodes compact their inputs as if the edge had been
// disconnected by hand.
func (m *Manager) RemoveNode(n *Node) error {
	if m.busy {
		return ErrInteractionDisabled
	}
	if n == nil || m.byID[n.id] != n {
		return ErrNodeNotFound
	}
	for _, dep := range m.Dependents(n) {
		// Re-scan after each disconnect: compaction moves indices.
		for {
			idx := indexOf(dep, n)
			if idx < 0 {
				break
			}
			if err := dep.Disconnect(idx); err != nil {
				return fmt.Errorf("disconnecting %s from %s: %w", n.id, dep.id, err)
			}
		}
	}
	n.detach()
	for i, o := range m.order {
		if o == n {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	delete(m.byID, n.id)
	m.ids.Release(n.id)
	m.dispatch(Event{Type: Deleted, Node: n})
	n.owner = nil
	return nil
}

func indexOf(target, source *Node) int {
	for idx, src := range target.inputs {
		if src == source {
			return idx
		}
	}
	return -1
}

// Nodes returns the nodes in creation order.
func (m *Manager) Nodes() []*Node {
	out := make([]*Node, len(m.order))
	copy(out, m.order)
	return out
}

// Node looks a node up by id.
func (m *Manager) Node(id string) (*Node, bool) {
	n, ok := m.byID[id]
	return n, ok
}

// Len returns the number of nodes.
func (m *Manager) Len() int { return len(m.order) }

// Dependents returns the nodes that consume the output of n, in creation order.
func (m *Manager) Dependents(n *Node) []*Node {
	var out []*Node
	for _, o := range m.order {
		if indexOf(o, n) >= 0 {
			out = append(out, o)
		}
	}
	return out
}

// Downstream returns every node reachable from n along the data flow, in
// creation order. n itself is not included.
func (m *Manager) Downstream(n *Node) []*Node {
	seen := map[*Node]bool{n: true}
	queue := []*Node{n}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, dep := range m.Dependents(cur) {
			if !seen[dep] {
				seen[dep] = true
				queue = append(queue, dep)
			}
		}
	}
	var out []*Node
	for _, o := range m.order {
		if o != n && seen[o] {
			out = append(out, o)
		}
	}
	return out
}

// Connect wires source into target's slot index.
func (m *Manager) Connect(target, source *Node, index int) error {
	if target == nil || m.byID[target.id] != target {
		return ErrNodeNotFound
	}
	return target.Connect(source, index)
}

// Disconnect removes the edge at target's slot index.
func (m *Manager) Disconnect(target *Node, index int) error {
	if target == nil || m.byID[target.id] != target {
		return ErrNodeNotFound
	}
	return target.Disconnect(index)
}

// Move changes the display position of a node.
func (m *Manager) Move(n *Node, x, y int) {
	n.SetPosition(x, y)
	m.dispatch(Event{Type: Updated, Node: n})
}

// Select announces that the user focused a node.
func (m *Manager) Select(n *Node) { m.dispatch(Event{Type: Selected, Node: n}) }

// Deselect announces that the user left a node.
func (m *Manager) Deselect(n *Node) { m.dispatch(Event{Type: Deselected, Node: n}) }

// AddListener registers a listener and returns a function that removes it.
func (m *Manager) AddListener(l Listener) (remove func()) {
	m.nextLID++
	id := m.nextLID
	m.listeners = append(m.listeners, listenerEntry{id: id, l: l})
	return func() {
		for i, e := range m.listeners {
			if e.id == id {
				m.listeners = append(m.listeners[:i], m.listeners[i+1:]...)
				return
			}
		}
	}
}

func (m *Manager) dispatch(ev Event) {
	entries := make([]listenerEntry, len(m.listeners))
	copy(entries, m.listeners)
	for _, e := range entries {
		e.l.OnGraphEvent(ev)
	}
}

// SetInteractionEnabled toggles the interaction guard. While disabled, every
// structural edit fails with ErrInteractionDisabled.
func (m *Manager) SetInteractionEnabled(enabled bool) { m.busy = !enabled }

// InteractionEnabled reports whether structural edits are accepted.
func (m *Manager) InteractionEnabled() bool { return !m.busy }

// Close removes every node and listener.
func (m *Manager) Close() {
	m.busy = false
	for i := len(m.order) - 1; i >= 0; i-- {
		n := m.order[i]
		n.detach()
		n.owner = nil
		m.ids.Release(n.id)
	}
	m.order = nil
	m.byID = make(map[string]*Node)
	m.listeners = nil
}
