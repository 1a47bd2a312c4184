package graph

// EventType identifies a structural change in the graph.
type EventType int

const (
	Created EventType = iota
	Deleted
	Updated
	Selected
	Deselected
	ConnectionAdded
	ConnectionRemoved
)

func (t EventType) String() string {
	switch t {
	case Created:
		return "created"
	case Deleted:
		return "deleted"
	case Updated:
		return "updated"
	case Selected:
		return "selected"
	case Deselected:
		return "deselected"
	case ConnectionAdded:
		return "connection_added"
	case ConnectionRemoved:
		return "connection_removed"
	default:
		return "unknown"
	}
}

// Event describes one change. Source and Index are set for connection events only.
type Event struct {
	Type   EventType
	Node   *Node
	Source *Node
	Index  int
}

// Listener receives graph events synchronously, in the order they happen.
type Listener interface {
	OnGraphEvent(Event)
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(Event)

// OnGraphEvent implements Listener.
func (f ListenerFunc) OnGraphEvent(ev Event) { f(ev) }
