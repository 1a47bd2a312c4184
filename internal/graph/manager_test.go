package graph_test

import (
	"testing"

	"github.com/specialistvlad/nodegraph/internal/catalog"
	"github.com/specialistvlad/nodegraph/internal/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type eventLog struct {
	events []graph.Event
}

func (l *eventLog) OnGraphEvent(ev graph.Event) { l.events = append(l.events, ev) }

func (l *eventLog) types() []graph.EventType {
	out := make([]graph.EventType, len(l.events))
	for i, ev := range l.events {
		out[i] = ev.Type
	}
	return out
}

func TestManager_CreateNodeAllocatesIDs(t *testing.T) {
	m, _ := newManager(t)

	a := mustCreate(t, m, "Read")
	b := mustCreate(t, m, "Read")
	c := mustCreate(t, m, "Read")

	assert.Equal(t, "Read", a.ID())
	assert.Equal(t, "Read(2)", b.ID())
	assert.Equal(t, "Read(3)", c.ID())

	require.NoError(t, m.RemoveNode(b))
	d := mustCreate(t, m, "Read")
	assert.Equal(t, "Read(2)", d.ID())
}

func TestManager_CreateNodeUnknownKind(t *testing.T) {
	m, _ := newManager(t)

	_, err := m.CreateNode("Nope", 0, 0)

	require.ErrorIs(t, err, catalog.ErrUnknownOperator)
	assert.Equal(t, 0, m.Len())
}

func TestManager_NodesKeepCreationOrder(t *testing.T) {
	m, _ := newManager(t)
	var want []string
	for _, kind := range []string{"Write", "Read", "BandMaths", "Subset"} {
		want = append(want, mustCreate(t, m, kind).ID())
	}

	var got []string
	for _, n := range m.Nodes() {
		got = append(got, n.ID())
	}
	assert.Equal(t, want, got)

	n, ok := m.Node("BandMaths")
	require.True(t, ok)
	assert.Equal(t, "BandMaths", n.Kind())
}

func TestManager_RestoreNode(t *testing.T) {
	m, _ := newManager(t)

	n, err := m.RestoreNode("Read(4)", "Read", 10, 20)
	require.NoError(t, err)
	assert.Equal(t, graph.Position{X: 10, Y: 20}, n.Position())

	_, err = m.RestoreNode("Read(4)", "Read", 0, 0)
	require.ErrorIs(t, err, graph.ErrDuplicateID)

	_, err = m.RestoreNode("Read(1)", "Read", 0, 0)
	require.Error(t, err)
}

func TestManager_RemoveMiddleOfChain(t *testing.T) {
	m, _ := newManager(t)
	a := mustCreate(t, m, "Read")
	b := mustCreate(t, m, "Subset")
	c := mustCreate(t, m, "Subset")
	require.NoError(t, b.Connect(a, 0))
	require.NoError(t, c.Connect(b, 0))

	require.NoError(t, m.RemoveNode(b))

	assert.Empty(t, m.Dependents(a), "A must not keep an outgoing reference to B")
	assert.Nil(t, c.Input(0), "C must not keep a stale reference to B")
	assert.False(t, b.IsConnected())
	_, ok := m.Node(b.ID())
	assert.False(t, ok)
	assert.True(t, c.Dirty())

	assert.ErrorIs(t, m.RemoveNode(b), graph.ErrNodeNotFound)
}

func TestManager_RemoveCompactsDynamicSlots(t *testing.T) {
	m, _ := newManager(t)
	x := mustCreate(t, m, "Read")
	y := mustCreate(t, m, "Read")
	z := mustCreate(t, m, "Read")
	bm := mustCreate(t, m, "BandMaths")
	require.NoError(t, bm.Connect(x, 0))
	require.NoError(t, bm.Connect(y, 1))
	require.NoError(t, bm.Connect(z, 2))

	require.NoError(t, m.RemoveNode(y))

	assert.Equal(t, 2, bm.NumInputs())
	assert.Equal(t, map[int]string{0: x.ID(), 1: z.ID()}, occupied(bm))
}

func TestManager_Events(t *testing.T) {
	m, _ := newManager(t)
	log := &eventLog{}
	remove := m.AddListener(log)

	a := mustCreate(t, m, "Read")
	b := mustCreate(t, m, "Subset")
	require.NoError(t, m.Connect(b, a, 0))
	m.Select(b)
	m.Move(b, 5, 6)
	m.Deselect(b)
	require.NoError(t, m.RemoveNode(a))

	assert.Equal(t, []graph.EventType{
		graph.Created,
		graph.Created,
		graph.ConnectionAdded,
		graph.Selected,
		graph.Updated,
		graph.Deselected,
		graph.ConnectionRemoved,
		graph.Deleted,
	}, log.types())
	assert.Same(t, a, log.events[2].Source)
	assert.Equal(t, graph.Position{X: 5, Y: 6}, b.Position())

	remove()
	mustCreate(t, m, "Read")
	assert.Len(t, log.events, 8)
}

func TestManager_InteractionGuard(t *testing.T) {
	m, _ := newManager(t)
	a := mustCreate(t, m, "Read")
	b := mustCreate(t, m, "Subset")

	m.SetInteractionEnabled(false)
	assert.ErrorIs(t, b.Connect(a, 0), graph.ErrInteractionDisabled)
	_, err := m.CreateNode("Read", 0, 0)
	assert.ErrorIs(t, err, graph.ErrInteractionDisabled)
	assert.ErrorIs(t, m.RemoveNode(a), graph.ErrInteractionDisabled)

	m.SetInteractionEnabled(true)
	assert.NoError(t, m.Connect(b, a, 0))
}

func TestManager_ForeignNodesCannotBeWired(t *testing.T) {
	m1, _ := newManager(t)
	m2, _ := newManager(t)
	a := mustCreate(t, m1, "Read")
	b := mustCreate(t, m2, "Subset")

	assert.ErrorIs(t, b.Connect(a, 0), graph.ErrForeignNode)
	assert.ErrorIs(t, m1.Connect(b, a, 0), graph.ErrNodeNotFound)
}

func TestManager_Downstream(t *testing.T) {
	m, _ := newManager(t)
	a := mustCreate(t, m, "Read")
	b := mustCreate(t, m, "Subset")
	c := mustCreate(t, m, "Subset")
	d := mustCreate(t, m, "Read")
	require.NoError(t, b.Connect(a, 0))
	require.NoError(t, c.Connect(b, 0))

	got := m.Downstream(a)

	require.Len(t, got, 2)
	assert.Same(t, b, got[0])
	assert.Same(t, c, got[1])
	assert.Empty(t, m.Downstream(d))
}

func TestManager_Close(t *testing.T) {
	m, _ := newManager(t)
	a := mustCreate(t, m, "Read")
	b := mustCreate(t, m, "Subset")
	require.NoError(t, b.Connect(a, 0))

	m.Close()

	assert.Equal(t, 0, m.Len())
	assert.False(t, b.IsConnected())
	n := mustCreate(t, m, "Read")
	assert.Equal(t, "Read", n.ID())
}
