package layout_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/nodegraph/internal/graph"
	"github.com/specialistvlad/nodegraph/internal/layout"
	"github.com/specialistvlad/nodegraph/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	for _, ext := range []string{".hcl", ".yaml"} {
		t.Run(ext, func(t *testing.T) {
			m := graph.NewManager(testutil.Catalog(), nil)
			x, err := m.CreateNode("Read", 0, 0)
			require.NoError(t, err)
			y, err := m.CreateNode("Read", 0, 100)
			require.NoError(t, err)
			bm, err := m.CreateNode("BandMaths", 240, 60)
			require.NoError(t, err)
			require.NoError(t, bm.Connect(x, 0))
			require.NoError(t, bm.Connect(y, 1))

			path := filepath.Join(t.TempDir(), "layout"+ext)
			require.NoError(t, layout.Save(path, layout.Snapshot(m)))
			doc, err := layout.Load(path)
			require.NoError(t, err)

			fresh := graph.NewManager(testutil.Catalog(), nil)
			restored, err := fresh.RestoreNode(bm.ID(), "BandMaths", 0, 0)
			require.NoError(t, err)
			saved, ok := doc.Lookup(bm.ID())
			require.True(t, ok)
			saved.Restore(restored)

			assert.Equal(t, bm.Position(), restored.Position())
			assert.False(t, restored.IsConnected())
			assert.Equal(t, bm.Metadata().MinInputs(), restored.NumInputs())

			// Ready for re-wiring.
			src, err := fresh.RestoreNode(x.ID(), "Read", 0, 0)
			require.NoError(t, err)
			require.NoError(t, restored.Connect(src, 0))
		})
	}
}

func TestSnapshotAndApply(t *testing.T) {
	m := graph.NewManager(testutil.Catalog(), nil)
	a, err := m.CreateNode("Read", 1, 2)
	require.NoError(t, err)
	b, err := m.CreateNode("Subset", 3, 4)
	require.NoError(t, err)

	doc := layout.Snapshot(m)
	want := layout.Document{Nodes: []layout.Node{
		{ID: "Read", DisplayPosition: layout.Position{X: 1, Y: 2}},
		{ID: "Subset", DisplayPosition: layout.Position{X: 3, Y: 4}},
	}}
	if diff := cmp.Diff(want, doc); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}

	doc.Nodes[0].DisplayPosition = layout.Position{X: 50, Y: 60}
	doc.Nodes = append(doc.Nodes, layout.Node{ID: "Ghost"})
	err = layout.Apply(m, doc)

	require.ErrorIs(t, err, layout.ErrUnknownNode)
	assert.Contains(t, err.Error(), "Ghost")
	assert.Equal(t, graph.Position{X: 50, Y: 60}, a.Position())
	assert.Equal(t, graph.Position{X: 3, Y: 4}, b.Position())
}

func TestHCLCodec_Format(t *testing.T) {
	doc := layout.Document{Nodes: []layout.Node{
		{ID: "Read(2)", DisplayPosition: layout.Position{X: -5, Y: 7}},
	}}

	data, err := layout.HCLCodec{}.Encode(doc)
	require.NoError(t, err)

	want := testutil.Unindent(`
		node "Read(2)" {
		  display_position {
		    x = -5
		    y = 7
		  }
		}
	`)
	assert.Equal(t, want, string(data))

	got, err := layout.HCLCodec{}.Decode(data, "layout.hcl")
	require.NoError(t, err)
	assert.Equal(t, doc, got)
}

func TestYAMLCodec_Format(t *testing.T) {
	src := testutil.Unindent(`
		nodes:
		  - id: Read
		    displayPosition:
		      x: 10
		      y: 20
	`)

	doc, err := layout.YAMLCodec{}.Decode([]byte(src), "layout.yaml")
	require.NoError(t, err)
	assert.Equal(t, layout.Document{Nodes: []layout.Node{
		{ID: "Read", DisplayPosition: layout.Position{X: 10, Y: 20}},
	}}, doc)
}

func TestCodecErrors(t *testing.T) {
	_, err := layout.CodecFor("layout.json")
	assert.ErrorIs(t, err, layout.ErrUnsupportedFormat)

	dup := layout.Document{Nodes: []layout.Node{{ID: "A"}, {ID: "A"}}}
	_, err = layout.YAMLCodec{}.Encode(dup)
	assert.ErrorContains(t, err, "appears twice")

	_, err = layout.HCLCodec{}.Decode([]byte(`node "A" {}`), "bad.hcl")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "display_position"), err.Error())
}
