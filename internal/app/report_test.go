package app

import (
	"bytes"
	"context"
	"testing"

	"github.com/specialistvlad/nodegraph/internal/graph"
	"github.com/specialistvlad/nodegraph/internal/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReport(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	require.NoError(t, writeReport(buf, sampleNodes))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 4)
	assert.Regexp(t, `^NODE\s+KIND\s+STATUS\s+MESSAGE$`, string(lines[0]))
	assert.Regexp(t, `^Subset\s+Subset\s+ERROR\s+region is empty$`, string(lines[2]))
	assert.Equal(t, "2 nodes: 1 validated, 0 warning, 1 error", string(lines[3]))
}

func TestSession_SnapshotAndValidate(t *testing.T) {
	t.Parallel()

	cfg, err := NewConfig(Config{GraphPath: "unused", LogLevel: "error"})
	require.NoError(t, err)
	a, err := NewApp(&bytes.Buffer{}, cfg)
	require.NoError(t, err)

	s := a.NewSession(context.Background())
	defer s.Close()
	require.NotEmpty(t, s.ID)

	rec := &notify.Recorder{}
	s.Subscribe(rec)

	read, err := s.Graph.CreateNode("Read", 0, 0)
	require.NoError(t, err)
	subset, err := s.Graph.CreateNode("Subset", 120, 40)
	require.NoError(t, err)
	require.NoError(t, s.Graph.Connect(subset, read, 0))

	require.NoError(t, s.Engine.ValidateAll(context.Background()))

	nodes := Snapshot(s.Graph)
	require.Len(t, nodes, 2)
	assert.Equal(t, graph.Error.String(), nodes[0].Status)
	assert.Contains(t, nodes[0].Message, "parameter 'file' is required")
	assert.Equal(t, graph.Warning.String(), nodes[1].Status)
	assert.Equal(t, NodeStatus{ID: "Subset", Kind: "Subset", Status: "WARNING", Message: nodes[1].Message, Depth: 1, X: 120, Y: 40}, nodes[1])
	assert.Equal(t, []int{50, 100}, rec.ProgressValues())
}
