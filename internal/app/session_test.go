package app

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestSession_DeletedNodeEditsDoNotLeakToReusedID(t *testing.T) {
	t.Parallel()

	cfg, err := NewConfig(Config{GraphPath: "unused", LogLevel: "error"})
	require.NoError(t, err)
	a, err := NewApp(&bytes.Buffer{}, cfg)
	require.NoError(t, err)

	s := a.NewSession(context.Background())
	defer s.Close()

	old, err := s.Graph.CreateNode("Read", 0, 0)
	require.NoError(t, err)
	s.Form.Edit(old.ID(), "file", cty.StringVal("deleted-node.dim"))
	require.NoError(t, s.Graph.RemoveNode(old))

	fresh, err := s.Graph.CreateNode("Read", 0, 0)
	require.NoError(t, err)
	require.Equal(t, "Read", fresh.ID())

	s.Form.UpdateParameters(fresh)
	assert.NotContains(t, fresh.Parameters(), "file")
}
