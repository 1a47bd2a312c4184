package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// safeWriter discards log output from concurrent goroutines.
type safeWriter struct{ mu sync.Mutex }

func (w *safeWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(p), nil
}

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func TestRun_StatusServerServesSnapshotUntilCanceled(t *testing.T) {
	graphPath := filepath.Join(t.TempDir(), "main.hcl")
	require.NoError(t, os.WriteFile(graphPath, []byte(`
node "Read" {
  operator   = "Read"
  parameters = { file = "scene.dim" }
}
`), 0o600))

	port := freePort(t)
	cfg, err := NewConfig(Config{GraphPath: graphPath, LogLevel: "error", StatusPort: port})
	require.NoError(t, err)
	a, err := NewApp(&safeWriter{}, cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	url := fmt.Sprintf("http://127.0.0.1:%d/nodes/", port)
	var nodes []NodeStatus
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		nodes = nil
		if json.NewDecoder(resp.Body).Decode(&nodes) != nil {
			return false
		}
		return len(nodes) == 1
	}, 5*time.Second, 20*time.Millisecond)
	assert.Equal(t, "Read", nodes[0].ID)
	assert.Equal(t, "VALIDATED", nodes[0].Status)

	select {
	case <-done:
		t.Fatal("Run returned before the context was canceled")
	default:
	}

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
