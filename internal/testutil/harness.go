package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/nodegraph/internal/app"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an application run.
type HarnessResult struct {
	Output string
	Err    error
	Dir    string
	App    *app.App
}

// RunApp writes files (relative names) into a temporary directory, points
// the graph path at "graph/" inside it, and runs the application. configure
// may adjust the config before the app is built; relative CatalogPath and
// LayoutOut values are resolved against the temporary directory.
func RunApp(t *testing.T, files map[string]string, configure func(*app.Config)) *HarnessResult {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "graph"), 0o755))
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	raw := app.Config{
		GraphPath: filepath.Join(dir, "graph"),
		LogLevel:  "debug",
		LogFormat: "text",
	}
	if configure != nil {
		configure(&raw)
	}
	if raw.CatalogPath != "" && !filepath.IsAbs(raw.CatalogPath) {
		raw.CatalogPath = filepath.Join(dir, raw.CatalogPath)
	}
	if raw.LayoutOut != "" && !filepath.IsAbs(raw.LayoutOut) {
		raw.LayoutOut = filepath.Join(dir, raw.LayoutOut)
	}
	cfg, err := app.NewConfig(raw)
	require.NoError(t, err)

	out := &SafeBuffer{}
	a, err := app.NewApp(out, cfg)
	require.NoError(t, err)

	runErr := a.Run(context.Background())

	t.Cleanup(func() {
		if os.Getenv("NODEGRAPH_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), out.String())
		}
	})

	return &HarnessResult{Output: out.String(), Err: runErr, Dir: dir, App: a}
}
