package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/nodegraph/internal/app"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600), "failed to set up test file")
	return path
}

func TestRun_ValidGraph(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := writeFile(t, "main.hcl", `
		node "Read" {
		  operator   = "Read"
		  parameters = { file = "scene.dim" }
		}
		node "Subset" {
		  operator = "Subset"
		  sources  = ["Read"]
		}
	`)
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, []string{"-log-level", "error", path})

	// --- Assert ---
	require.NoError(t, err)
	require.Contains(t, out.String(), "NODE")
	require.Contains(t, out.String(), "2 nodes: 2 validated, 0 warning, 0 error")
}

func TestRun_InvalidGraph(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "main.hcl", `
		node "Read" {
		  operator = "Read"
		}
	`)
	out := &bytes.Buffer{}

	err := run(context.Background(), out, []string{"-log-level", "error", path})

	require.Error(t, err)
	require.True(t, errors.Is(err, app.ErrInvalidGraph))
	require.Contains(t, out.String(), "parameter 'file' is required")
}

func TestRun_SyntaxError(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "main.hcl", `
		node "Read" {
		  operator = "Read"
		// Missing closing brace here
	`)

	err := run(context.Background(), &bytes.Buffer{}, []string{path})

	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to parse")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	args := []string{"-h"}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, args)

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	args := []string{"--this-is-not-a-valid-flag"}
	out := &bytes.Buffer{}

	err := run(context.Background(), out, args)

	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}
