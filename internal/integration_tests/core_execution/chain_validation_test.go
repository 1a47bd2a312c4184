package integration_tests

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/nodegraph/internal/testutil"
	"github.com/stretchr/testify/require"
)

// TestCoreExecution_ReadSubsetWrite_AllValidated checks that a linear chain
// validates end to end and that the sink operator runs.
func TestCoreExecution_ReadSubsetWrite_AllValidated(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	target := filepath.Join(t.TempDir(), "out", "subset.yaml")
	graphHCL := fmt.Sprintf(`
		node "Read" {
		  operator   = "Read"
		  parameters = { file = "scene.dim", width = 100, height = 80 }
		}

		node "Subset" {
		  operator   = "Subset"
		  position   = [150, 0]
		  sources    = ["Read"]
		  parameters = { region = "0,0,50,40", bands = ["B1"] }
		}

		node "Write" {
		  operator   = "Write"
		  position   = [300, 0]
		  sources    = ["Subset"]
		  parameters = { file = %q }
		}
	`, target)

	// --- Act ---
	result := testutil.RunApp(t, map[string]string{"graph/main.hcl": graphHCL}, nil)

	// --- Assert ---
	require.NoError(t, result.Err)
	require.Contains(t, result.Output, "3 nodes: 3 validated, 0 warning, 0 error")

	written, err := os.ReadFile(target)
	require.NoError(t, err)
	require.Contains(t, string(written), "name: scene_subset")
	require.Contains(t, string(written), "width: 50")
	require.Contains(t, string(written), "- B1")
}

// TestCoreExecution_EmptyGraph_Succeeds checks that a script without nodes is
// not an error.
func TestCoreExecution_EmptyGraph_Succeeds(t *testing.T) {
	t.Parallel()

	result := testutil.RunApp(t, map[string]string{"graph/main.hcl": "# nothing yet\n"}, nil)

	require.NoError(t, result.Err)
	require.Contains(t, result.Output, "No nodes found in graph")
	require.Contains(t, result.Output, "0 nodes: 0 validated, 0 warning, 0 error")
}
