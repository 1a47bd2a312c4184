package catalog

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/nodegraph/internal/ctxlog"
	"github.com/specialistvlad/nodegraph/internal/fsutil"
)

// LoadPath reads every .hcl file under path (a directory or a single file)
// and registers the operators it declares.
func (c *Catalog) LoadPath(ctx context.Context, path string) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Catalog loading operator definitions...", "path", path)

	filePaths, err := fsutil.FindFilesByExtension(path, ".hcl")
	if err != nil {
		logger.Error("Failed to walk catalog path", "path", path, "error", err)
		return err
	}

	if len(filePaths) == 0 {
		logger.Warn("No .hcl operator files found in path", "path", path)
		return nil
	}

	parser := hclparse.NewParser()
	for _, filePath := range filePaths {
		hclFile, diags := parser.ParseHCLFile(filePath)
		if diags.HasErrors() {
			return fmt.Errorf("failed to parse HCL file %s: %w", filePath, diags)
		}

		operators, diags := ParseOperatorFile(ctx, hclFile, filePath)
		if diags.HasErrors() {
			return fmt.Errorf("failed to process operator definitions in %s: %w", filePath, diags)
		}
		for _, md := range operators {
			if err := c.Register(md); err != nil {
				return fmt.Errorf("%s: %w", filePath, err)
			}
		}
		logger.Debug("Successfully loaded definitions from HCL file", "file", filePath, "operators", len(operators))
	}

	logger.Info("Catalog loaded successfully.", "operators_loaded", c.Len())
	return nil
}

// LoadSource parses in-memory HCL, such as a manifest embedded in the
// binary, and registers the operators it declares.
func (c *Catalog) LoadSource(ctx context.Context, filename string, src []byte) error {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse HCL source %s: %w", filename, diags)
	}
	operators, diags := ParseOperatorFile(ctx, hclFile, filename)
	if diags.HasErrors() {
		return fmt.Errorf("failed to process operator definitions in %s: %w", filename, diags)
	}
	for _, md := range operators {
		if err := c.Register(md); err != nil {
			return fmt.Errorf("%s: %w", filename, err)
		}
	}
	ctxlog.FromContext(ctx).Debug("Loaded operator definitions from source.", "file", filename, "operators", len(operators))
	return nil
}
