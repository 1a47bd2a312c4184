package script

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/nodegraph/internal/ctxlog"
	"github.com/specialistvlad/nodegraph/internal/fsutil"
)

type hclScript struct {
	Nodes []*hclNode `hcl:"node,block"`
}

type hclNode struct {
	ID         string         `hcl:"id,label"`
	Operator   string         `hcl:"operator"`
	Position   []int          `hcl:"position,optional"`
	Sources    []string       `hcl:"sources,optional"`
	Parameters hcl.Expression `hcl:"parameters,optional"`
	DefRange   hcl.Range      `hcl:",def_range"`
}

// LoadPath parses every .hcl file under path, a directory or a single file.
func LoadPath(ctx context.Context, path string) (*Script, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading graph script...", "path", path)

	filePaths, err := fsutil.FindFilesByExtension(path, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("failed to walk script path: %w", err)
	}
	if len(filePaths) == 0 {
		return nil, fmt.Errorf("no .hcl graph script found in %s", path)
	}

	parser := hclparse.NewParser()
	s := &Script{}
	for _, filePath := range filePaths {
		file, diags := parser.ParseHCLFile(filePath)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", filePath, diags)
		}
		nodes, diags := ParseFile(ctx, file, filePath)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to process graph script %s: %w", filePath, diags)
		}
		s.Nodes = append(s.Nodes, nodes...)
	}
	logger.Info("Graph script loaded.", "files", len(filePaths), "nodes", len(s.Nodes))
	return s, nil
}

// Parse parses a single script held in memory.
func Parse(ctx context.Context, src []byte, filename string) (*Script, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL source %s: %w", filename, diags)
	}
	nodes, diags := ParseFile(ctx, file, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to process graph script %s: %w", filename, diags)
	}
	return &Script{Nodes: nodes}, nil
}

// ParseFile decodes the `node` blocks of a parsed HCL file.
func ParseFile(ctx context.Context, file *hcl.File, filePath string) ([]*Node, hcl.Diagnostics) {
	logger := ctxlog.FromContext(ctx)

	var raw hclScript
	diags := gohcl.DecodeBody(file.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, diags
	}

	nodes := make([]*Node, 0, len(raw.Nodes))
	for _, rn := range raw.Nodes {
		n := &Node{ID: rn.ID, Operator: rn.Operator, Sources: rn.Sources, File: filePath}

		switch len(rn.Position) {
		case 0:
		case 2:
			n.X, n.Y = rn.Position[0], rn.Position[1]
		default:
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid position",
				Detail:   fmt.Sprintf("Node '%s' must have a position of the form [x, y].", rn.ID),
				Subject:  rn.DefRange.Ptr(),
			})
			continue
		}

		params, paramDiags := decodeParameters(rn)
		diags = append(diags, paramDiags...)
		if paramDiags.HasErrors() {
			continue
		}
		n.Parameters = params
		nodes = append(nodes, n)
		logger.Debug("Parsed script node.", "id", n.ID, "operator", n.Operator, "sources", len(n.Sources))
	}
	return nodes, diags
}
