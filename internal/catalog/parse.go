// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file decodes operator definitions from HCL.
//
// An operator file declares one or more `operator` blocks. The block label
// is the operator kind; nested `source`, `sources`, `output` and `parameter`
// blocks describe the connector shape and the parameter schema:
//
//	operator "BandMaths" {
//	  label    = "Band Maths"
//	  category = "Raster"
//
//	  sources {
//	    description = "Products whose bands are referenced by the expression"
//	  }
//
//	  output {}
//
//	  parameter "expression" {
//	    type = string
//	  }
//	}
package catalog

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/specialistvlad/nodegraph/internal/ctxlog"
)

// operatorRootSchema defines the top-level structure of the file, expecting one or more 'operator' blocks.
type operatorRootSchema struct {
	Operators []*hclOperator `hcl:"operator,block"`
}

// hclOperator represents a single 'operator' block in the HCL file for decoding purposes.
type hclOperator struct {
	Kind string   `hcl:"kind,label"`
	Body hcl.Body `hcl:",remain"`
}

type hclSource struct {
	Optional    *bool   `hcl:"optional,optional"`
	Description *string `hcl:"description,optional"`
}

type hclVariadic struct {
	Name        *string `hcl:"name,optional"`
	Count       *int    `hcl:"count,optional"`
	Description *string `hcl:"description,optional"`
}

type hclOutput struct {
	Description *string `hcl:"description,optional"`
}

// operatorBodySchema is the HCL schema for the body of an `operator` block.
var operatorBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "label"},
		{Name: "category"},
		{Name: "description"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "source", LabelNames: []string{"name"}},
		{Type: "sources"},
		{Type: "output"},
		{Type: "parameter", LabelNames: []string{"name"}},
	},
}

// ParseOperatorFile decodes an HCL file that contains one or more 'operator' blocks.
func ParseOperatorFile(ctx context.Context, hclFile *hcl.File, filePath string) ([]*Metadata, hcl.Diagnostics) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Parsing operator definitions from file", "file_path", filePath)

	var allDiags hcl.Diagnostics
	if hclFile == nil {
		allDiags = append(allDiags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "HCL file is nil",
		})
		return nil, allDiags
	}

	schema := &operatorRootSchema{}
	diags := gohcl.DecodeBody(hclFile.Body, nil, schema)
	allDiags = append(allDiags, diags...)
	if diags.HasErrors() {
		return nil, allDiags
	}

	operators := make([]*Metadata, 0, len(schema.Operators))
	for _, parsed := range schema.Operators {
		def, defDiags := decodeOperator(parsed)
		allDiags = append(allDiags, defDiags...)
		if defDiags.HasErrors() {
			continue // Skip this operator but continue parsing others
		}

		md, err := NewMetadata(def)
		if err != nil {
			allDiags = append(allDiags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid operator definition",
				Detail:   err.Error(),
				Subject:  parsed.Body.MissingItemRange().Ptr(),
			})
			continue
		}
		operators = append(operators, md)
	}

	if allDiags.HasErrors() {
		return nil, allDiags
	}

	logger.Debug("Successfully parsed operator definitions", "count", len(operators))
	return operators, allDiags
}

func decodeOperator(parsed *hclOperator) (Definition, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	def := Definition{Kind: parsed.Kind}

	content, contentDiags := parsed.Body.Content(operatorBodySchema)
	diags = append(diags, contentDiags...)
	if contentDiags.HasErrors() {
		return def, diags
	}

	for name, target := range map[string]*string{
		"label":       &def.Label,
		"category":    &def.Category,
		"description": &def.Description,
	} {
		if attr, exists := content.Attributes[name]; exists {
			diags = append(diags, gohcl.DecodeExpression(attr.Expr, nil, target)...)
		}
	}

	for _, block := range content.Blocks.OfType("source") {
		var src hclSource
		diags = append(diags, gohcl.DecodeBody(block.Body, nil, &src)...)
		def.Sources = append(def.Sources, Source{
			Name:        block.Labels[0],
			Optional:    deref(src.Optional, false),
			Description: deref(src.Description, ""),
		})
	}

	variadicBlock, uniqueDiags := uniqueBlock(content.Blocks, "sources")
	diags = append(diags, uniqueDiags...)
	if variadicBlock != nil {
		var v hclVariadic
		diags = append(diags, gohcl.DecodeBody(variadicBlock.Body, nil, &v)...)
		def.Variadic = &Variadic{
			Name:        deref(v.Name, DefaultVariadicName),
			Count:       deref(v.Count, 0),
			Description: deref(v.Description, ""),
		}
	}

	outputBlock, uniqueDiags := uniqueBlock(content.Blocks, "output")
	diags = append(diags, uniqueDiags...)
	if outputBlock != nil {
		var out hclOutput
		diags = append(diags, gohcl.DecodeBody(outputBlock.Body, nil, &out)...)
		def.Output = &Output{Description: deref(out.Description, "")}
	}

	params, paramDiags := parseParameters(content.Blocks)
	diags = append(diags, paramDiags...)
	def.Parameters = params

	return def, diags
}

// uniqueBlock returns the single block of the given type, or nil when absent.
// More than one block of that type is reported as an error.
func uniqueBlock(blocks hcl.Blocks, name string) (*hcl.Block, hcl.Diagnostics) {
	var found *hcl.Block
	var diags hcl.Diagnostics

	for _, block := range blocks.OfType(name) {
		if found != nil {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  fmt.Sprintf("Duplicate %q block", name),
				Detail:   fmt.Sprintf("Only one %q block is allowed per operator.", name),
				Subject:  &block.DefRange,
			})
			continue
		}
		found = block
	}
	return found, diags
}

func deref[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
