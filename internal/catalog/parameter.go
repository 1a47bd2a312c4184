// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file decodes the parameter schema of an operator.
//
// Each `parameter` block declares a typed value the parameter form must
// supply before the operator can be executed. A parameter without a default
// is required.
package catalog

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/ext/typeexpr"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// parameterBodySchema is the HCL schema for the body of a `parameter` block.
var parameterBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		// `type` is required, but we check for its existence manually
		// to provide a better error message.
		{Name: "type"},
		{Name: "description"},
		{Name: "default"},
	},
}

// parseParameters finds and decodes all 'parameter' blocks of an operator body.
func parseParameters(blocks hcl.Blocks) ([]Parameter, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	var params []Parameter
	seen := make(map[string]struct{})

	for _, block := range blocks.OfType("parameter") {
		name := block.Labels[0]
		if _, exists := seen[name]; exists {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate parameter definition",
				Detail:   fmt.Sprintf("A parameter named '%s' has already been defined.", name),
				Subject:  &block.DefRange,
			})
			continue
		}
		seen[name] = struct{}{}

		content, contentDiags := block.Body.Content(parameterBodySchema)
		diags = append(diags, contentDiags...)
		if contentDiags.HasErrors() {
			continue
		}

		typeAttr, exists := content.Attributes["type"]
		if !exists {
			missing := block.Body.MissingItemRange()
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Missing 'type' attribute",
				Detail:   "The 'type' attribute is required for all parameter blocks.",
				Subject:  &missing,
			})
			continue
		}

		ty, typeDiags := typeexpr.TypeConstraint(typeAttr.Expr)
		diags = append(diags, typeDiags...)
		if typeDiags.HasErrors() {
			continue
		}

		param := Parameter{Name: name, Type: ty}

		if descAttr, exists := content.Attributes["description"]; exists {
			diags = append(diags, gohcl.DecodeExpression(descAttr.Expr, nil, &param.Description)...)
		}

		if defaultAttr, exists := content.Attributes["default"]; exists {
			// Defaults must be literal values, hence the nil eval context.
			val, valDiags := defaultAttr.Expr.Value(nil)
			diags = append(diags, valDiags...)
			if valDiags.HasErrors() {
				continue
			}
			converted, err := convert.Convert(val, ty)
			if err != nil {
				diags = append(diags, &hcl.Diagnostic{
					Severity: hcl.DiagError,
					Summary:  "Invalid default value type",
					Detail:   fmt.Sprintf("The default value for '%s' is not compatible with its type, '%s': %s.", name, ty.FriendlyName(), err),
					Subject:  defaultAttr.Expr.Range().Ptr(),
				})
				continue
			}
			param.Default = &converted
		}

		params = append(params, param)
	}

	return params, diags
}

// IsRequired reports whether the parameter has no default value.
func (p Parameter) IsRequired() bool {
	return p.Default == nil
}

// DefaultOrNull returns the default value, or a typed null when the parameter is required.
func (p Parameter) DefaultOrNull() cty.Value {
	if p.Default == nil {
		return cty.NullVal(p.Type)
	}
	return *p.Default
}
