package script

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// decodeParameters evaluates the `parameters` object of a node. Values must
// be literals; there is no evaluation context.
func decodeParameters(rn *hclNode) (map[string]cty.Value, hcl.Diagnostics) {
	params := make(map[string]cty.Value)
	if rn.Parameters == nil {
		return params, nil
	}

	val, diags := rn.Parameters.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() {
		return params, nil
	}
	if !val.Type().IsObjectType() && !val.Type().IsMapType() {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid parameters",
			Detail:   fmt.Sprintf("The parameters of node '%s' must be an object, got %s.", rn.ID, val.Type().FriendlyName()),
			Subject:  rn.Parameters.Range().Ptr(),
		}}
	}
	for it := val.ElementIterator(); it.Next(); {
		k, v := it.Element()
		params[k.AsString()] = v
	}
	return params, nil
}
