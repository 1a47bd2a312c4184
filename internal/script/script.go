// Package script loads graph scripts: HCL files that declare the nodes of a
// graph, their positions, parameters and upstream sources. The headless host
// replays a script against a graph.Manager the way an editor user would
// build the graph by hand.
//
// Example:
//
//	node "Read" {
//	  operator   = "Read"
//	  position   = [0, 0]
//	  parameters = { file = "scene.dim" }
//	}
//
//	node "Subset" {
//	  operator = "Subset"
//	  position = [200, 0]
//	  sources  = ["Read"]
//	}
//
// Sources are connected in slot order: the first id feeds slot 0, the second
// slot 1 and so on. An empty string leaves a slot unconnected.
package script

import (
	"github.com/zclconf/go-cty/cty"
)

// Node is one declared node.
type Node struct {
	ID         string
	Operator   string
	X, Y       int
	Parameters map[string]cty.Value
	Sources    []string
	File       string
}

// Script is the parsed content of one or more script files, in declaration order.
type Script struct {
	Nodes []*Node
}
