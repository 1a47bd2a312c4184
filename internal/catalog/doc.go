// Package catalog describes the connector shape of every operator kind the
// editor knows about.
//
// A Metadata value is immutable and shared by all nodes of its kind. It
// answers how many inputs an operator takes (fixed or variable arity), which
// of them are mandatory, how connector indices map to input names, whether
// the operator produces an output and which parameters it accepts.
//
// The Catalog is loaded once at startup, usually from HCL files declaring
// `operator` blocks, and is read-only afterwards.
package catalog
