package catalog

import "errors"

var (
	// ErrUnknownOperator is returned when a kind is not present in the catalog.
	ErrUnknownOperator = errors.New("unknown operator kind")
	// ErrDuplicateOperator is returned when a kind is registered twice.
	ErrDuplicateOperator = errors.New("operator kind already registered")
	// ErrInvalidMetadata is returned when a definition violates the connector invariants.
	ErrInvalidMetadata = errors.New("invalid operator metadata")
)
