package app

import "errors"

// ErrInvalidGraph is returned by Run when at least one node ends in the
// Error state.
var ErrInvalidGraph = errors.New("graph has nodes in error")
