package graph

// Status is the validation state of a node.
type Status int

const (
	// Unchecked means the node has never been recomputed.
	Unchecked Status = iota
	// Validated means the last recompute produced an output.
	Validated
	// Warning means the node is incomplete or its parameters raised a warning.
	Warning
	// Error means the parameters were rejected or execution failed.
	Error
)

// String returns the upper-case name of the status.
func (s Status) String() string {
	switch s {
	case Unchecked:
		return "UNCHECKED"
	case Validated:
		return "VALIDATED"
	case Warning:
		return "WARNING"
	case Error:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}
