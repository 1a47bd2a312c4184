package nodeid

// ID is the structured form of a node identifier.
type ID struct {
	Base    string
	Ordinal int // 1 means no suffix is rendered.
}

// New creates an identifier without an ordinal suffix.
func New(base string) ID {
	return ID{Base: base, Ordinal: 1}
}

// NewWithOrdinal creates an identifier carrying an explicit ordinal.
func NewWithOrdinal(base string, ordinal int) ID {
	return ID{Base: base, Ordinal: ordinal}
}

// HasOrdinal returns true if the identifier renders an ordinal suffix.
func (id ID) HasOrdinal() bool {
	return id.Ordinal > 1
}
