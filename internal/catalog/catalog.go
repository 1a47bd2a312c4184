package catalog

import (
	"fmt"
	"log/slog"
	"sort"
)

// Describer resolves an operator kind to its connector metadata.
type Describer interface {
	Describe(kind string) (*Metadata, error)
}

// Catalog holds the metadata of every operator kind of one application instance.
type Catalog struct {
	byKind map[string]*Metadata
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{byKind: make(map[string]*Metadata)}
}

// Register adds an operator kind to the catalog.
func (c *Catalog) Register(md *Metadata) error {
	if md == nil {
		return fmt.Errorf("%w: nil metadata", ErrInvalidMetadata)
	}
	if _, exists := c.byKind[md.Kind()]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateOperator, md.Kind())
	}
	slog.Debug("Registering operator metadata.", "kind", md.Kind(), "min_inputs", md.MinInputs(), "max_inputs", md.MaxInputs())
	c.byKind[md.Kind()] = md
	return nil
}

// MustRegister builds and registers a definition, panicking on error. It is
// meant for built-in operators and test fixtures.
func (c *Catalog) MustRegister(def Definition) *Metadata {
	md, err := NewMetadata(def)
	if err != nil {
		panic(err)
	}
	if err := c.Register(md); err != nil {
		panic(err)
	}
	return md
}

// Describe implements Describer.
func (c *Catalog) Describe(kind string) (*Metadata, error) {
	md, ok := c.byKind[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownOperator, kind)
	}
	return md, nil
}

// Kinds returns every registered kind in lexical order.
func (c *Catalog) Kinds() []string {
	kinds := make([]string, 0, len(c.byKind))
	for k := range c.byKind {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Len returns the number of registered operator kinds.
func (c *Catalog) Len() int {
	return len(c.byKind)
}
