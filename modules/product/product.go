// Package product implements the input and output operators and defines the
// Product descriptor every built-in operator passes downstream.
package product

import (
	"fmt"
	"sort"
	"strings"
)

// Product describes a raster data product. Operators transform descriptors;
// no pixel data is held.
type Product struct {
	Name    string   `yaml:"name"`
	Width   int      `yaml:"width"`
	Height  int      `yaml:"height"`
	Bands   []string `yaml:"bands"`
	Lineage []string `yaml:"lineage"`
}

// Derive returns a copy of p renamed and with step appended to its lineage.
func (p *Product) Derive(name, step string) *Product {
	return &Product{
		Name:    name,
		Width:   p.Width,
		Height:  p.Height,
		Bands:   append([]string(nil), p.Bands...),
		Lineage: append(append([]string(nil), p.Lineage...), step),
	}
}

func (p *Product) String() string {
	return fmt.Sprintf("%s [%dx%d] bands=%s", p.Name, p.Width, p.Height, strings.Join(p.Bands, ","))
}

// FromSource extracts a *Product artifact, failing with a readable message
// when an upstream operator produced something else.
func FromSource(name string, artifact any) (*Product, error) {
	p, ok := artifact.(*Product)
	if !ok || p == nil {
		return nil, fmt.Errorf("input '%s' is not a product (got %T)", name, artifact)
	}
	return p, nil
}

// All returns the products of sources in input order: `sourceProduct`,
// `sourceProduct.1`, `sourceProduct.2`, ...
func All(sources map[string]any) ([]*Product, error) {
	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) < len(names[j])
		}
		return names[i] < names[j]
	})

	out := make([]*Product, 0, len(names))
	for _, name := range names {
		p, err := FromSource(name, sources[name])
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
