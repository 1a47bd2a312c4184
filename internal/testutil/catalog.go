package testutil

import (
	"github.com/specialistvlad/nodegraph/internal/catalog"
	"github.com/zclconf/go-cty/cty"
)

// Catalog returns a catalog with a small set of operators covering every
// connector shape:
//
//	Read       no inputs, output
//	Subset     one mandatory source, output
//	Collocate  master (mandatory) and slave (optional), output
//	BandMaths  variable arity, min 1, output
//	Merge      master plus variable-arity group, min 2, output
//	Stack      counted group of two, output
//	Write      one mandatory source, no output
func Catalog() *catalog.Catalog {
	c := catalog.New()
	emptyString := cty.StringVal("")

	c.MustRegister(catalog.Definition{
		Kind: "Read", Label: "Read", Category: "Input-Output",
		Output: &catalog.Output{Description: "the product read from disk"},
		Parameters: []catalog.Parameter{
			{Name: "file", Type: cty.String, Description: "path of the product"},
		},
	})
	c.MustRegister(catalog.Definition{
		Kind: "Subset", Label: "Subset", Category: "Raster/Geometric",
		Sources: []catalog.Source{{Name: "source", Description: "product to crop"}},
		Output:  &catalog.Output{},
		Parameters: []catalog.Parameter{
			{Name: "region", Type: cty.String, Default: &emptyString},
		},
	})
	c.MustRegister(catalog.Definition{
		Kind: "Collocate", Label: "Collocate", Category: "Raster/Geometric",
		Sources: []catalog.Source{
			{Name: "master"},
			{Name: "slave", Optional: true},
		},
		Output: &catalog.Output{},
	})
	c.MustRegister(catalog.Definition{
		Kind: "BandMaths", Label: "BandMaths", Category: "Raster",
		Variadic: &catalog.Variadic{Description: "products referenced by the expression"},
		Output:   &catalog.Output{},
		Parameters: []catalog.Parameter{
			{Name: "expression", Type: cty.String},
		},
	})
	c.MustRegister(catalog.Definition{
		Kind: "Merge", Label: "Merge", Category: "Raster",
		Sources:  []catalog.Source{{Name: "master"}},
		Variadic: &catalog.Variadic{},
		Output:   &catalog.Output{},
	})
	c.MustRegister(catalog.Definition{
		Kind: "Stack", Label: "Stack", Category: "Raster",
		Variadic: &catalog.Variadic{Count: 2},
		Output:   &catalog.Output{},
	})
	c.MustRegister(catalog.Definition{
		Kind: "Write", Label: "Write", Category: "Input-Output",
		Sources: []catalog.Source{{Name: "source"}},
		Parameters: []catalog.Parameter{
			{Name: "file", Type: cty.String},
		},
	})
	return c
}
