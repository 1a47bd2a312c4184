package app

import (
	"github.com/specialistvlad/nodegraph/internal/handlers"
	"github.com/specialistvlad/nodegraph/modules/product"
	"github.com/specialistvlad/nodegraph/modules/raster"
)

// Module contributes operator definitions and their handlers.
type Module interface {
	handlers.Module
	// Manifest returns the file name and HCL source of the module's operators.
	Manifest() (string, []byte)
}

// coreModules is the definitive list of all modules that are compiled into
// the nodegraph binary.
var coreModules = []Module{
	product.Module{},
	raster.Module{},
}
