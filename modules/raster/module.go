// Package raster implements the built-in raster operators. They transform
// product descriptors only; band arithmetic is not evaluated.
package raster

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/specialistvlad/nodegraph/internal/graph"
	"github.com/specialistvlad/nodegraph/internal/handlers"
	"github.com/specialistvlad/nodegraph/modules/product"
)

//go:embed manifest.hcl
var manifest []byte

// Module implements the handlers.Module interface for this package.
type Module struct{}

// Manifest returns the operator declarations implemented by this module.
func (Module) Manifest() (string, []byte) { return "raster/manifest.hcl", manifest }

// SubsetInput defines the parameters of the Subset operator.
type SubsetInput struct {
	Region string   `param:"region"`
	Bands  []string `param:"bands"`
}

// OnSubset crops the source product.
func OnSubset(_ context.Context, input *SubsetInput, src *product.Product) (*product.Product, error) {
	out := src.Derive(src.Name+"_subset", "Subset")
	if input.Region != "" {
		x, y, w, h, err := parseRegion(input.Region)
		if err != nil {
			return nil, err
		}
		if x+w > src.Width || y+h > src.Height {
			return nil, fmt.Errorf("region %s exceeds the %dx%d product", input.Region, src.Width, src.Height)
		}
		out.Width, out.Height = w, h
	}
	if len(input.Bands) > 0 {
		for _, b := range input.Bands {
			if !contains(src.Bands, b) {
				return nil, fmt.Errorf("band '%s' not found in %s", b, src.Name)
			}
		}
		out.Bands = append([]string(nil), input.Bands...)
	}
	return out, nil
}

func parseRegion(region string) (x, y, w, h int, err error) {
	parts := strings.Split(region, ",")
	if len(parts) != 4 {
		return 0, 0, 0, 0, fmt.Errorf("region '%s' must be x,y,width,height", region)
	}
	vals := make([]int, 4)
	for i, p := range parts {
		v, convErr := strconv.Atoi(strings.TrimSpace(p))
		if convErr != nil || v < 0 {
			return 0, 0, 0, 0, fmt.Errorf("region '%s' must hold non-negative integers", region)
		}
		vals[i] = v
	}
	if vals[2] == 0 || vals[3] == 0 {
		return 0, 0, 0, 0, fmt.Errorf("region '%s' is empty", region)
	}
	return vals[0], vals[1], vals[2], vals[3], nil
}

// BandMathsInput defines the parameters of the BandMaths operator.
type BandMathsInput struct {
	Expression string `param:"expression"`
	TargetBand string `param:"target_band"`
}

// OnBandMaths produces a single-band product on the grid of its sources,
// which must all share one size.
func OnBandMaths(_ context.Context, input *BandMathsInput, srcs []*product.Product) (*product.Product, error) {
	if strings.TrimSpace(input.Expression) == "" {
		return nil, errors.New("empty band maths expression")
	}
	if len(srcs) == 0 {
		return nil, errors.New("no source products")
	}
	first := srcs[0]
	for _, p := range srcs[1:] {
		if p.Width != first.Width || p.Height != first.Height {
			return nil, fmt.Errorf("products %s and %s differ in size", first.Name, p.Name)
		}
	}
	out := first.Derive(first.Name+"_BandMath", "BandMaths("+input.Expression+")")
	out.Bands = []string{input.TargetBand}
	return out, nil
}

// OnMerge adds every band of the slave products to the master.
func OnMerge(_ context.Context, master *product.Product, slaves []*product.Product) (*product.Product, error) {
	out := master.Derive(master.Name+"_merged", "Merge")
	for _, s := range slaves {
		if s.Width != master.Width || s.Height != master.Height {
			return nil, fmt.Errorf("product %s does not match the master grid", s.Name)
		}
		for _, b := range s.Bands {
			if !contains(out.Bands, b) {
				out.Bands = append(out.Bands, b)
			}
		}
	}
	return out, nil
}

// CollocateInput defines the parameters of the Collocate operator.
type CollocateInput struct {
	SlaveSuffix string `param:"slave_suffix"`
}

// OnCollocate resamples the optional slave onto the master grid.
func OnCollocate(_ context.Context, input *CollocateInput, master, slave *product.Product) (*product.Product, error) {
	out := master.Derive(master.Name+"_collocated", "Collocate")
	if slave != nil {
		for _, b := range slave.Bands {
			out.Bands = append(out.Bands, b+input.SlaveSuffix)
		}
	}
	return out, nil
}

// OnStack stacks two products of equal size.
func OnStack(_ context.Context, srcs []*product.Product) (*product.Product, error) {
	if len(srcs) != 2 {
		return nil, fmt.Errorf("stack needs 2 products, got %d", len(srcs))
	}
	a, b := srcs[0], srcs[1]
	if a.Width != b.Width || a.Height != b.Height {
		return nil, fmt.Errorf("products %s and %s differ in size", a.Name, b.Name)
	}
	out := a.Derive(a.Name+"_Stack", "Stack")
	for _, band := range b.Bands {
		out.Bands = append(out.Bands, band+"_slv")
	}
	return out, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Register registers the handlers with the engine.
func (Module) Register(h *handlers.Handlers) {
	h.RegisterHandler("Subset", &handlers.RegisteredHandler{
		Input: func() any { return new(SubsetInput) },
		Fn: func(ctx context.Context, input any, sources handlers.Sources) (graph.Artifact, error) {
			src, err := product.FromSource("source", sources["source"])
			if err != nil {
				return nil, err
			}
			return OnSubset(ctx, input.(*SubsetInput), src)
		},
	})
	h.RegisterHandler("BandMaths", &handlers.RegisteredHandler{
		Input: func() any { return new(BandMathsInput) },
		Fn: func(ctx context.Context, input any, sources handlers.Sources) (graph.Artifact, error) {
			srcs, err := product.All(sources)
			if err != nil {
				return nil, err
			}
			return OnBandMaths(ctx, input.(*BandMathsInput), srcs)
		},
	})
	h.RegisterHandler("Merge", &handlers.RegisteredHandler{
		Fn: func(ctx context.Context, _ any, sources handlers.Sources) (graph.Artifact, error) {
			master, err := product.FromSource("master", sources["master"])
			if err != nil {
				return nil, err
			}
			rest := make(handlers.Sources, len(sources))
			for name, a := range sources {
				if name != "master" {
					rest[name] = a
				}
			}
			slaves, err := product.All(rest)
			if err != nil {
				return nil, err
			}
			return OnMerge(ctx, master, slaves)
		},
	})
	h.RegisterHandler("Collocate", &handlers.RegisteredHandler{
		Input: func() any { return new(CollocateInput) },
		Fn: func(ctx context.Context, input any, sources handlers.Sources) (graph.Artifact, error) {
			master, err := product.FromSource("master", sources["master"])
			if err != nil {
				return nil, err
			}
			var slave *product.Product
			if a, ok := sources["slave"]; ok {
				if slave, err = product.FromSource("slave", a); err != nil {
					return nil, err
				}
			}
			return OnCollocate(ctx, input.(*CollocateInput), master, slave)
		},
	})
	h.RegisterHandler("Stack", &handlers.RegisteredHandler{
		Fn: func(ctx context.Context, _ any, sources handlers.Sources) (graph.Artifact, error) {
			srcs, err := product.All(sources)
			if err != nil {
				return nil, err
			}
			return OnStack(ctx, srcs)
		},
	})
}
