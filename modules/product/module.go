package product

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/nodegraph/internal/ctxlog"
	"github.com/specialistvlad/nodegraph/internal/graph"
	"github.com/specialistvlad/nodegraph/internal/handlers"
	"gopkg.in/yaml.v3"
)

//go:embed manifest.hcl
var manifest []byte

// Module implements the handlers.Module interface for this package.
type Module struct{}

// Manifest returns the operator declarations implemented by this module.
func (Module) Manifest() (string, []byte) { return "product/manifest.hcl", manifest }

// ReadInput defines the parameters of the Read operator.
type ReadInput struct {
	File      string   `param:"file"`
	Bands     []string `param:"bands"`
	Width     int      `param:"width"`
	Height    int      `param:"height"`
	MustExist bool     `param:"must_exist"`
}

// OnRead opens a product descriptor. Only the file name is used unless
// MustExist is set.
func OnRead(ctx context.Context, input *ReadInput) (*Product, error) {
	if input.File == "" {
		return nil, errors.New("no file given")
	}
	if input.MustExist {
		if _, err := os.Stat(input.File); err != nil {
			return nil, fmt.Errorf("cannot open product: %w", err)
		}
	}
	if input.Width <= 0 || input.Height <= 0 {
		return nil, fmt.Errorf("invalid raster size %dx%d", input.Width, input.Height)
	}
	name := strings.TrimSuffix(filepath.Base(input.File), filepath.Ext(input.File))
	ctxlog.FromContext(ctx).Debug("Product opened.", "name", name)
	return &Product{
		Name:    name,
		Width:   input.Width,
		Height:  input.Height,
		Bands:   append([]string(nil), input.Bands...),
		Lineage: []string{"Read(" + input.File + ")"},
	}, nil
}

// WriteInput defines the parameters of the Write operator.
type WriteInput struct {
	File string `param:"file"`
}

// Written is the artifact of the Write operator.
type Written struct {
	Path    string
	Product *Product
}

// OnWrite stores the descriptor of its source product as YAML.
func OnWrite(ctx context.Context, input *WriteInput, src *Product) (*Written, error) {
	if input.File == "" {
		return nil, errors.New("no target file given")
	}
	data, err := yaml.Marshal(src)
	if err != nil {
		return nil, fmt.Errorf("encoding product %s: %w", src.Name, err)
	}
	if err := os.MkdirAll(filepath.Dir(input.File), 0o755); err != nil {
		return nil, fmt.Errorf("creating target directory: %w", err)
	}
	if err := os.WriteFile(input.File, data, 0o644); err != nil {
		return nil, fmt.Errorf("writing product: %w", err)
	}
	ctxlog.FromContext(ctx).Info("Product written.", "name", src.Name, "file", input.File)
	return &Written{Path: input.File, Product: src}, nil
}

// Register registers the handlers with the engine.
func (Module) Register(h *handlers.Handlers) {
	h.RegisterHandler("Read", &handlers.RegisteredHandler{
		Input: func() any { return new(ReadInput) },
		Fn: func(ctx context.Context, input any, _ handlers.Sources) (graph.Artifact, error) {
			return OnRead(ctx, input.(*ReadInput))
		},
	})
	h.RegisterHandler("Write", &handlers.RegisteredHandler{
		Input: func() any { return new(WriteInput) },
		Fn: func(ctx context.Context, input any, sources handlers.Sources) (graph.Artifact, error) {
			src, err := FromSource("sourceProduct", sources["sourceProduct"])
			if err != nil {
				return nil, err
			}
			return OnWrite(ctx, input.(*WriteInput), src)
		},
	})
}
