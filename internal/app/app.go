package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/specialistvlad/nodegraph/internal/catalog"
	"github.com/specialistvlad/nodegraph/internal/ctxlog"
	"github.com/specialistvlad/nodegraph/internal/handlers"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	catalog  *catalog.Catalog
	handlers *handlers.Handlers
	status   *statusServer
}

// NewApp is the constructor for the main application. It loads the built-in
// operator manifests, the optional extra catalog path, and registers every
// module's handlers. With no modules given, coreModules is used.
func NewApp(outW io.Writer, cfg *Config, modules ...Module) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	if len(modules) == 0 {
		modules = coreModules
	}

	cat := catalog.New()
	h := handlers.New()
	for _, mod := range modules {
		name, src := mod.Manifest()
		if err := cat.LoadSource(ctx, name, src); err != nil {
			return nil, fmt.Errorf("failed to load module manifest: %w", err)
		}
		mod.Register(h)
	}
	logger.Debug("All Go modules registered.", "count", len(modules))

	// A manifest operator without a handler is a mismatch between code and
	// config, caught before any extra catalog is layered on.
	for _, kind := range cat.Kinds() {
		if _, ok := h.Handler(kind); !ok {
			panic(fmt.Sprintf("operator %q is declared but has no registered handler", kind))
		}
	}

	if cfg.CatalogPath != "" {
		if err := cat.LoadPath(ctx, cfg.CatalogPath); err != nil {
			return nil, fmt.Errorf("failed to load catalog: %w", err)
		}
		for _, kind := range cat.Kinds() {
			if !slices.Contains(h.Kinds(), kind) {
				logger.Warn("Operator has no handler, its nodes will fail validation.", "operator", kind)
			}
		}
	}
	logger.Info("Catalog ready.", "operators", cat.Len(), "handlers", len(h.Kinds()))

	a := &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		catalog:  cat,
		handlers: h,
	}
	if cfg.StatusPort > 0 {
		a.status = newStatusServer(logger, cfg.StatusPort)
	}
	return a, nil
}

// Catalog returns the application's operator catalog. This is primarily for testing.
func (a *App) Catalog() *catalog.Catalog {
	return a.catalog
}
