package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/osintgrid/osintgrid/internal/ctxlog"
	"github.com/osintgrid/osintgrid/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle: an isolated logger, the handler store, and the entity registry.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
}

// New constructs a fully initialized App. Modules register their Go transform
// handlers first; then every module's embedded descriptor unit loads, then
// the optional entities directory, then the registry parity check runs. When
// no modules are passed, the built-in set is used.
func New(outW io.Writer, cfg *Config, mods ...registry.Module) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	reg := registry.New(registry.NewHandlers())
	if len(mods) == 0 {
		mods = coreModules()
	}
	for _, mod := range mods {
		mod.Register(reg)
	}
	logger.Debug("All Go modules registered.", "count", len(mods), "handlers", reg.Handlers().Names())

	for _, mod := range mods {
		name, src := mod.Manifest()
		if src == "" {
			continue
		}
		if _, err := reg.LoadSource(ctx, name, src); err != nil {
			return nil, err
		}
	}

	if cfg.EntitiesPath != "" {
		if _, err := reg.LoadDir(ctx, cfg.EntitiesPath); err != nil {
			return nil, fmt.Errorf("failed to load entities directory: %w", err)
		}
	}

	if err := reg.Validate(ctx); err != nil {
		return nil, err
	}
	logger.Debug("Registry validation passed.")

	return &App{outW: outW, logger: logger, registry: reg}, nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
