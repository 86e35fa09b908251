package app

import (
	"context"
	"fmt"
)

// Run executes the application according to its configuration: a one-shot
// entity listing, the long-running entity service, or nothing at all.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	a.logger.Info("Registry ready.", "entities", a.registry.Len())

	if cfg.ListOnly {
		return a.printEntities()
	}
	if cfg.ListenPort > 0 {
		return a.serve(ctx, cfg.ListenPort)
	}

	a.logger.Warn("Nothing to do: no listen port and no list flag.")
	return nil
}

// printEntities writes a human-readable listing of every registered entity
// and its transforms to the application's output writer.
func (a *App) printEntities() error {
	for _, desc := range a.registry.Descriptors() {
		availability := ""
		if !desc.Available {
			availability = " (hidden)"
		}
		fmt.Fprintf(a.outW, "%s%s\n", desc.Label, availability)
		for _, label := range desc.TransformLabels() {
			fmt.Fprintf(a.outW, "  - %s\n", label.Label)
		}
	}
	return nil
}
