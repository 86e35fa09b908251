package testutil

import (
	"context"

	"github.com/osintgrid/osintgrid/internal/entity"
	"github.com/osintgrid/osintgrid/internal/registry"
)

// NoopHandlers builds a handler store where every given name resolves to a
// transform that returns no records. Useful when a test only exercises
// descriptor parsing and registry bookkeeping.
func NoopHandlers(names ...string) *registry.Handlers {
	hndls := registry.NewHandlers()
	for _, name := range names {
		hndls.Register(name, func(ctx context.Context, in *entity.Input, use *entity.Use) (any, error) {
			return nil, nil
		})
	}
	return hndls
}

// StaticHandler returns a transform that always yields the given record.
func StaticHandler(rec entity.Record) entity.TransformFunc {
	return func(ctx context.Context, in *entity.Input, use *entity.Use) (any, error) {
		return rec, nil
	}
}
