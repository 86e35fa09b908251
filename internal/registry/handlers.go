package registry

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/osintgrid/osintgrid/internal/entity"
)

// Handlers stores the Go transform functions that descriptor units bind to
// by name. Handler names are stable identifiers ("TransformUrlToWebsite"),
// not display labels; descriptors reference them in their transform blocks.
type Handlers struct {
	all map[string]entity.TransformFunc
}

// NewHandlers creates an empty handler store.
func NewHandlers() *Handlers {
	return &Handlers{all: make(map[string]entity.TransformFunc)}
}

// Register adds a transform handler under a unique name. Registering the
// same name twice is a programmer error.
func (h *Handlers) Register(name string, fn entity.TransformFunc) {
	if _, exists := h.all[name]; exists {
		panic(fmt.Sprintf("transform handler with name '%s' already registered", name))
	}
	slog.Debug("Registering transform handler.", "name", name)
	h.all[name] = fn
}

// Resolve returns the handler registered under name.
func (h *Handlers) Resolve(name string) (entity.TransformFunc, bool) {
	fn, ok := h.all[name]
	return fn, ok
}

// Names lists registered handler names in sorted order.
func (h *Handlers) Names() []string {
	names := make([]string, 0, len(h.all))
	for name := range h.all {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
