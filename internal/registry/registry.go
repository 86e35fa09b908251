package registry

import (
	"sync"

	"github.com/osintgrid/osintgrid/internal/entity"
	"github.com/osintgrid/osintgrid/internal/naming"
)

// Module is the interface built-in and third-party plugin packages implement
// to contribute Go transform handlers and their entity descriptor unit.
type Module interface {
	// Register contributes the module's transform handlers.
	Register(r *Registry)
	// Manifest returns the module's embedded descriptor unit: a unit name
	// and HCL source declaring the module's entities and transforms.
	Manifest() (name string, src string)
}

// UIMeta is the UI-visible metadata of an available descriptor.
type UIMeta struct {
	Label       string `json:"label"`
	Description string `json:"description"`
	Author      string `json:"author"`
}

// Registry is the process-wide ordered ledger of entity descriptors for one
// application instance. The three parallel structures (descriptors, raw
// labels, UI metadata) always change together under mu; see the package doc
// for the lookup and collision contract.
type Registry struct {
	handlers *Handlers

	mu          sync.RWMutex
	descriptors []*entity.Descriptor
	labels      []string
	uiLabels    []UIMeta
}

// New creates a Registry backed by the given handler store.
func New(handlers *Handlers) *Registry {
	if handlers == nil {
		handlers = NewHandlers()
	}
	return &Registry{handlers: handlers}
}

// Handlers returns the registry's transform handler store.
func (r *Registry) Handlers() *Handlers {
	return r.handlers
}

// Register appends a descriptor to the ledger in call order and binds its
// transforms against the handler store. There is no uniqueness enforcement:
// a duplicate label registers a second entry that Lookup will never resolve
// (first registered wins).
func (r *Registry) Register(desc *entity.Descriptor) {
	desc.Bind(r.handlers.Resolve)
	label := desc.TrimmedLabel()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.descriptors = append(r.descriptors, desc)
	r.labels = append(r.labels, label)
	if desc.Available {
		r.uiLabels = append(r.uiLabels, UIMeta{
			Label:       label,
			Description: orDefault(desc.Description, "Description not available."),
			Author:      orDefault(desc.Author, "Author not provided."),
		})
	}
}

// Lookup resolves a descriptor by label, comparing normalized forms in
// registration order and returning the first match.
func (r *Registry) Lookup(label string) (*entity.Descriptor, bool) {
	want := naming.Snake(label)

	r.mu.RLock()
	defer r.mu.RUnlock()
	for i, candidate := range r.labels {
		if naming.Snake(candidate) == want {
			return r.descriptors[i], true
		}
	}
	return nil, false
}

// Reset clears all three parallel structures atomically relative to any
// in-flight read. Readers observe either the fully-old or the fully-new
// ledger, never an intermediate state. The handler store is untouched: Go
// handlers live for the process, descriptor generations come and go.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.descriptors = nil
	r.labels = nil
	r.uiLabels = nil
}

// Descriptors returns a snapshot of the ledger in registration order.
func (r *Registry) Descriptors() []*entity.Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.Descriptor, len(r.descriptors))
	copy(out, r.descriptors)
	return out
}

// Labels returns a snapshot of the registered raw labels in order.
func (r *Registry) Labels() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.labels))
	copy(out, r.labels)
	return out
}

// UILabels returns a snapshot of the UI-visible metadata of available
// descriptors in registration order. Availability gates listing only, never
// Lookup.
func (r *Registry) UILabels() []UIMeta {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]UIMeta, len(r.uiLabels))
	copy(out, r.uiLabels)
	return out
}

// Len reports the number of registered descriptors.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.descriptors)
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
