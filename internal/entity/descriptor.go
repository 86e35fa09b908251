package entity

import (
	"context"
	"strings"

	"github.com/osintgrid/osintgrid/internal/naming"
)

// Record is one wire-shaped output entity produced by a transform handler,
// typically a compiled blueprint with an `edge_label` stamped on by dispatch.
type Record = map[string]any

// TransformFunc is the Go body of a transform. It receives the flattened
// input record mapped from the incoming graph node plus the caller's
// execution context, and returns either a single Record or a []Record.
// Handlers may block on network or browser I/O; they are expected to honor
// ctx cancellation themselves.
type TransformFunc func(ctx context.Context, input *Input, use *Use) (any, error)

// Transform binds a display label to a named Go handler. EdgeLabel is
// attached to every record the handler produces, describing the semantic
// relationship between the input entity and its outputs.
type Transform struct {
	Label     string
	Icon      string
	EdgeLabel string
	Handler   string
	Fn        TransformFunc
}

// TransformLabel is the UI-visible slice of a Transform.
type TransformLabel struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

// Descriptor is a registered entity definition: display metadata, an ordered
// layout of element groups, and the transforms that can be dispatched against
// a filled-in instance of the entity.
//
// Descriptors are values, created once at definition-load time and registered
// explicitly. There is no registration-on-declaration hook; the loader (or
// any Go caller) constructs a Descriptor and hands it to the registry.
type Descriptor struct {
	Label       string
	Color       string
	Icon        string
	Author      string
	Description string
	Available   bool

	Layout     []Group
	Transforms []*Transform

	// table indexes Transforms by normalized display label. Built once, on
	// first use; first spec wins when two labels normalize identically.
	table map[string]*Transform
}

// handlerTable returns the normalized-name index, building it on first use.
func (d *Descriptor) handlerTable() map[string]*Transform {
	if d.table == nil {
		d.table = make(map[string]*Transform, len(d.Transforms))
		for _, tr := range d.Transforms {
			key := naming.Snake(tr.Label)
			if _, exists := d.table[key]; !exists {
				d.table[key] = tr
			}
		}
	}
	return d.table
}

// Transform resolves a transform by its normalized display label.
func (d *Descriptor) Transform(label string) (*Transform, bool) {
	tr, ok := d.handlerTable()[naming.Snake(label)]
	return tr, ok
}

// TransformLabels lists the descriptor's transforms in declaration order.
func (d *Descriptor) TransformLabels() []TransformLabel {
	labels := make([]TransformLabel, 0, len(d.Transforms))
	for _, tr := range d.Transforms {
		labels = append(labels, TransformLabel{Label: tr.Label, Icon: tr.Icon})
	}
	return labels
}

// Bind resolves each transform's Handler name to a Go function. Transforms
// whose Fn is already set (descriptors assembled directly in Go) are left
// alone; unresolved names stay nil and are reported by registry validation.
func (d *Descriptor) Bind(resolve func(name string) (TransformFunc, bool)) {
	for _, tr := range d.Transforms {
		if tr.Fn != nil || tr.Handler == "" {
			continue
		}
		if fn, ok := resolve(tr.Handler); ok {
			tr.Fn = fn
		}
	}
	// The table indexes the same *Transform values, so bound Fns are visible
	// through it without a rebuild.
	d.handlerTable()
}

// TrimmedLabel is the registry identity of the descriptor: the declared
// label with surrounding whitespace removed.
func (d *Descriptor) TrimmedLabel() string {
	return strings.TrimSpace(d.Label)
}
