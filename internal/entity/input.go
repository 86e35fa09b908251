package entity

import (
	"github.com/osintgrid/osintgrid/internal/naming"
)

// Input is the flat, open record a transform handler receives: a mapping
// from normalized element label to either a scalar value or a nested field
// map. Fields absent from the incoming node are simply absent; handlers
// probe with Has/Get and never see null placeholders.
type Input struct {
	fields map[string]any
}

// NewInput wraps a prepared field map as an Input.
func NewInput(fields map[string]any) *Input {
	if fields == nil {
		fields = make(map[string]any)
	}
	return &Input{fields: fields}
}

// Get returns the raw value for a normalized label.
func (in *Input) Get(key string) (any, bool) {
	v, ok := in.fields[key]
	return v, ok
}

// Has reports whether the normalized label is present.
func (in *Input) Has(key string) bool {
	_, ok := in.fields[key]
	return ok
}

// String returns the scalar value for a normalized label, or "" when the
// field is absent or not a string.
func (in *Input) String(key string) string {
	s, _ := in.fields[key].(string)
	return s
}

// Map returns the nested field map for a normalized label, or nil.
func (in *Input) Map(key string) map[string]any {
	m, _ := in.fields[key].(map[string]any)
	return m
}

// Fields returns a copy of the full record, preserving unrecognized fields
// for handlers that want pass-through access.
func (in *Input) Fields() map[string]any {
	out := make(map[string]any, len(in.fields))
	for k, v := range in.fields {
		out[k] = v
	}
	return out
}

// renderingFields are element payload keys that exist only for UI rendering.
// They are stripped before a handler ever sees the record, along with the
// `type` discriminator and the `label` that becomes the record key.
var renderingFields = [...]string{"icon", "placeholder", "style", "options"}

// MapInput flattens a graph node's element structure into the input record
// for a handler. Rows flatten one level; each leaf contributes at most one
// key, derived from its normalized label:
//
//   - exactly one remaining field holding a non-empty string, or a leaf of
//     the selectable-option kind: collapsed to a bare scalar
//   - multiple remaining fields: kept as a nested map
//   - nothing of substance remaining: the key is omitted entirely
func MapInput(node *GraphNode) *Input {
	fields := make(map[string]any)
	for _, group := range node.Data.Elements {
		for _, el := range group.Elements {
			mapElement(fields, el)
		}
	}
	return NewInput(fields)
}

func mapElement(fields map[string]any, el Element) {
	label := naming.Snake(el.Label())
	if label == "" {
		return
	}

	kind := el.Kind()
	rest := make(map[string]any, len(el))
	for k, v := range el {
		rest[k] = v
	}
	delete(rest, "label")
	delete(rest, "type")
	for _, k := range renderingFields {
		delete(rest, k)
	}

	// The selected option of a dropdown is the leaf's value wholesale,
	// whether the option is a plain string or a structured record.
	if kind == KindDropdown {
		if v, ok := rest["value"]; ok && v != nil && v != "" {
			fields[label] = v
		}
		return
	}

	if len(rest) == 0 {
		return
	}
	if len(rest) == 1 {
		for _, v := range rest {
			if s, ok := v.(string); ok {
				if s != "" {
					fields[label] = s
				}
				return
			}
		}
	}

	fields[label] = rest
}
