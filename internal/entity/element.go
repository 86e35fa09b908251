package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Leaf element kinds form a fixed capability set defined by the UI, not by
// this engine. The core treats every element as an opaque tagged record and
// only ever branches on KindDropdown, whose live value is a selected option
// rather than a typed-in scalar.
const (
	KindText     = "text"
	KindTextArea = "textarea"
	KindDropdown = "dropdown"
	KindNumber   = "number"
	KindDecimal  = "decimal"
	KindUpload   = "upload"
	KindTitle    = "title"
	KindSection  = "section"
	KindEmpty    = "empty"
	KindCopyText = "copy-text"
	KindCopyCode = "copy-code"
	KindJSON     = "json"
	KindImage    = "image"
	KindPDF      = "pdf"
	KindVideo    = "video"
	KindList     = "list"
	KindTable    = "table"
)

// Element is one leaf of an entity layout: an open record with a `type`
// discriminator, a `label` identity, and arbitrary pass-through payload
// (value, icon, placeholder, style, options, ...). Unknown fields are
// preserved verbatim through compile and wire round trips.
type Element map[string]any

// Kind returns the element's `type` discriminator, or "" when absent.
func (e Element) Kind() string {
	s, _ := e["type"].(string)
	return s
}

// Label returns the element's display label, or "" when absent.
func (e Element) Label() string {
	s, _ := e["label"].(string)
	return s
}

// Value returns the element's live value, which may be any JSON-shaped type.
func (e Element) Value() any {
	return e["value"]
}

// Clone returns a deep copy of the element. Compiling a blueprint must never
// mutate the descriptor's declared layout, so every compile works on clones.
func (e Element) Clone() Element {
	out := make(Element, len(e))
	for k, v := range e {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, item := range val {
			m[k] = cloneValue(item)
		}
		return m
	case Element:
		return val.Clone()
	case []any:
		s := make([]any, len(val))
		for i, item := range val {
			s[i] = cloneValue(item)
		}
		return s
	default:
		return val
	}
}

// Group is one ordered entry of an entity layout: either a single leaf
// element or a fixed-depth-one row of leaves rendered side by side. On the
// wire a single leaf is a bare JSON object and a row is a JSON array, which
// is why Group carries its own (un)marshalling.
type Group struct {
	Row      bool
	Elements []Element
}

// Leaf wraps a single element as a layout group.
func Leaf(e Element) Group {
	return Group{Elements: []Element{e}}
}

// Row wraps side-by-side elements as a layout group.
func Row(elements ...Element) Group {
	return Group{Row: true, Elements: elements}
}

// MarshalJSON emits a bare object for a single leaf and an array for a row.
func (g Group) MarshalJSON() ([]byte, error) {
	if g.Row {
		return json.Marshal(g.Elements)
	}
	if len(g.Elements) != 1 {
		return nil, fmt.Errorf("entity: non-row group must hold exactly one element, has %d", len(g.Elements))
	}
	return json.Marshal(g.Elements[0])
}

// UnmarshalJSON accepts either shape produced by MarshalJSON.
func (g *Group) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var elements []Element
		if err := json.Unmarshal(data, &elements); err != nil {
			return err
		}
		g.Row = true
		g.Elements = elements
		return nil
	}
	var e Element
	if err := json.Unmarshal(data, &e); err != nil {
		return err
	}
	g.Row = false
	g.Elements = []Element{e}
	return nil
}
