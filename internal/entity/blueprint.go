package entity

import (
	"fmt"

	"github.com/osintgrid/osintgrid/internal/naming"
)

// Blueprint is the wire-serializable UI schema compiled from a descriptor's
// layout, optionally pre-filled with caller-supplied values.
type Blueprint struct {
	Label string        `json:"label"`
	Color string        `json:"color"`
	Icon  string        `json:"icon"`
	Data  BlueprintData `json:"data"`
}

// BlueprintData carries the compiled layout.
type BlueprintData struct {
	Elements []Group `json:"elements"`
}

// Values maps normalized element labels to injection values for Compile. A
// string value sets the target element's `value` field; a field map is merged
// onto the element, overwriting on key collision. Other value types are
// ignored, matching the pre-fill contract of the UI.
type Values map[string]any

// Record converts the blueprint to the open wire map handlers return from
// transforms, so dispatch post-processing can stamp the edge label onto it.
func (b *Blueprint) Record() Record {
	return Record{
		"label": b.Label,
		"color": b.Color,
		"icon":  b.Icon,
		"data":  map[string]any{"elements": b.Data.Elements},
	}
}

// Compile walks the descriptor's layout in declaration order and produces a
// new Blueprint. Row grouping is preserved; the source layout is never
// mutated. It fails with a *ConfigError when any declared element lacks its
// `type` discriminator.
func Compile(d *Descriptor, values Values) (*Blueprint, error) {
	elements := make([]Group, 0, len(d.Layout))
	for _, group := range d.Layout {
		compiled := Group{Row: group.Row, Elements: make([]Element, 0, len(group.Elements))}
		for _, el := range group.Elements {
			ce, err := compileElement(d, el, values)
			if err != nil {
				return nil, err
			}
			compiled.Elements = append(compiled.Elements, ce)
		}
		elements = append(elements, compiled)
	}

	return &Blueprint{
		Label: d.TrimmedLabel(),
		Color: d.Color,
		Icon:  d.Icon,
		Data:  BlueprintData{Elements: elements},
	}, nil
}

func compileElement(d *Descriptor, el Element, values Values) (Element, error) {
	if el.Kind() == "" {
		return nil, &ConfigError{
			Entity: d.TrimmedLabel(),
			Detail: fmt.Sprintf("layout element %q is missing its type discriminator", el.Label()),
		}
	}

	out := el.Clone()
	v, ok := values[naming.Snake(el.Label())]
	if !ok {
		return out, nil
	}
	switch val := v.(type) {
	case string:
		out["value"] = val
	case map[string]any:
		for k, item := range val {
			out[k] = cloneValue(item)
		}
	}
	return out, nil
}
