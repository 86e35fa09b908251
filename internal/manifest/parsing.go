package manifest

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/osintgrid/osintgrid/internal/ctxlog"
	"github.com/osintgrid/osintgrid/internal/entity"
	"github.com/osintgrid/osintgrid/internal/naming"
)

// Display defaults applied when a unit omits the attribute.
const (
	defaultColor         = "#145070"
	defaultIcon          = "atom-2"
	defaultTransformIcon = "list"
	defaultEdgeLabel     = "transformed_to"
)

// rootSchema expects one or more 'entity' blocks at the top of a unit.
type rootSchema struct {
	Entities []*hclEntity `hcl:"entity,block"`
}

// hclEntity is a single 'entity' block captured for two-phase decoding.
type hclEntity struct {
	Label string   `hcl:"label,label"`
	Body  hcl.Body `hcl:",remain"`
}

var entityBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "color"},
		{Name: "icon"},
		{Name: "author"},
		{Name: "description"},
		{Name: "available"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "element", LabelNames: []string{"kind"}},
		{Type: "row"},
		{Type: "transform", LabelNames: []string{"label"}},
	},
}

var rowBodySchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "element", LabelNames: []string{"kind"}},
	},
}

var transformBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "icon"},
		{Name: "edge_label"},
		{Name: "handler"},
	},
}

// ParseSource decodes one descriptor unit from HCL source text and returns
// its entity descriptors in declaration order. Transforms come back unbound;
// the registry binds them against the handler store at registration.
func ParseSource(ctx context.Context, unitName, src string) ([]*entity.Descriptor, error) {
	logger := ctxlog.FromContext(ctx)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL([]byte(src), unitName+".hcl")
	if diags.HasErrors() {
		return nil, diags
	}

	var root rootSchema
	diags = gohcl.DecodeBody(file.Body, nil, &root)
	if diags.HasErrors() {
		return nil, diags
	}

	var allDiags hcl.Diagnostics
	descriptors := make([]*entity.Descriptor, 0, len(root.Entities))
	for _, block := range root.Entities {
		desc, entityDiags := parseEntity(block)
		allDiags = append(allDiags, entityDiags...)
		if desc != nil {
			descriptors = append(descriptors, desc)
		}
	}
	if allDiags.HasErrors() {
		return nil, allDiags
	}

	logger.Debug("Parsed descriptor unit.", "unit", unitName, "entities", len(descriptors))
	return descriptors, nil
}

// parseEntity decodes the body of a single 'entity' block. Layout groups keep
// source order across mixed element and row blocks.
func parseEntity(block *hclEntity) (*entity.Descriptor, hcl.Diagnostics) {
	var diags hcl.Diagnostics

	desc := &entity.Descriptor{
		Label:     block.Label,
		Color:     defaultColor,
		Icon:      defaultIcon,
		Available: true,
	}
	if desc.TrimmedLabel() == "" {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Empty entity label",
			Detail:   "Every entity block must declare a non-empty label.",
		})
		return nil, diags
	}

	bodyContent, contentDiags := block.Body.Content(entityBodySchema)
	diags = append(diags, contentDiags...)
	if contentDiags.HasErrors() {
		return nil, diags
	}

	for name, target := range map[string]*string{
		"color":       &desc.Color,
		"icon":        &desc.Icon,
		"author":      &desc.Author,
		"description": &desc.Description,
	} {
		if attr, exists := bodyContent.Attributes[name]; exists {
			diags = append(diags, gohcl.DecodeExpression(attr.Expr, nil, target)...)
		}
	}
	if attr, exists := bodyContent.Attributes["available"]; exists {
		diags = append(diags, gohcl.DecodeExpression(attr.Expr, nil, &desc.Available)...)
	}

	seenTransforms := make(map[string]string)
	for _, inner := range bodyContent.Blocks {
		switch inner.Type {
		case "element":
			el, elDiags := parseElement(inner)
			diags = append(diags, elDiags...)
			if el != nil {
				desc.Layout = append(desc.Layout, entity.Leaf(el))
			}

		case "row":
			group, rowDiags := parseRow(inner)
			diags = append(diags, rowDiags...)
			if len(group.Elements) > 0 {
				desc.Layout = append(desc.Layout, group)
			}

		case "transform":
			tr, trDiags := parseTransform(inner)
			diags = append(diags, trDiags...)
			if tr == nil {
				continue
			}
			normalized := naming.Snake(tr.Label)
			if first, dup := seenTransforms[normalized]; dup {
				diags = append(diags, &hcl.Diagnostic{
					Severity: hcl.DiagError,
					Summary:  "Duplicate transform label",
					Detail: fmt.Sprintf("Transform %q normalizes to the same name as %q within entity %q.",
						tr.Label, first, desc.TrimmedLabel()),
					Subject: &inner.DefRange,
				})
				continue
			}
			seenTransforms[normalized] = tr.Label
			desc.Transforms = append(desc.Transforms, tr)
		}
	}

	if diags.HasErrors() {
		return nil, diags
	}
	return desc, diags
}

func parseRow(block *hcl.Block) (entity.Group, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	group := entity.Group{Row: true}

	bodyContent, contentDiags := block.Body.Content(rowBodySchema)
	diags = append(diags, contentDiags...)
	for _, inner := range bodyContent.Blocks {
		el, elDiags := parseElement(inner)
		diags = append(diags, elDiags...)
		if el != nil {
			group.Elements = append(group.Elements, el)
		}
	}
	return group, diags
}

// parseElement decodes an element block into the open tagged record the core
// manipulates. The block label is the kind discriminator; every attribute
// beyond `label` is pass-through payload.
func parseElement(block *hcl.Block) (entity.Element, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	kind := block.Labels[0]
	el := entity.Element{"type": kind}

	attrs, attrDiags := block.Body.JustAttributes()
	diags = append(diags, attrDiags...)
	for name, attr := range attrs {
		val, valDiags := attr.Expr.Value(nil)
		diags = append(diags, valDiags...)
		if valDiags.HasErrors() {
			continue
		}
		native, err := ctyToNative(val)
		if err != nil {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid element attribute",
				Detail:   fmt.Sprintf("Attribute %q: %s.", name, err),
				Subject:  attr.Expr.Range().Ptr(),
			})
			continue
		}
		el[name] = native
	}

	// Spacer elements are the one kind that renders without an identity.
	if el.Label() == "" && kind != entity.KindEmpty {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Missing element label",
			Detail:   fmt.Sprintf("Element of kind %q must declare a non-empty 'label'.", kind),
			Subject:  &block.DefRange,
		})
		return nil, diags
	}
	if diags.HasErrors() {
		return nil, diags
	}
	return el, diags
}

func parseTransform(block *hcl.Block) (*entity.Transform, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	tr := &entity.Transform{
		Label:     strings.TrimSpace(block.Labels[0]),
		Icon:      defaultTransformIcon,
		EdgeLabel: defaultEdgeLabel,
	}
	if tr.Label == "" {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Empty transform label",
			Subject:  &block.DefRange,
		})
		return nil, diags
	}

	bodyContent, contentDiags := block.Body.Content(transformBodySchema)
	diags = append(diags, contentDiags...)
	if contentDiags.HasErrors() {
		return nil, diags
	}

	if attr, exists := bodyContent.Attributes["icon"]; exists {
		diags = append(diags, gohcl.DecodeExpression(attr.Expr, nil, &tr.Icon)...)
	}
	if attr, exists := bodyContent.Attributes["edge_label"]; exists {
		diags = append(diags, gohcl.DecodeExpression(attr.Expr, nil, &tr.EdgeLabel)...)
	}
	handlerAttr, exists := bodyContent.Attributes["handler"]
	if !exists {
		missingItemRange := block.Body.MissingItemRange()
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Missing 'handler' attribute",
			Detail:   fmt.Sprintf("Transform %q must name a registered Go handler.", tr.Label),
			Subject:  &missingItemRange,
		})
		return nil, diags
	}
	diags = append(diags, gohcl.DecodeExpression(handlerAttr.Expr, nil, &tr.Handler)...)

	if diags.HasErrors() {
		return nil, diags
	}
	return tr, diags
}
