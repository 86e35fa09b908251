package manifest

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/osintgrid/osintgrid/internal/ctxlog"
	"github.com/osintgrid/osintgrid/internal/entity"
)

func parseCtx() context.Context {
	return ctxlog.WithLogger(context.Background(), slog.New(slog.DiscardHandler))
}

func TestParseSource_FullEntity(t *testing.T) {
	t.Parallel()

	src := `
	entity "Website" {
		color       = "#1D1DB8"
		icon        = "world-www"
		author      = "osintgrid core"
		description = "A domain name on the web."

		element "text" {
			label = "Domain"
			value = ""
			icon  = "world-www"
		}

		transform "To IP" {
			edge_label = "resolves_to"
			handler    = "TransformWebsiteToIp"
		}
	}
	`

	descs, err := ParseSource(parseCtx(), "website", src)
	require.NoError(t, err)
	require.Len(t, descs, 1)

	desc := descs[0]
	require.Equal(t, "Website", desc.Label)
	require.Equal(t, "#1D1DB8", desc.Color)
	require.Equal(t, "world-www", desc.Icon)
	require.Equal(t, "osintgrid core", desc.Author)
	require.True(t, desc.Available)

	require.Len(t, desc.Layout, 1)
	el := desc.Layout[0].Elements[0]
	require.Equal(t, entity.KindText, el.Kind())
	require.Equal(t, "Domain", el.Label())
	require.Equal(t, "", el.Value())
	require.Equal(t, "world-www", el["icon"])

	require.Len(t, desc.Transforms, 1)
	tr := desc.Transforms[0]
	require.Equal(t, "To IP", tr.Label)
	require.Equal(t, "resolves_to", tr.EdgeLabel)
	require.Equal(t, "TransformWebsiteToIp", tr.Handler)
	require.Nil(t, tr.Fn, "parsing must not bind handlers")
}

func TestParseSource_Defaults(t *testing.T) {
	t.Parallel()

	src := `
	entity "Minimal" {
		transform "To Something" {
			handler = "TransformSomething"
		}
	}
	`

	descs, err := ParseSource(parseCtx(), "minimal", src)
	require.NoError(t, err)
	require.Len(t, descs, 1)

	desc := descs[0]
	require.Equal(t, "#145070", desc.Color)
	require.Equal(t, "atom-2", desc.Icon)
	require.Empty(t, desc.Author)
	require.True(t, desc.Available)

	tr := desc.Transforms[0]
	require.Equal(t, "list", tr.Icon)
	require.Equal(t, "transformed_to", tr.EdgeLabel)
}

func TestParseSource_AvailableFalse(t *testing.T) {
	t.Parallel()

	src := `
	entity "Page Source" {
		available = false
	}
	`

	descs, err := ParseSource(parseCtx(), "page_source", src)
	require.NoError(t, err)
	require.False(t, descs[0].Available)
}

func TestParseSource_MixedRowsAndElementsKeepSourceOrder(t *testing.T) {
	t.Parallel()

	src := `
	entity "IP Geolocation" {
		element "title" {
			label = "Geolocation"
		}
		row {
			element "text" {
				label = "City"
				value = ""
			}
			element "text" {
				label = "ASN"
				value = ""
			}
		}
		element "text" {
			label = "Timezone"
			value = ""
		}
	}
	`

	descs, err := ParseSource(parseCtx(), "ip", src)
	require.NoError(t, err)
	layout := descs[0].Layout

	require.Len(t, layout, 3)
	require.False(t, layout[0].Row)
	require.Equal(t, "Geolocation", layout[0].Elements[0].Label())
	require.True(t, layout[1].Row)
	require.Len(t, layout[1].Elements, 2)
	require.Equal(t, "ASN", layout[1].Elements[1].Label())
	require.False(t, layout[2].Row)
}

func TestParseSource_PassThroughAttributes(t *testing.T) {
	t.Parallel()

	src := `
	entity "Service" {
		element "dropdown" {
			label   = "Tool"
			value   = ""
			options = [
				{ label = "whois", tooltip = "WHOIS lookup" },
				{ label = "dig", tooltip = "DNS query" },
			]
		}
	}
	`

	descs, err := ParseSource(parseCtx(), "service", src)
	require.NoError(t, err)

	el := descs[0].Layout[0].Elements[0]
	require.Equal(t, entity.KindDropdown, el.Kind())
	options, ok := el["options"].([]any)
	require.True(t, ok)
	require.Len(t, options, 2)
	first, ok := options[0].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "whois", first["label"])
}

func TestParseSource_NumericAttributesDecodeAsFloat(t *testing.T) {
	t.Parallel()

	src := `
	entity "Tuned" {
		element "number" {
			label = "Depth"
			value = 3
		}
	}
	`

	descs, err := ParseSource(parseCtx(), "tuned", src)
	require.NoError(t, err)
	require.Equal(t, float64(3), descs[0].Layout[0].Elements[0].Value())
}

func TestParseSource_MultipleEntitiesInDeclarationOrder(t *testing.T) {
	t.Parallel()

	src := `
	entity "First" {}
	entity "Second" {}
	`

	descs, err := ParseSource(parseCtx(), "unit", src)
	require.NoError(t, err)
	require.Len(t, descs, 2)
	require.Equal(t, "First", descs[0].Label)
	require.Equal(t, "Second", descs[1].Label)
}

func TestParseSource_Failures(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		src         string
		errContains string
	}{
		{
			name:        "unclosed block",
			src:         `entity "Broken" {`,
			errContains: "Unclosed configuration block",
		},
		{
			name:        "empty entity label",
			src:         `entity "  " {}`,
			errContains: "Empty entity label",
		},
		{
			name: "element without label",
			src: `
			entity "Broken" {
				element "text" {
					value = ""
				}
			}
			`,
			errContains: "Missing element label",
		},
		{
			name: "transform without handler",
			src: `
			entity "Broken" {
				transform "To Nowhere" {}
			}
			`,
			errContains: "Missing 'handler' attribute",
		},
		{
			name: "duplicate normalized transform labels",
			src: `
			entity "Broken" {
				transform "To IP" {
					handler = "A"
				}
				transform "to_ip" {
					handler = "B"
				}
			}
			`,
			errContains: "Duplicate transform label",
		},
		{
			name: "unknown attribute",
			src: `
			entity "Broken" {
				favourite = true
			}
			`,
			errContains: "Unsupported argument",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseSource(parseCtx(), "unit", tc.src)
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.errContains)
		})
	}
}

func TestParseSource_SpacerElementNeedsNoLabel(t *testing.T) {
	t.Parallel()

	src := `
	entity "Spaced" {
		element "empty" {}
	}
	`

	descs, err := ParseSource(parseCtx(), "spaced", src)
	require.NoError(t, err)
	require.Equal(t, entity.KindEmpty, descs[0].Layout[0].Elements[0].Kind())
}
