package url_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/osintgrid/osintgrid/internal/ctxlog"
	"github.com/osintgrid/osintgrid/internal/entity"
	"github.com/osintgrid/osintgrid/internal/registry"
	"github.com/osintgrid/osintgrid/modules/url"
	"github.com/osintgrid/osintgrid/modules/website"
)

func newTestRegistry(t *testing.T) (context.Context, *registry.Registry) {
	t.Helper()
	ctx := ctxlog.WithLogger(context.Background(), slog.New(slog.DiscardHandler))
	reg := registry.New(registry.NewHandlers())

	for _, mod := range []registry.Module{&url.Module{}, &website.Module{}} {
		mod.Register(reg)
		name, src := mod.Manifest()
		_, err := reg.LoadSource(ctx, name, src)
		require.NoError(t, err)
	}
	return ctx, reg
}

func urlNode(t *testing.T, reg *registry.Registry, value string) *entity.GraphNode {
	t.Helper()
	desc, ok := reg.Lookup("url")
	require.True(t, ok)

	var values entity.Values
	if value != "" {
		values = entity.Values{"url": value}
	}
	bp, err := entity.Compile(desc, values)
	require.NoError(t, err)
	return entity.NodeFromBlueprint("n1", bp)
}

func TestTransformUrlToWebsite(t *testing.T) {
	t.Parallel()

	ctx, reg := newTestRegistry(t)
	desc, _ := reg.Lookup("URL")

	node := urlNode(t, reg, "https://sub.example.com/some/page?q=1")
	records, err := desc.RunTransform(ctx, "To website", node, nil)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	require.Equal(t, "Website", rec["label"])
	require.Equal(t, "transformed_to", rec["edge_label"])

	data := rec["data"].(map[string]any)
	elements := data["elements"].([]entity.Group)
	require.Equal(t, "sub.example.com", elements[0].Elements[0].Value())
}

func TestTransformUrlToWebsite_Failures(t *testing.T) {
	t.Parallel()

	ctx, reg := newTestRegistry(t)
	desc, _ := reg.Lookup("URL")

	t.Run("missing value", func(t *testing.T) {
		t.Parallel()
		_, err := desc.RunTransform(ctx, "To website", urlNode(t, reg, ""), nil)
		require.Error(t, err)
		require.Contains(t, err.Error(), "no value")
	})

	t.Run("no host component", func(t *testing.T) {
		t.Parallel()
		_, err := desc.RunTransform(ctx, "To website", urlNode(t, reg, "not-a-url"), nil)
		require.Error(t, err)
		require.Contains(t, err.Error(), "no host component")
	})
}
