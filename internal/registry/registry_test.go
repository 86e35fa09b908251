package registry

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/osintgrid/osintgrid/internal/entity"
)

func descriptorNamed(label string) *entity.Descriptor {
	return &entity.Descriptor{Label: label, Available: true}
}

func TestLookup_NormalizedEquivalence(t *testing.T) {
	t.Parallel()

	reg := New(NewHandlers())
	website := descriptorNamed("Website ")
	reg.Register(website)
	reg.Register(descriptorNamed("IP Geolocation"))

	// Raw labels keep their declared spelling, trimmed.
	require.Equal(t, []string{"Website", "IP Geolocation"}, reg.Labels())

	for _, query := range []string{"website", "Website", "WEBSITE", "web-site"} {
		got, ok := reg.Lookup(query)
		if query == "web-site" {
			require.False(t, ok, "query %q must not match", query)
			continue
		}
		require.True(t, ok, "query %q", query)
		require.Same(t, website, got)
	}

	geo, ok := reg.Lookup("ip-geolocation")
	require.True(t, ok)
	require.Equal(t, "IP Geolocation", geo.Label)
}

func TestLookup_Miss(t *testing.T) {
	t.Parallel()

	reg := New(NewHandlers())
	got, ok := reg.Lookup("nonexistent")
	require.False(t, ok)
	require.Nil(t, got)
}

func TestRegister_FirstRegisteredWinsOnCollision(t *testing.T) {
	t.Parallel()

	reg := New(NewHandlers())
	first := descriptorNamed("Website")
	shadow := descriptorNamed("website")
	reg.Register(first)
	reg.Register(shadow)

	require.Equal(t, 2, reg.Len(), "both entries are in the ledger")

	got, ok := reg.Lookup("Website")
	require.True(t, ok)
	require.Same(t, first, got, "lookup must resolve the first-registered entry")
}

func TestUILabels_GatedByAvailability(t *testing.T) {
	t.Parallel()

	reg := New(NewHandlers())
	reg.Register(&entity.Descriptor{
		Label:       "Website",
		Author:      "team",
		Description: "A domain on the web.",
		Available:   true,
	})
	reg.Register(&entity.Descriptor{Label: "IP Geolocation", Available: false})

	metas := reg.UILabels()
	require.Len(t, metas, 1)
	require.Equal(t, "Website", metas[0].Label)
	require.Equal(t, "team", metas[0].Author)

	// Hidden descriptors are still resolvable.
	_, ok := reg.Lookup("ip geolocation")
	require.True(t, ok)
}

func TestUILabels_MetadataDefaults(t *testing.T) {
	t.Parallel()

	reg := New(NewHandlers())
	reg.Register(descriptorNamed("Website"))

	metas := reg.UILabels()
	require.Len(t, metas, 1)
	require.Equal(t, "Description not available.", metas[0].Description)
	require.Equal(t, "Author not provided.", metas[0].Author)
}

func TestRegister_BindsTransformsAgainstHandlerStore(t *testing.T) {
	t.Parallel()

	hndls := NewHandlers()
	hndls.Register("TransformWebsiteToIp", func(ctx context.Context, in *entity.Input, use *entity.Use) (any, error) {
		return nil, nil
	})
	reg := New(hndls)

	desc := &entity.Descriptor{
		Label: "Website",
		Transforms: []*entity.Transform{
			{Label: "To IP", Handler: "TransformWebsiteToIp"},
			{Label: "To Nowhere", Handler: "Unregistered"},
		},
	}
	reg.Register(desc)

	require.NotNil(t, desc.Transforms[0].Fn)
	require.Nil(t, desc.Transforms[1].Fn)
}

func TestReset_ClearsLedgerKeepsHandlers(t *testing.T) {
	t.Parallel()

	hndls := NewHandlers()
	hndls.Register("Noop", func(ctx context.Context, in *entity.Input, use *entity.Use) (any, error) {
		return nil, nil
	})
	reg := New(hndls)
	reg.Register(descriptorNamed("Website"))

	reg.Reset()

	require.Zero(t, reg.Len())
	require.Empty(t, reg.Labels())
	require.Empty(t, reg.UILabels())
	_, ok := reg.Handlers().Resolve("Noop")
	require.True(t, ok, "handler store survives a descriptor reset")
}

func TestRegistry_ConcurrentReadersNeverSeePartialState(t *testing.T) {
	t.Parallel()

	reg := New(NewHandlers())
	seed := func() {
		reg.Register(descriptorNamed("Website"))
		reg.Register(descriptorNamed("IP Geolocation"))
	}
	seed()

	var wg sync.WaitGroup
	stop := make(chan struct{})

	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				// A resolved descriptor is always fully formed, and every
				// snapshot is internally consistent, however the reads
				// interleave with Reset. The race detector does the rest.
				if desc, ok := reg.Lookup("website"); ok {
					require.Equal(t, "Website", desc.TrimmedLabel())
				}
				for _, meta := range reg.UILabels() {
					require.NotEmpty(t, meta.Label)
				}
				require.LessOrEqual(t, len(reg.Descriptors()), 2)
			}
		}()
	}

	for range 200 {
		reg.Reset()
		seed()
	}
	close(stop)
	wg.Wait()
}

func TestHandlers_DuplicateRegistrationPanics(t *testing.T) {
	t.Parallel()

	hndls := NewHandlers()
	noop := func(ctx context.Context, in *entity.Input, use *entity.Use) (any, error) { return nil, nil }
	hndls.Register("TransformA", noop)

	require.PanicsWithValue(t,
		"transform handler with name 'TransformA' already registered",
		func() { hndls.Register("TransformA", noop) })
}

func TestHandlers_NamesSorted(t *testing.T) {
	t.Parallel()

	hndls := NewHandlers()
	noop := func(ctx context.Context, in *entity.Input, use *entity.Use) (any, error) { return nil, nil }
	hndls.Register("B", noop)
	hndls.Register("A", noop)

	require.Equal(t, []string{"A", "B"}, hndls.Names())
}
