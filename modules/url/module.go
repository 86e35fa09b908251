// Package url ships the URL entity and its transforms.
package url

import (
	"context"
	"fmt"
	neturl "net/url"

	"github.com/osintgrid/osintgrid/internal/entity"
	"github.com/osintgrid/osintgrid/internal/registry"
)

const manifestSrc = `
entity "URL" {
  color       = "#642CA9"
  icon        = "link"
  author      = "OSIB"
  description = "Uniform Resource Locator, usually starts with https://"

  element "text" {
    label = "URL"
    icon  = "link"
  }

  transform "To website" {
    icon    = "world-www"
    handler = "TransformUrlToWebsite"
  }
}
`

// Module implements the registry.Module interface for this package.
type Module struct{}

// Manifest returns the embedded descriptor unit for the URL entity.
func (m *Module) Manifest() (string, string) {
	return "url", manifestSrc
}

// Register registers the URL transform handlers with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.Handlers().Register("TransformUrlToWebsite", func(ctx context.Context, input *entity.Input, use *entity.Use) (any, error) {
		return transformToWebsite(ctx, r, input, use)
	})
}

// transformToWebsite extracts the host from the node's URL value and produces
// a Website entity carrying it.
func transformToWebsite(_ context.Context, r *registry.Registry, input *entity.Input, _ *entity.Use) (any, error) {
	raw := input.String("url")
	if raw == "" {
		return nil, fmt.Errorf("url entity has no value")
	}

	parsed, err := neturl.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid url %q: %w", raw, err)
	}
	host := parsed.Host
	if host == "" {
		return nil, fmt.Errorf("url %q has no host component", raw)
	}

	website, ok := r.Lookup("website")
	if !ok {
		return nil, fmt.Errorf("website entity is not registered")
	}
	return entity.Compile(website, entity.Values{"domain": host})
}
