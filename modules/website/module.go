// Package website ships the Website entity and its transforms.
package website

import (
	"context"
	"fmt"
	"net"

	"github.com/osintgrid/osintgrid/internal/entity"
	"github.com/osintgrid/osintgrid/internal/registry"
)

const manifestSrc = `
entity "Website" {
  color       = "#1D1DB8"
  icon        = "world-www"
  author      = "OSIB"
  description = "A website domain, like example.com"

  element "text" {
    label = "Domain"
    icon  = "world"
  }

  transform "To IP" {
    icon    = "building-broadcast-tower"
    handler = "TransformWebsiteToIp"
  }

  transform "To URL" {
    icon    = "link"
    handler = "TransformWebsiteToUrl"
  }

  transform "To page source" {
    icon    = "code"
    handler = "TransformWebsitePageSource"
  }
}

entity "Page Source" {
  color     = "#2C7A7B"
  icon      = "code"
  author    = "OSIB"
  available = false

  element "textarea" {
    label = "Source"
  }
}
`

// Module implements the registry.Module interface for this package.
type Module struct{}

// Manifest returns the embedded descriptor unit for the Website entities.
func (m *Module) Manifest() (string, string) {
	return "website", manifestSrc
}

// Register registers the Website transform handlers with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.Handlers().Register("TransformWebsiteToIp", func(ctx context.Context, input *entity.Input, use *entity.Use) (any, error) {
		return transformToIP(ctx, r, input)
	})
	r.Handlers().Register("TransformWebsiteToUrl", func(ctx context.Context, input *entity.Input, use *entity.Use) (any, error) {
		return transformToURL(r, input)
	})
	r.Handlers().Register("TransformWebsitePageSource", func(ctx context.Context, input *entity.Input, use *entity.Use) (any, error) {
		return transformPageSource(ctx, r, input, use)
	})
}

// transformToIP resolves the domain and produces one IP entity per address.
func transformToIP(ctx context.Context, r *registry.Registry, input *entity.Input) (any, error) {
	domain := input.String("domain")
	if domain == "" {
		return nil, fmt.Errorf("website entity has no domain value")
	}

	addrs, err := net.DefaultResolver.LookupHost(ctx, domain)
	if err != nil {
		return nil, fmt.Errorf("dns lookup for %q failed: %w", domain, err)
	}

	ipDesc, ok := r.Lookup("ip")
	if !ok {
		return nil, fmt.Errorf("ip entity is not registered")
	}
	results := make([]*entity.Blueprint, 0, len(addrs))
	for _, addr := range addrs {
		bp, err := entity.Compile(ipDesc, entity.Values{"ip_address": addr})
		if err != nil {
			return nil, err
		}
		results = append(results, bp)
	}
	return results, nil
}

// transformToURL produces a URL entity pointing at the domain over https.
func transformToURL(r *registry.Registry, input *entity.Input) (any, error) {
	domain := input.String("domain")
	if domain == "" {
		return nil, fmt.Errorf("website entity has no domain value")
	}
	urlDesc, ok := r.Lookup("url")
	if !ok {
		return nil, fmt.Errorf("url entity is not registered")
	}
	return entity.Compile(urlDesc, entity.Values{"url": "https://" + domain})
}

// transformPageSource fetches the rendered page source through the caller's
// browser driver. The driver handle is scoped to this invocation: acquired
// from the factory, released before return.
func transformPageSource(ctx context.Context, r *registry.Registry, input *entity.Input, use *entity.Use) (any, error) {
	domain := input.String("domain")
	if domain == "" {
		return nil, fmt.Errorf("website entity has no domain value")
	}
	if use == nil || use.Driver == nil {
		return nil, fmt.Errorf("no browser driver available in execution context")
	}

	driver, err := use.Driver(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire browser driver: %w", err)
	}
	defer driver.Close()

	src, err := driver.Get(ctx, "https://"+domain)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page source for %q: %w", domain, err)
	}

	sourceDesc, ok := r.Lookup("page source")
	if !ok {
		return nil, fmt.Errorf("page source entity is not registered")
	}
	return entity.Compile(sourceDesc, entity.Values{"source": src})
}
