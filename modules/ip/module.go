// Package ip ships the IP entity, its geolocation transform, and the IP
// Geolocation result entity.
package ip

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"resty.dev/v3"

	"github.com/osintgrid/osintgrid/internal/entity"
	"github.com/osintgrid/osintgrid/internal/registry"
)

// defaultAPIBase is the geolocation endpoint queried when the execution
// context does not override it via the "geolocation_api_url" setting.
const defaultAPIBase = "https://ipinfo.io"

const manifestSrc = `
entity "IP" {
  color       = "#F47C00"
  icon        = "building-broadcast-tower"
  author      = "OSIB"
  description = "An IPv4 or IPv6 address"

  element "text" {
    label = "IP Address"
    icon  = "access-point"
  }

  transform "To geolocation" {
    icon       = "map-pin"
    edge_label = "located_at"
    handler    = "TransformIpToGeolocation"
  }
}

entity "IP Geolocation" {
  color     = "#FFCC33"
  icon      = "map-pin"
  author    = "OSIB"
  available = false

  row {
    element "text" {
      label = "City"
      icon  = "map-pin"
    }
    element "text" {
      label = "ASN"
      icon  = "access-point"
    }
  }

  row {
    element "text" {
      label = "State"
      icon  = "map-pin"
    }
    element "text" {
      label = "Hostname"
      icon  = "access-point"
    }
  }

  row {
    element "text" {
      label = "Country"
      icon  = "map-pin"
    }
    element "text" {
      label = "Postal"
      icon  = "map-pin"
    }
  }

  row {
    element "text" {
      label = "Timezone"
      icon  = "clock"
    }
    element "text" {
      label = "Coordinates"
      icon  = "map-pin"
    }
  }
}
`

// geoResponse is the subset of the geolocation API payload the transform maps
// onto the IP Geolocation entity.
type geoResponse struct {
	City     string `json:"city"`
	Region   string `json:"region"`
	Country  string `json:"country"`
	Org      string `json:"org"`
	Hostname string `json:"hostname"`
	Postal   string `json:"postal"`
	Timezone string `json:"timezone"`
	Loc      string `json:"loc"`
}

// Module implements the registry.Module interface for this package. Lookups
// are cached per address so repeated transforms on the same graph node do not
// hammer the API.
type Module struct {
	client *resty.Client
	cache  *cache.Cache
}

// New creates the module with its HTTP client and response cache.
func New() *Module {
	return &Module{
		client: resty.New().SetTimeout(10 * time.Second),
		cache:  cache.New(15*time.Minute, 30*time.Minute),
	}
}

// Manifest returns the embedded descriptor unit for the IP entities.
func (m *Module) Manifest() (string, string) {
	return "ip", manifestSrc
}

// Register registers the IP transform handlers with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.Handlers().Register("TransformIpToGeolocation", func(ctx context.Context, input *entity.Input, use *entity.Use) (any, error) {
		return m.transformToGeolocation(ctx, r, input, use)
	})
}

func (m *Module) transformToGeolocation(ctx context.Context, r *registry.Registry, input *entity.Input, use *entity.Use) (any, error) {
	addr := input.String("ip_address")
	if addr == "" {
		return nil, fmt.Errorf("ip entity has no address value")
	}

	geo, err := m.lookup(ctx, addr, use)
	if err != nil {
		return nil, err
	}

	geoDesc, ok := r.Lookup("ip geolocation")
	if !ok {
		return nil, fmt.Errorf("ip geolocation entity is not registered")
	}
	return entity.Compile(geoDesc, entity.Values{
		"city":        geo.City,
		"asn":         geo.Org,
		"state":       geo.Region,
		"hostname":    geo.Hostname,
		"country":     geo.Country,
		"postal":      geo.Postal,
		"timezone":    geo.Timezone,
		"coordinates": geo.Loc,
	})
}

func (m *Module) lookup(ctx context.Context, addr string, use *entity.Use) (*geoResponse, error) {
	if cached, found := m.cache.Get(addr); found {
		return cached.(*geoResponse), nil
	}

	base := use.StringSetting("geolocation_api_url", defaultAPIBase)
	res, err := m.client.R().
		SetContext(ctx).
		SetResult(&geoResponse{}).
		Get(fmt.Sprintf("%s/%s/json", base, addr))
	if err != nil {
		return nil, fmt.Errorf("geolocation lookup for %q failed: %w", addr, err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("geolocation lookup for %q failed with status %s", addr, res.Status())
	}

	geo := res.Result().(*geoResponse)
	m.cache.Set(addr, geo, cache.DefaultExpiration)
	return geo, nil
}
