package app

import (
	"github.com/osintgrid/osintgrid/internal/registry"
	"github.com/osintgrid/osintgrid/modules/ip"
	"github.com/osintgrid/osintgrid/modules/url"
	"github.com/osintgrid/osintgrid/modules/website"
)

// coreModules returns the built-in entity modules shipped with the engine.
func coreModules() []registry.Module {
	return []registry.Module{
		ip.New(),
		&url.Module{},
		&website.Module{},
	}
}
