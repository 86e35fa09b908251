package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/osintgrid/osintgrid/internal/ctxlog"
	"github.com/osintgrid/osintgrid/internal/naming"
)

// Validate performs a startup parity check between descriptor units and Go
// code: every transform a registered descriptor declares must resolve to a
// registered handler. It also logs duplicate normalized entity labels, which
// are legal (first registered wins) but usually an authoring surprise.
func (r *Registry) Validate(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	var errs []string

	seen := make(map[string]string)
	for _, desc := range r.Descriptors() {
		label := desc.TrimmedLabel()
		if label == "" {
			errs = append(errs, "descriptor registered with an empty label")
			continue
		}

		normalized := naming.Snake(label)
		if first, dup := seen[normalized]; dup {
			logger.Warn("Duplicate normalized entity label; lookups resolve to the first-registered entry.",
				"label", label, "shadowed_by", first)
		} else {
			seen[normalized] = label
		}

		for _, tr := range desc.Transforms {
			if tr.Fn != nil {
				continue
			}
			errs = append(errs, fmt.Sprintf(
				"entity '%s': transform '%s' references handler '%s' which is not registered",
				label, tr.Label, tr.Handler))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}
