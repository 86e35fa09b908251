package entity

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/osintgrid/osintgrid/internal/ctxlog"
)

// RunTransform resolves the requested transform by normalized display label,
// maps the incoming node into an input record, invokes the bound handler, and
// post-processes the result.
//
// An unrecognized transform identifier is a lookup miss, not a fault: the
// result is (nil, nil). A handler error propagates to the caller unchanged:
// no retry, no suppression, no partial result. On success a single record is
// wrapped as a one-element slice and every record is stamped with the
// transform's edge label.
func (d *Descriptor) RunTransform(ctx context.Context, identifier string, node *GraphNode, use *Use) ([]Record, error) {
	logger := ctxlog.FromContext(ctx).With(
		"entity", d.TrimmedLabel(),
		"transform", identifier,
		"dispatch_id", uuid.NewString(),
	)

	tr, ok := d.Transform(identifier)
	if !ok {
		logger.Debug("Unknown transform requested, returning empty result.")
		return nil, nil
	}
	if tr.Fn == nil {
		return nil, fmt.Errorf("transform %q: handler %q is not registered", tr.Label, tr.Handler)
	}

	input := MapInput(node)
	logger.Debug("Invoking transform handler.", "handler", tr.Handler)

	// Suspension point: the handler may block on network or browser I/O.
	// Cancellation travels on ctx and is the handler's to honor.
	out, err := tr.Fn(ctx, input, use)
	if err != nil {
		logger.Debug("Transform handler failed.", "error", err)
		return nil, err
	}

	records, err := normalizeResult(out)
	if err != nil {
		return nil, fmt.Errorf("transform %q: %w", tr.Label, err)
	}
	for _, rec := range records {
		rec["edge_label"] = tr.EdgeLabel
	}
	logger.Debug("Transform finished.", "records", len(records))
	return records, nil
}

// normalizeResult coerces the handler's return value into a record sequence.
func normalizeResult(out any) ([]Record, error) {
	switch v := out.(type) {
	case nil:
		return nil, nil
	case Record:
		return []Record{v}, nil
	case []Record:
		return v, nil
	case *Blueprint:
		return []Record{v.Record()}, nil
	case []*Blueprint:
		records := make([]Record, 0, len(v))
		for _, b := range v {
			records = append(records, b.Record())
		}
		return records, nil
	case []any:
		records := make([]Record, 0, len(v))
		for _, item := range v {
			sub, err := normalizeResult(item)
			if err != nil {
				return nil, err
			}
			records = append(records, sub...)
		}
		return records, nil
	default:
		return nil, fmt.Errorf("handler returned unsupported result type %T", out)
	}
}
