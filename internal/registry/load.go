package registry

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/osintgrid/osintgrid/internal/ctxlog"
	"github.com/osintgrid/osintgrid/internal/entity"
	"github.com/osintgrid/osintgrid/internal/fsutil"
	"github.com/osintgrid/osintgrid/internal/manifest"
)

// unitExtension is the fixed extension pattern for descriptor units.
const unitExtension = ".hcl"

// LoadSource parses one descriptor unit from HCL source text and registers
// every entity it declares, in declaration order, as a side effect. It
// returns the updated ledger snapshot.
//
// Loading is not idempotent by design: loading the same unit twice registers
// its entities twice (the duplicates shadowed by first-match lookup). Callers
// that want a fresh generation call Reset first.
func (r *Registry) LoadSource(ctx context.Context, unitName, src string) ([]*entity.Descriptor, error) {
	logger := ctxlog.FromContext(ctx)

	descs, err := manifest.ParseSource(ctx, unitName, src)
	if err != nil {
		return nil, fmt.Errorf("failed to load descriptor unit %q: %w", unitName, err)
	}
	for _, desc := range descs {
		r.Register(desc)
	}

	logger.Debug("Descriptor unit loaded.", "unit", unitName, "entities", len(descs))
	return r.Descriptors(), nil
}

// LoadDir enumerates descriptor files matching the fixed extension pattern
// under path (lexical order) and loads each as a unit named after its file
// stem. A malformed unit aborts the entire batch: units loaded before the
// failure stay registered, units after it are never reached.
func (r *Registry) LoadDir(ctx context.Context, path string) ([]*entity.Descriptor, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Registry loading descriptor units from path...", "path", path)

	filePaths, err := fsutil.FindFilesByExtension(path, unitExtension)
	if err != nil {
		logger.Error("Failed to walk descriptor directory", "path", path, "error", err)
		return nil, err
	}
	if len(filePaths) == 0 {
		logger.Warn("No descriptor files found in path", "path", path)
		return r.Descriptors(), nil
	}

	for _, filePath := range filePaths {
		src, err := os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read descriptor file %s: %w", filePath, err)
		}
		unitName := strings.TrimSuffix(filepath.Base(filePath), unitExtension)
		if _, err := r.LoadSource(ctx, unitName, string(src)); err != nil {
			return nil, err
		}
	}

	snapshot := r.Descriptors()
	logger.Info("Registry loaded successfully.", "units", len(filePaths), "entities_registered", len(snapshot))
	return snapshot, nil
}
