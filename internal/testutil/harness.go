package testutil

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/osintgrid/osintgrid/internal/ctxlog"
	"github.com/osintgrid/osintgrid/internal/registry"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of a descriptor load test.
type HarnessResult struct {
	LogOutput string
	Err       error
	Registry  *registry.Registry
}

// LoadUnits provides a standardized harness for registry load tests. Each
// entry in files becomes an .hcl descriptor unit in a temporary directory,
// which is then loaded into a fresh registry backed by the given handler
// store. File names decide load order, matching the directory loader's
// lexical walk.
func LoadUnits(t *testing.T, files map[string]string, hndls *registry.Handlers) *HarnessResult {
	t.Helper()
	return LoadUnitsWithContext(context.Background(), t, files, hndls)
}

// LoadUnitsWithContext is LoadUnits with a caller-provided context.
func LoadUnitsWithContext(ctx context.Context, t *testing.T, files map[string]string, hndls *registry.Handlers) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}

	logBuffer := &SafeBuffer{}
	logger := slog.New(slog.NewTextHandler(logBuffer, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx = ctxlog.WithLogger(ctx, logger)

	if hndls == nil {
		hndls = registry.NewHandlers()
	}
	reg := registry.New(hndls)
	_, err := reg.LoadDir(ctx, tmpDir)

	if os.Getenv("OSINTGRID_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	return &HarnessResult{
		LogOutput: logBuffer.String(),
		Err:       err,
		Registry:  reg,
	}
}
