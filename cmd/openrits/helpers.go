// Shared helpers for openrits CLI commands.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/openrits/openrits/internal/sqlite"
	"github.com/openrits/openrits/pkg/catalog"
	"github.com/openrits/openrits/pkg/types"
)

// attachBackend resolves the data directory, creates a SQLite backend, and
// attaches it. The caller must defer backend.Detach().
func attachBackend() (*sqlite.Backend, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	cfg := types.Config{
		Backend: types.BackendSQLite,
		DataDir: dataDir,
	}

	backend := sqlite.NewBackend()
	if err := backend.Attach(cfg); err != nil {
		return nil, fmt.Errorf("attach backend: %w", err)
	}

	return backend, nil
}

// attachCatalog attaches a backend and wraps it in a Catalog. The caller
// must defer backend.Detach().
func attachCatalog() (*catalog.Catalog, *sqlite.Backend, error) {
	backend, err := attachBackend()
	if err != nil {
		return nil, nil, err
	}
	return catalog.New(backend), backend, nil
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(output))
	return nil
}

// shortID truncates a UUID to its first 8 characters for table output.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// truncate shortens s for table output.
func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n-3] + "..."
	}
	return s
}
