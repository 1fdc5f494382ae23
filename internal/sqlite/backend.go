// Package sqlite implements the SQLite storage backend for openrits.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/openrits/openrits/pkg/types"
)

// dbFileName is the SQLite database file created inside DataDir.
const dbFileName = "openrits.db"

// Backend implements the Store interface using a single SQLite database as
// the system of record.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	tables   map[string]types.Table
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{
		tables: make(map[string]types.Table),
	}
}

// GetTable returns a Table accessor for the specified table name.
// Returns ErrTableNotFound if the table name is not recognized.
// Returns ErrStoreDetached if the backend is not attached.
func (b *Backend) GetTable(name string) (types.Table, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	table, ok := b.tables[name]
	if !ok {
		return nil, types.ErrTableNotFound
	}
	return table, nil
}

// Attach initializes the backend with the given configuration. Creates
// DataDir if it does not exist, opens the database, applies pragmas and
// schema, and creates table accessors.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, dbFileName))
	if err != nil {
		return err
	}

	// Pragmas for correctness and sane concurrent behavior. foreign_keys=ON
	// is load-bearing: cascade and set-null reference semantics depend on it.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
		"PRAGMA synchronous=NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return fmt.Errorf("applying schema: %w", err)
	}

	b.db = db
	b.config = config
	b.attached = true

	b.tables[types.TableCategories] = &categoriesTable{backend: b}
	b.tables[types.TableProperties] = &propertiesTable{backend: b}
	b.tables[types.TableItems] = &itemsTable{backend: b}
	b.tables[types.TableCustomers] = &customersTable{backend: b}
	b.tables[types.TableRents] = &rentsTable{backend: b}
	b.tables[types.TableRentItems] = &rentItemsTable{backend: b}
	b.tables[types.TableItemValues] = &valuesTable{backend: b, name: types.TableItemValues, scope: types.ScopeItem}
	b.tables[types.TableCustomerValues] = &valuesTable{backend: b, name: types.TableCustomerValues, scope: types.ScopeCustomer}
	b.tables[types.TableRentValues] = &valuesTable{backend: b, name: types.TableRentValues, scope: types.ScopeRent}

	return nil
}

// Detach releases all resources held by the backend. After Detach, all
// operations return ErrStoreDetached. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil // idempotent
	}

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}

	b.attached = false
	b.tables = make(map[string]types.Table)

	return nil
}

// newUUID generates a UUID v7 string for entity IDs.
func newUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}

// encodeTime normalizes a timestamp to UTC RFC3339 text. All time columns
// use this form so that lexicographic SQL comparison matches chronology.
func encodeTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// decodeTime parses a stored RFC3339 timestamp.
func decodeTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}
