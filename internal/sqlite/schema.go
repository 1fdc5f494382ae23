package sqlite

// Schema DDL for all tables. Invariants that are plain record constraints
// (amount ranges, date ordering, uniqueness, reference behavior) are
// enforced here rather than in Go code; violations surface to callers as
// types.ErrConstraint.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS categories (
    category_id TEXT PRIMARY KEY,
    name        TEXT NOT NULL,
    parent_id   TEXT REFERENCES categories(category_id) ON DELETE SET NULL,
    lineage     TEXT NOT NULL DEFAULT ','
);

CREATE INDEX IF NOT EXISTS idx_categories_lineage ON categories(lineage);

CREATE TABLE IF NOT EXISTS properties (
    property_id TEXT PRIMARY KEY,
    name        TEXT NOT NULL,
    value_type  TEXT NOT NULL CHECK (value_type IN ('integer','float','boolean','text','date')),
    scope       TEXT NOT NULL CHECK (scope IN ('item','customer','rent')),
    category_id TEXT REFERENCES categories(category_id) ON DELETE CASCADE,
    created_at  TEXT NOT NULL,
    CHECK (scope != 'item' OR category_id IS NOT NULL),
    CHECK (scope = 'item' OR category_id IS NULL)
);

CREATE INDEX IF NOT EXISTS idx_properties_category ON properties(category_id);

CREATE TABLE IF NOT EXISTS items (
    item_id     TEXT PRIMARY KEY,
    name        TEXT NOT NULL,
    amount      INTEGER NOT NULL CHECK (amount >= 0),
    archived    INTEGER NOT NULL DEFAULT 0,
    category_id TEXT REFERENCES categories(category_id) ON DELETE SET NULL
);

CREATE TABLE IF NOT EXISTS customers (
    customer_id TEXT PRIMARY KEY,
    name        TEXT NOT NULL,
    surname     TEXT NOT NULL DEFAULT '',
    email       TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS rents (
    rent_id     TEXT PRIMARY KEY,
    customer_id TEXT REFERENCES customers(customer_id) ON DELETE SET NULL,
    created     TEXT NOT NULL,
    start_at    TEXT NOT NULL,
    end_at      TEXT NOT NULL,
    issued      TEXT,
    returned    TEXT,
    CHECK (start_at <= end_at),
    CHECK (returned IS NULL OR issued IS NOT NULL),
    CHECK (issued IS NULL OR returned IS NULL OR issued <= returned)
);

CREATE INDEX IF NOT EXISTS idx_rents_window ON rents(start_at, end_at);

CREATE TABLE IF NOT EXISTS rent_items (
    rent_item_id TEXT PRIMARY KEY,
    rent_id      TEXT NOT NULL REFERENCES rents(rent_id) ON DELETE CASCADE,
    item_id      TEXT REFERENCES items(item_id) ON DELETE SET NULL,
    amount       INTEGER NOT NULL CHECK (amount > 0),
    UNIQUE (rent_id, item_id)
);

CREATE INDEX IF NOT EXISTS idx_rent_items_item ON rent_items(item_id);

CREATE TABLE IF NOT EXISTS item_values (
    value_id    TEXT PRIMARY KEY,
    property_id TEXT NOT NULL REFERENCES properties(property_id) ON DELETE CASCADE,
    owner_id    TEXT NOT NULL REFERENCES items(item_id) ON DELETE CASCADE,
    value       TEXT NOT NULL,
    UNIQUE (owner_id, property_id)
);

CREATE TABLE IF NOT EXISTS customer_values (
    value_id    TEXT PRIMARY KEY,
    property_id TEXT NOT NULL REFERENCES properties(property_id) ON DELETE CASCADE,
    owner_id    TEXT NOT NULL REFERENCES customers(customer_id) ON DELETE CASCADE,
    value       TEXT NOT NULL,
    UNIQUE (owner_id, property_id)
);

CREATE TABLE IF NOT EXISTS rent_values (
    value_id    TEXT PRIMARY KEY,
    property_id TEXT NOT NULL REFERENCES properties(property_id) ON DELETE CASCADE,
    owner_id    TEXT NOT NULL REFERENCES rents(rent_id) ON DELETE CASCADE,
    value       TEXT NOT NULL,
    UNIQUE (owner_id, property_id)
);
`
