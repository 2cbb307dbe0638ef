package store

const schemaVersion = "1"

const schema = `
-- Board metadata (name, schema version)
CREATE TABLE IF NOT EXISTS meta (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

-- Columns are the board's drop zones
CREATE TABLE IF NOT EXISTS zones (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    position INTEGER NOT NULL DEFAULT 0,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Cards and folders. parent_id is the folder an item was dropped into,
-- empty for items that sit directly in a column.
CREATE TABLE IF NOT EXISTS items (
    id TEXT PRIMARY KEY,
    zone_id TEXT NOT NULL,
    parent_id TEXT NOT NULL DEFAULT '',
    kind TEXT NOT NULL DEFAULT 'item',
    label TEXT NOT NULL DEFAULT '',
    disabled INTEGER NOT NULL DEFAULT 0,
    position INTEGER NOT NULL DEFAULT 0,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (zone_id) REFERENCES zones(id)
);

-- Indexes
CREATE INDEX IF NOT EXISTS idx_items_zone ON items(zone_id, parent_id, position);
`
