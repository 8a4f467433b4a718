// Package db is the console's local store: a small key/value table that
// plays the role of browser local storage. It keeps the persisted session
// record, notification read state and UI preferences. Business data always
// lives in the backend and is never written here.
//
// The store runs on SQLite by default (modernc, no cgo) and can be pointed
// at PostgreSQL or MySQL through the same DSN configuration. Schema changes
// are embedded per dialect under migrations/<type>/ and tracked in
// schema_migrations.
//
// Testing notes
//   - Prefer `db.New("sqlite", ":memory:")` in tests that need real DB
//     semantics and migrations.
//   - `NewMemoryStore()` is a map-backed Store for tests that only need the
//     interface.
package db
