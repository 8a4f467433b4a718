package db

import (
	"context"
	"database/sql"

	"github.com/uptrace/bun"
)

// execRaw runs a statement that has no query builder form.
func execRaw(ctx context.Context, idb bun.IDB, query string, args ...any) (sql.Result, error) {
	return idb.NewRaw(query, args...).Exec(ctx)
}

// scanRaw runs query and scans every row into dest.
func scanRaw(ctx context.Context, idb bun.IDB, dest any, query string, args ...any) error {
	return idb.NewRaw(query, args...).Scan(ctx, dest)
}
