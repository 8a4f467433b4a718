// Copyright (c) 2026 ToeiRei
// Panadería Admin - bakery back-office console
// This source code is licensed under the MIT license found in the LICENSE file.

package db // import "github.com/toeirei/panaderia/internal/db"

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "modernc.org/sqlite"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
)

var (
	//go:embed migrations
	embeddedMigrations embed.FS
	// sqlOpenFunc allows tests to override database opening behavior.
	sqlOpenFunc = sql.Open
)

// driverFor maps a configured database type to its database/sql driver name.
// The pgx stdlib registers driver name "pgx".
func driverFor(dbType string) string {
	if dbType == "postgres" {
		return "pgx"
	}
	return dbType
}

// Maintain runs the engine housekeeping for the local store. SQLite is
// optimized, vacuumed and integrity checked; PostgreSQL gets VACUUM ANALYZE;
// MySQL optimizes each console table.
func Maintain(ctx context.Context, dbType, dsn string) error {
	sqlDB, err := sqlOpenFunc(driverFor(dbType), dsn)
	if err != nil {
		return fmt.Errorf("open %s for maintenance: %w", dbType, err)
	}
	idb := createBunDB(sqlDB, dbType)
	defer func() { _ = idb.Close() }()

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	switch dbType {
	case "sqlite":
		if _, err := execRaw(ctx, idb, "PRAGMA optimize"); err != nil {
			dbLogf("db: sqlite optimize skipped: %v", err)
		}
		if _, err := execRaw(ctx, idb, "VACUUM"); err != nil {
			return fmt.Errorf("sqlite vacuum: %w", err)
		}
		var checks []string
		if err := scanRaw(ctx, idb, &checks, "PRAGMA integrity_check"); err != nil {
			return fmt.Errorf("sqlite integrity check: %w", err)
		}
		if len(checks) != 1 || checks[0] != "ok" {
			return fmt.Errorf("sqlite integrity check: %s", strings.Join(checks, "; "))
		}
	case "postgres":
		if _, err := execRaw(ctx, idb, "VACUUM ANALYZE"); err != nil {
			return fmt.Errorf("postgres vacuum: %w", err)
		}
	case "mysql":
		for _, table := range []string{storageTable, exportsTable, "schema_migrations"} {
			if _, err := execRaw(ctx, idb, "OPTIMIZE TABLE ?", bun.Ident(table)); err != nil {
				return fmt.Errorf("mysql optimize %s: %w", table, err)
			}
		}
	default:
		return fmt.Errorf("unsupported db type for maintenance: %s", dbType)
	}
	return nil
}

// poolSettings are the connection pool limits, overridable through
// PANADERIA_DB_* environment variables.
type poolSettings struct {
	maxOpen     int
	maxIdle     int
	maxLifetime time.Duration
	maxIdleTime time.Duration
}

func envInt(name string, def int) int {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return def
}

func loadPoolSettings(dbType, dsn string) poolSettings {
	p := poolSettings{
		maxOpen:     envInt("PANADERIA_DB_MAX_OPEN_CONNS", 4),
		maxIdle:     envInt("PANADERIA_DB_MAX_IDLE_CONNS", 4),
		maxLifetime: time.Duration(envInt("PANADERIA_DB_CONN_MAX_LIFETIME_SECONDS", 300)) * time.Second,
		maxIdleTime: time.Duration(envInt("PANADERIA_DB_CONN_MAX_IDLE_SECONDS", 60)) * time.Second,
	}
	// Every connection to ":memory:" gets its own database; keep one.
	if dbType == "sqlite" && dsn == ":memory:" {
		p.maxOpen, p.maxIdle = 1, 1
	}
	return p
}

// NewStoreFromDSN opens the database, applies pending migrations and
// returns a Store backed by a long-lived *bun.DB.
func NewStoreFromDSN(dbType, dsn string) (Store, error) {
	switch dbType {
	case "sqlite", "postgres", "mysql":
	default:
		return nil, fmt.Errorf("unsupported database type: '%s'", dbType)
	}
	start := time.Now()
	sqlDB, err := sqlOpenFunc(driverFor(dbType), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pool := loadPoolSettings(dbType, dsn)
	sqlDB.SetMaxOpenConns(pool.maxOpen)
	sqlDB.SetMaxIdleConns(pool.maxIdle)
	sqlDB.SetConnMaxLifetime(pool.maxLifetime)
	sqlDB.SetConnMaxIdleTime(pool.maxIdleTime)
	dbLogf("db: opened %s in %s (max open=%d)", dbType, time.Since(start), pool.maxOpen)

	if err := RunMigrations(sqlDB, dbType); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return &BunStore{bun: createBunDB(sqlDB, dbType), dbType: dbType}, nil
}

// createBunDB wraps sqlDB with the bun dialect matching dbType.
func createBunDB(sqlDB *sql.DB, dbType string) *bun.DB {
	switch dbType {
	case "postgres":
		return bun.NewDB(sqlDB, pgdialect.New())
	case "mysql":
		return bun.NewDB(sqlDB, mysqldialect.New())
	default:
		return bun.NewDB(sqlDB, sqlitedialect.New())
	}
}

// placeholder returns the n-th (1-based) bind parameter for dbType.
func placeholder(dbType string, n int) string {
	if dbType == "postgres" {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// pendingMigrations lists the embedded .up.sql files for dbType in order.
func pendingMigrations(dbType string) ([]string, error) {
	dir := "migrations/" + dbType
	entries, err := fs.ReadDir(embeddedMigrations, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read embedded migrations (%s): %w", dir, err)
	}
	var ups []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".up.sql") {
			ups = append(ups, path.Join(dir, e.Name()))
		}
	}
	sort.Strings(ups)
	return ups, nil
}

// RunMigrations applies every embedded migration for dbType that is not yet
// recorded in schema_migrations. Each migration runs in its own transaction.
func RunMigrations(db *sql.DB, dbType string) error {
	start := time.Now()
	files, err := pendingMigrations(dbType)
	if err != nil {
		return err
	}
	if err := ensureSchemaMigrationsTable(db, dbType); err != nil {
		return fmt.Errorf("failed to ensure schema_migrations table: %w", err)
	}

	lookup := "SELECT 1 FROM schema_migrations WHERE version = " + placeholder(dbType, 1)
	record := "INSERT INTO schema_migrations(version, applied_at) VALUES(" + placeholder(dbType, 1) + ", " + placeholder(dbType, 2) + ")"

	applied := 0
	for _, file := range files {
		version := strings.TrimSuffix(path.Base(file), ".up.sql")

		var exists int
		err := db.QueryRow(lookup, version).Scan(&exists)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("failed to check migration version %s: %w", version, err)
		}

		data, err := embeddedMigrations.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", file, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %s: %w", version, err)
		}
		for _, stmt := range splitStatements(string(data)) {
			if _, err := tx.Exec(stmt); err != nil {
				_ = tx.Rollback()
				return fmt.Errorf("failed to execute migration %s: %w", version, err)
			}
		}
		if _, err := tx.Exec(record, version, time.Now()); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record migration %s: %w", version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %s: %w", version, err)
		}
		applied++
	}
	dbLogf("db: applied %d migration(s) for %s in %s", applied, dbType, time.Since(start))
	return nil
}

// splitStatements splits a migration file on semicolons at line ends.
// MySQL drivers reject multi-statement Exec calls by default.
func splitStatements(script string) []string {
	var out []string
	var cur strings.Builder
	for _, line := range strings.Split(script, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		cur.WriteString(line)
		cur.WriteString("\n")
		if strings.HasSuffix(trimmed, ";") {
			out = append(out, strings.TrimSpace(cur.String()))
			cur.Reset()
		}
	}
	if rest := strings.TrimSpace(cur.String()); rest != "" {
		out = append(out, rest)
	}
	return out
}

// ensureSchemaMigrationsTable creates schema_migrations if it is missing.
// MySQL cannot index TEXT without a length, so it gets a VARCHAR key.
func ensureSchemaMigrationsTable(db *sql.DB, dbType string) error {
	ddl := `CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY, applied_at TIMESTAMP)`
	if dbType == "mysql" {
		ddl = `CREATE TABLE IF NOT EXISTS schema_migrations (version VARCHAR(191) PRIMARY KEY, applied_at TIMESTAMP NULL)`
	}
	_, err := db.Exec(ddl)
	return err
}
