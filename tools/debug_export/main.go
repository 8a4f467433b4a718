// Copyright (c) 2026 ToeiRei
// Panadería Admin - bakery back-office console
// This source code is licensed under the MIT license found in the LICENSE file.

// debug_export prints the local store as YAML: stored keys, notification
// read markers and the report export log. The saved session is redacted.
//
// The store is taken from PANADERIA_DATABASE_TYPE and PANADERIA_DATABASE_DSN,
// falling back to the console defaults.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/toeirei/panaderia/internal/config"
	"github.com/toeirei/panaderia/internal/db"
	"github.com/toeirei/panaderia/internal/session"
)

type dumpEntry struct {
	Key   string `yaml:"key"`
	Value string `yaml:"value"`
}

type dumpExport struct {
	ID         int64     `yaml:"id"`
	Resource   string    `yaml:"resource"`
	FilePath   string    `yaml:"file_path"`
	Compressed bool      `yaml:"compressed"`
	SizeBytes  int64     `yaml:"size_bytes"`
	ExportedBy string    `yaml:"exported_by"`
	ExportedAt time.Time `yaml:"exported_at"`
}

type dump struct {
	Entries []dumpEntry  `yaml:"entries"`
	Exports []dumpExport `yaml:"exports,omitempty"`
}

func main() {
	defaults := config.Defaults()
	dbType := envOr("PANADERIA_DATABASE_TYPE", fmt.Sprint(defaults["database.type"]))
	dsn := envOr("PANADERIA_DATABASE_DSN", fmt.Sprint(defaults["database.dsn"]))

	store, err := db.New(dbType, dsn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "debug_export: open %s store: %v\n", dbType, err)
		os.Exit(1)
	}
	defer store.Close()

	if err := writeDump(context.Background(), store, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "debug_export: %v\n", err)
		os.Exit(1)
	}
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// writeDump renders every key of store and, when the store keeps one, the
// export log.
func writeDump(ctx context.Context, store db.Store, w io.Writer) error {
	keys, err := store.Keys(ctx, "")
	if err != nil {
		return fmt.Errorf("list keys: %w", err)
	}
	var d dump
	for _, k := range keys {
		v, err := store.Get(ctx, k)
		if err != nil {
			return fmt.Errorf("read %s: %w", k, err)
		}
		if k == session.StorageKey {
			v = fmt.Sprintf("<redacted, %d bytes>", len(v))
		}
		d.Entries = append(d.Entries, dumpEntry{Key: k, Value: v})
	}

	if log, ok := store.(db.ExportLog); ok {
		exports, err := log.ListExports(ctx, 0)
		if err != nil {
			return fmt.Errorf("list exports: %w", err)
		}
		for _, e := range exports {
			d.Exports = append(d.Exports, dumpExport{
				ID: e.ID, Resource: e.Resource, FilePath: e.FilePath, Compressed: e.Compressed,
				SizeBytes: e.SizeBytes, ExportedBy: e.ExportedBy, ExportedAt: e.ExportedAt,
			})
		}
	}

	out, err := yaml.Marshal(d)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}
