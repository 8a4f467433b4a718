package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/toeirei/panaderia/internal/db"
	"github.com/toeirei/panaderia/internal/session"
)

func TestWriteDump_RedactsSessionAndListsExports(t *testing.T) {
	ctx := context.Background()
	s := db.NewMemoryStore()
	_ = s.Set(ctx, session.StorageKey, `{"token":"abc.def.ghi"}`)
	_ = s.Set(ctx, "notification_read:birthday-1-2024-05-12", "2024-05-12T10:00:00Z")
	_ = s.RecordExport(ctx, db.ReportExport{
		Resource:   "customers",
		FilePath:   "/tmp/customers-report-20240512-100000.pdf",
		SizeBytes:  2048,
		ExportedBy: "admin",
		ExportedAt: time.Date(2024, 5, 12, 10, 0, 0, 0, time.UTC),
	})

	var buf bytes.Buffer
	if err := writeDump(ctx, s, &buf); err != nil {
		t.Fatalf("writeDump: %v", err)
	}
	if strings.Contains(buf.String(), "abc.def.ghi") {
		t.Fatalf("session token leaked:\n%s", buf.String())
	}

	var got dump
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not YAML: %v\n%s", err, buf.String())
	}
	if len(got.Entries) != 2 {
		t.Fatalf("expected two entries, got %+v", got.Entries)
	}
	// Keys come back sorted.
	if got.Entries[0].Key != "notification_read:birthday-1-2024-05-12" || got.Entries[1].Key != session.StorageKey {
		t.Fatalf("unexpected key order %+v", got.Entries)
	}
	if !strings.HasPrefix(got.Entries[1].Value, "<redacted") {
		t.Fatalf("expected redacted session, got %q", got.Entries[1].Value)
	}
	if len(got.Exports) != 1 || got.Exports[0].Resource != "customers" || got.Exports[0].SizeBytes != 2048 {
		t.Fatalf("unexpected exports %+v", got.Exports)
	}
}

func TestEnvOr(t *testing.T) {
	t.Setenv("PANADERIA_DATABASE_TYPE", "  ")
	if got := envOr("PANADERIA_DATABASE_TYPE", "sqlite"); got != "sqlite" {
		t.Fatalf("blank values fall back, got %q", got)
	}
	t.Setenv("PANADERIA_DATABASE_TYPE", "postgres")
	if got := envOr("PANADERIA_DATABASE_TYPE", "sqlite"); got != "postgres" {
		t.Fatalf("got %q", got)
	}
}
