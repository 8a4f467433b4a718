// Copyright (c) 2026 ToeiRei
// Panadería Admin - bakery back-office console
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/uptrace/bun"
)

const (
	storageTable = "local_storage"
	exportsTable = "report_exports"
)

type storageItem struct {
	bun.BaseModel `bun:"table:local_storage"`

	Key       string    `bun:"item_key,pk"`
	Value     string    `bun:"item_value,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

// ReportExport is one saved report file.
type ReportExport struct {
	bun.BaseModel `bun:"table:report_exports"`

	ID         int64     `bun:"id,pk,autoincrement"`
	Resource   string    `bun:"resource,notnull"`
	FilePath   string    `bun:"file_path,notnull"`
	Compressed bool      `bun:"compressed,notnull"`
	SizeBytes  int64     `bun:"size_bytes,notnull"`
	ExportedBy string    `bun:"exported_by,notnull"`
	ExportedAt time.Time `bun:"exported_at,notnull"`
}

// ExportLog records saved report files.
type ExportLog interface {
	RecordExport(ctx context.Context, e ReportExport) error
	ListExports(ctx context.Context, limit int) ([]ReportExport, error)
}

// BunStore is the bun-backed Store used for every supported dialect.
type BunStore struct {
	bun    *bun.DB
	dbType string
}

var (
	_ Store     = (*BunStore)(nil)
	_ ExportLog = (*BunStore)(nil)
)

// Get implements Store.
func (s *BunStore) Get(ctx context.Context, key string) (string, error) {
	var item storageItem
	err := s.bun.NewSelect().Model(&item).Where("item_key = ?", key).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return item.Value, nil
}

// Set implements Store with a dialect-specific upsert.
func (s *BunStore) Set(ctx context.Context, key, value string) error {
	item := &storageItem{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	q := s.bun.NewInsert().Model(item)
	if s.dbType == "mysql" {
		q = q.On("DUPLICATE KEY UPDATE").
			Set("item_value = VALUES(item_value)").
			Set("updated_at = VALUES(updated_at)")
	} else {
		q = q.On("CONFLICT (item_key) DO UPDATE").
			Set("item_value = EXCLUDED.item_value").
			Set("updated_at = EXCLUDED.updated_at")
	}
	_, err := q.Exec(ctx)
	return classify("set "+key, err)
}

// Delete implements Store.
func (s *BunStore) Delete(ctx context.Context, key string) error {
	_, err := s.bun.NewDelete().Model((*storageItem)(nil)).Where("item_key = ?", key).Exec(ctx)
	return err
}

// Keys implements Store.
func (s *BunStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	var candidates []string
	err := scanRaw(ctx, s.bun, &candidates,
		"SELECT item_key FROM local_storage WHERE item_key LIKE ?", prefix+"%")
	if err != nil {
		return nil, err
	}
	// LIKE treats _ and % in the prefix as wildcards; filter exactly here.
	keys := make([]string, 0, len(candidates))
	for _, k := range candidates {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// DeletePrefix removes every key starting with prefix.
func (s *BunStore) DeletePrefix(ctx context.Context, prefix string) (int64, error) {
	keys, err := s.Keys(ctx, prefix)
	if err != nil || len(keys) == 0 {
		return 0, err
	}
	res, err := execRaw(ctx, s.bun, "DELETE FROM local_storage WHERE item_key IN (?)", bun.In(keys))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// RecordExport implements ExportLog.
func (s *BunStore) RecordExport(ctx context.Context, e ReportExport) error {
	if e.ExportedAt.IsZero() {
		e.ExportedAt = time.Now().UTC()
	}
	e.ID = 0
	_, err := s.bun.NewInsert().Model(&e).Exec(ctx)
	return classify("record export", err)
}

// ListExports implements ExportLog, newest first.
func (s *BunStore) ListExports(ctx context.Context, limit int) ([]ReportExport, error) {
	var out []ReportExport
	q := s.bun.NewSelect().Model(&out).Order("exported_at DESC", "id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, err
	}
	return out, nil
}

// Close implements Store.
func (s *BunStore) Close() error {
	return s.bun.Close()
}
