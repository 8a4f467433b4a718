// Copyright (c) 2026 ToeiRei
// Panadería Admin - bakery back-office console
// This source code is licensed under the MIT license found in the LICENSE file.

package core

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/toeirei/panaderia/internal/api"
	"github.com/toeirei/panaderia/internal/db"
	"github.com/toeirei/panaderia/internal/logging"
)

// ReportOptions controls where a downloaded report goes.
type ReportOptions struct {
	// Dir is the target directory; empty means the working directory.
	Dir string
	// Path overrides the generated file name entirely.
	Path     string
	Compress bool
}

// ReportFileName builds the default file name of a report.
func ReportFileName(resource string, at time.Time, compressed bool) string {
	name := fmt.Sprintf("%s-report-%s.pdf", resource, at.Format("20060102-150405"))
	if compressed {
		name += ".zst"
	}
	return name
}

// WriteReport writes PDF bytes to w, zstd-compressed when compress is set.
func WriteReport(w io.Writer, pdf []byte, compress bool) (int64, error) {
	if !compress {
		n, err := w.Write(pdf)
		return int64(n), err
	}
	cw := &countingWriter{w: w}
	zw, err := zstd.NewWriter(cw)
	if err != nil {
		return 0, fmt.Errorf("create zstd writer: %w", err)
	}
	if _, err := zw.Write(pdf); err != nil {
		_ = zw.Close()
		return cw.n, fmt.Errorf("compress report: %w", err)
	}
	if err := zw.Close(); err != nil {
		return cw.n, fmt.Errorf("compress report: %w", err)
	}
	return cw.n, nil
}

// ReadReport reads a report written by WriteReport.
func ReadReport(r io.Reader, compressed bool) ([]byte, error) {
	if !compressed {
		return io.ReadAll(r)
	}
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("create zstd reader: %w", err)
	}
	defer zr.Close()
	return io.ReadAll(zr)
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// writeReportFile is swapped in tests to simulate a failing disk.
var writeReportFile = WriteReport

// SaveReport stores pdf on disk and records the export in log when one is
// given. The returned record carries the final path and size. A file that
// could not be written completely is removed.
func SaveReport(ctx context.Context, log db.ExportLog, resource string, pdf []byte, opts ReportOptions, exportedBy string, now time.Time) (db.ReportExport, error) {
	path := opts.Path
	if path == "" {
		path = filepath.Join(opts.Dir, ReportFileName(resource, now, opts.Compress))
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return db.ReportExport{}, fmt.Errorf("could not create report directory %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return db.ReportExport{}, fmt.Errorf("could not create file: %w", err)
	}
	size, werr := writeReportFile(f, pdf, opts.Compress)
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		if rerr := os.Remove(path); rerr != nil {
			logging.Warnf("reports: could not remove partial file %s: %v", path, rerr)
		}
		return db.ReportExport{}, fmt.Errorf("write report %s: %w", path, werr)
	}

	rec := db.ReportExport{
		Resource:   resource,
		FilePath:   path,
		Compressed: opts.Compress,
		SizeBytes:  size,
		ExportedBy: exportedBy,
		ExportedAt: now,
	}
	if log != nil {
		if err := log.RecordExport(ctx, rec); err != nil {
			logging.Warnf("reports: could not record export of %s: %v", path, err)
		}
	}
	logging.Infof("reports: saved %s report to %s (%d bytes)", resource, path, size)
	return rec, nil
}

// ExportReport downloads the PDF report of resource (customer or product)
// and saves it.
func (s *Services) ExportReport(ctx context.Context, resource string, opts ReportOptions) (db.ReportExport, error) {
	var fetch func(context.Context) ([]byte, error)
	switch resource {
	case api.ResourceCustomer:
		fetch = s.Customers.ReportPDF
	case api.ResourceProduct:
		fetch = s.Products.ReportPDF
	default:
		return db.ReportExport{}, fmt.Errorf("no report for %q: %w", resource, ErrNotFound)
	}
	pdf, err := fetch(ctx)
	if err != nil {
		return db.ReportExport{}, err
	}
	user := ""
	if u := s.Session.Current(); u != nil {
		user = u.Username
	}
	return SaveReport(ctx, s.Exports, resource, pdf, opts, user, s.Now())
}

// RecentExports lists saved reports, newest first.
func (s *Services) RecentExports(ctx context.Context, limit int) ([]db.ReportExport, error) {
	if s.Exports == nil {
		return nil, nil
	}
	return s.Exports.ListExports(ctx, limit)
}
