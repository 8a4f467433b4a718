package core

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toeirei/panaderia/internal/db"
	"github.com/toeirei/panaderia/internal/testutil"
)

func TestWriteAndReadReport(t *testing.T) {
	pdf := bytes.Repeat([]byte("%PDF panaderia "), 200)
	for _, compress := range []bool{false, true} {
		var buf bytes.Buffer
		n, err := WriteReport(&buf, pdf, compress)
		require.NoError(t, err)
		assert.Equal(t, int64(buf.Len()), n)
		if compress {
			assert.Less(t, buf.Len(), len(pdf))
		}
		back, err := ReadReport(&buf, compress)
		require.NoError(t, err)
		assert.Equal(t, pdf, back)
	}
}

func TestSaveReport_RecordsExport(t *testing.T) {
	dir := t.TempDir()
	log := db.NewMemoryStore()
	at := time.Date(2024, 5, 12, 14, 3, 9, 0, time.Local)

	rec, err := SaveReport(context.Background(), log, "customer", testutil.FakePDF, ReportOptions{Dir: dir, Compress: true}, "admin", at)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "customer-report-20240512-140309.pdf.zst"), rec.FilePath)

	f, err := os.Open(rec.FilePath)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	back, err := ReadReport(f, true)
	require.NoError(t, err)
	assert.Equal(t, testutil.FakePDF, back)

	exports, err := log.ListExports(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, exports, 1)
	assert.Equal(t, "admin", exports[0].ExportedBy)
	assert.True(t, exports[0].Compressed)
}

func TestExportReport(t *testing.T) {
	ctx := context.Background()
	s, _ := newAdminServices(t)
	path := filepath.Join(t.TempDir(), "productos.pdf")

	rec, err := s.ExportReport(ctx, "product", ReportOptions{Path: path})
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, testutil.FakePDF, data)
	assert.Equal(t, int64(len(testutil.FakePDF)), rec.SizeBytes)

	recent, err := s.RecentExports(ctx, 5)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "product", recent[0].Resource)

	_, err = s.ExportReport(ctx, "order", ReportOptions{Path: path})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveReport_RemovesPartialFile(t *testing.T) {
	orig := writeReportFile
	t.Cleanup(func() { writeReportFile = orig })
	writeReportFile = func(w io.Writer, pdf []byte, compress bool) (int64, error) {
		n, _ := w.Write(pdf[:len(pdf)/2])
		return int64(n), errors.New("disco lleno")
	}

	log := db.NewMemoryStore()
	dir := t.TempDir()
	now := time.Date(2024, 5, 12, 10, 0, 0, 0, time.Local)
	_, err := SaveReport(context.Background(), log, "customer", []byte("%PDF-1.7 clientes"), ReportOptions{Dir: dir}, "admin", now)
	require.Error(t, err)

	entries, rerr := os.ReadDir(dir)
	require.NoError(t, rerr)
	assert.Empty(t, entries)
	exports, lerr := log.ListExports(context.Background(), 0)
	require.NoError(t, lerr)
	assert.Empty(t, exports)
}
