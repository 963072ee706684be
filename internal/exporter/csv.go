// Package exporter writes the enriched series to disk.
package exporter

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/moniburnejko/stock-analysis-tool/internal/series"
)

// WriteCSV writes the series to path as a delimited table: a "Date" column
// in ISO-8601 form followed by every data column in its original order.
// Missing values become empty cells. The file is written to a temporary
// name in the same directory and renamed into place, so a failed run never
// leaves a truncated artifact behind.
func WriteCSV(s *series.Series, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	w := csv.NewWriter(tmp)
	cols := s.Columns()

	header := append([]string{"Date"}, cols...)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	record := make([]string, len(header))
	for i := 0; i < s.Len(); i++ {
		record[0] = s.Date(i).Format("2006-01-02")
		for c, name := range cols {
			vals, _ := s.Column(name)
			record[c+1] = formatCell(vals[i])
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}

func formatCell(v float64) string {
	if series.IsMissing(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
