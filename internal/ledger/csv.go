// Package ledger implements the CSV-backed progress, milestone, and
// reflection stores. Every store loads its whole table into memory and
// rewrites the file on save; a missing file reads as an empty table.
package ledger

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const dateLayout = "2006-01-02"

// dateLayouts accepted when reading back a date column. Files written by
// older sessions may carry full timestamps.
var dateLayouts = []string{dateLayout, time.RFC3339, "2006-01-02T15:04:05"}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local), nil
		}
	}
	return time.Time{}, fmt.Errorf("ledger: unparseable date %q", s)
}

// readTable reads all rows of the CSV at path, minus the header row.
// A missing file is an empty table, not an error.
func readTable(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("ledger: opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // column count checked per-store

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("ledger: parsing %s: %w", path, err)
	}
	if len(records) <= 1 {
		return nil, nil
	}
	return records[1:], nil
}

// writeTable rewrites the CSV at path with the given header and rows.
func writeTable(path string, header []string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("ledger: creating data dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("ledger: creating %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		_ = f.Close()
		return fmt.Errorf("ledger: writing %s: %w", path, err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			_ = f.Close()
			return fmt.Errorf("ledger: writing %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("ledger: writing %s: %w", path, err)
	}
	return f.Close()
}
