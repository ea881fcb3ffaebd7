package ledger

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"
)

var progressHeader = []string{"date", "module", "minutes", "note"}

// Entry is one logged block of study time. Duplicate (date, module) rows are
// additive: several log events on the same day are all kept.
type Entry struct {
	Date    time.Time
	Module  string
	Minutes int
	Note    string
}

// ProgressStore persists study log entries in progress.csv.
type ProgressStore struct {
	path string
}

// NewProgressStore returns a store backed by progress.csv under dataDir.
func NewProgressStore(dataDir string) *ProgressStore {
	return &ProgressStore{path: filepath.Join(dataDir, "progress.csv")}
}

// Path returns the backing file path.
func (s *ProgressStore) Path() string { return s.path }

// Load reads all entries in file order.
func (s *ProgressStore) Load() ([]Entry, error) {
	rows, err := readTable(s.path)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(rows))
	for i, row := range rows {
		if len(row) < 4 {
			return nil, fmt.Errorf("ledger: %s row %d has %d columns, want 4", s.path, i+2, len(row))
		}
		date, err := parseDate(row[0])
		if err != nil {
			return nil, fmt.Errorf("%w (%s row %d)", err, s.path, i+2)
		}
		minutes, err := strconv.Atoi(row[2])
		if err != nil {
			return nil, fmt.Errorf("ledger: bad minutes %q (%s row %d)", row[2], s.path, i+2)
		}
		entries = append(entries, Entry{Date: date, Module: row[1], Minutes: minutes, Note: row[3]})
	}
	return entries, nil
}

// Save rewrites the whole table. Dates are canonicalized to ISO date strings.
func (s *ProgressStore) Save(entries []Entry) error {
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{
			e.Date.Format(dateLayout),
			e.Module,
			strconv.Itoa(e.Minutes),
			e.Note,
		}
	}
	return writeTable(s.path, progressHeader, rows)
}

// Append loads the table, appends the given entries, and saves.
func (s *ProgressStore) Append(entries ...Entry) error {
	existing, err := s.Load()
	if err != nil {
		return err
	}
	return s.Save(append(existing, entries...))
}
