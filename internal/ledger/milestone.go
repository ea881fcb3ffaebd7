package ledger

import (
	"fmt"
	"path/filepath"
	"strconv"
)

var milestoneHeader = []string{"week", "done_date", "note"}

// Milestone records a completed weekly deliverable. Week is the unique key;
// there is deliberately no way to un-complete a week.
type Milestone struct {
	Week     int
	DoneDate string
	Note     string
}

// MilestoneStore persists deliverable completions in milestones.csv.
type MilestoneStore struct {
	path string
}

// NewMilestoneStore returns a store backed by milestones.csv under dataDir.
func NewMilestoneStore(dataDir string) *MilestoneStore {
	return &MilestoneStore{path: filepath.Join(dataDir, "milestones.csv")}
}

// Path returns the backing file path.
func (s *MilestoneStore) Path() string { return s.path }

// Load reads all milestones in file order.
func (s *MilestoneStore) Load() ([]Milestone, error) {
	rows, err := readTable(s.path)
	if err != nil {
		return nil, err
	}

	milestones := make([]Milestone, 0, len(rows))
	for i, row := range rows {
		if len(row) < 3 {
			return nil, fmt.Errorf("ledger: %s row %d has %d columns, want 3", s.path, i+2, len(row))
		}
		week, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("ledger: bad week %q (%s row %d)", row[0], s.path, i+2)
		}
		milestones = append(milestones, Milestone{Week: week, DoneDate: row[1], Note: row[2]})
	}
	return milestones, nil
}

// Upsert replaces any existing row for week with a single new row and saves.
func (s *MilestoneStore) Upsert(week int, doneDate, note string) error {
	existing, err := s.Load()
	if err != nil {
		return err
	}

	kept := existing[:0]
	for _, m := range existing {
		if m.Week != week {
			kept = append(kept, m)
		}
	}
	kept = append(kept, Milestone{Week: week, DoneDate: doneDate, Note: note})

	rows := make([][]string, len(kept))
	for i, m := range kept {
		rows[i] = []string{strconv.Itoa(m.Week), m.DoneDate, m.Note}
	}
	return writeTable(s.path, milestoneHeader, rows)
}

// Done reports whether a completion is recorded for week.
func (s *MilestoneStore) Done(week int) (bool, error) {
	milestones, err := s.Load()
	if err != nil {
		return false, err
	}
	for _, m := range milestones {
		if m.Week == week {
			return true, nil
		}
	}
	return false, nil
}
