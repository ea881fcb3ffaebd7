package ledger

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

var reflectionHeader = []string{"timestamp", "date", "topic", "mood", "text", "tags"}

const timestampLayout = "2006-01-02T15:04:05"

// Topics are the fixed reflection topic labels.
var Topics = []string{"paper", "stats", "algo", "project", "other"}

// Moods are the fixed reflection mood labels.
var Moods = []string{"🙂 good", "😐 ok", "😕 stuck", "🔥 excited"}

// ValidTopic reports whether s is one of the fixed topics.
func ValidTopic(s string) bool {
	for _, t := range Topics {
		if t == s {
			return true
		}
	}
	return false
}

// ValidMood reports whether s is one of the fixed mood labels, with or
// without the emoji prefix.
func ValidMood(s string) bool {
	for _, m := range Moods {
		if m == s || moodWord(m) == s {
			return true
		}
	}
	return false
}

// CanonicalMood maps a bare mood word ("good") to its full label ("🙂 good").
// Unrecognized input passes through unchanged.
func CanonicalMood(s string) string {
	for _, m := range Moods {
		if m == s || moodWord(m) == s {
			return m
		}
	}
	return s
}

func moodWord(label string) string {
	for i := len(label) - 1; i >= 0; i-- {
		if label[i] == ' ' {
			return label[i+1:]
		}
	}
	return label
}

// Reflection is one journal entry. Entries are append-only and never edited.
type Reflection struct {
	Timestamp time.Time
	Date      string
	Topic     string
	Mood      string
	Text      string
	Tags      string
}

// ReflectionStore persists journal entries in reflections.csv.
type ReflectionStore struct {
	path string
	now  func() time.Time
}

// NewReflectionStore returns a store backed by reflections.csv under dataDir.
func NewReflectionStore(dataDir string) *ReflectionStore {
	return &ReflectionStore{
		path: filepath.Join(dataDir, "reflections.csv"),
		now:  time.Now,
	}
}

// Path returns the backing file path.
func (s *ReflectionStore) Path() string { return s.path }

// Load reads all reflections in file order.
func (s *ReflectionStore) Load() ([]Reflection, error) {
	rows, err := readTable(s.path)
	if err != nil {
		return nil, err
	}

	reflections := make([]Reflection, 0, len(rows))
	for i, row := range rows {
		if len(row) < 6 {
			return nil, fmt.Errorf("ledger: %s row %d has %d columns, want 6", s.path, i+2, len(row))
		}
		ts, err := time.ParseInLocation(timestampLayout, row[0], time.Local)
		if err != nil {
			return nil, fmt.Errorf("ledger: bad timestamp %q (%s row %d)", row[0], s.path, i+2)
		}
		reflections = append(reflections, Reflection{
			Timestamp: ts,
			Date:      row[1],
			Topic:     row[2],
			Mood:      row[3],
			Text:      row[4],
			Tags:      row[5],
		})
	}
	return reflections, nil
}

// Append stamps r with the current instant (second precision) and today's
// date if unset, then rewrites the full table with r at the end.
func (s *ReflectionStore) Append(r Reflection) error {
	existing, err := s.Load()
	if err != nil {
		return err
	}

	now := s.now()
	r.Timestamp = now.Truncate(time.Second)
	if r.Date == "" {
		r.Date = now.Format(dateLayout)
	}
	existing = append(existing, r)

	rows := make([][]string, len(existing))
	for i, e := range existing {
		rows[i] = []string{
			e.Timestamp.Format(timestampLayout),
			e.Date,
			e.Topic,
			e.Mood,
			e.Text,
			e.Tags,
		}
	}
	return writeTable(s.path, reflectionHeader, rows)
}

// Raw returns the backing file bytes, for export. A missing file exports as
// just the header row.
func (s *ReflectionStore) Raw() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []byte("timestamp,date,topic,mood,text,tags\n"), nil
		}
		return nil, fmt.Errorf("ledger: reading %s: %w", s.path, err)
	}
	return data, nil
}
