package ledger

import (
	"os"
	"strings"
	"testing"
	"time"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func TestProgressMissingFileIsEmpty(t *testing.T) {
	s := NewProgressStore(t.TempDir())
	entries, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("Load on missing file returned %d entries, want 0", len(entries))
	}
}

func TestProgressRoundTrip(t *testing.T) {
	s := NewProgressStore(t.TempDir())

	// In-memory dates may carry a wall-clock time; the saved form must not.
	in := []Entry{
		{Date: time.Date(2024, 1, 1, 14, 30, 12, 0, time.Local), Module: "stats", Minutes: 30, Note: "ch. 2"},
		{Date: mustDate(t, "2024-01-02"), Module: "algo", Minutes: 0, Note: ""},
		{Date: mustDate(t, "2024-01-02"), Module: "algo", Minutes: 25, Note: "two sessions, same day"},
	}
	if err := s.Save(in); err != nil {
		t.Fatalf("Save: %v", err)
	}

	out, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("round trip returned %d entries, want %d", len(out), len(in))
	}
	for i := range in {
		wantDate := in[i].Date.Format("2006-01-02")
		if got := out[i].Date.Format("2006-01-02"); got != wantDate {
			t.Errorf("entry %d date = %s, want %s", i, got, wantDate)
		}
		if out[i].Module != in[i].Module || out[i].Minutes != in[i].Minutes || out[i].Note != in[i].Note {
			t.Errorf("entry %d = %+v, want %+v", i, out[i], in[i])
		}
	}
}

func TestProgressAppendKeepsExistingRows(t *testing.T) {
	s := NewProgressStore(t.TempDir())

	if err := s.Append(Entry{Date: mustDate(t, "2024-01-01"), Module: "stats", Minutes: 30}); err != nil {
		t.Fatalf("first Append: %v", err)
	}
	if err := s.Append(Entry{Date: mustDate(t, "2024-01-01"), Module: "stats", Minutes: 20}); err != nil {
		t.Fatalf("second Append: %v", err)
	}

	entries, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	// Duplicate (date, module) rows are additive, not merged.
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
}

func TestMilestoneUpsertReplacesWeek(t *testing.T) {
	s := NewMilestoneStore(t.TempDir())

	if err := s.Upsert(3, "2024-01-21", "first attempt"); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := s.Upsert(2, "2024-01-14", ""); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := s.Upsert(3, "2024-01-22", "redone"); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	milestones, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(milestones) != 2 {
		t.Fatalf("got %d milestones, want 2", len(milestones))
	}

	var week3 []Milestone
	for _, m := range milestones {
		if m.Week == 3 {
			week3 = append(week3, m)
		}
	}
	if len(week3) != 1 {
		t.Fatalf("week 3 has %d rows, want exactly 1", len(week3))
	}
	if week3[0].Note != "redone" {
		t.Errorf("week 3 note = %q, want %q", week3[0].Note, "redone")
	}

	done, err := s.Done(3)
	if err != nil {
		t.Fatalf("Done: %v", err)
	}
	if !done {
		t.Error("Done(3) = false, want true")
	}
	if done, _ := s.Done(7); done {
		t.Error("Done(7) = true, want false")
	}
}

func TestReflectionAppendStampsTimestamp(t *testing.T) {
	s := NewReflectionStore(t.TempDir())
	fixed := time.Date(2024, 3, 5, 9, 41, 23, 987654321, time.Local)
	s.now = func() time.Time { return fixed }

	err := s.Append(Reflection{
		Topic: "paper",
		Mood:  CanonicalMood("stuck"),
		Text:  "method from today's paper might transfer, need a toy experiment",
		Tags:  "causal, notes",
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d reflections, want 1", len(got))
	}
	r := got[0]
	if !r.Timestamp.Equal(fixed.Truncate(time.Second)) {
		t.Errorf("timestamp = %v, want %v", r.Timestamp, fixed.Truncate(time.Second))
	}
	if r.Date != "2024-03-05" {
		t.Errorf("date = %q, want 2024-03-05", r.Date)
	}
	if r.Mood != "😕 stuck" {
		t.Errorf("mood = %q, want canonical label", r.Mood)
	}
}

func TestReflectionRawExport(t *testing.T) {
	dir := t.TempDir()
	s := NewReflectionStore(dir)

	// Missing file exports as a bare header.
	raw, err := s.Raw()
	if err != nil {
		t.Fatalf("Raw: %v", err)
	}
	if !strings.HasPrefix(string(raw), "timestamp,date,topic,mood,text,tags") {
		t.Fatalf("empty export = %q, want header row", raw)
	}

	if err := s.Append(Reflection{Topic: "other", Mood: "😐 ok", Text: "short note"}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	raw, err = s.Raw()
	if err != nil {
		t.Fatalf("Raw: %v", err)
	}
	onDisk, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("reading backing file: %v", err)
	}
	if string(raw) != string(onDisk) {
		t.Error("Raw() differs from backing file bytes")
	}
}

func TestMoodHelpers(t *testing.T) {
	if !ValidTopic("stats") || ValidTopic("philosophy") {
		t.Error("ValidTopic misclassified")
	}
	if !ValidMood("good") || !ValidMood("🔥 excited") || ValidMood("angry") {
		t.Error("ValidMood misclassified")
	}
	if got := CanonicalMood("excited"); got != "🔥 excited" {
		t.Errorf("CanonicalMood(excited) = %q", got)
	}
}
