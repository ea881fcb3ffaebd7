package plan

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const samplePlan = `
meta:
  start_date: "2024-01-01"
  modules:
    stats:
      planned_minutes_per_day: 45
    algo:
      planned_minutes_per_day: 30
weeks:
  - week: 1
    focus:
      - "Linear models"
    deliverable: "One-page summary of OLS assumptions"
    daily_tasks:
      Mon: "Read ch. 2"
      Wed: "Exercises 2.1-2.5"
      Sun: "Weekly review"
    resources:
      - name: "Course notes"
        url: "https://example.com/notes"
`

func writePlan(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing plan: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	p, err := Load(writePlan(t, samplePlan))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := p.Meta.Modules["stats"].PlannedMinutesPerDay; got != 45 {
		t.Errorf("stats planned minutes = %d, want 45", got)
	}
	if got := p.StartDate().Format("2006-01-02"); got != "2024-01-01" {
		t.Errorf("StartDate = %s, want 2024-01-01", got)
	}
	if names := p.ModuleNames(); len(names) != 2 || names[0] != "algo" || names[1] != "stats" {
		t.Errorf("ModuleNames = %v, want [algo stats]", names)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "plan.yaml"))
	if !errors.Is(err, ErrMissing) {
		t.Fatalf("Load on missing file: err = %v, want ErrMissing", err)
	}
}

func TestLoadRejectsBadDocuments(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"not yaml", "{{{"},
		{"no start date", "meta:\n  modules:\n    stats:\n      planned_minutes_per_day: 30\n"},
		{"bad start date", "meta:\n  start_date: \"next monday\"\n  modules:\n    stats:\n      planned_minutes_per_day: 30\n"},
		{"no modules", "meta:\n  start_date: \"2024-01-01\"\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load(writePlan(t, tc.content)); err == nil {
				t.Fatal("Load succeeded, want error")
			}
		})
	}
}

func TestWeekLookup(t *testing.T) {
	p, err := Load(writePlan(t, samplePlan))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	wk := p.Week(1)
	if wk == nil {
		t.Fatal("Week(1) = nil, want entry")
	}
	if wk.Deliverable == "" {
		t.Error("Week(1).Deliverable is empty")
	}
	if p.Week(99) != nil {
		t.Error("Week(99) != nil, want nil")
	}

	tasks := wk.OrderedTasks()
	want := []string{"Mon", "Wed", "Sun"}
	if len(tasks) != len(want) {
		t.Fatalf("OrderedTasks returned %d rows, want %d", len(tasks), len(want))
	}
	for i, day := range want {
		if tasks[i][0] != day {
			t.Errorf("OrderedTasks[%d] day = %s, want %s", i, tasks[i][0], day)
		}
	}
}
