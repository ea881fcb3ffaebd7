package reconcile

import (
	"testing"
	"time"

	"studytrack/internal/ledger"
	"studytrack/internal/plan"
)

func testPlan() *plan.Plan {
	return &plan.Plan{
		Meta: plan.Meta{
			StartDate: "2024-01-01",
			Modules: map[string]plan.Module{
				"stats": {PlannedMinutesPerDay: 45},
				"algo":  {PlannedMinutesPerDay: 30},
			},
		},
	}
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func TestWeekIndex(t *testing.T) {
	p := testPlan()

	cases := []struct {
		today string
		want  int
	}{
		{"2023-12-31", 0},
		{"2023-06-15", 0},
		{"2024-01-01", 1}, // start date itself
		{"2024-01-07", 1}, // 6 days after start
		{"2024-01-08", 2}, // day 7
		{"2024-01-14", 2}, // day 13
		{"2024-01-15", 3},
		{"2024-03-31", 13},
	}

	for _, tc := range cases {
		if got := WeekIndex(p, mustDate(t, tc.today)); got != tc.want {
			t.Errorf("WeekIndex(%s) = %d, want %d", tc.today, got, tc.want)
		}
	}
}

func TestPlannedPerDay(t *testing.T) {
	targets := PlannedPerDay(testPlan())
	if targets["stats"] != 45 || targets["algo"] != 30 {
		t.Errorf("PlannedPerDay = %v", targets)
	}
	if len(targets) != 2 {
		t.Errorf("PlannedPerDay has %d keys, want 2", len(targets))
	}
}

func TestCumulativePlannedScalesLinearly(t *testing.T) {
	p := testPlan()
	start := mustDate(t, "2024-01-01")

	oneDay := CumulativePlanned(p, start, start)
	if oneDay["stats"] != 45 || oneDay["algo"] != 30 || oneDay.Total() != 75 {
		t.Fatalf("1-day totals = %v, want per-day targets", oneDay)
	}

	tenDays := CumulativePlanned(p, start, start.AddDate(0, 0, 9))
	if tenDays["stats"] != 450 || tenDays["algo"] != 300 || tenDays.Total() != 750 {
		t.Fatalf("10-day totals = %v, want 10x per-day targets", tenDays)
	}
}

func TestCumulativePlannedReversedRangeIsNegative(t *testing.T) {
	// Reversed ranges are passed through, not clamped. The inclusive day
	// count for 01-10..01-08 is (-2)+1 = -1, so each module goes one
	// day's worth negative.
	p := testPlan()
	got := CumulativePlanned(p, mustDate(t, "2024-01-10"), mustDate(t, "2024-01-08"))
	if got["stats"] != -45 || got["algo"] != -30 || got.Total() != -75 {
		t.Errorf("reversed-range totals = %v, want -1x per-day targets", got)
	}
}

func TestCumulativeActualEmpty(t *testing.T) {
	got := CumulativeActual(nil, mustDate(t, "2024-01-01"), mustDate(t, "2024-01-31"))
	if len(got) != 1 || got.Total() != 0 {
		t.Errorf("empty actual = %v, want exactly {total: 0}", got)
	}
}

func TestCumulativeActualGroupsAndFilters(t *testing.T) {
	entries := []ledger.Entry{
		{Date: mustDate(t, "2024-01-01"), Module: "stats", Minutes: 30},
		{Date: mustDate(t, "2024-01-02"), Module: "stats", Minutes: 20},
		{Date: mustDate(t, "2024-01-01"), Module: "algo", Minutes: 10},
		{Date: mustDate(t, "2024-01-03"), Module: "algo", Minutes: 99}, // outside range
		{Date: mustDate(t, "2023-12-31"), Module: "stats", Minutes: 99},
	}

	got := CumulativeActual(entries, mustDate(t, "2024-01-01"), mustDate(t, "2024-01-02"))
	if got["stats"] != 50 || got["algo"] != 10 || got.Total() != 60 {
		t.Errorf("actual totals = %v, want stats:50 algo:10 total:60", got)
	}
	if len(got) != 3 {
		t.Errorf("actual totals have %d keys, want 3 (stats, algo, total)", len(got))
	}
}

func TestCumulativeActualNegativeMinutesPassThrough(t *testing.T) {
	entries := []ledger.Entry{
		{Date: mustDate(t, "2024-01-01"), Module: "stats", Minutes: 30},
		{Date: mustDate(t, "2024-01-01"), Module: "stats", Minutes: -10},
	}
	got := CumulativeActual(entries, mustDate(t, "2024-01-01"), mustDate(t, "2024-01-01"))
	if got["stats"] != 20 || got.Total() != 20 {
		t.Errorf("totals = %v, want negative minutes summed through", got)
	}
}

func TestDailyActualZeroFills(t *testing.T) {
	entries := []ledger.Entry{
		{Date: mustDate(t, "2024-01-01"), Module: "stats", Minutes: 30},
		{Date: mustDate(t, "2024-01-01"), Module: "algo", Minutes: 15},
		{Date: mustDate(t, "2024-01-03"), Module: "stats", Minutes: 40},
	}

	days := DailyActual(entries, mustDate(t, "2024-01-01"), mustDate(t, "2024-01-04"))
	if len(days) != 4 {
		t.Fatalf("got %d days, want 4", len(days))
	}
	want := []int{45, 0, 40, 0}
	for i, w := range want {
		if days[i].Minutes != w {
			t.Errorf("day %d minutes = %d, want %d", i, days[i].Minutes, w)
		}
	}

	if got := DailyActual(entries, mustDate(t, "2024-01-04"), mustDate(t, "2024-01-01")); got != nil {
		t.Errorf("reversed range = %v, want nil", got)
	}
}
