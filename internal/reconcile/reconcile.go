// Package reconcile computes planned-vs-actual study totals. All functions
// are pure projections over already-loaded plan and ledger data.
package reconcile

import (
	"math"
	"time"

	"studytrack/internal/ledger"
	"studytrack/internal/plan"
)

// TotalKey is the reserved key holding the grand total in a Totals map.
const TotalKey = "total"

// Totals maps module name -> minutes, plus the "total" grand sum.
type Totals map[string]int

// Get returns the minutes for key, zero when absent.
func (t Totals) Get(key string) int { return t[key] }

// Total returns the grand sum.
func (t Totals) Total() int { return t[TotalKey] }

// DayTotal is one day's summed actual minutes, for the daily chart.
type DayTotal struct {
	Date    time.Time
	Minutes int
}

// PlannedPerDay projects the per-module daily targets out of the plan.
func PlannedPerDay(p *plan.Plan) map[string]int {
	targets := make(map[string]int, len(p.Meta.Modules))
	for name, m := range p.Meta.Modules {
		targets[name] = m.PlannedMinutesPerDay
	}
	return targets
}

// CumulativePlanned returns each module's daily target multiplied by the
// inclusive day count of [start, end], plus the grand total. An end before
// start yields a negative day count and negative totals; callers own their
// range arguments.
func CumulativePlanned(p *plan.Plan, start, end time.Time) Totals {
	days := inclusiveDays(start, end)
	totals := make(Totals, len(p.Meta.Modules)+1)
	sum := 0
	for name, m := range p.Meta.Modules {
		v := m.PlannedMinutesPerDay * days
		totals[name] = v
		sum += v
	}
	totals[TotalKey] = sum
	return totals
}

// CumulativeActual filters entries to [start, end] inclusive by calendar
// date, groups by module, and sums minutes. An empty result is {"total": 0}
// with no per-module keys.
func CumulativeActual(entries []ledger.Entry, start, end time.Time) Totals {
	totals := Totals{TotalKey: 0}
	startDay := dayOf(start)
	endDay := dayOf(end)
	for _, e := range entries {
		d := dayOf(e.Date)
		if d.Before(startDay) || d.After(endDay) {
			continue
		}
		totals[e.Module] += e.Minutes
		totals[TotalKey] += e.Minutes
	}
	return totals
}

// WeekIndex returns the 1-based plan week containing today: days 0-6 after
// the start date are week 1, days 7-13 week 2, and so on. Any date before
// the start is week 0.
func WeekIndex(p *plan.Plan, today time.Time) int {
	delta := daysBetween(p.StartDate(), today)
	if delta < 0 {
		return 0
	}
	return delta/7 + 1
}

// DailyActual sums actual minutes per calendar day across [start, end],
// zero-filling days with no entries so charts show gaps.
func DailyActual(entries []ledger.Entry, start, end time.Time) []DayTotal {
	startDay := dayOf(start)
	endDay := dayOf(end)
	if endDay.Before(startDay) {
		return nil
	}

	byDay := make(map[string]int)
	for _, e := range entries {
		d := dayOf(e.Date)
		if d.Before(startDay) || d.After(endDay) {
			continue
		}
		byDay[d.Format("2006-01-02")] += e.Minutes
	}

	var days []DayTotal
	for d := startDay; !d.After(endDay); d = d.AddDate(0, 0, 1) {
		days = append(days, DayTotal{Date: d, Minutes: byDay[d.Format("2006-01-02")]})
	}
	return days
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}

// daysBetween counts whole calendar days from a to b, negative when b < a.
// Computed via date arithmetic rather than Sub to stay DST-safe.
func daysBetween(a, b time.Time) int {
	return int(math.Round(dayOf(b).Sub(dayOf(a)).Hours() / 24))
}

func inclusiveDays(start, end time.Time) int {
	return daysBetween(start, end) + 1
}
