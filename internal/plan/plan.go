// Package plan loads the weekly curriculum from plan.yaml.
package plan

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrMissing indicates no plan file exists at the expected path.
var ErrMissing = errors.New("plan: plan.yaml not found")

// Module holds per-module planning metadata.
type Module struct {
	PlannedMinutesPerDay int `yaml:"planned_minutes_per_day"`
}

// Meta holds plan-wide metadata.
type Meta struct {
	StartDate string            `yaml:"start_date"`
	Modules   map[string]Module `yaml:"modules"`
}

// Resource is a named link attached to a week.
type Resource struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// Week describes one week of the curriculum.
type Week struct {
	Week        int               `yaml:"week"`
	Focus       []string          `yaml:"focus"`
	Deliverable string            `yaml:"deliverable"`
	DailyTasks  map[string]string `yaml:"daily_tasks"`
	Resources   []Resource        `yaml:"resources"`
}

// Plan is the full curriculum document. It is read-only for the session.
type Plan struct {
	Meta  Meta   `yaml:"meta"`
	Weeks []Week `yaml:"weeks"`
}

// DayOrder is the canonical ordering for daily task keys.
var DayOrder = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Load reads and validates the plan document at path.
// A missing file is ErrMissing; anything else unparseable is fatal to the caller.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w (looked at %s)", ErrMissing, path)
		}
		return nil, fmt.Errorf("plan: reading %s: %w", path, err)
	}

	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("plan: parsing %s: %w", path, err)
	}

	if p.Meta.StartDate == "" {
		return nil, fmt.Errorf("plan: %s has no meta.start_date", path)
	}
	if _, err := time.Parse("2006-01-02", p.Meta.StartDate); err != nil {
		return nil, fmt.Errorf("plan: invalid meta.start_date %q: %w", p.Meta.StartDate, err)
	}
	if len(p.Meta.Modules) == 0 {
		return nil, fmt.Errorf("plan: %s defines no modules", path)
	}

	return &p, nil
}

// StartDate returns the parsed plan start date (midnight, local).
func (p *Plan) StartDate() time.Time {
	t, _ := time.ParseInLocation("2006-01-02", p.Meta.StartDate, time.Local)
	return t
}

// Week returns the week entry with the given 1-based number, or nil.
func (p *Plan) Week(n int) *Week {
	for i := range p.Weeks {
		if p.Weeks[i].Week == n {
			return &p.Weeks[i]
		}
	}
	return nil
}

// ModuleNames returns the module names in stable sorted order.
func (p *Plan) ModuleNames() []string {
	names := make([]string, 0, len(p.Meta.Modules))
	for name := range p.Meta.Modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasModule reports whether name is a known plan module.
func (p *Plan) HasModule(name string) bool {
	_, ok := p.Meta.Modules[name]
	return ok
}

// OrderedTasks returns the week's daily tasks in Mon..Sun order,
// skipping days with no task.
func (w *Week) OrderedTasks() [][2]string {
	var rows [][2]string
	for _, day := range DayOrder {
		if task, ok := w.DailyTasks[day]; ok {
			rows = append(rows, [2]string{day, task})
		}
	}
	return rows
}
