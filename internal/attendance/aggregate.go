package attendance

import "time"

// RateBlock summarises one group of students for one day.
type RateBlock struct {
	Total        int `json:"total"`
	Present      int `json:"present"`
	Absent       int `json:"absent"`
	PresenceRate int `json:"presenceRate"`
}

// NewRateBlock derives absent and presenceRate from total and present.
func NewRateBlock(total, present int) RateBlock {
	if present > total {
		present = total
	}
	return RateBlock{
		Total:        total,
		Present:      present,
		Absent:       total - present,
		PresenceRate: Percent(present, total),
	}
}

// Percent returns part/whole*100 rounded half up, or 0 when whole is not positive.
func Percent(part, whole int) int {
	if whole <= 0 || part <= 0 {
		return 0
	}
	if part > whole {
		return 100
	}
	return (part*200 + whole) / (2 * whole)
}

// Entry is one student's resolved status keyed by its stored department and level.
type Entry struct {
	DepartmentCode string
	LevelCode      string
	Status         Status
}

// Report is the daily attendance report.
type Report struct {
	Date        string               `json:"date"`
	Global      RateBlock            `json:"global"`
	Departments map[string]RateBlock `json:"departments"`
	Levels      map[string]RateBlock `json:"levels"`
}

type tally struct {
	total   int
	present int
}

func (t *tally) add(s Status) {
	t.total++
	if s.Present() {
		t.present++
	}
}

func (t tally) block() RateBlock {
	return NewRateBlock(t.total, t.present)
}

// Aggregate folds entries into the global, per-department and per-level blocks.
// Every call returns freshly allocated maps. Entries with an empty key are only
// counted globally.
func Aggregate(entries []Entry) (RateBlock, map[string]RateBlock, map[string]RateBlock) {
	var global tally
	departments := make(map[string]*tally)
	levels := make(map[string]*tally)

	for _, e := range entries {
		global.add(e.Status)
		if e.DepartmentCode != "" {
			bump(departments, e.DepartmentCode, e.Status)
		}
		if e.LevelCode != "" {
			bump(levels, e.LevelCode, e.Status)
		}
	}

	return global.block(), blocks(departments), blocks(levels)
}

// Assemble builds the daily report of day from the resolved entries.
func Assemble(day time.Time, entries []Entry) Report {
	global, departments, levels := Aggregate(entries)
	return Report{
		Date:        FormatDay(day),
		Global:      global,
		Departments: departments,
		Levels:      levels,
	}
}

func bump(groups map[string]*tally, key string, s Status) {
	t, ok := groups[key]
	if !ok {
		t = &tally{}
		groups[key] = t
	}
	t.add(s)
}

func blocks(groups map[string]*tally) map[string]RateBlock {
	out := make(map[string]RateBlock, len(groups))
	for key, t := range groups {
		out[key] = t.block()
	}
	return out
}
