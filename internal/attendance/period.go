package attendance

import (
	"errors"
	"fmt"
	"time"
)

// PeriodKind selects how a period window is derived.
type PeriodKind string

const (
	PeriodWeekly  PeriodKind = "weekly"
	PeriodMonthly PeriodKind = "monthly"
	PeriodCustom  PeriodKind = "custom"
)

// ErrInvalidWindow is returned when a window ends before it starts.
var ErrInvalidWindow = errors.New("window ends before it starts")

const secondsPerDay = 24 * 60 * 60

// Window is an inclusive range of normalized days.
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow normalizes both bounds and rejects reversed ranges.
func NewWindow(start, end time.Time) (Window, error) {
	w := Window{Start: NormalizeDay(start), End: NormalizeDay(end)}
	if w.End.Before(w.Start) {
		return Window{}, fmt.Errorf("%w: %s > %s", ErrInvalidWindow, FormatDay(w.Start), FormatDay(w.End))
	}
	return w, nil
}

// WeekOf returns the Monday to Sunday week containing t.
func WeekOf(t time.Time) Window {
	day := NormalizeDay(t)
	offset := (int(day.Weekday()) + 6) % 7
	start := day.AddDate(0, 0, -offset)
	return Window{Start: start, End: start.AddDate(0, 0, 6)}
}

// MonthOf returns the calendar month containing t.
func MonthOf(t time.Time) Window {
	day := NormalizeDay(t)
	start := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
	return Window{Start: start, End: start.AddDate(0, 1, -1)}
}

// Days counts the calendar days in the window, both bounds included.
func (w Window) Days() int {
	if w.End.Before(w.Start) {
		return 0
	}
	return int((w.End.Unix()-w.Start.Unix())/secondsPerDay) + 1
}

// Weekdays lists the Monday to Friday days of the window in order.
func (w Window) Weekdays() []time.Time {
	var days []time.Time
	for d := w.Start; !d.After(w.End); d = d.AddDate(0, 0, 1) {
		if d.Weekday() != time.Saturday && d.Weekday() != time.Sunday {
			days = append(days, d)
		}
	}
	return days
}

// Label returns the display label used for a period kind.
func (k PeriodKind) Label() string {
	switch k {
	case PeriodWeekly:
		return "Statistiques de la semaine"
	case PeriodMonthly:
		return "Statistiques du mois"
	default:
		return "Statistiques de la période"
	}
}

// PeriodStat is the rolled-up rate of one group over a window.
type PeriodStat struct {
	Label          string `json:"label"`
	Periode        string `json:"periode"`
	TauxPresence   int    `json:"tauxPresence"`
	TauxAbsence    int    `json:"tauxAbsence"`
	TotalPresences int    `json:"totalPresences"`
	TotalAbsences  int    `json:"totalAbsences"`
	TotalEtudiants int    `json:"totalEtudiants"`
}

// PeriodRate treats every student-day of the window as an opportunity to be present.
// Missing records count as absences.
func PeriodRate(kind PeriodKind, w Window, students, presences int) PeriodStat {
	possible := students * w.Days()
	if presences > possible {
		presences = possible
	}
	if presences < 0 {
		presences = 0
	}
	rate := Percent(presences, possible)

	return PeriodStat{
		Label:          kind.Label(),
		Periode:        fmt.Sprintf("%s - %s", w.Start.Format("02/01/2006"), w.End.Format("02/01/2006")),
		TauxPresence:   rate,
		TauxAbsence:    100 - rate,
		TotalPresences: presences,
		TotalAbsences:  possible - presences,
		TotalEtudiants: students,
	}
}

// ResolveWindow derives the window of kind. Weekly and monthly windows are taken from
// ref; custom windows use start and end as given.
func ResolveWindow(kind PeriodKind, ref, start, end time.Time) (Window, error) {
	switch kind {
	case PeriodWeekly:
		return WeekOf(ref), nil
	case PeriodMonthly:
		return MonthOf(ref), nil
	case PeriodCustom:
		if start.IsZero() || end.IsZero() {
			return Window{}, fmt.Errorf("custom period requires start and end")
		}
		return NewWindow(start, end)
	default:
		return Window{}, fmt.Errorf("unsupported period type %q", kind)
	}
}
