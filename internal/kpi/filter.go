package kpi

import (
	"fmt"
	"time"

	"ete-kpi/internal/model"
)

// maxTime stands in for an open upper date bound.
var maxTime = time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC)

// Filter is the caller-supplied report filter. Nil fields place no
// constraint on their dimension.
type Filter struct {
	LineID    *int
	MachineID *int
	ShiftID   *int
	StartDate *time.Time
	EndDate   *time.Time
}

// Validate rejects malformed filters before anything is loaded.
func (f Filter) Validate() error {
	for name, id := range map[string]*int{"line": f.LineID, "machine": f.MachineID, "shift": f.ShiftID} {
		if id != nil && *id <= 0 {
			return fmt.Errorf("%w: %s id must be positive", ErrInvalidFilter, name)
		}
	}
	if f.StartDate != nil && f.EndDate != nil && startOfDay(*f.StartDate).After(endOfDay(*f.EndDate)) {
		return fmt.Errorf("%w: start date %s is after end date %s", ErrInvalidFilter,
			f.StartDate.Format("2006-01-02"), f.EndDate.Format("2006-01-02"))
	}
	return nil
}

// HasDateFilter reports whether either date bound was given.
func (f Filter) HasDateFilter() bool {
	return f.StartDate != nil || f.EndDate != nil
}

// HasDimensions reports whether a line, machine or shift filter was given.
func (f Filter) HasDimensions() bool {
	return f.LineID != nil || f.MachineID != nil || f.ShiftID != nil
}

// Normalized truncates both date bounds to the start of their day, in their
// own location. Filters selecting the same window normalise to equal values.
func (f Filter) Normalized() Filter {
	if f.StartDate != nil {
		start := startOfDay(*f.StartDate)
		f.StartDate = &start
	}
	if f.EndDate != nil {
		end := startOfDay(*f.EndDate)
		f.EndDate = &end
	}
	return f
}

// Window normalises the date range to
// [start-of-day(start) or MIN, end-of-day(end) or MAX].
func (f Filter) Window() Window {
	if !f.HasDateFilter() {
		return Window{To: maxTime}
	}
	w := Window{To: maxTime, Bounded: true}
	if f.StartDate != nil {
		w.From = startOfDay(*f.StartDate)
	}
	if f.EndDate != nil {
		w.To = endOfDay(*f.EndDate)
	}
	return w
}

// Metadata echoes the filter.
func (f Filter) Metadata() FilterMetadata {
	return FilterMetadata{
		StartDate:     f.StartDate,
		EndDate:       f.EndDate,
		LineFilter:    f.LineID,
		MachineFilter: f.MachineID,
		ShiftFilter:   f.ShiftID,
		HasDateFilter: f.HasDateFilter(),
	}
}

// Window is an inclusive registration-date range.
type Window struct {
	From    time.Time
	To      time.Time
	Bounded bool
}

// Contains reports whether t lies inside the window, bounds included.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.From) && !t.After(w.To)
}

// Scope is a filter resolved for one request: the normalised window plus the
// hour ids of the requested shift. It is built once and passed to every
// calculator of the request.
type Scope struct {
	Filter Filter
	Window Window

	shiftHours IDSet
}

// NewScope resolves f. shiftHourIDs are the hours mapped to f.ShiftID and are
// ignored when no shift was requested; a shift with no hours matches nothing.
func NewScope(f Filter, shiftHourIDs []int) Scope {
	s := Scope{Filter: f, Window: f.Window()}
	if f.ShiftID != nil {
		s.shiftHours = NewIDSet(shiftHourIDs...)
	}
	return s
}

// Match is the composed predicate: every given dimension must hold.
func (s Scope) Match(p model.Production) bool {
	if !s.Window.Contains(p.RegistrationDate) {
		return false
	}
	if s.Filter.LineID != nil && p.LineID != *s.Filter.LineID {
		return false
	}
	if s.Filter.MachineID != nil && p.MachineID != *s.Filter.MachineID {
		return false
	}
	if s.Filter.ShiftID != nil && !s.shiftHours.Has(p.HourID) {
		return false
	}
	return true
}

// Select returns the events matching the scope, in input order.
func (s Scope) Select(events []model.Production) []model.Production {
	out := make([]model.Production, 0, len(events))
	for _, p := range events {
		if s.Match(p) {
			out = append(out, p)
		}
	}
	return out
}

// Widen drops every filter, the date window included.
func (s Scope) Widen() Scope {
	return NewScope(Filter{}, nil)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}
