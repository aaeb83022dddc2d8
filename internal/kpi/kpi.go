// Package kpi computes the production-line KPIs (quality, availability,
// efficiency, dead time by reason and key metrics) from already-loaded
// production and dead-time records.
//
// Every function in this package is a pure transformation over its arguments:
// no I/O, no shared state. A request builds one Scope, loads one Dataset and
// hands both to the Engine; all grouping maps live for the duration of a call.
package kpi

import (
	"errors"
	"math"
	"sort"
	"time"

	"ete-kpi/internal/model"
)

const (
	// MinutesPerHour is the planned time of one Hour slot, regardless of how
	// many production events were registered in it.
	MinutesPerHour = 60

	// BreakdownWindowDays divides total dead time into the daily average of the
	// dead-time breakdown. It is fixed and does not follow the requested range.
	BreakdownWindowDays = 6

	// UnresolvedReasonLabel groups dead time whose reason is missing or unnamed.
	UnresolvedReasonLabel = "Sin razón"

	// DefaultExclusionMarker identifies "no program scheduled" reasons.
	DefaultExclusionMarker = "FALTA DE PROGRAMA"

	// EfficiencyNote is returned with every efficiency summary.
	EfficiencyNote = "Note: the average pzHr is used when several reference rates exist for the same partNumber/line combination"
)

// ErrInvalidFilter is returned for malformed date ranges or unknown dimension ids.
var ErrInvalidFilter = errors.New("invalid filter")

// Dataset is the record set one request works on. Production holds every
// event registered inside the request's date window, with no dimensional
// filter applied; calculators narrow it through a Scope.
type Dataset struct {
	Production []model.Production
	// AllProduction is the production of every date, loaded only when the
	// efficiency fallback runs. Nil means Production already covers every date.
	AllProduction []model.Production
	// DeadTimes by id, at least those referenced by in-scope production.
	DeadTimes map[int]model.DeadTime
	// WindowDeadTimes are dead-time events registered inside the date window.
	WindowDeadTimes []model.DeadTime
	Hours           map[int]model.Hour
	Reasons         []model.Reason
	Rates           []model.MasterEngineering
}

// FilterMetadata echoes the request filter back to the caller.
type FilterMetadata struct {
	StartDate     *time.Time `json:"startDate"`
	EndDate       *time.Time `json:"endDate"`
	LineFilter    *int       `json:"lineFilter"`
	MachineFilter *int       `json:"machineFilter"`
	ShiftFilter   *int       `json:"shiftFilter"`
	HasDateFilter bool       `json:"hasDateFilter"`
}

// IDSet is a set of record ids.
type IDSet map[int]struct{}

// NewIDSet builds a set from ids.
func NewIDSet(ids ...int) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is in the set. A nil set contains nothing.
func (s IDSet) Has(id int) bool {
	_, ok := s[id]
	return ok
}

// Sorted returns the ids in ascending order.
func (s IDSet) Sorted() []int {
	out := make([]int, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// DeadTimeIDs returns the distinct dead-time ids referenced by events.
func DeadTimeIDs(events []model.Production) IDSet {
	ids := make(IDSet)
	for _, p := range events {
		if p.DeadTimeID != nil {
			ids[*p.DeadTimeID] = struct{}{}
		}
	}
	return ids
}

// HourIDs returns the distinct hour ids referenced by events.
func HourIDs(events []model.Production) IDSet {
	ids := make(IDSet)
	for _, p := range events {
		ids[p.HourID] = struct{}{}
	}
	return ids
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
