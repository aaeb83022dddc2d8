package kpi

import (
	"strings"

	"ete-kpi/internal/model"
)

// AvailabilityResult planned versus worked minutes.
type AvailabilityResult struct {
	TotalTime     int                     `json:"totalTime"`
	DeadTime      int                     `json:"deadTime"`
	OperatingTime int                     `json:"operatingTime"`
	Percentage    float64                 `json:"percentage"`
	Debug         AvailabilityDiagnostics `json:"debug"`
}

// AvailabilityDiagnostics is informational output; none of it feeds the percentage.
type AvailabilityDiagnostics struct {
	TotalRecords         int    `json:"totalRecords"`
	PlannedSlots         int    `json:"plannedSlots"`
	TotalDeadTimeRaw     int    `json:"totalDeadTimeRaw"`
	DeadTimeClamped      bool   `json:"deadTimeClamped"`
	ExcludedReasonName   string `json:"excludedReasonName"`
	ExcludedReasonIDs    []int  `json:"excludedReasonIds"`
	TotalExcludedMinutes int    `json:"totalExcludedMinutes"`
	TotalExcludedRecords int    `json:"totalExcludedRecords"`
}

// ExclusionSet returns the ids of reasons whose name contains marker,
// compared case-insensitively. An empty marker excludes nothing.
func ExclusionSet(reasons []model.Reason, marker string) IDSet {
	set := make(IDSet)
	needle := strings.ToLower(strings.TrimSpace(marker))
	if needle == "" {
		return set
	}
	for _, r := range reasons {
		if strings.Contains(strings.ToLower(r.Name), needle) {
			set[r.ID] = struct{}{}
		}
	}
	return set
}

// plannedSlot is one machine-hour on one calendar day. An Hour is a
// time-of-day catalog row, so the same hour id recurs every day.
type plannedSlot struct {
	lineID, machineID, hourID int
	day                       string
}

// ComputeAvailability compares dead time with planned time.
//
//	plannedMinutes = |distinct (line, machine, hour, day)| · 60
//	deadTime       = min(Σ minutes of linked dead time whose reason ∉ excluded, plannedMinutes)
//	percentage     = round2((plannedMinutes − deadTime) · 100 / plannedMinutes), 0 when nothing is planned
//
// Several events registered for the same machine in the same hour of the
// same day share one 60-minute slot. The day is resolved as in
// ComputeEfficiency: the Hour's date, else the registration date. Dead time
// that overflows the planned minutes (overlapping entries for one hour) is
// clamped so worked time never goes negative.
func ComputeAvailability(events []model.Production, deadTimes map[int]model.DeadTime, hours map[int]model.Hour, excluded IDSet, marker string) AvailabilityResult {
	slots := make(map[plannedSlot]struct{}, len(events))
	var rawDead, excludedMinutes, excludedRecords int

	for _, p := range events {
		slots[plannedSlot{p.LineID, p.MachineID, p.HourID, eventDay(p, hours)}] = struct{}{}

		if p.DeadTimeID == nil {
			continue
		}
		dt, ok := deadTimes[*p.DeadTimeID]
		if !ok {
			continue
		}
		if excluded.Has(dt.ReasonID) {
			excludedMinutes += dt.Minutes
			excludedRecords++
			continue
		}
		rawDead += dt.Minutes
	}

	planned := len(slots) * MinutesPerHour
	dead := rawDead
	if dead > planned {
		dead = planned
	}
	if dead < 0 {
		dead = 0
	}
	worked := planned - dead

	res := AvailabilityResult{
		TotalTime:     planned,
		DeadTime:      dead,
		OperatingTime: worked,
		Debug: AvailabilityDiagnostics{
			TotalRecords:         len(events),
			PlannedSlots:         len(slots),
			TotalDeadTimeRaw:     rawDead,
			DeadTimeClamped:      rawDead != dead,
			ExcludedReasonName:   marker,
			ExcludedReasonIDs:    excluded.Sorted(),
			TotalExcludedMinutes: excludedMinutes,
			TotalExcludedRecords: excludedRecords,
		},
	}
	if planned > 0 {
		res.Percentage = round2(float64(worked) * 100 / float64(planned))
	}
	return res
}
