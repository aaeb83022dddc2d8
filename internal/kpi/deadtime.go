package kpi

import (
	"sort"
	"strings"

	"ete-kpi/internal/model"
)

// DeadTimeBreakdown dead-time minutes per reason, largest first. Labels and
// Data are parallel slices.
type DeadTimeBreakdown struct {
	Labels         []string       `json:"labels"`
	Data           []int          `json:"data"`
	TotalMinutes   int            `json:"totalMinutes"`
	AverageMinutes float64        `json:"averageMinutes"`
	Metadata       FilterMetadata `json:"metadata"`
}

// ComputeDeadTimeBreakdown groups the dead time referenced by events by
// reason name.
//
//	per reason:     minutes = Σ minutes of distinct referenced dead-time events
//	totalMinutes   = Σ minutes
//	averageMinutes = totalMinutes / 6
//
// The divisor is the fixed six-day reporting window whatever range was
// requested. Reasons that cannot be resolved, or have no name, are grouped
// under UnresolvedReasonLabel. Ties are ordered by label.
func ComputeDeadTimeBreakdown(events []model.Production, deadTimes map[int]model.DeadTime, reasons []model.Reason) DeadTimeBreakdown {
	names := make(map[int]string, len(reasons))
	for _, r := range reasons {
		names[r.ID] = r.Name
	}

	minutes := make(map[string]int)
	for id := range DeadTimeIDs(events) {
		dt, ok := deadTimes[id]
		if !ok {
			continue
		}
		label := strings.TrimSpace(names[dt.ReasonID])
		if label == "" {
			label = UnresolvedReasonLabel
		}
		minutes[label] += dt.Minutes
	}

	type row struct {
		label   string
		minutes int
	}
	rows := make([]row, 0, len(minutes))
	for label, m := range minutes {
		rows = append(rows, row{label, m})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].minutes != rows[j].minutes {
			return rows[i].minutes > rows[j].minutes
		}
		return rows[i].label < rows[j].label
	})

	out := DeadTimeBreakdown{
		Labels: make([]string, 0, len(rows)),
		Data:   make([]int, 0, len(rows)),
	}
	for _, r := range rows {
		out.Labels = append(out.Labels, r.label)
		out.Data = append(out.Data, r.minutes)
		out.TotalMinutes += r.minutes
	}
	out.AverageMinutes = float64(out.TotalMinutes) / BreakdownWindowDays
	return out
}
