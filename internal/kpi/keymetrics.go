package kpi

import "ete-kpi/internal/model"

// KeyMetricsResult period dead time and scrap against the date-range average.
// Positive deltas are worse than average.
type KeyMetricsResult struct {
	DeadTime      int            `json:"deadTime"`
	DeadTimeVsAvg float64        `json:"deadTimeVsAvg"`
	Scrap         int            `json:"scrap"`
	ScrapVsAvg    float64        `json:"scrapVsAvg"`
	Metadata      FilterMetadata `json:"metadata"`
}

// ComputeKeyMetrics compares the filtered period with its baseline.
//
//	deadTime      = Σ minutes of distinct dead time referenced by inScope, reason ∉ excluded
//	scrap         = Σ scrap of inScope
//	deadTimeVsAvg = deadTime − mean(minutes of windowDeadTimes, reason ∉ excluded)
//	scrapVsAvg    = scrap − mean(scrap of baseline)
//
// baseline and windowDeadTimes are scoped by the date range only. When inScope
// references no dead time at all, both deltas are 0 and the averages are
// never computed. Means over empty sets are 0.
func ComputeKeyMetrics(inScope, baseline []model.Production, deadTimes map[int]model.DeadTime, windowDeadTimes []model.DeadTime, excluded IDSet) KeyMetricsResult {
	var res KeyMetricsResult
	for _, p := range inScope {
		res.Scrap += p.Scrap
	}

	ids := DeadTimeIDs(inScope)
	if len(ids) == 0 {
		return res
	}

	for id := range ids {
		dt, ok := deadTimes[id]
		if !ok || excluded.Has(dt.ReasonID) {
			continue
		}
		res.DeadTime += dt.Minutes
	}

	var dtSum, dtN int
	for _, dt := range windowDeadTimes {
		if excluded.Has(dt.ReasonID) {
			continue
		}
		dtSum += dt.Minutes
		dtN++
	}
	var scrapSum int
	for _, p := range baseline {
		scrapSum += p.Scrap
	}

	res.DeadTimeVsAvg = float64(res.DeadTime) - mean(dtSum, dtN)
	res.ScrapVsAvg = float64(res.Scrap) - mean(scrapSum, len(baseline))
	return res
}

func mean(sum, n int) float64 {
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}
