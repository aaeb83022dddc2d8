package kpi

import (
	"sort"
	"strings"

	"ete-kpi/internal/model"
)

// RateKey identifies an expected rate: parent part number and line.
type RateKey struct {
	PartNumber string
	Line       int
}

func newRateKey(partNumber string, line int) RateKey {
	return RateKey{PartNumber: strings.ToUpper(strings.TrimSpace(partNumber)), Line: line}
}

// EfficiencyBucket is one calendar day of the efficiency series.
type EfficiencyBucket struct {
	Date          string  `json:"date"` // 2006-01-02
	TotalProduced int     `json:"totalProduced"`
	TotalExpected float64 `json:"totalExpected"`
	Efficiency    float64 `json:"efficiency"`
}

// EfficiencySummary ascending daily buckets plus the averaging note.
type EfficiencySummary struct {
	Summary         []EfficiencyBucket `json:"summary"`
	Message         string             `json:"message"`
	FallbackApplied bool               `json:"fallbackApplied"`
}

// ExpectedRates builds the rate lookup. A key's rate is the arithmetic mean
// of every positive PzHr registered for it; missing and non-positive rates
// are left out of the mean rather than counted as zero.
func ExpectedRates(rows []model.MasterEngineering) map[RateKey]float64 {
	type acc struct {
		sum float64
		n   int
	}
	accs := make(map[RateKey]*acc)
	for _, r := range rows {
		if r.PzHr == nil || *r.PzHr <= 0 {
			continue
		}
		k := newRateKey(r.ParentPartNumber, r.Line)
		a, ok := accs[k]
		if !ok {
			a = &acc{}
			accs[k] = a
		}
		a.sum += *r.PzHr
		a.n++
	}

	out := make(map[RateKey]float64, len(accs))
	for k, a := range accs {
		out[k] = a.sum / float64(a.n)
	}
	return out
}

// ComputeEfficiency groups events by calendar day.
//
//	per day: produced   = Σ pieceQuantity
//	         expected   = Σ expected rate of each event (1 when the sum is 0)
//	         efficiency = produced / expected
//
// Events are inner-joined to rates on (partNumber, line): an event without a
// reference rate belongs to no bucket. The day is the date of the event's
// Hour, or its registration date when the Hour carries none.
func ComputeEfficiency(events []model.Production, rates map[RateKey]float64, hours map[int]model.Hour) []EfficiencyBucket {
	type acc struct {
		produced int
		expected float64
	}
	days := make(map[string]*acc)

	for _, p := range events {
		rate, ok := rates[newRateKey(p.PartNumber, p.LineID)]
		if !ok {
			continue
		}
		day := eventDay(p, hours)
		a, ok := days[day]
		if !ok {
			a = &acc{}
			days[day] = a
		}
		a.produced += p.PieceQuantity
		a.expected += rate
	}

	out := make([]EfficiencyBucket, 0, len(days))
	for day, a := range days {
		expected := a.expected
		if expected == 0 {
			expected = 1
		}
		out = append(out, EfficiencyBucket{
			Date:          day,
			TotalProduced: a.produced,
			TotalExpected: expected,
			Efficiency:    float64(a.produced) / expected,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

func eventDay(p model.Production, hours map[int]model.Hour) string {
	if h, ok := hours[p.HourID]; ok && h.Date != nil {
		return h.Date.Format("2006-01-02")
	}
	return p.RegistrationDate.Format("2006-01-02")
}

// EfficiencyWithFallback runs ComputeEfficiency over the scope's events. When
// that yields no day and a line, machine or shift filter was given, it reruns
// over allEvents with every filter removed, dates included: reference rates
// are sparse per dimension and a broader series is preferred over an empty
// one. allEvents must hold the production of every date; hours and rateRows
// must cover it. FallbackApplied is set only when the broader run found data.
func EfficiencyWithFallback(s Scope, events, allEvents []model.Production, rateRows []model.MasterEngineering, hours map[int]model.Hour) EfficiencySummary {
	rates := ExpectedRates(rateRows)

	summary := EfficiencySummary{
		Summary: ComputeEfficiency(s.Select(events), rates, hours),
		Message: EfficiencyNote,
	}
	if len(summary.Summary) == 0 && s.Filter.HasDimensions() {
		if wider := ComputeEfficiency(s.Widen().Select(allEvents), rates, hours); len(wider) > 0 {
			summary.Summary = wider
			summary.FallbackApplied = true
		}
	}
	return summary
}

// NeedsEfficiencyFallback reports whether the efficiency series of s over d
// comes out empty and would be widened.
func NeedsEfficiencyFallback(s Scope, d *Dataset) bool {
	if !s.Filter.HasDimensions() {
		return false
	}
	return len(ComputeEfficiency(s.Select(d.Production), ExpectedRates(d.Rates), d.Hours)) == 0
}
