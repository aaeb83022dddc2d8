package kpi

// Engine runs the calculators for a resolved Scope over a loaded Dataset.
// It holds configuration only and is safe for concurrent use.
type Engine struct {
	marker string
}

// NewEngine returns an Engine excluding reasons that match marker.
func NewEngine(marker string) *Engine {
	return &Engine{marker: marker}
}

// Dashboard is every KPI computed over one scope.
type Dashboard struct {
	Quality      QualityResult      `json:"quality"`
	Availability AvailabilityResult `json:"availability"`
	Efficiency   EfficiencySummary  `json:"efficiency"`
	DeadTime     DeadTimeBreakdown  `json:"deadTime"`
	KeyMetrics   KeyMetricsResult   `json:"keyMetrics"`
	Metadata     FilterMetadata     `json:"metadata"`
}

func (e *Engine) Quality(s Scope, d *Dataset) QualityResult {
	return ComputeQuality(s.Select(d.Production))
}

func (e *Engine) Availability(s Scope, d *Dataset) AvailabilityResult {
	return ComputeAvailability(s.Select(d.Production), d.DeadTimes, d.Hours, ExclusionSet(d.Reasons, e.marker), e.marker)
}

func (e *Engine) Efficiency(s Scope, d *Dataset) EfficiencySummary {
	all := d.AllProduction
	if all == nil {
		all = d.Production
	}
	return EfficiencyWithFallback(s, d.Production, all, d.Rates, d.Hours)
}

func (e *Engine) DeadTimeBreakdown(s Scope, d *Dataset) DeadTimeBreakdown {
	res := ComputeDeadTimeBreakdown(s.Select(d.Production), d.DeadTimes, d.Reasons)
	res.Metadata = s.Filter.Metadata()
	return res
}

func (e *Engine) KeyMetrics(s Scope, d *Dataset) KeyMetricsResult {
	res := ComputeKeyMetrics(s.Select(d.Production), d.Production, d.DeadTimes, d.WindowDeadTimes, ExclusionSet(d.Reasons, e.marker))
	res.Metadata = s.Filter.Metadata()
	return res
}

// Dashboard computes all five reports from the same scope and dataset.
func (e *Engine) Dashboard(s Scope, d *Dataset) Dashboard {
	return Dashboard{
		Quality:      e.Quality(s, d),
		Availability: e.Availability(s, d),
		Efficiency:   e.Efficiency(s, d),
		DeadTime:     e.DeadTimeBreakdown(s, d),
		KeyMetrics:   e.KeyMetrics(s, d),
		Metadata:     s.Filter.Metadata(),
	}
}
