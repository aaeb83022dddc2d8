package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"ete-kpi/internal/cache"
	"ete-kpi/internal/kpi"
	"ete-kpi/internal/model"
	"ete-kpi/internal/observability"
	"ete-kpi/internal/repository"
)

// ── KPI module errors ──

// ErrInvalidFilter malformed date range or unknown line, machine or shift.
var ErrInvalidFilter = kpi.ErrInvalidFilter

// Report names, used for cache keys and metric labels.
const (
	ReportQuality      = "quality"
	ReportAvailability = "availability"
	ReportEfficiency   = "efficiency"
	ReportDeadTime     = "dead-time"
	ReportKeyMetrics   = "key-metrics"
	ReportDashboard    = "dashboard"
)

// KPIService computes the production KPIs for a filter.
type KPIService interface {
	Quality(ctx context.Context, f kpi.Filter) (*kpi.QualityResult, error)
	Availability(ctx context.Context, f kpi.Filter) (*kpi.AvailabilityResult, error)
	Efficiency(ctx context.Context, f kpi.Filter) (*kpi.EfficiencySummary, error)
	DeadTimeBreakdown(ctx context.Context, f kpi.Filter) (*kpi.DeadTimeBreakdown, error)
	KeyMetrics(ctx context.Context, f kpi.Filter) (*kpi.KeyMetricsResult, error)
	// Dashboard computes all five reports over one scope and one load.
	Dashboard(ctx context.Context, f kpi.Filter) (*kpi.Dashboard, error)
}

type kpiService struct {
	repo    *repository.Repository
	engine  *kpi.Engine
	cache   cache.Store
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewKPIService creates a KPIService. store and metrics may be nil.
func NewKPIService(repo *repository.Repository, engine *kpi.Engine, store cache.Store, metrics *observability.Metrics, logger *zap.Logger) KPIService {
	if store == nil {
		store = cache.Noop{}
	}
	return &kpiService{repo: repo, engine: engine, cache: store, metrics: metrics, logger: logger}
}

// needs selects the record sets a report loads besides production.
type needs uint8

const (
	needDeadTimes needs = 1 << iota
	needWindowDeadTimes
	needReasons
	needHours
	needRates

	needAll = needDeadTimes | needWindowDeadTimes | needReasons | needHours | needRates
)

func (s *kpiService) Quality(ctx context.Context, f kpi.Filter) (*kpi.QualityResult, error) {
	return report(ctx, s, ReportQuality, f, 0, s.engine.Quality)
}

func (s *kpiService) Availability(ctx context.Context, f kpi.Filter) (*kpi.AvailabilityResult, error) {
	return report(ctx, s, ReportAvailability, f, needDeadTimes|needReasons|needHours, s.engine.Availability)
}

func (s *kpiService) Efficiency(ctx context.Context, f kpi.Filter) (*kpi.EfficiencySummary, error) {
	return report(ctx, s, ReportEfficiency, f, needHours|needRates, func(sc kpi.Scope, d *kpi.Dataset) kpi.EfficiencySummary {
		res := s.engine.Efficiency(sc, d)
		if res.FallbackApplied {
			s.metrics.EfficiencyFallback()
		}
		return res
	})
}

func (s *kpiService) DeadTimeBreakdown(ctx context.Context, f kpi.Filter) (*kpi.DeadTimeBreakdown, error) {
	return report(ctx, s, ReportDeadTime, f, needDeadTimes|needReasons, s.engine.DeadTimeBreakdown)
}

func (s *kpiService) KeyMetrics(ctx context.Context, f kpi.Filter) (*kpi.KeyMetricsResult, error) {
	return report(ctx, s, ReportKeyMetrics, f, needDeadTimes|needWindowDeadTimes|needReasons, s.engine.KeyMetrics)
}

func (s *kpiService) Dashboard(ctx context.Context, f kpi.Filter) (*kpi.Dashboard, error) {
	return report(ctx, s, ReportDashboard, f, needAll, func(sc kpi.Scope, d *kpi.Dataset) kpi.Dashboard {
		res := s.engine.Dashboard(sc, d)
		if res.Efficiency.FallbackApplied {
			s.metrics.EfficiencyFallback()
		}
		return res
	})
}

// ═══════════════════════════════════════════════════════════
// report: shared request flow
// ═══════════════════════════════════════════════════════════
//
//  1. validate the filter, truncate its dates to whole days and check that
//     every given dimension exists
//  2. serve from cache when possible
//  3. resolve the shift once into the scope
//  4. load the date-window dataset once, plus every date when the
//     efficiency fallback needs it
//  5. stop if the request was cancelled, otherwise compute and cache

func report[T any](ctx context.Context, s *kpiService, name string, f kpi.Filter, n needs, compute func(kpi.Scope, *kpi.Dataset) T) (res *T, err error) {
	start := time.Now()
	defer func() { s.metrics.ObserveReport(name, time.Since(start), err) }()

	if err := f.Validate(); err != nil {
		return nil, err
	}
	f = f.Normalized()
	if err := s.checkDimensions(ctx, f); err != nil {
		return nil, err
	}

	key := cache.ReportKey(name, f)
	var cached T
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	scope, err := s.resolveScope(ctx, f)
	if err != nil {
		return nil, err
	}
	d, err := s.load(ctx, scope, n)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := compute(scope, d)
	s.cache.Set(ctx, key, out)
	return &out, nil
}

func (s *kpiService) checkDimensions(ctx context.Context, f kpi.Filter) error {
	checks := []struct {
		name   string
		id     *int
		exists func(context.Context, int) (bool, error)
	}{
		{"line", f.LineID, s.repo.Catalog.LineExists},
		{"machine", f.MachineID, s.repo.Catalog.MachineExists},
		{"shift", f.ShiftID, s.repo.Catalog.WorkShiftExists},
	}
	for _, c := range checks {
		if c.id == nil {
			continue
		}
		ok, err := c.exists(ctx, *c.id)
		if err != nil {
			s.logger.Error("dimension lookup failed", zap.String("dimension", c.name), zap.Error(err))
			return err
		}
		if !ok {
			return fmt.Errorf("%w: %s %d does not exist", ErrInvalidFilter, c.name, *c.id)
		}
	}
	return nil
}

func (s *kpiService) resolveScope(ctx context.Context, f kpi.Filter) (kpi.Scope, error) {
	if f.ShiftID == nil {
		return kpi.NewScope(f, nil), nil
	}
	hourIDs, err := s.repo.Catalog.HourIDsByShift(ctx, *f.ShiftID)
	if err != nil {
		s.logger.Error("resolve shift hours failed", zap.Int("shift_id", *f.ShiftID), zap.Error(err))
		return kpi.Scope{}, err
	}
	return kpi.NewScope(f, hourIDs), nil
}

// load reads the production of the scope's date window, without dimension
// filters, plus the record sets selected by n.
func (s *kpiService) load(ctx context.Context, scope kpi.Scope, n needs) (*kpi.Dataset, error) {
	production, err := s.repo.Production.ListByWindow(ctx, scope.Window)
	if err != nil {
		s.logger.Error("load production failed", zap.Error(err))
		return nil, err
	}
	d := &kpi.Dataset{Production: production, DeadTimes: map[int]model.DeadTime{}, Hours: map[int]model.Hour{}}

	if n&needDeadTimes != 0 {
		ids := kpi.DeadTimeIDs(scope.Select(production)).Sorted()
		if len(ids) > 0 {
			dts, err := s.repo.DeadTime.ListByIDs(ctx, ids)
			if err != nil {
				s.logger.Error("load dead times failed", zap.Error(err))
				return nil, err
			}
			for _, dt := range dts {
				d.DeadTimes[dt.ID] = dt
			}
		}
	}

	if n&needWindowDeadTimes != 0 {
		if d.WindowDeadTimes, err = s.repo.DeadTime.ListByWindow(ctx, scope.Window); err != nil {
			s.logger.Error("load window dead times failed", zap.Error(err))
			return nil, err
		}
	}

	if n&needReasons != 0 {
		if d.Reasons, err = s.repo.Catalog.ListReasons(ctx); err != nil {
			s.logger.Error("load reasons failed", zap.Error(err))
			return nil, err
		}
	}

	if n&needHours != 0 && len(production) > 0 {
		hours, err := s.repo.Catalog.ListHoursByIDs(ctx, kpi.HourIDs(production).Sorted())
		if err != nil {
			s.logger.Error("load hours failed", zap.Error(err))
			return nil, err
		}
		for _, h := range hours {
			d.Hours[h.ID] = h
		}
	}

	if n&needRates != 0 && len(production) > 0 {
		lines := make(kpi.IDSet)
		for _, p := range production {
			lines[p.LineID] = struct{}{}
		}
		if d.Rates, err = s.repo.MasterRate.ListByLines(ctx, lines.Sorted()); err != nil {
			s.logger.Error("load reference rates failed", zap.Error(err))
			return nil, err
		}
	}

	if n&needRates != 0 && kpi.NeedsEfficiencyFallback(scope, d) {
		if err := s.loadFallback(ctx, scope, d); err != nil {
			return nil, err
		}
	}

	return d, nil
}

// loadFallback fills d.AllProduction for the efficiency fallback, which
// ignores the date window. Hours and rates are extended to cover it.
func (s *kpiService) loadFallback(ctx context.Context, scope kpi.Scope, d *kpi.Dataset) error {
	if !scope.Window.Bounded {
		d.AllProduction = d.Production
		return nil
	}

	all, err := s.repo.Production.ListByWindow(ctx, kpi.Filter{}.Window())
	if err != nil {
		s.logger.Error("load production for efficiency fallback failed", zap.Error(err))
		return err
	}
	d.AllProduction = all

	missing := make(kpi.IDSet)
	for id := range kpi.HourIDs(all) {
		if _, ok := d.Hours[id]; !ok {
			missing[id] = struct{}{}
		}
	}
	if len(missing) > 0 {
		hours, err := s.repo.Catalog.ListHoursByIDs(ctx, missing.Sorted())
		if err != nil {
			s.logger.Error("load hours for efficiency fallback failed", zap.Error(err))
			return err
		}
		for _, h := range hours {
			d.Hours[h.ID] = h
		}
	}

	// every line
	if d.Rates, err = s.repo.MasterRate.ListByLines(ctx, nil); err != nil {
		s.logger.Error("load reference rates for efficiency fallback failed", zap.Error(err))
		return err
	}

	s.logger.Debug("efficiency fallback loaded every date", zap.Int("events", len(all)))
	return nil
}
