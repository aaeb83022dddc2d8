package service

import (
	"go.uber.org/zap"

	"ete-kpi/config"
	"ete-kpi/internal/cache"
	"ete-kpi/internal/kpi"
	"ete-kpi/internal/observability"
	"ete-kpi/internal/repository"
)

// Service aggregates every service.
type Service struct {
	KPI        KPIService
	Production ProductionService
	Catalog    CatalogService
}

// NewService builds the aggregate. store and metrics may be nil.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	store cache.Store,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *Service {
	engine := kpi.NewEngine(cfg.Report.ExclusionMarker)
	return &Service{
		KPI:        NewKPIService(repo, engine, store, metrics, logger),
		Production: NewProductionService(repo, store, logger),
		Catalog:    NewCatalogService(repo, logger),
	}
}
