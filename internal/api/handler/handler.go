package handler

import "ete-kpi/internal/service"

// Handler aggregates every HTTP handler.
type Handler struct {
	KPI        *KPIHandler
	Catalog    *CatalogHandler
	Production *ProductionHandler
}

// NewHandler builds the aggregate.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		KPI:        NewKPIHandler(svc.KPI),
		Catalog:    NewCatalogHandler(svc.Catalog),
		Production: NewProductionHandler(svc.Production),
	}
}
