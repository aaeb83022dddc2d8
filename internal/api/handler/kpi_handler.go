package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ete-kpi/internal/dto"
	"ete-kpi/internal/kpi"
	"ete-kpi/internal/service"
	"ete-kpi/pkg/response"
)

// KPIHandler KPI report endpoints
type KPIHandler struct {
	kpiSvc service.KPIService
}

// NewKPIHandler creates a KPIHandler
func NewKPIHandler(kpiSvc service.KPIService) *KPIHandler {
	return &KPIHandler{kpiSvc: kpiSvc}
}

// Quality GET /api/v1/kpi/quality
func (h *KPIHandler) Quality(c *gin.Context) {
	h.serve(c, func(ctx context.Context, f kpi.Filter) (interface{}, error) {
		return h.kpiSvc.Quality(ctx, f)
	})
}

// Availability GET /api/v1/kpi/availability
func (h *KPIHandler) Availability(c *gin.Context) {
	h.serve(c, func(ctx context.Context, f kpi.Filter) (interface{}, error) {
		return h.kpiSvc.Availability(ctx, f)
	})
}

// Efficiency GET /api/v1/kpi/efficiency
func (h *KPIHandler) Efficiency(c *gin.Context) {
	h.serve(c, func(ctx context.Context, f kpi.Filter) (interface{}, error) {
		return h.kpiSvc.Efficiency(ctx, f)
	})
}

// DeadTimeBreakdown GET /api/v1/kpi/dead-time-by-reason
func (h *KPIHandler) DeadTimeBreakdown(c *gin.Context) {
	h.serve(c, func(ctx context.Context, f kpi.Filter) (interface{}, error) {
		return h.kpiSvc.DeadTimeBreakdown(ctx, f)
	})
}

// KeyMetrics GET /api/v1/kpi/key-metrics
func (h *KPIHandler) KeyMetrics(c *gin.Context) {
	h.serve(c, func(ctx context.Context, f kpi.Filter) (interface{}, error) {
		return h.kpiSvc.KeyMetrics(ctx, f)
	})
}

// Dashboard GET /api/v1/kpi/dashboard
func (h *KPIHandler) Dashboard(c *gin.Context) {
	h.serve(c, func(ctx context.Context, f kpi.Filter) (interface{}, error) {
		return h.kpiSvc.Dashboard(ctx, f)
	})
}

func (h *KPIHandler) serve(c *gin.Context, run func(context.Context, kpi.Filter) (interface{}, error)) {
	var req dto.KPIFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}
	f, err := req.ToFilter()
	if err != nil {
		response.BadRequest(c, 10001, err.Error())
		return
	}

	result, err := run(c.Request.Context(), f)
	if err != nil {
		h.handleKPIError(c, err)
		return
	}

	response.OK(c, result)
}

// handleKPIError maps KPI errors to responses
func (h *KPIHandler) handleKPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidFilter):
		response.ErrorWithDetails(c, http.StatusBadRequest, 20001, "invalid filter", err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		response.Error(c, http.StatusServiceUnavailable, 20002, "request cancelled")
	default:
		_ = c.Error(err)
		response.InternalError(c)
	}
}
