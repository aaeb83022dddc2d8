package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"ete-kpi/internal/service"
	"ete-kpi/pkg/response"
)

// CatalogHandler reference data endpoints
type CatalogHandler struct {
	catalogSvc service.CatalogService
}

// NewCatalogHandler creates a CatalogHandler
func NewCatalogHandler(catalogSvc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogSvc: catalogSvc}
}

// ListHours GET /api/v1/catalog/hours
func (h *CatalogHandler) ListHours(c *gin.Context) {
	items, err := h.catalogSvc.Hours(c.Request.Context())
	h.respondList(c, items, err)
}

// ListLines GET /api/v1/catalog/lines
func (h *CatalogHandler) ListLines(c *gin.Context) {
	items, err := h.catalogSvc.Lines(c.Request.Context())
	h.respondList(c, items, err)
}

// ListCodes GET /api/v1/catalog/codes
func (h *CatalogHandler) ListCodes(c *gin.Context) {
	items, err := h.catalogSvc.Codes(c.Request.Context())
	h.respondList(c, items, err)
}

// ListWorkShifts GET /api/v1/catalog/work-shifts
func (h *CatalogHandler) ListWorkShifts(c *gin.Context) {
	items, err := h.catalogSvc.WorkShifts(c.Request.Context())
	h.respondList(c, items, err)
}

// ListMachines GET /api/v1/catalog/machines
func (h *CatalogHandler) ListMachines(c *gin.Context) {
	items, err := h.catalogSvc.Machines(c.Request.Context())
	h.respondList(c, items, err)
}

// ListProcessesByLine GET /api/v1/catalog/lines/:id/processes
func (h *CatalogHandler) ListProcessesByLine(c *gin.Context) {
	id, ok := mustParamID(c, "id")
	if !ok {
		return
	}
	items, err := h.catalogSvc.ProcessesByLine(c.Request.Context(), id)
	h.respondList(c, items, err)
}

// ListMachinesByLine GET /api/v1/catalog/lines/:id/machines
func (h *CatalogHandler) ListMachinesByLine(c *gin.Context) {
	id, ok := mustParamID(c, "id")
	if !ok {
		return
	}
	items, err := h.catalogSvc.MachinesByLine(c.Request.Context(), id)
	h.respondList(c, items, err)
}

// ListMachinesByProcess GET /api/v1/catalog/processes/:id/machines
func (h *CatalogHandler) ListMachinesByProcess(c *gin.Context) {
	id, ok := mustParamID(c, "id")
	if !ok {
		return
	}
	items, err := h.catalogSvc.MachinesByProcess(c.Request.Context(), id)
	h.respondList(c, items, err)
}

// ListReasonsByCode GET /api/v1/catalog/codes/:id/reasons
func (h *CatalogHandler) ListReasonsByCode(c *gin.Context) {
	id, ok := mustParamID(c, "id")
	if !ok {
		return
	}
	items, err := h.catalogSvc.ReasonsByCode(c.Request.Context(), id)
	h.respondList(c, items, err)
}

// ValidatePartNumber GET /api/v1/catalog/part-numbers/:partNumber/validate
func (h *CatalogHandler) ValidatePartNumber(c *gin.Context) {
	result, err := h.catalogSvc.ValidatePartNumber(c.Request.Context(), c.Param("partNumber"))
	if err != nil {
		h.handleCatalogError(c, err)
		return
	}
	response.OK(c, result)
}

func (h *CatalogHandler) respondList(c *gin.Context, items interface{}, err error) {
	if err != nil {
		h.handleCatalogError(c, err)
		return
	}
	response.OK(c, gin.H{"list": items})
}

// handleCatalogError maps catalog errors to responses
func (h *CatalogHandler) handleCatalogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProductionPartNumberEmpty):
		response.BadRequest(c, 21001, "part number must not be empty")
	default:
		_ = c.Error(err)
		response.InternalError(c)
	}
}
