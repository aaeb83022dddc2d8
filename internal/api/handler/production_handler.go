package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"ete-kpi/internal/dto"
	"ete-kpi/internal/service"
	"ete-kpi/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ProductionHandler production registration, listing and export
type ProductionHandler struct {
	productionSvc service.ProductionService
}

// NewProductionHandler creates a ProductionHandler
func NewProductionHandler(productionSvc service.ProductionService) *ProductionHandler {
	return &ProductionHandler{productionSvc: productionSvc}
}

// Register POST /api/v1/production
func (h *ProductionHandler) Register(c *gin.Context) {
	var req dto.RegisterProductionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.productionSvc.Register(c.Request.Context(), &req)
	if err != nil {
		h.handleProductionError(c, err)
		return
	}

	response.Created(c, result)
}

// List GET /api/v1/production
func (h *ProductionHandler) List(c *gin.Context) {
	var req dto.ProductionListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	rows, err := h.productionSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleProductionError(c, err)
		return
	}

	response.OK(c, gin.H{"list": rows})
}

// Export GET /api/v1/production/export
func (h *ProductionHandler) Export(c *gin.Context) {
	buf, filename, err := h.productionSvc.Export(c.Request.Context())
	if err != nil {
		h.handleProductionError(c, err)
		return
	}

	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// handleProductionError maps production errors to responses
func (h *ProductionHandler) handleProductionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProductionPartNumberEmpty):
		response.BadRequest(c, 21001, "part number must not be empty")
	case errors.Is(err, service.ErrProductionInvalidDeadTime):
		response.BadRequest(c, 21002, "invalid dead-time code or reason")
	default:
		_ = c.Error(err)
		response.InternalError(c)
	}
}
