package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stockbook/internal/core/appctx"
	"stockbook/internal/domain/sales"
	"stockbook/internal/infrastructure/http/v1/dto"
)

// SaleHandler handles sale ledger endpoints.
type SaleHandler struct {
	*BaseHandler
	service *sales.Service
}

// NewSaleHandler creates a new sale handler.
func NewSaleHandler(base *BaseHandler, service *sales.Service) *SaleHandler {
	return &SaleHandler{
		BaseHandler: base,
		service:     service,
	}
}

// RegisterRoutes wires sale endpoints.
func (h *SaleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.RecordSale)
}

// RecordSale handles POST /sales
func (h *SaleHandler) RecordSale(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.RecordSaleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	sale, err := h.service.RecordSale(ctx, appctx.GetOwnerID(ctx), req.ToRecordInput())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, sale)
}
