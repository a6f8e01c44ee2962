package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stockbook/internal/core/appctx"
	"stockbook/internal/domain/debts"
	"stockbook/internal/infrastructure/http/v1/dto"
)

// DebtHandler handles debt ledger endpoints.
type DebtHandler struct {
	*BaseHandler
	service *debts.Service
}

// NewDebtHandler creates a new debt handler.
func NewDebtHandler(base *BaseHandler, service *debts.Service) *DebtHandler {
	return &DebtHandler{
		BaseHandler: base,
		service:     service,
	}
}

// RegisterRoutes wires debt endpoints.
func (h *DebtHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.AddEntry)
	rg.GET("", h.DuesSummary)
	rg.GET("/:number", h.CustomerLedger)
}

// AddEntry handles POST /debts
func (h *DebtHandler) AddEntry(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.AddDebtRequest
	if !h.BindJSON(c, &req) {
		return
	}

	entry, err := h.service.AddEntry(ctx, appctx.GetOwnerID(ctx), req.ToAddInput())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// CustomerLedger handles GET /debts/:number
func (h *DebtHandler) CustomerLedger(c *gin.Context) {
	ctx := c.Request.Context()
	number := c.Param("number")

	lines, err := h.service.CustomerLedger(ctx, appctx.GetOwnerID(ctx), number)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CustomerLedgerResponse{
		CustomerNumber: number,
		Entries:        lines,
	})
}

// DuesSummary handles GET /debts
func (h *DebtHandler) DuesSummary(c *gin.Context) {
	ctx := c.Request.Context()

	dues, err := h.service.DuesSummary(ctx, appctx.GetOwnerID(ctx))
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.DuesSummaryResponse{Customers: dues})
}
