package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stockbook/internal/core/appctx"
	"stockbook/internal/domain/items"
	"stockbook/internal/infrastructure/http/v1/dto"
)

// ItemHandler handles inventory endpoints.
type ItemHandler struct {
	*BaseHandler
	service *items.Service
}

// NewItemHandler creates a new item handler.
func NewItemHandler(base *BaseHandler, service *items.Service) *ItemHandler {
	return &ItemHandler{
		BaseHandler: base,
		service:     service,
	}
}

// RegisterRoutes wires item endpoints.
func (h *ItemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.AddStock)
	rg.GET("/names", h.ListNames)
	rg.GET("/:name", h.GetInfo)
}

// AddStock handles POST /items
func (h *ItemHandler) AddStock(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.AddStockRequest
	if !h.BindJSON(c, &req) {
		return
	}

	item, err := h.service.AddStock(ctx, appctx.GetOwnerID(ctx), req.ToStockAdd())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// ListNames handles GET /items/names
func (h *ItemHandler) ListNames(c *gin.Context) {
	ctx := c.Request.Context()

	names, err := h.service.ListNames(ctx, appctx.GetOwnerID(ctx))
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ItemNamesResponse{Names: names})
}

// GetInfo handles GET /items/:name
func (h *ItemHandler) GetInfo(c *gin.Context) {
	ctx := c.Request.Context()

	item, err := h.service.GetInfo(ctx, appctx.GetOwnerID(ctx), c.Param("name"))
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}
