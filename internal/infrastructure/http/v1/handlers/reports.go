package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/appctx"
	"stockbook/internal/document"
	"stockbook/internal/domain/reports"
	"stockbook/internal/infrastructure/http/v1/dto"
)

// ReportHandler handles report and export endpoints.
type ReportHandler struct {
	*BaseHandler
	service *reports.Service
	loc     *time.Location
}

// NewReportHandler creates a new report handler. Timestamps in exported
// documents are rendered in loc.
func NewReportHandler(base *BaseHandler, service *reports.Service, loc *time.Location) *ReportHandler {
	return &ReportHandler{
		BaseHandler: base,
		service:     service,
		loc:         loc,
	}
}

// RegisterRoutes wires report endpoints.
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/items", h.ItemReport)
	rg.GET("/items/export", h.ExportItemReport)
	rg.GET("/sales", h.SalesReport)
	rg.GET("/sales/export", h.ExportSalesReport)
	rg.GET("/analytics", h.Analytics)
	rg.GET("/monthly-sales", h.MonthlySales)
}

// ItemReport handles GET /reports/items
func (h *ReportHandler) ItemReport(c *gin.Context) {
	ctx := c.Request.Context()

	rows, err := h.service.ItemReport(ctx, appctx.GetOwnerID(ctx), c.Query("name"))
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ItemReportResponse{Items: rows})
}

// SalesReport handles GET /reports/sales
func (h *ReportHandler) SalesReport(c *gin.Context) {
	ctx := c.Request.Context()

	report, err := h.service.SalesReport(ctx, appctx.GetOwnerID(ctx), c.Query("from"), c.Query("to"))
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// Analytics handles GET /reports/analytics
func (h *ReportHandler) Analytics(c *gin.Context) {
	ctx := c.Request.Context()

	summary, err := h.service.AnalyticsSummary(ctx, appctx.GetOwnerID(ctx))
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// MonthlySales handles GET /reports/monthly-sales
func (h *ReportHandler) MonthlySales(c *gin.Context) {
	ctx := c.Request.Context()
	window := h.ParseIntQuery(c, "months", reports.DefaultSeriesWindow)

	points, err := h.service.MonthlySalesSeries(ctx, appctx.GetOwnerID(ctx), window)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MonthlySalesResponse{Months: points})
}

// ExportItemReport handles GET /reports/items/export
func (h *ReportHandler) ExportItemReport(c *gin.Context) {
	ctx := c.Request.Context()

	rows, err := h.service.ItemReport(ctx, appctx.GetOwnerID(ctx), c.Query("name"))
	if err != nil {
		h.Error(c, err)
		return
	}

	table := document.Table{
		Title:   "Item Report",
		Headers: []string{"Item", "Available Qty", "Selling Rate", "Sold Qty"},
		Widths:  []float64{2, 1, 1, 1},
	}
	for _, row := range rows {
		table.Rows = append(table.Rows, []string{
			row.ItemName,
			row.AvailableQty.String(),
			row.SellingRate.String(),
			row.SoldQty.String(),
		})
	}

	h.writeDocument(c, table, "item-report")
}

// ExportSalesReport handles GET /reports/sales/export
func (h *ReportHandler) ExportSalesReport(c *gin.Context) {
	ctx := c.Request.Context()

	report, err := h.service.SalesReport(ctx, appctx.GetOwnerID(ctx), c.Query("from"), c.Query("to"))
	if err != nil {
		h.Error(c, err)
		return
	}

	table := document.Table{
		Title:   fmt.Sprintf("Sales Report %s to %s", report.From, report.To),
		Headers: []string{"Date", "Item", "Qty", "Price", "Total"},
		Widths:  []float64{1.5, 2, 1, 1, 1},
		Footer:  []string{"Grand Total", "", "", "", report.GrandTotal.String()},
	}
	for _, row := range report.Rows {
		table.Rows = append(table.Rows, []string{
			row.CreatedAt.In(h.loc).Format("2006-01-02 15:04"),
			row.ItemName,
			row.Quantity.String(),
			row.SellingPrice.String(),
			row.TotalPrice.String(),
		})
	}

	h.writeDocument(c, table, fmt.Sprintf("sales-report-%s-%s", report.From, report.To))
}

// writeDocument renders the table in the requested format and streams it.
func (h *ReportHandler) writeDocument(c *gin.Context, table document.Table, baseName string) {
	format := c.DefaultQuery("format", "pdf")

	switch format {
	case "pdf":
		data, err := document.RenderPDF(table)
		if err != nil {
			h.Error(c, apperror.NewInternal(err))
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", baseName))
		c.Data(http.StatusOK, "application/pdf", data)

	case "xlsx":
		data, err := document.RenderXLSX(table)
		if err != nil {
			h.Error(c, apperror.NewInternal(err))
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.xlsx", baseName))
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)

	default:
		h.Error(c, apperror.NewValidation("unsupported format").WithDetail("format", format))
	}
}
