package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/ledgerly-api/internal/application/service"
	"github.com/sangkips/ledgerly-api/internal/presentation/http/dto/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler handles reporting HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// SalesSummary returns invoice counts and totals grouped by status for a
// date range
func (h *ReportHandler) SalesSummary(c *gin.Context) {
	from := optionalDateQuery(c, "from")
	to := optionalDateQuery(c, "to")
	if from == nil || to == nil {
		response.BadRequest(c, "Query parameters 'from' and 'to' are required (YYYY-MM-DD)")
		return
	}

	report, err := h.reportService.SalesSummary(c.Request.Context(), *from, *to)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sales summary retrieved successfully", report)
}

// ReceivablesAging buckets outstanding invoices by days overdue per customer
func (h *ReportHandler) ReceivablesAging(c *gin.Context) {
	asOf := time.Now()
	if parsed := optionalDateQuery(c, "as_of"); parsed != nil {
		asOf = *parsed
	}

	report, err := h.reportService.ReceivablesAging(c.Request.Context(), asOf)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receivables aging retrieved successfully", report)
}

// StockOnHand returns current stock per tracked product and location.
// With format=xlsx the report is returned as a spreadsheet download.
func (h *ReportHandler) StockOnHand(c *gin.Context) {
	if c.Query("format") == "xlsx" {
		buf, err := h.reportService.StockOnHandXLSX(c.Request.Context())
		if err != nil {
			response.Error(c, err)
			return
		}

		filename := fmt.Sprintf("stock-on-hand-%s.xlsx", time.Now().Format("2006-01-02"))
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		c.Data(200, xlsxContentType, buf.Bytes())
		return
	}

	rows, err := h.reportService.StockOnHand(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock on hand retrieved successfully", rows)
}
