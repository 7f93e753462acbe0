package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/ledgerly-api/internal/domain/entity"
	"github.com/sangkips/ledgerly-api/internal/domain/repository"
	"github.com/sangkips/ledgerly-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ReportService produces the reporting endpoints: sales summary, receivables
// aging, and stock on hand.
type ReportService struct {
	reportRepo  repository.ReportRepository
	invoiceRepo repository.InvoiceRepository
}

// NewReportService creates a new report service
func NewReportService(reportRepo repository.ReportRepository, invoiceRepo repository.InvoiceRepository) *ReportService {
	return &ReportService{
		reportRepo:  reportRepo,
		invoiceRepo: invoiceRepo,
	}
}

// SalesSummaryReport aggregates invoices over a date range
type SalesSummaryReport struct {
	From       time.Time                       `json:"from"`
	To         time.Time                       `json:"to"`
	ByStatus   []repository.SalesStatusSummary `json:"by_status"`
	TotalCount int64                           `json:"total_count"`
	Total      decimal.Decimal                 `json:"total"`
	AmountPaid decimal.Decimal                 `json:"amount_paid"`
	AmountDue  decimal.Decimal                 `json:"amount_due"`
}

// SalesSummary aggregates invoices issued between from and to, grouped by
// status, with grand totals across all statuses.
func (s *ReportService) SalesSummary(ctx context.Context, from, to time.Time) (*SalesSummaryReport, error) {
	if to.Before(from) {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "to", Message: "End date must not be before start date"},
		})
	}

	rows, err := s.reportRepo.SalesSummaryByStatus(ctx, from, to)
	if err != nil {
		return nil, apperror.FromDBError(err, "Sales summary")
	}

	report := &SalesSummaryReport{
		From:       from,
		To:         to,
		ByStatus:   rows,
		Total:      decimal.Zero,
		AmountPaid: decimal.Zero,
		AmountDue:  decimal.Zero,
	}
	for _, row := range rows {
		report.TotalCount += row.Count
		report.Total = report.Total.Add(row.Total)
		report.AmountPaid = report.AmountPaid.Add(row.AmountPaid)
		report.AmountDue = report.AmountDue.Add(row.AmountDue)
	}
	return report, nil
}

// AgingBuckets splits an outstanding balance by how long it has been overdue
type AgingBuckets struct {
	Current decimal.Decimal `json:"current"`
	Days30  decimal.Decimal `json:"days_1_30"`
	Days60  decimal.Decimal `json:"days_31_60"`
	Days90  decimal.Decimal `json:"days_61_90"`
	Over90  decimal.Decimal `json:"days_over_90"`
	Total   decimal.Decimal `json:"total"`
}

// CustomerAging is one customer's bucketed outstanding balance
type CustomerAging struct {
	CustomerID   uuid.UUID    `json:"customer_id"`
	CustomerName string       `json:"customer_name"`
	Buckets      AgingBuckets `json:"buckets"`
}

// ReceivablesAgingReport buckets all outstanding invoices by age
type ReceivablesAgingReport struct {
	AsOf      time.Time       `json:"as_of"`
	Customers []CustomerAging `json:"customers"`
	Totals    AgingBuckets    `json:"totals"`
}

// ReceivablesAging buckets every invoice with an outstanding balance by how
// far past its due date it is as of the given date. Invoices not yet due, or
// without a due date, count as current.
func (s *ReportService) ReceivablesAging(ctx context.Context, asOf time.Time) (*ReceivablesAgingReport, error) {
	invoices, err := s.invoiceRepo.ListOutstanding(ctx)
	if err != nil {
		return nil, apperror.FromDBError(err, "Receivables")
	}

	byCustomer := make(map[uuid.UUID]*CustomerAging)
	order := make([]uuid.UUID, 0)
	report := &ReceivablesAgingReport{AsOf: asOf, Totals: zeroBuckets()}

	for i := range invoices {
		inv := &invoices[i]
		row, ok := byCustomer[inv.CustomerID]
		if !ok {
			row = &CustomerAging{
				CustomerID:   inv.CustomerID,
				CustomerName: inv.CustomerName,
				Buckets:      zeroBuckets(),
			}
			byCustomer[inv.CustomerID] = row
			order = append(order, inv.CustomerID)
		}
		addToBucket(&row.Buckets, overdueDays(inv, asOf), inv.AmountDue)
		addToBucket(&report.Totals, overdueDays(inv, asOf), inv.AmountDue)
	}

	report.Customers = make([]CustomerAging, 0, len(order))
	for _, id := range order {
		report.Customers = append(report.Customers, *byCustomer[id])
	}
	return report, nil
}

func zeroBuckets() AgingBuckets {
	return AgingBuckets{
		Current: decimal.Zero,
		Days30:  decimal.Zero,
		Days60:  decimal.Zero,
		Days90:  decimal.Zero,
		Over90:  decimal.Zero,
		Total:   decimal.Zero,
	}
}

func overdueDays(inv *entity.Invoice, asOf time.Time) int {
	if inv.DueDate == nil || !asOf.After(*inv.DueDate) {
		return 0
	}
	return int(asOf.Sub(*inv.DueDate).Hours() / 24)
}

func addToBucket(b *AgingBuckets, days int, amount decimal.Decimal) {
	switch {
	case days <= 0:
		b.Current = b.Current.Add(amount)
	case days <= 30:
		b.Days30 = b.Days30.Add(amount)
	case days <= 60:
		b.Days60 = b.Days60.Add(amount)
	case days <= 90:
		b.Days90 = b.Days90.Add(amount)
	default:
		b.Over90 = b.Over90.Add(amount)
	}
	b.Total = b.Total.Add(amount)
}

// StockOnHand lists per-location balances of inventory-tracked products
func (s *ReportService) StockOnHand(ctx context.Context) ([]repository.StockOnHandRow, error) {
	rows, err := s.reportRepo.StockOnHand(ctx)
	if err != nil {
		return nil, apperror.FromDBError(err, "Stock on hand")
	}
	return rows, nil
}

// StockOnHandXLSX renders the stock on hand report as an xlsx workbook
func (s *ReportService) StockOnHandXLSX(ctx context.Context) (*bytes.Buffer, error) {
	rows, err := s.reportRepo.StockOnHand(ctx)
	if err != nil {
		return nil, apperror.FromDBError(err, "Stock on hand")
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Stock On Hand"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Product", "SKU", "Location", "Quantity On Hand", "Alert At"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for i, row := range rows {
		values := []interface{}{
			row.Name,
			row.SKU,
			row.Location,
			row.QuantityOnHand.InexactFloat64(),
			row.StockAlertAt.InexactFloat64(),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	if err := f.SetColWidth(sheet, "A", "A", 32); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheet, "B", "E", 18); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf, nil
}
