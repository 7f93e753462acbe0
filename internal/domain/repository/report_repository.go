package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesStatusSummary aggregates invoices of one status over a date range
type SalesStatusSummary struct {
	Status     string          `json:"status"`
	Count      int64           `json:"count"`
	Total      decimal.Decimal `json:"total"`
	AmountPaid decimal.Decimal `json:"amount_paid"`
	AmountDue  decimal.Decimal `json:"amount_due"`
}

// StockOnHandRow is one (product, location) balance for stock reporting
type StockOnHandRow struct {
	ProductID      uuid.UUID       `json:"product_id"`
	Name           string          `json:"name"`
	SKU            string          `json:"sku"`
	Location       string          `json:"location"`
	QuantityOnHand decimal.Decimal `json:"quantity_on_hand"`
	StockAlertAt   decimal.Decimal `json:"stock_alert_at"`
}

// ReportRepository defines aggregate queries backing the reporting endpoints
type ReportRepository interface {
	// SalesSummaryByStatus groups invoices issued in [from, to] by status.
	SalesSummaryByStatus(ctx context.Context, from, to time.Time) ([]SalesStatusSummary, error)
	// StockOnHand lists per-location balances of inventory-tracked products.
	StockOnHand(ctx context.Context) ([]StockOnHandRow, error)
}
