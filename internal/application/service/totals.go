package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/ledgerly-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// paidTolerance is the residual below which a payable document counts as
// settled, absorbing rounding drift from line-level tax math.
var paidTolerance = decimal.NewFromFloat(0.01)

// LineItemInput is the shared shape of one document line as submitted by
// the client. line_no is assigned server-side from slice order.
type LineItemInput struct {
	ProductID   *uuid.UUID      `json:"product_id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Discount    decimal.Decimal `json:"discount"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
}

// lineAmounts holds the computed money fields of one line
type lineAmounts struct {
	TaxAmount decimal.Decimal
	LineTotal decimal.Decimal
}

// documentTotals holds the computed header totals
type documentTotals struct {
	Subtotal   decimal.Decimal
	TaxAmount  decimal.Decimal
	GrandTotal decimal.Decimal
	Lines      []lineAmounts
}

// computeTotals derives line and header totals from raw line inputs:
// line total = qty×rate − discount, line tax = line total × rate/100,
// subtotal = Σ line totals, grand total = subtotal + tax + shipping −
// header discount, clamped at zero.
func computeTotals(items []LineItemInput, shippingCharges, discountAmount decimal.Decimal) documentTotals {
	totals := documentTotals{
		Subtotal:  decimal.Zero,
		TaxAmount: decimal.Zero,
		Lines:     make([]lineAmounts, len(items)),
	}

	hundred := decimal.NewFromInt(100)
	for i, item := range items {
		lineTotal := item.Quantity.Mul(item.Rate).Sub(item.Discount)
		if lineTotal.IsNegative() {
			lineTotal = decimal.Zero
		}
		taxAmount := lineTotal.Mul(item.TaxRate).Div(hundred).Round(4)

		totals.Lines[i] = lineAmounts{TaxAmount: taxAmount, LineTotal: lineTotal}
		totals.Subtotal = totals.Subtotal.Add(lineTotal)
		totals.TaxAmount = totals.TaxAmount.Add(taxAmount)
	}

	totals.GrandTotal = totals.Subtotal.
		Add(totals.TaxAmount).
		Add(shippingCharges).
		Sub(discountAmount)
	if totals.GrandTotal.IsNegative() {
		totals.GrandTotal = decimal.Zero
	}

	return totals
}

// validateLineItems rejects empty line sets and non-positive quantities
func validateLineItems(items []LineItemInput) error {
	if len(items) == 0 {
		return apperror.NewValidationError([]apperror.FieldError{
			{Field: "items", Message: "at least one line item is required"},
		})
	}
	for _, item := range items {
		if !item.Quantity.IsPositive() {
			return apperror.NewValidationError([]apperror.FieldError{
				{Field: "items", Message: "quantity must be positive"},
			})
		}
		if item.Rate.IsNegative() {
			return apperror.NewValidationError([]apperror.FieldError{
				{Field: "items", Message: "rate must not be negative"},
			})
		}
	}
	return nil
}

// dateOrToday defaults a zero document date to the current day
func dateOrToday(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC().Truncate(24 * time.Hour)
	}
	return t
}
