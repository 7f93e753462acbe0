package service

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/sangkips/ledgerly-api/internal/domain/enum"
)

func TestComputeTotals(t *testing.T) {
	items := []LineItemInput{
		{Quantity: decimal.NewFromInt(2), Rate: decimal.NewFromInt(50), TaxRate: decimal.NewFromInt(10)},
		{Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(30), Discount: decimal.NewFromInt(5)},
	}

	totals := computeTotals(items, decimal.NewFromInt(15), decimal.NewFromInt(10))

	wantDecimal(t, totals.Subtotal, 125, "Subtotal")
	wantDecimal(t, totals.TaxAmount, 10, "TaxAmount")
	// 125 + 10 + 15 - 10
	wantDecimal(t, totals.GrandTotal, 140, "GrandTotal")

	wantDecimal(t, totals.Lines[0].LineTotal, 100, "line 0 total")
	wantDecimal(t, totals.Lines[0].TaxAmount, 10, "line 0 tax")
	wantDecimal(t, totals.Lines[1].LineTotal, 25, "line 1 total")
	wantDecimal(t, totals.Lines[1].TaxAmount, 0, "line 1 tax")
}

func TestComputeTotalsClampsNegatives(t *testing.T) {
	// Discount larger than the line amount clamps the line at zero
	items := []LineItemInput{
		{Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(10), Discount: decimal.NewFromInt(50)},
	}
	totals := computeTotals(items, decimal.Zero, decimal.Zero)
	wantDecimal(t, totals.Lines[0].LineTotal, 0, "clamped line total")

	// Header discount larger than everything clamps the grand total at zero
	items = []LineItemInput{
		{Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(10)},
	}
	totals = computeTotals(items, decimal.Zero, decimal.NewFromInt(100))
	wantDecimal(t, totals.GrandTotal, 0, "clamped grand total")
}

func TestValidateLineItems(t *testing.T) {
	if err := validateLineItems(nil); err == nil {
		t.Error("empty line set should be rejected")
	}
	if err := validateLineItems([]LineItemInput{
		{Quantity: decimal.Zero, Rate: decimal.NewFromInt(10)},
	}); err == nil {
		t.Error("zero quantity should be rejected")
	}
	if err := validateLineItems([]LineItemInput{
		{Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(-10)},
	}); err == nil {
		t.Error("negative rate should be rejected")
	}
	if err := validateLineItems([]LineItemInput{simpleLine(1, 10)}); err != nil {
		t.Errorf("valid line rejected: %v", err)
	}
}

func TestSettledStatus(t *testing.T) {
	tests := []struct {
		paid, due int64
		want      enum.PaymentStatus
	}{
		{0, 100, enum.PaymentStatusUnpaid},
		{40, 60, enum.PaymentStatusPartiallyPaid},
		{100, 0, enum.PaymentStatusPaid},
	}
	for _, tt := range tests {
		got := settledStatus(decimal.NewFromInt(tt.paid), decimal.NewFromInt(tt.due))
		if got != tt.want {
			t.Errorf("settledStatus(%d, %d) = %s, want %s", tt.paid, tt.due, got, tt.want)
		}
	}

	// A residual within the tolerance counts as settled
	got := settledStatus(decimal.NewFromFloat(99.995), decimal.NewFromFloat(0.005))
	if got != enum.PaymentStatusPaid {
		t.Errorf("residual within tolerance = %s, want paid", got)
	}
}
