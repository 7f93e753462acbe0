package service

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sangkips/ledgerly-api/internal/domain/enum"
)

// invoiceDueDaysAgo creates a sent invoice for the given amount with a due
// date the given number of days in the past (negative means not yet due).
func (env *testEnv) invoiceDueDaysAgo(t *testing.T, customerID uuid.UUID, amount, daysAgo int64) uuid.UUID {
	t.Helper()
	due := time.Now().AddDate(0, 0, int(-daysAgo))
	invoice, err := env.invoices.CreateInvoice(env.ctx, &CreateInvoiceInput{
		CustomerID:  customerID,
		InvoiceDate: time.Now(),
		DueDate:     &due,
		Items:       []LineItemInput{simpleLine(1, amount)},
	})
	if err != nil {
		t.Fatalf("create invoice: %v", err)
	}
	if _, err := env.status.Transition(env.ctx, &TransitionInput{
		DocumentType: enum.DocumentTypeInvoice,
		DocumentID:   invoice.ID,
		ToStatus:     enum.InvoiceStatusSent,
	}); err != nil {
		t.Fatalf("send invoice: %v", err)
	}
	return invoice.ID
}

func TestReceivablesAgingBuckets(t *testing.T) {
	env := newTestEnv(t)
	customer := env.createCustomer(t, "Acme")

	env.invoiceDueDaysAgo(t, customer.ID, 100, -10) // not yet due
	env.invoiceDueDaysAgo(t, customer.ID, 200, 15)  // 1-30
	env.invoiceDueDaysAgo(t, customer.ID, 300, 45)  // 31-60
	env.invoiceDueDaysAgo(t, customer.ID, 400, 75)  // 61-90
	env.invoiceDueDaysAgo(t, customer.ID, 500, 120) // over 90

	report, err := env.reports.ReceivablesAging(env.ctx, time.Now())
	if err != nil {
		t.Fatalf("ReceivablesAging: %v", err)
	}
	if len(report.Customers) != 1 {
		t.Fatalf("customers = %d, want 1", len(report.Customers))
	}
	buckets := report.Customers[0].Buckets
	wantDecimal(t, buckets.Current, 100, "current")
	wantDecimal(t, buckets.Days30, 200, "1-30 days")
	wantDecimal(t, buckets.Days60, 300, "31-60 days")
	wantDecimal(t, buckets.Days90, 400, "61-90 days")
	wantDecimal(t, buckets.Over90, 500, "over 90 days")
	wantDecimal(t, buckets.Total, 1500, "customer total")
	wantDecimal(t, report.Totals.Total, 1500, "grand total")
}

func TestReceivablesAgingExcludesSettledInvoices(t *testing.T) {
	env := newTestEnv(t)
	customer := env.createCustomer(t, "Acme")

	env.invoiceDueDaysAgo(t, customer.ID, 100, 5)
	settled := env.invoiceDueDaysAgo(t, customer.ID, 250, 5)
	if _, err := env.payments.RecordForInvoice(env.ctx, settled, &RecordPaymentInput{
		Amount:      decimal.NewFromInt(250),
		PaymentDate: time.Now(),
	}); err != nil {
		t.Fatalf("settle invoice: %v", err)
	}

	report, err := env.reports.ReceivablesAging(env.ctx, time.Now())
	if err != nil {
		t.Fatalf("ReceivablesAging: %v", err)
	}
	wantDecimal(t, report.Totals.Total, 100, "only the open invoice remains")
}

func TestSalesSummaryTotals(t *testing.T) {
	env := newTestEnv(t)
	customer := env.createCustomer(t, "Acme")

	// One draft, two sent; one of the sent invoices partially paid
	env.createInvoice(t, customer.ID, []LineItemInput{simpleLine(1, 100)})
	env.invoiceDueDaysAgo(t, customer.ID, 200, -30)
	paid := env.invoiceDueDaysAgo(t, customer.ID, 300, -30)
	if _, err := env.payments.RecordForInvoice(env.ctx, paid, &RecordPaymentInput{
		Amount:      decimal.NewFromInt(120),
		PaymentDate: time.Now(),
	}); err != nil {
		t.Fatalf("partial payment: %v", err)
	}

	from := time.Now().AddDate(0, 0, -1)
	to := time.Now().AddDate(0, 0, 1)
	report, err := env.reports.SalesSummary(env.ctx, from, to)
	if err != nil {
		t.Fatalf("SalesSummary: %v", err)
	}
	if report.TotalCount != 3 {
		t.Errorf("total count = %d, want 3", report.TotalCount)
	}
	wantDecimal(t, report.Total, 600, "grand total")
	wantDecimal(t, report.AmountPaid, 120, "amount paid")
	wantDecimal(t, report.AmountDue, 480, "amount due")

	byStatus := make(map[string]int64)
	for _, row := range report.ByStatus {
		byStatus[row.Status] = row.Count
	}
	if byStatus[enum.InvoiceStatusDraft] != 1 || byStatus[enum.InvoiceStatusSent] != 2 {
		t.Errorf("by-status counts = %v, want 1 draft and 2 sent", byStatus)
	}
}

func TestSalesSummaryRejectsInvertedRange(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.reports.SalesSummary(env.ctx, time.Now(), time.Now().AddDate(0, 0, -7))
	wantAppError(t, err, http.StatusUnprocessableEntity)
}

func TestStockOnHandListsTrackedProducts(t *testing.T) {
	env := newTestEnv(t)
	product := env.createTrackedProduct(t, "Gadget")
	env.stockUp(t, product.ID, 12)

	rows, err := env.reports.StockOnHand(env.ctx)
	if err != nil {
		t.Fatalf("StockOnHand: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if rows[0].Name != "Gadget" {
		t.Errorf("product name = %q, want Gadget", rows[0].Name)
	}
	wantDecimal(t, rows[0].QuantityOnHand, 12, "quantity on hand")
}
