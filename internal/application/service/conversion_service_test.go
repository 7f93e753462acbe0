package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sangkips/ledgerly-api/internal/domain/entity"
	"github.com/sangkips/ledgerly-api/internal/domain/enum"
)

func (env *testEnv) confirmOrder(t *testing.T, orderID uuid.UUID) *entity.SalesOrder {
	t.Helper()
	doc, err := env.status.Transition(env.ctx, &TransitionInput{
		DocumentType: enum.DocumentTypeSalesOrder,
		DocumentID:   orderID,
		ToStatus:     enum.SalesOrderStatusConfirmed,
	})
	if err != nil {
		t.Fatalf("confirm order: %v", err)
	}
	return doc.(*entity.SalesOrder)
}

func TestConvertEstimateCopiesLinesAndTotals(t *testing.T) {
	env := newTestEnv(t)
	customer := env.createCustomer(t, "Acme")
	estimate := env.createEstimate(t, customer.ID, []LineItemInput{
		simpleLine(2, 50),
		simpleLine(1, 25),
	})

	order, err := env.conversions.ConvertEstimate(env.ctx, estimate.ID)
	if err != nil {
		t.Fatalf("ConvertEstimate: %v", err)
	}

	if order.Status != enum.SalesOrderStatusDraft {
		t.Errorf("order status = %q, want draft", order.Status)
	}
	if order.EstimateID == nil || *order.EstimateID != estimate.ID {
		t.Error("order should reference the source estimate")
	}
	if order.CustomerID != customer.ID {
		t.Error("customer not carried over")
	}
	if !order.GrandTotal.Equal(estimate.GrandTotal) {
		t.Errorf("grand total = %s, want %s", order.GrandTotal, estimate.GrandTotal)
	}
	if len(order.Items) != 2 {
		t.Fatalf("order has %d items, want 2", len(order.Items))
	}
	wantDecimal(t, order.Items[0].OrderedQty, 2, "line 0 ordered qty")
	wantDecimal(t, order.Items[0].DeliveredQty, 0, "line 0 delivered qty")

	updated, err := env.estimates.GetEstimate(env.ctx, estimate.ID)
	if err != nil {
		t.Fatalf("reload estimate: %v", err)
	}
	if updated.Status != enum.EstimateStatusConverted {
		t.Errorf("estimate status = %q, want converted", updated.Status)
	}
	if !updated.ConvertedToSalesOrder || updated.SalesOrderID == nil {
		t.Error("estimate should be flagged as converted with a back-reference")
	}
}

func TestConvertEstimateTwiceConflicts(t *testing.T) {
	env := newTestEnv(t)
	customer := env.createCustomer(t, "Acme")
	estimate := env.createEstimate(t, customer.ID, []LineItemInput{simpleLine(1, 10)})

	if _, err := env.conversions.ConvertEstimate(env.ctx, estimate.ID); err != nil {
		t.Fatalf("first convert: %v", err)
	}
	_, err := env.conversions.ConvertEstimate(env.ctx, estimate.ID)
	wantConflict(t, err)
}

func TestEditConvertedEstimateConflicts(t *testing.T) {
	env := newTestEnv(t)
	customer := env.createCustomer(t, "Acme")
	estimate := env.createEstimate(t, customer.ID, []LineItemInput{simpleLine(2, 30)})

	if _, err := env.conversions.ConvertEstimate(env.ctx, estimate.ID); err != nil {
		t.Fatalf("convert: %v", err)
	}

	notes := "late edit"
	_, err := env.estimates.UpdateEstimate(env.ctx, &UpdateEstimateInput{
		ID:    estimate.ID,
		Notes: &notes,
		Items: []LineItemInput{simpleLine(1, 5)},
	})
	wantConflict(t, err)
	wantConflict(t, env.estimates.DeleteEstimate(env.ctx, estimate.ID))

	// The failed edit and delete must not disturb the converted state
	reloaded, err := env.estimates.GetEstimate(env.ctx, estimate.ID)
	if err != nil {
		t.Fatalf("reload estimate: %v", err)
	}
	if reloaded.Status != enum.EstimateStatusConverted {
		t.Errorf("estimate status = %q, want converted", reloaded.Status)
	}
	if !reloaded.ConvertedToSalesOrder || reloaded.SalesOrderID == nil {
		t.Error("conversion flag and back-reference should survive rejected edits")
	}
	wantDecimal(t, reloaded.GrandTotal, 60, "grand total after rejected edit")
}

func TestCreateDeliveryNotePartialFulfillment(t *testing.T) {
	env := newTestEnv(t)
	customer := env.createCustomer(t, "Acme")
	estimate := env.createEstimate(t, customer.ID, []LineItemInput{simpleLine(10, 20)})
	order, err := env.conversions.ConvertEstimate(env.ctx, estimate.ID)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	env.confirmOrder(t, order.ID)

	note, err := env.conversions.CreateDeliveryNote(env.ctx, order.ID, &CreateDeliveryNoteInput{
		DeliveryDate: time.Now(),
		Lines: []ShipLineInput{
			{SalesOrderItemID: order.Items[0].ID, ShipQty: decimal.NewFromInt(4)},
		},
	})
	if err != nil {
		t.Fatalf("first shipment: %v", err)
	}
	wantDecimal(t, note.Items[0].ShippedQty, 4, "shipped qty")

	reloaded, err := env.orders.GetSalesOrder(env.ctx, order.ID)
	if err != nil {
		t.Fatalf("reload order: %v", err)
	}
	if reloaded.FulfillmentStatus != enum.FulfillmentStatusPartiallyFulfilled {
		t.Errorf("fulfillment = %q, want partially_fulfilled", reloaded.FulfillmentStatus)
	}
	if reloaded.Status != enum.SalesOrderStatusInProgress {
		t.Errorf("status = %q, want in_progress after partial shipment", reloaded.Status)
	}
	wantDecimal(t, reloaded.Items[0].DeliveredQty, 4, "delivered qty")

	// Ship the remainder
	if _, err := env.conversions.CreateDeliveryNote(env.ctx, order.ID, &CreateDeliveryNoteInput{
		DeliveryDate: time.Now(),
		Lines: []ShipLineInput{
			{SalesOrderItemID: order.Items[0].ID, ShipQty: decimal.NewFromInt(6)},
		},
	}); err != nil {
		t.Fatalf("second shipment: %v", err)
	}

	reloaded, err = env.orders.GetSalesOrder(env.ctx, order.ID)
	if err != nil {
		t.Fatalf("reload order: %v", err)
	}
	if reloaded.FulfillmentStatus != enum.FulfillmentStatusFulfilled {
		t.Errorf("fulfillment = %q, want fulfilled", reloaded.FulfillmentStatus)
	}
	if reloaded.Status != enum.SalesOrderStatusCompleted {
		t.Errorf("status = %q, want completed when fully delivered", reloaded.Status)
	}
}

func TestCreateDeliveryNoteRejectsOverShipment(t *testing.T) {
	env := newTestEnv(t)
	customer := env.createCustomer(t, "Acme")
	estimate := env.createEstimate(t, customer.ID, []LineItemInput{simpleLine(5, 10)})
	order, err := env.conversions.ConvertEstimate(env.ctx, estimate.ID)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	env.confirmOrder(t, order.ID)

	_, err = env.conversions.CreateDeliveryNote(env.ctx, order.ID, &CreateDeliveryNoteInput{
		DeliveryDate: time.Now(),
		Lines: []ShipLineInput{
			{SalesOrderItemID: order.Items[0].ID, ShipQty: decimal.NewFromInt(6)},
		},
	})
	wantConflict(t, err)
}

func TestCreateDeliveryNoteRequiresConfirmedOrder(t *testing.T) {
	env := newTestEnv(t)
	customer := env.createCustomer(t, "Acme")
	estimate := env.createEstimate(t, customer.ID, []LineItemInput{simpleLine(1, 10)})
	order, err := env.conversions.ConvertEstimate(env.ctx, estimate.ID)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}

	// Order is still draft
	_, err = env.conversions.CreateDeliveryNote(env.ctx, order.ID, &CreateDeliveryNoteInput{
		DeliveryDate: time.Now(),
		Lines: []ShipLineInput{
			{SalesOrderItemID: order.Items[0].ID, ShipQty: decimal.NewFromInt(1)},
		},
	})
	wantConflict(t, err)
}

func TestInvoiceSalesOrderCopiesTotals(t *testing.T) {
	env := newTestEnv(t)
	customer := env.createCustomer(t, "Acme")
	estimate := env.createEstimate(t, customer.ID, []LineItemInput{simpleLine(3, 40)})
	order, err := env.conversions.ConvertEstimate(env.ctx, estimate.ID)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	env.confirmOrder(t, order.ID)

	invoice, err := env.conversions.InvoiceSalesOrder(env.ctx, order.ID)
	if err != nil {
		t.Fatalf("InvoiceSalesOrder: %v", err)
	}
	if invoice.Status != enum.InvoiceStatusDraft {
		t.Errorf("invoice status = %q, want draft", invoice.Status)
	}
	if !invoice.GrandTotal.Equal(order.GrandTotal) {
		t.Errorf("grand total = %s, want %s", invoice.GrandTotal, order.GrandTotal)
	}
	if !invoice.AmountDue.Equal(invoice.GrandTotal) {
		t.Error("full amount should be outstanding on a fresh invoice")
	}
	if invoice.SalesOrderID == nil || *invoice.SalesOrderID != order.ID {
		t.Error("invoice should reference the source order")
	}
}

func TestInvoiceSalesOrderTwiceConflicts(t *testing.T) {
	env := newTestEnv(t)
	customer := env.createCustomer(t, "Acme")
	estimate := env.createEstimate(t, customer.ID, []LineItemInput{simpleLine(2, 50)})
	order, err := env.conversions.ConvertEstimate(env.ctx, estimate.ID)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	env.confirmOrder(t, order.ID)

	invoice, err := env.conversions.InvoiceSalesOrder(env.ctx, order.ID)
	if err != nil {
		t.Fatalf("first invoice: %v", err)
	}

	reloaded, err := env.orders.GetSalesOrder(env.ctx, order.ID)
	if err != nil {
		t.Fatalf("reload order: %v", err)
	}
	if !reloaded.Invoiced {
		t.Error("order should be flagged invoiced")
	}
	if reloaded.InvoiceID == nil || *reloaded.InvoiceID != invoice.ID {
		t.Error("order should reference the invoice")
	}

	_, err = env.conversions.InvoiceSalesOrder(env.ctx, order.ID)
	wantConflict(t, err)
}

func TestFullShipmentAdvancesStatusStepwise(t *testing.T) {
	env := newTestEnv(t)
	customer := env.createCustomer(t, "Acme")
	estimate := env.createEstimate(t, customer.ID, []LineItemInput{simpleLine(5, 10)})
	order, err := env.conversions.ConvertEstimate(env.ctx, estimate.ID)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	env.confirmOrder(t, order.ID)

	// A single shipment covering the whole order: the status trail must
	// still pass through in_progress rather than jump to completed.
	if _, err := env.conversions.CreateDeliveryNote(env.ctx, order.ID, &CreateDeliveryNoteInput{
		DeliveryDate: time.Now(),
		Lines: []ShipLineInput{
			{SalesOrderItemID: order.Items[0].ID, ShipQty: decimal.NewFromInt(5)},
		},
	}); err != nil {
		t.Fatalf("ship: %v", err)
	}

	reloaded, err := env.orders.GetSalesOrder(env.ctx, order.ID)
	if err != nil {
		t.Fatalf("reload order: %v", err)
	}
	if reloaded.Status != enum.SalesOrderStatusCompleted {
		t.Fatalf("status = %q, want completed", reloaded.Status)
	}

	history, err := env.status.History(env.ctx, enum.DocumentTypeSalesOrder, order.ID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	var moves []string
	for _, row := range history {
		moves = append(moves, row.FromStatus+">"+row.ToStatus)
	}
	want := []string{
		"draft>confirmed",
		"confirmed>in_progress",
		"in_progress>completed",
	}
	if len(moves) != len(want) {
		t.Fatalf("history moves = %v, want %v", moves, want)
	}
	for i := range want {
		if moves[i] != want[i] {
			t.Errorf("history[%d] = %q, want %q", i, moves[i], want[i])
		}
	}
}

func TestInvoiceDeliveryNoteBillsShippedQuantities(t *testing.T) {
	env := newTestEnv(t)
	customer := env.createCustomer(t, "Acme")
	estimate := env.createEstimate(t, customer.ID, []LineItemInput{simpleLine(10, 20)})
	order, err := env.conversions.ConvertEstimate(env.ctx, estimate.ID)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	env.confirmOrder(t, order.ID)

	note, err := env.conversions.CreateDeliveryNote(env.ctx, order.ID, &CreateDeliveryNoteInput{
		DeliveryDate: time.Now(),
		Lines: []ShipLineInput{
			{SalesOrderItemID: order.Items[0].ID, ShipQty: decimal.NewFromInt(4)},
		},
	})
	if err != nil {
		t.Fatalf("ship: %v", err)
	}

	invoice, err := env.conversions.InvoiceDeliveryNote(env.ctx, note.ID)
	if err != nil {
		t.Fatalf("InvoiceDeliveryNote: %v", err)
	}
	// 4 shipped at rate 20
	wantDecimal(t, invoice.GrandTotal, 80, "invoice grand total")
	if invoice.DeliveryNoteID == nil || *invoice.DeliveryNoteID != note.ID {
		t.Error("invoice should reference the delivery note")
	}

	// Same note cannot be invoiced twice
	_, err = env.conversions.InvoiceDeliveryNote(env.ctx, note.ID)
	wantConflict(t, err)
}
