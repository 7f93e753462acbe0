package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sangkips/ledgerly-api/internal/domain/entity"
	"github.com/sangkips/ledgerly-api/internal/domain/enum"
)

func TestTransitionWritesHistory(t *testing.T) {
	env := newTestEnv(t)
	customer := env.createCustomer(t, "Acme")
	estimate := env.createEstimate(t, customer.ID, []LineItemInput{simpleLine(1, 100)})

	reason := "customer requested quote"
	doc, err := env.status.Transition(env.ctx, &TransitionInput{
		DocumentType: enum.DocumentTypeEstimate,
		DocumentID:   estimate.ID,
		ToStatus:     enum.EstimateStatusSent,
		Reason:       &reason,
	})
	if err != nil {
		t.Fatalf("Transition: %v", err)
	}
	if doc.GetStatus() != enum.EstimateStatusSent {
		t.Errorf("status = %q, want sent", doc.GetStatus())
	}

	history, err := env.status.History(env.ctx, enum.DocumentTypeEstimate, estimate.ID)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("history rows = %d, want 1", len(history))
	}
	row := history[0]
	if row.FromStatus != enum.EstimateStatusDraft || row.ToStatus != enum.EstimateStatusSent {
		t.Errorf("history %s -> %s, want draft -> sent", row.FromStatus, row.ToStatus)
	}
	if row.Reason == nil || *row.Reason != reason {
		t.Error("history should carry the transition reason")
	}
	if row.ActorName != "Test User" {
		t.Errorf("actor name = %q, want Test User", row.ActorName)
	}
	if row.DocumentNo != estimate.DocumentNo {
		t.Errorf("document no = %q, want %q", row.DocumentNo, estimate.DocumentNo)
	}
}

func TestTransitionRejectsIllegalMove(t *testing.T) {
	env := newTestEnv(t)
	customer := env.createCustomer(t, "Acme")
	estimate := env.createEstimate(t, customer.ID, []LineItemInput{simpleLine(1, 100)})

	// draft -> accepted skips the sent step
	_, err := env.status.Transition(env.ctx, &TransitionInput{
		DocumentType: enum.DocumentTypeEstimate,
		DocumentID:   estimate.ID,
		ToStatus:     enum.EstimateStatusAccepted,
	})
	wantConflict(t, err)

	// A rejected transition leaves no audit trace
	history, err := env.status.History(env.ctx, enum.DocumentTypeEstimate, estimate.ID)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 0 {
		t.Errorf("history rows = %d, want 0", len(history))
	}
}

func TestTerminalStatusAllowsNothing(t *testing.T) {
	env := newTestEnv(t)
	customer := env.createCustomer(t, "Acme")
	estimate := env.createEstimate(t, customer.ID, []LineItemInput{simpleLine(1, 100)})

	for _, to := range []string{enum.EstimateStatusSent, enum.EstimateStatusRejected} {
		if _, err := env.status.Transition(env.ctx, &TransitionInput{
			DocumentType: enum.DocumentTypeEstimate,
			DocumentID:   estimate.ID,
			ToStatus:     to,
		}); err != nil {
			t.Fatalf("transition to %s: %v", to, err)
		}
	}

	_, err := env.status.Transition(env.ctx, &TransitionInput{
		DocumentType: enum.DocumentTypeEstimate,
		DocumentID:   estimate.ID,
		ToStatus:     enum.EstimateStatusSent,
	})
	wantConflict(t, err)

	targets, err := env.status.AllowedTargets(env.ctx, enum.DocumentTypeEstimate, estimate.ID)
	if err != nil {
		t.Fatalf("AllowedTargets: %v", err)
	}
	if len(targets) != 0 {
		t.Errorf("allowed targets from rejected = %v, want none", targets)
	}
}

func TestTransitionLifecyclelessTypeRejected(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.status.Transition(env.ctx, &TransitionInput{
		DocumentType: enum.DocumentTypeExpense,
		DocumentID:   uuid.New(),
		ToStatus:     "approved",
	})
	wantAppError(t, err, 400)
}

func TestShippedDeliveryNoteDeductsStock(t *testing.T) {
	env := newTestEnv(t)
	customer := env.createCustomer(t, "Acme")
	product := env.createTrackedProduct(t, "Gadget")
	env.stockUp(t, product.ID, 10)

	estimate := env.createEstimate(t, customer.ID, []LineItemInput{{
		ProductID:   &product.ID,
		Description: "Gadget",
		Quantity:    decimal.NewFromInt(10),
		Rate:        decimal.NewFromInt(100),
	}})
	order, err := env.conversions.ConvertEstimate(env.ctx, estimate.ID)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	env.confirmOrder(t, order.ID)

	note, err := env.conversions.CreateDeliveryNote(env.ctx, order.ID, &CreateDeliveryNoteInput{
		DeliveryDate: time.Now(),
		Lines: []ShipLineInput{
			{SalesOrderItemID: order.Items[0].ID, ShipQty: decimal.NewFromInt(10)},
		},
	})
	if err != nil {
		t.Fatalf("CreateDeliveryNote: %v", err)
	}

	if _, err := env.status.Transition(env.ctx, &TransitionInput{
		DocumentType: enum.DocumentTypeDeliveryNote,
		DocumentID:   note.ID,
		ToStatus:     enum.DeliveryNoteStatusReadyToShip,
	}); err != nil {
		t.Fatalf("ready_to_ship: %v", err)
	}

	shipped, err := env.status.Transition(env.ctx, &TransitionInput{
		DocumentType:    enum.DocumentTypeDeliveryNote,
		DocumentID:      note.ID,
		ToStatus:        enum.DeliveryNoteStatusShipped,
		DeductInventory: true,
	})
	if err != nil {
		t.Fatalf("shipped: %v", err)
	}
	if !shipped.(*entity.DeliveryNote).InventoryDeducted {
		t.Error("note should be marked inventory-deducted")
	}

	reloaded, err := env.products.GetProduct(env.ctx, product.ID)
	if err != nil {
		t.Fatalf("reload product: %v", err)
	}
	wantDecimal(t, reloaded.CurrentStock, 0, "stock after shipment")

	// The deduction appears in the ledger as a delivery note movement
	transactions, _, err := env.inventory.ProductLedger(env.ctx, product.ID)
	if err != nil {
		t.Fatalf("ProductLedger: %v", err)
	}
	found := false
	for _, txn := range transactions {
		if txn.Type == enum.InventoryTxnDeliveryNote {
			found = true
			wantDecimal(t, txn.Quantity, -10, "deduction quantity")
		}
	}
	if !found {
		t.Error("expected a delivery_note ledger entry")
	}
}

func TestShipmentWithInsufficientStockFails(t *testing.T) {
	env := newTestEnv(t)
	customer := env.createCustomer(t, "Acme")
	product := env.createTrackedProduct(t, "Gadget")
	env.stockUp(t, product.ID, 3)

	estimate := env.createEstimate(t, customer.ID, []LineItemInput{{
		ProductID:   &product.ID,
		Description: "Gadget",
		Quantity:    decimal.NewFromInt(5),
		Rate:        decimal.NewFromInt(100),
	}})
	order, err := env.conversions.ConvertEstimate(env.ctx, estimate.ID)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	env.confirmOrder(t, order.ID)

	note, err := env.conversions.CreateDeliveryNote(env.ctx, order.ID, &CreateDeliveryNoteInput{
		DeliveryDate: time.Now(),
		Lines: []ShipLineInput{
			{SalesOrderItemID: order.Items[0].ID, ShipQty: decimal.NewFromInt(5)},
		},
	})
	if err != nil {
		t.Fatalf("CreateDeliveryNote: %v", err)
	}
	if _, err := env.status.Transition(env.ctx, &TransitionInput{
		DocumentType: enum.DocumentTypeDeliveryNote,
		DocumentID:   note.ID,
		ToStatus:     enum.DeliveryNoteStatusReadyToShip,
	}); err != nil {
		t.Fatalf("ready_to_ship: %v", err)
	}

	_, err = env.status.Transition(env.ctx, &TransitionInput{
		DocumentType:    enum.DocumentTypeDeliveryNote,
		DocumentID:      note.ID,
		ToStatus:        enum.DeliveryNoteStatusShipped,
		DeductInventory: true,
	})
	wantConflict(t, err)

	// The failed transition rolls back: status and stock are untouched
	reloaded, err := env.notes.GetDeliveryNote(env.ctx, note.ID)
	if err != nil {
		t.Fatalf("reload note: %v", err)
	}
	if reloaded.Status != enum.DeliveryNoteStatusReadyToShip {
		t.Errorf("note status = %q, want ready_to_ship", reloaded.Status)
	}
	stock, err := env.products.GetProduct(env.ctx, product.ID)
	if err != nil {
		t.Fatalf("reload product: %v", err)
	}
	wantDecimal(t, stock.CurrentStock, 3, "stock unchanged after failed shipment")
}
