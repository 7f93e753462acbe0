package statemachine

import (
	"testing"

	"github.com/sangkips/ledgerly-api/internal/domain/enum"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		docType enum.DocumentType
		from    string
		to      string
		want    bool
	}{
		{enum.DocumentTypeEstimate, "draft", "sent", true},
		{enum.DocumentTypeEstimate, "draft", "accepted", false},
		{enum.DocumentTypeEstimate, "sent", "accepted", true},
		{enum.DocumentTypeEstimate, "accepted", "converted", true},
		{enum.DocumentTypeEstimate, "converted", "draft", false},
		{enum.DocumentTypeEstimate, "rejected", "sent", false},

		{enum.DocumentTypeSalesOrder, "draft", "confirmed", true},
		{enum.DocumentTypeSalesOrder, "draft", "completed", false},
		{enum.DocumentTypeSalesOrder, "confirmed", "in_progress", true},
		{enum.DocumentTypeSalesOrder, "in_progress", "completed", true},
		{enum.DocumentTypeSalesOrder, "completed", "cancelled", false},

		{enum.DocumentTypeDeliveryNote, "draft", "ready_to_ship", true},
		{enum.DocumentTypeDeliveryNote, "ready_to_ship", "draft", true},
		{enum.DocumentTypeDeliveryNote, "ready_to_ship", "shipped", true},
		{enum.DocumentTypeDeliveryNote, "shipped", "ready_to_ship", false},
		{enum.DocumentTypeDeliveryNote, "in_transit", "delivered", true},
		{enum.DocumentTypeDeliveryNote, "delivered", "cancelled", false},

		{enum.DocumentTypeInvoice, "draft", "sent", true},
		{enum.DocumentTypeInvoice, "sent", "overdue", true},
		{enum.DocumentTypeInvoice, "overdue", "void", true},
		{enum.DocumentTypeInvoice, "void", "draft", false},

		{enum.DocumentTypeBill, "draft", "open", true},
		{enum.DocumentTypeBill, "open", "overdue", true},
		{enum.DocumentTypeBill, "void", "open", false},

		// Expenses have no lifecycle
		{enum.DocumentTypeExpense, "draft", "sent", false},
	}

	for _, tt := range tests {
		if got := CanTransition(tt.docType, tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%s, %s, %s) = %v, want %v", tt.docType, tt.from, tt.to, got, tt.want)
		}
	}
}

func TestAllowedTargets(t *testing.T) {
	targets := AllowedTargets(enum.DocumentTypeEstimate, "sent")
	want := map[string]bool{"accepted": true, "rejected": true, "expired": true, "cancelled": true}
	if len(targets) != len(want) {
		t.Fatalf("AllowedTargets(estimate, sent) = %v, want %d entries", targets, len(want))
	}
	for _, target := range targets {
		if !want[target] {
			t.Errorf("unexpected target %q", target)
		}
	}

	if targets := AllowedTargets(enum.DocumentTypeInvoice, "void"); len(targets) != 0 {
		t.Errorf("AllowedTargets(invoice, void) = %v, want none", targets)
	}
}

func TestHasStateMachine(t *testing.T) {
	for _, docType := range []enum.DocumentType{
		enum.DocumentTypeEstimate, enum.DocumentTypeSalesOrder,
		enum.DocumentTypeDeliveryNote, enum.DocumentTypeInvoice, enum.DocumentTypeBill,
	} {
		if !HasStateMachine(docType) {
			t.Errorf("HasStateMachine(%s) = false, want true", docType)
		}
	}
	if HasStateMachine(enum.DocumentTypeExpense) {
		t.Error("HasStateMachine(expense) = true, want false")
	}
	if HasStateMachine(enum.DocumentTypePayment) {
		t.Error("HasStateMachine(payment) = true, want false")
	}
}
