package service

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/sangkips/ledgerly-api/internal/domain/enum"
)

func TestSequenceNextFormatsAndIncrements(t *testing.T) {
	env := newTestEnv(t)

	first, err := env.sequences.Next(env.ctx, enum.DocumentTypeInvoice)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if first != "INV-00001" {
		t.Errorf("first number = %q, want INV-00001", first)
	}

	second, err := env.sequences.Next(env.ctx, enum.DocumentTypeInvoice)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if second != "INV-00002" {
		t.Errorf("second number = %q, want INV-00002", second)
	}
}

func TestSequencePerTypeCounters(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.sequences.Next(env.ctx, enum.DocumentTypeInvoice); err != nil {
		t.Fatalf("Next invoice: %v", err)
	}
	got, err := env.sequences.Next(env.ctx, enum.DocumentTypeEstimate)
	if err != nil {
		t.Fatalf("Next estimate: %v", err)
	}
	if got != "EST-00001" {
		t.Errorf("estimate counter = %q, want EST-00001; counters must be independent", got)
	}
}

func TestSequencePeekDoesNotConsume(t *testing.T) {
	env := newTestEnv(t)

	peeked, err := env.sequences.Peek(env.ctx, enum.DocumentTypeSalesOrder)
	if err != nil {
		t.Fatalf("Peek: %v", err)
	}
	issued, err := env.sequences.Next(env.ctx, enum.DocumentTypeSalesOrder)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if peeked != issued {
		t.Errorf("Peek = %q but Next issued %q", peeked, issued)
	}
}

func TestSequenceUpdateNeverLowersCounter(t *testing.T) {
	env := newTestEnv(t)

	for i := 0; i < 5; i++ {
		if _, err := env.sequences.Next(env.ctx, enum.DocumentTypeBill); err != nil {
			t.Fatalf("Next: %v", err)
		}
	}

	lower := int64(2)
	_, err := env.sequences.Update(env.ctx, enum.DocumentTypeBill, &UpdateSequenceInput{NextNumber: &lower})
	wantConflict(t, err)

	higher := int64(100)
	seq, err := env.sequences.Update(env.ctx, enum.DocumentTypeBill, &UpdateSequenceInput{NextNumber: &higher})
	if err != nil {
		t.Fatalf("Update raise: %v", err)
	}
	if seq.NextNumber != 100 {
		t.Errorf("NextNumber = %d, want 100", seq.NextNumber)
	}

	got, err := env.sequences.Next(env.ctx, enum.DocumentTypeBill)
	if err != nil {
		t.Fatalf("Next after raise: %v", err)
	}
	if got != "BILL-00100" {
		t.Errorf("number after raise = %q, want BILL-00100", got)
	}
}

func TestSequenceUpdatePrefixAndPadding(t *testing.T) {
	env := newTestEnv(t)

	prefix := "SALES"
	padding := 3
	if _, err := env.sequences.Update(env.ctx, enum.DocumentTypeInvoice, &UpdateSequenceInput{
		Prefix:  &prefix,
		Padding: &padding,
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := env.sequences.Next(env.ctx, enum.DocumentTypeInvoice)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if got != fmt.Sprintf("SALES-%03d", 1) {
		t.Errorf("number = %q, want SALES-001", got)
	}
}

func TestSequenceUnknownType(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.sequences.Next(env.ctx, enum.DocumentType("purchase_order"))
	wantAppError(t, err, http.StatusBadRequest)
}
