package service

import (
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sangkips/ledgerly-api/internal/domain/enum"
)

func TestRecordForInvoicePartialThenSettle(t *testing.T) {
	env := newTestEnv(t)
	customer := env.createCustomer(t, "Acme")
	invoice := env.createInvoice(t, customer.ID, []LineItemInput{simpleLine(10, 100)})
	wantDecimal(t, invoice.AmountDue, 1000, "initial amount due")

	payment, err := env.payments.RecordForInvoice(env.ctx, invoice.ID, &RecordPaymentInput{
		Amount:      decimal.NewFromInt(400),
		PaymentDate: time.Now(),
		Method:      "bank_transfer",
	})
	if err != nil {
		t.Fatalf("first payment: %v", err)
	}
	wantDecimal(t, payment.UnallocatedAmount, 0, "fully allocated payment")

	reloaded, err := env.invoices.GetInvoice(env.ctx, invoice.ID)
	if err != nil {
		t.Fatalf("reload invoice: %v", err)
	}
	wantDecimal(t, reloaded.AmountPaid, 400, "amount paid")
	wantDecimal(t, reloaded.AmountDue, 600, "amount due")
	if reloaded.PaymentStatus != enum.PaymentStatusPartiallyPaid {
		t.Errorf("payment status = %s, want partially_paid", reloaded.PaymentStatus)
	}

	if _, err := env.payments.RecordForInvoice(env.ctx, invoice.ID, &RecordPaymentInput{
		Amount:      decimal.NewFromInt(600),
		PaymentDate: time.Now(),
	}); err != nil {
		t.Fatalf("second payment: %v", err)
	}

	reloaded, err = env.invoices.GetInvoice(env.ctx, invoice.ID)
	if err != nil {
		t.Fatalf("reload invoice: %v", err)
	}
	wantDecimal(t, reloaded.AmountDue, 0, "amount due after settlement")
	if reloaded.PaymentStatus != enum.PaymentStatusPaid {
		t.Errorf("payment status = %s, want paid", reloaded.PaymentStatus)
	}

	// A settled invoice accepts no further payments
	_, err = env.payments.RecordForInvoice(env.ctx, invoice.ID, &RecordPaymentInput{
		Amount:      decimal.NewFromInt(1),
		PaymentDate: time.Now(),
	})
	wantAppError(t, err, http.StatusUnprocessableEntity)
}

func TestRecordForInvoiceOverpaymentStaysUnallocated(t *testing.T) {
	env := newTestEnv(t)
	customer := env.createCustomer(t, "Acme")
	invoice := env.createInvoice(t, customer.ID, []LineItemInput{simpleLine(1, 100)})

	payment, err := env.payments.RecordForInvoice(env.ctx, invoice.ID, &RecordPaymentInput{
		Amount:      decimal.NewFromInt(150),
		PaymentDate: time.Now(),
	})
	if err != nil {
		t.Fatalf("overpayment: %v", err)
	}
	wantDecimal(t, payment.Amount, 150, "payment amount")
	wantDecimal(t, payment.UnallocatedAmount, 50, "excess stays as credit")

	reloaded, err := env.invoices.GetInvoice(env.ctx, invoice.ID)
	if err != nil {
		t.Fatalf("reload invoice: %v", err)
	}
	wantDecimal(t, reloaded.AmountDue, 0, "invoice settled")
	if reloaded.PaymentStatus != enum.PaymentStatusPaid {
		t.Errorf("payment status = %s, want paid", reloaded.PaymentStatus)
	}
}

func TestAllocationConservation(t *testing.T) {
	env := newTestEnv(t)
	customer := env.createCustomer(t, "Acme")
	first := env.createInvoice(t, customer.ID, []LineItemInput{simpleLine(1, 300)})
	second := env.createInvoice(t, customer.ID, []LineItemInput{simpleLine(1, 500)})

	payment, err := env.payments.CreatePayment(env.ctx, &CreatePaymentInput{
		Kind:        enum.PaymentKindCustomer,
		CustomerID:  &customer.ID,
		Amount:      decimal.NewFromInt(600),
		PaymentDate: time.Now(),
	})
	if err != nil {
		t.Fatalf("CreatePayment: %v", err)
	}
	wantDecimal(t, payment.UnallocatedAmount, 600, "fresh payment fully unallocated")

	payment, err = env.payments.Allocate(env.ctx, payment.ID, &AllocationInput{
		TargetType: enum.DocumentTypeInvoice,
		TargetID:   first.ID,
		Amount:     decimal.NewFromInt(300),
	})
	if err != nil {
		t.Fatalf("first allocation: %v", err)
	}
	payment, err = env.payments.Allocate(env.ctx, payment.ID, &AllocationInput{
		TargetType: enum.DocumentTypeInvoice,
		TargetID:   second.ID,
		Amount:     decimal.NewFromInt(200),
	})
	if err != nil {
		t.Fatalf("second allocation: %v", err)
	}

	// unallocated + sum(allocations) == amount
	allocations, err := env.payments.ListAllocations(env.ctx, payment.ID)
	if err != nil {
		t.Fatalf("ListAllocations: %v", err)
	}
	allocated := decimal.Zero
	for _, a := range allocations {
		allocated = allocated.Add(a.Amount)
	}
	if !payment.UnallocatedAmount.Add(allocated).Equal(payment.Amount) {
		t.Errorf("conservation broken: unallocated %s + allocated %s != amount %s",
			payment.UnallocatedAmount, allocated, payment.Amount)
	}
	wantDecimal(t, payment.UnallocatedAmount, 100, "remaining credit")

	// Allocating more than the remaining credit is refused
	_, err = env.payments.Allocate(env.ctx, payment.ID, &AllocationInput{
		TargetType: enum.DocumentTypeInvoice,
		TargetID:   second.ID,
		Amount:     decimal.NewFromInt(200),
	})
	wantConflict(t, err)
}

func TestAllocateRespectsTargetDue(t *testing.T) {
	env := newTestEnv(t)
	customer := env.createCustomer(t, "Acme")
	invoice := env.createInvoice(t, customer.ID, []LineItemInput{simpleLine(1, 100)})

	payment, err := env.payments.CreatePayment(env.ctx, &CreatePaymentInput{
		Kind:        enum.PaymentKindCustomer,
		CustomerID:  &customer.ID,
		Amount:      decimal.NewFromInt(500),
		PaymentDate: time.Now(),
	})
	if err != nil {
		t.Fatalf("CreatePayment: %v", err)
	}

	_, err = env.payments.Allocate(env.ctx, payment.ID, &AllocationInput{
		TargetType: enum.DocumentTypeInvoice,
		TargetID:   invoice.ID,
		Amount:     decimal.NewFromInt(150),
	})
	wantConflict(t, err)
}

func TestAllocateKindMismatch(t *testing.T) {
	env := newTestEnv(t)
	customer := env.createCustomer(t, "Acme")
	vendor := env.createVendor(t, "Supplies Inc")
	invoice := env.createInvoice(t, customer.ID, []LineItemInput{simpleLine(1, 100)})

	payment, err := env.payments.CreatePayment(env.ctx, &CreatePaymentInput{
		Kind:        enum.PaymentKindVendor,
		VendorID:    &vendor.ID,
		Amount:      decimal.NewFromInt(100),
		PaymentDate: time.Now(),
	})
	if err != nil {
		t.Fatalf("CreatePayment: %v", err)
	}

	_, err = env.payments.Allocate(env.ctx, payment.ID, &AllocationInput{
		TargetType: enum.DocumentTypeInvoice,
		TargetID:   invoice.ID,
		Amount:     decimal.NewFromInt(100),
	})
	wantAppError(t, err, http.StatusUnprocessableEntity)
}

func TestRecordForBill(t *testing.T) {
	env := newTestEnv(t)
	vendor := env.createVendor(t, "Supplies Inc")
	bill := env.createBill(t, vendor.ID, []LineItemInput{simpleLine(2, 250)})
	wantDecimal(t, bill.AmountDue, 500, "initial bill due")

	payment, err := env.payments.RecordForBill(env.ctx, bill.ID, &RecordPaymentInput{
		Amount:      decimal.NewFromInt(500),
		PaymentDate: time.Now(),
	})
	if err != nil {
		t.Fatalf("RecordForBill: %v", err)
	}
	if payment.Kind != enum.PaymentKindVendor {
		t.Errorf("payment kind = %s, want vendor", payment.Kind)
	}

	reloaded, err := env.bills.GetBill(env.ctx, bill.ID)
	if err != nil {
		t.Fatalf("reload bill: %v", err)
	}
	if reloaded.PaymentStatus != enum.PaymentStatusPaid {
		t.Errorf("bill payment status = %s, want paid", reloaded.PaymentStatus)
	}
}

func TestDeletePaymentOnlyWhenUnallocated(t *testing.T) {
	env := newTestEnv(t)
	customer := env.createCustomer(t, "Acme")
	invoice := env.createInvoice(t, customer.ID, []LineItemInput{simpleLine(1, 100)})

	allocated, err := env.payments.RecordForInvoice(env.ctx, invoice.ID, &RecordPaymentInput{
		Amount:      decimal.NewFromInt(100),
		PaymentDate: time.Now(),
	})
	if err != nil {
		t.Fatalf("RecordForInvoice: %v", err)
	}
	wantConflict(t, env.payments.DeletePayment(env.ctx, allocated.ID))

	unallocated, err := env.payments.CreatePayment(env.ctx, &CreatePaymentInput{
		Kind:        enum.PaymentKindCustomer,
		CustomerID:  &customer.ID,
		Amount:      decimal.NewFromInt(50),
		PaymentDate: time.Now(),
	})
	if err != nil {
		t.Fatalf("CreatePayment: %v", err)
	}
	if err := env.payments.DeletePayment(env.ctx, unallocated.ID); err != nil {
		t.Fatalf("DeletePayment: %v", err)
	}
}

func TestPaymentAmountMustBePositive(t *testing.T) {
	env := newTestEnv(t)
	customer := env.createCustomer(t, "Acme")
	invoice := env.createInvoice(t, customer.ID, []LineItemInput{simpleLine(1, 100)})

	_, err := env.payments.RecordForInvoice(env.ctx, invoice.ID, &RecordPaymentInput{
		Amount:      decimal.NewFromInt(-10),
		PaymentDate: time.Now(),
	})
	wantAppError(t, err, http.StatusUnprocessableEntity)
}
