package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/ledgerly-api/internal/domain/entity"
	"github.com/sangkips/ledgerly-api/internal/domain/enum"
	"github.com/sangkips/ledgerly-api/internal/domain/repository"
	infraRepo "github.com/sangkips/ledgerly-api/internal/infrastructure/repository"
	"github.com/sangkips/ledgerly-api/pkg/apperror"
	"github.com/sangkips/ledgerly-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// PaymentService records payments and allocates them against invoices and
// bills. The conservation rule holds at all times: a payment's unallocated
// amount plus the sum of its allocations equals its amount. Target balances
// are only ever moved here, while the target row is locked.
type PaymentService struct {
	paymentRepo repository.PaymentRepository
	invoiceRepo repository.InvoiceRepository
	billRepo    repository.BillRepository
	sequences   *SequenceService
	txManager   repository.TxManager
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	invoiceRepo repository.InvoiceRepository,
	billRepo repository.BillRepository,
	sequences *SequenceService,
	txManager repository.TxManager,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		invoiceRepo: invoiceRepo,
		billRepo:    billRepo,
		sequences:   sequences,
		txManager:   txManager,
	}
}

// RecordPaymentInput represents a payment recorded directly against one
// invoice or bill.
type RecordPaymentInput struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	PaymentDate time.Time       `json:"payment_date"`
	Method      string          `json:"method"`
	Reference   *string         `json:"reference"`
	Notes       *string         `json:"notes"`
}

// RecordForInvoice records a customer payment against an invoice. The amount
// up to the invoice's remaining due is allocated immediately; any excess
// stays on the payment as unallocated credit. Paying a settled invoice fails
// with a validation error.
func (s *PaymentService) RecordForInvoice(ctx context.Context, invoiceID uuid.UUID, input *RecordPaymentInput) (*entity.Payment, error) {
	if !input.Amount.IsPositive() {
		return nil, amountMustBePositive()
	}

	var payment *entity.Payment
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		invoice, err := s.invoiceRepo.GetByIDForUpdate(ctx, invoiceID)
		if err != nil {
			return err
		}
		if invoice == nil {
			return apperror.NewNotFoundError("Invoice")
		}
		if invoice.AmountDue.LessThanOrEqual(paidTolerance) {
			return apperror.NewValidationError([]apperror.FieldError{
				{Field: "amount", Message: "Payment exceeds amount due"},
			})
		}

		payment, err = s.newPayment(ctx, enum.PaymentKindCustomer, &invoice.CustomerID, nil, input)
		if err != nil {
			return err
		}

		allocated := decimal.Min(input.Amount, invoice.AmountDue)
		payment.UnallocatedAmount = input.Amount.Sub(allocated)
		if err := s.paymentRepo.Create(ctx, payment); err != nil {
			return apperror.FromDBError(err, "Payment")
		}
		if err := s.paymentRepo.CreateAllocation(ctx, &entity.PaymentAllocation{
			PaymentID:  payment.ID,
			TargetType: enum.DocumentTypeInvoice,
			TargetID:   invoice.ID,
			Amount:     allocated,
		}); err != nil {
			return err
		}
		return s.applyToInvoice(ctx, invoice, allocated)
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// RecordForBill records a vendor payment against a bill, mirroring
// RecordForInvoice on the payable side.
func (s *PaymentService) RecordForBill(ctx context.Context, billID uuid.UUID, input *RecordPaymentInput) (*entity.Payment, error) {
	if !input.Amount.IsPositive() {
		return nil, amountMustBePositive()
	}

	var payment *entity.Payment
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		bill, err := s.billRepo.GetByIDForUpdate(ctx, billID)
		if err != nil {
			return err
		}
		if bill == nil {
			return apperror.NewNotFoundError("Bill")
		}
		if bill.AmountDue.LessThanOrEqual(paidTolerance) {
			return apperror.NewValidationError([]apperror.FieldError{
				{Field: "amount", Message: "Payment exceeds amount due"},
			})
		}

		payment, err = s.newPayment(ctx, enum.PaymentKindVendor, nil, &bill.VendorID, input)
		if err != nil {
			return err
		}

		allocated := decimal.Min(input.Amount, bill.AmountDue)
		payment.UnallocatedAmount = input.Amount.Sub(allocated)
		if err := s.paymentRepo.Create(ctx, payment); err != nil {
			return apperror.FromDBError(err, "Payment")
		}
		if err := s.paymentRepo.CreateAllocation(ctx, &entity.PaymentAllocation{
			PaymentID:  payment.ID,
			TargetType: enum.DocumentTypeBill,
			TargetID:   bill.ID,
			Amount:     allocated,
		}); err != nil {
			return err
		}
		return s.applyToBill(ctx, bill, allocated)
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// CreatePaymentInput represents an undirected payment, held fully
// unallocated until explicitly allocated.
type CreatePaymentInput struct {
	Kind        enum.PaymentKind `json:"kind" binding:"required"`
	CustomerID  *uuid.UUID       `json:"customer_id"`
	VendorID    *uuid.UUID       `json:"vendor_id"`
	Amount      decimal.Decimal  `json:"amount" binding:"required"`
	PaymentDate time.Time        `json:"payment_date"`
	Method      string           `json:"method"`
	Reference   *string          `json:"reference"`
	Notes       *string          `json:"notes"`
}

// CreatePayment records a payment without allocating it to any document
func (s *PaymentService) CreatePayment(ctx context.Context, input *CreatePaymentInput) (*entity.Payment, error) {
	if !input.Amount.IsPositive() {
		return nil, amountMustBePositive()
	}
	switch input.Kind {
	case enum.PaymentKindCustomer:
		if input.CustomerID == nil {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "customer_id", Message: "Customer is required for a customer payment"},
			})
		}
	case enum.PaymentKindVendor:
		if input.VendorID == nil {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "vendor_id", Message: "Vendor is required for a vendor payment"},
			})
		}
	default:
		return nil, apperror.NewBadRequestError("Unknown payment kind")
	}

	var payment *entity.Payment
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		payment, err = s.newPayment(ctx, input.Kind, input.CustomerID, input.VendorID, &RecordPaymentInput{
			Amount:      input.Amount,
			PaymentDate: input.PaymentDate,
			Method:      input.Method,
			Reference:   input.Reference,
			Notes:       input.Notes,
		})
		if err != nil {
			return err
		}
		payment.UnallocatedAmount = input.Amount
		return apperror.FromDBError(s.paymentRepo.Create(ctx, payment), "Payment")
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// AllocationInput applies part of a payment's unallocated amount to a target
type AllocationInput struct {
	TargetType enum.DocumentType `json:"target_type" binding:"required"`
	TargetID   uuid.UUID         `json:"target_id" binding:"required"`
	Amount     decimal.Decimal   `json:"amount" binding:"required"`
}

// Allocate applies part of a payment against an invoice or bill. The amount
// must fit within both the payment's unallocated balance and the target's
// remaining due; either overrun fails with Conflict.
func (s *PaymentService) Allocate(ctx context.Context, paymentID uuid.UUID, input *AllocationInput) (*entity.Payment, error) {
	if !input.Amount.IsPositive() {
		return nil, amountMustBePositive()
	}

	var payment *entity.Payment
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		payment, err = s.paymentRepo.GetByIDForUpdate(ctx, paymentID)
		if err != nil {
			return err
		}
		if payment == nil {
			return apperror.NewNotFoundError("Payment")
		}
		if input.Amount.GreaterThan(payment.UnallocatedAmount) {
			return apperror.NewConflictError("Allocation exceeds the payment's unallocated amount")
		}

		switch input.TargetType {
		case enum.DocumentTypeInvoice:
			if payment.Kind != enum.PaymentKindCustomer {
				return apperror.NewUnprocessableError("Vendor payments cannot be allocated to invoices")
			}
			invoice, err := s.invoiceRepo.GetByIDForUpdate(ctx, input.TargetID)
			if err != nil {
				return err
			}
			if invoice == nil {
				return apperror.NewNotFoundError("Invoice")
			}
			if input.Amount.GreaterThan(invoice.AmountDue) {
				return apperror.NewConflictError("Allocation exceeds the invoice's amount due")
			}
			if err := s.applyToInvoice(ctx, invoice, input.Amount); err != nil {
				return err
			}
		case enum.DocumentTypeBill:
			if payment.Kind != enum.PaymentKindVendor {
				return apperror.NewUnprocessableError("Customer payments cannot be allocated to bills")
			}
			bill, err := s.billRepo.GetByIDForUpdate(ctx, input.TargetID)
			if err != nil {
				return err
			}
			if bill == nil {
				return apperror.NewNotFoundError("Bill")
			}
			if input.Amount.GreaterThan(bill.AmountDue) {
				return apperror.NewConflictError("Allocation exceeds the bill's amount due")
			}
			if err := s.applyToBill(ctx, bill, input.Amount); err != nil {
				return err
			}
		default:
			return apperror.NewBadRequestError("Allocation target must be an invoice or a bill")
		}

		if err := s.paymentRepo.CreateAllocation(ctx, &entity.PaymentAllocation{
			PaymentID:  payment.ID,
			TargetType: input.TargetType,
			TargetID:   input.TargetID,
			Amount:     input.Amount,
		}); err != nil {
			return err
		}
		payment.UnallocatedAmount = payment.UnallocatedAmount.Sub(input.Amount)
		return s.paymentRepo.Update(ctx, payment)
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// GetPayment retrieves a payment with its allocations
func (s *PaymentService) GetPayment(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, apperror.NewNotFoundError("Payment")
	}
	return payment, nil
}

// ListPayments lists payments with filters
func (s *PaymentService) ListPayments(ctx context.Context, params *repository.PaymentFilterParams) (*pagination.PaginatedResult[entity.Payment], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	payments, total, err := s.paymentRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.Limit, total)
	return pagination.NewPaginatedResult(payments, pag), nil
}

// ListAllocations lists the allocations of a payment
func (s *PaymentService) ListAllocations(ctx context.Context, paymentID uuid.UUID) ([]entity.PaymentAllocation, error) {
	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, apperror.NewNotFoundError("Payment")
	}
	return s.paymentRepo.ListAllocations(ctx, paymentID)
}

// DeletePayment removes a payment that has not touched any document balance.
// A payment with allocations fails with Conflict; allocations would have to
// be unwound first, which is not supported.
func (s *PaymentService) DeletePayment(ctx context.Context, id uuid.UUID) error {
	return s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		payment, err := s.paymentRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if payment == nil {
			return apperror.NewNotFoundError("Payment")
		}
		if !payment.UnallocatedAmount.Equal(payment.Amount) {
			return apperror.NewConflictError("Payments with allocations cannot be deleted")
		}
		return s.paymentRepo.Delete(ctx, id)
	})
}

func (s *PaymentService) newPayment(ctx context.Context, kind enum.PaymentKind, customerID, vendorID *uuid.UUID, input *RecordPaymentInput) (*entity.Payment, error) {
	companyID, ok := infraRepo.GetCompanyID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Company context required")
	}

	docType := enum.DocumentTypePayment
	if kind == enum.PaymentKindVendor {
		docType = enum.DocumentTypeVendorPayment
	}
	documentNo, err := s.sequences.Next(ctx, docType)
	if err != nil {
		return nil, err
	}

	return &entity.Payment{
		CompanyID:   companyID,
		DocumentNo:  documentNo,
		Kind:        kind,
		CustomerID:  customerID,
		VendorID:    vendorID,
		PaymentDate: dateOrToday(input.PaymentDate),
		Amount:      input.Amount,
		Method:      input.Method,
		Reference:   input.Reference,
		Notes:       input.Notes,
	}, nil
}

// applyToInvoice moves an invoice's paid and due balances and recomputes its
// payment status. Caller holds the row lock.
func (s *PaymentService) applyToInvoice(ctx context.Context, invoice *entity.Invoice, amount decimal.Decimal) error {
	invoice.AmountPaid = invoice.AmountPaid.Add(amount)
	invoice.AmountDue = invoice.GrandTotal.Sub(invoice.AmountPaid)
	invoice.PaymentStatus = settledStatus(invoice.AmountPaid, invoice.AmountDue)
	return s.invoiceRepo.Update(ctx, invoice)
}

func (s *PaymentService) applyToBill(ctx context.Context, bill *entity.Bill, amount decimal.Decimal) error {
	bill.AmountPaid = bill.AmountPaid.Add(amount)
	bill.AmountDue = bill.GrandTotal.Sub(bill.AmountPaid)
	bill.PaymentStatus = settledStatus(bill.AmountPaid, bill.AmountDue)
	return s.billRepo.Update(ctx, bill)
}

// settledStatus classifies a balance as unpaid, partially paid, or paid,
// treating residues within the rounding tolerance as fully settled.
func settledStatus(paid, due decimal.Decimal) enum.PaymentStatus {
	switch {
	case due.LessThanOrEqual(paidTolerance):
		return enum.PaymentStatusPaid
	case paid.IsPositive():
		return enum.PaymentStatusPartiallyPaid
	default:
		return enum.PaymentStatusUnpaid
	}
}

func amountMustBePositive() error {
	return apperror.NewValidationError([]apperror.FieldError{
		{Field: "amount", Message: "Amount must be greater than zero"},
	})
}
