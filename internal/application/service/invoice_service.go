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

// InvoiceService handles invoice lifecycle operations
type InvoiceService struct {
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
	sequences    *SequenceService
	txManager    repository.TxManager
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
	sequences *SequenceService,
	txManager repository.TxManager,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		sequences:    sequences,
		txManager:    txManager,
	}
}

// CreateInvoiceInput represents the create invoice input
type CreateInvoiceInput struct {
	CustomerID      uuid.UUID
	InvoiceDate     time.Time
	DueDate         *time.Time
	ShippingCharges decimal.Decimal
	DiscountAmount  decimal.Decimal
	Notes           *string
	Items           []LineItemInput
}

// CreateInvoice creates a draft invoice with the full amount outstanding
func (s *InvoiceService) CreateInvoice(ctx context.Context, input *CreateInvoiceInput) (*entity.Invoice, error) {
	companyID, ok := infraRepo.GetCompanyID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Company context required")
	}
	if err := validateLineItems(input.Items); err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	totals := computeTotals(input.Items, input.ShippingCharges, input.DiscountAmount)

	invoice := &entity.Invoice{
		CompanyID:       companyID,
		CustomerID:      customer.ID,
		CustomerName:    customer.Name,
		CustomerAddress: customer.AddressSnapshot(),
		InvoiceDate:     dateOrToday(input.InvoiceDate),
		DueDate:         input.DueDate,
		Status:          enum.InvoiceStatusDraft,
		PaymentStatus:   enum.PaymentStatusUnpaid,
		Subtotal:        totals.Subtotal,
		TaxAmount:       totals.TaxAmount,
		DiscountAmount:  input.DiscountAmount,
		ShippingCharges: input.ShippingCharges,
		GrandTotal:      totals.GrandTotal,
		AmountPaid:      decimal.Zero,
		AmountDue:       totals.GrandTotal,
		Notes:           input.Notes,
		Items:           buildInvoiceItems(input.Items, totals),
	}

	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		documentNo, err := s.sequences.Next(ctx, enum.DocumentTypeInvoice)
		if err != nil {
			return err
		}
		invoice.DocumentNo = documentNo
		return apperror.FromDBError(s.invoiceRepo.Create(ctx, invoice), "Invoice")
	})
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

// GetInvoice retrieves an invoice with its lines
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// ListInvoices lists invoices with filters
func (s *InvoiceService) ListInvoices(ctx context.Context, params *repository.InvoiceFilterParams) (*pagination.PaginatedResult[entity.Invoice], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	invoices, total, err := s.invoiceRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.Limit, total)
	return pagination.NewPaginatedResult(invoices, pag), nil
}

// UpdateInvoiceInput represents the update invoice input
type UpdateInvoiceInput struct {
	ID              uuid.UUID
	InvoiceDate     *time.Time
	DueDate         *time.Time
	ShippingCharges *decimal.Decimal
	DiscountAmount  *decimal.Decimal
	Notes           *string
	Items           []LineItemInput
}

// UpdateInvoice replaces a draft invoice's editable fields and line set.
// The outstanding amount follows the new grand total; drafts cannot have
// payments against them yet. The draft check runs under the row lock.
func (s *InvoiceService) UpdateInvoice(ctx context.Context, input *UpdateInvoiceInput) (*entity.Invoice, error) {
	if err := validateLineItems(input.Items); err != nil {
		return nil, err
	}

	var invoice *entity.Invoice
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		invoice, err = s.invoiceRepo.GetByIDForUpdate(ctx, input.ID)
		if err != nil {
			return err
		}
		if invoice == nil {
			return apperror.NewNotFoundError("Invoice")
		}
		if invoice.Status != enum.InvoiceStatusDraft {
			return apperror.NewConflictError("Only draft invoices can be edited")
		}

		if input.InvoiceDate != nil {
			invoice.InvoiceDate = *input.InvoiceDate
		}
		if input.DueDate != nil {
			invoice.DueDate = input.DueDate
		}
		if input.ShippingCharges != nil {
			invoice.ShippingCharges = *input.ShippingCharges
		}
		if input.DiscountAmount != nil {
			invoice.DiscountAmount = *input.DiscountAmount
		}
		if input.Notes != nil {
			invoice.Notes = input.Notes
		}

		totals := computeTotals(input.Items, invoice.ShippingCharges, invoice.DiscountAmount)
		invoice.Subtotal = totals.Subtotal
		invoice.TaxAmount = totals.TaxAmount
		invoice.GrandTotal = totals.GrandTotal
		invoice.AmountDue = totals.GrandTotal.Sub(invoice.AmountPaid)
		items := buildInvoiceItems(input.Items, totals)

		if err := s.invoiceRepo.ReplaceItems(ctx, invoice.ID, items); err != nil {
			return err
		}
		if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
			return err
		}
		invoice.Items = items
		return nil
	})
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

// DeleteInvoice soft-deletes a draft invoice
func (s *InvoiceService) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	return s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		invoice, err := s.invoiceRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if invoice == nil {
			return apperror.NewNotFoundError("Invoice")
		}
		if invoice.Status != enum.InvoiceStatusDraft {
			return apperror.NewConflictError("Only draft invoices can be deleted")
		}
		return s.invoiceRepo.Delete(ctx, id)
	})
}

// MarkOverdue flips sent invoices past their due date to overdue
func (s *InvoiceService) MarkOverdue(ctx context.Context) (int64, error) {
	return s.invoiceRepo.MarkOverdue(ctx, time.Now())
}

func buildInvoiceItems(items []LineItemInput, totals documentTotals) []entity.InvoiceItem {
	out := make([]entity.InvoiceItem, len(items))
	for i, item := range items {
		out[i] = entity.InvoiceItem{
			LineNo:      i + 1,
			ProductID:   item.ProductID,
			Description: item.Description,
			Quantity:    item.Quantity,
			Rate:        item.Rate,
			Discount:    item.Discount,
			TaxRate:     item.TaxRate,
			TaxAmount:   totals.Lines[i].TaxAmount,
			LineTotal:   totals.Lines[i].LineTotal,
		}
	}
	return out
}
