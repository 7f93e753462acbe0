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

// BillService handles vendor bill lifecycle operations
type BillService struct {
	billRepo   repository.BillRepository
	vendorRepo repository.VendorRepository
	sequences  *SequenceService
	txManager  repository.TxManager
}

// NewBillService creates a new bill service
func NewBillService(
	billRepo repository.BillRepository,
	vendorRepo repository.VendorRepository,
	sequences *SequenceService,
	txManager repository.TxManager,
) *BillService {
	return &BillService{
		billRepo:   billRepo,
		vendorRepo: vendorRepo,
		sequences:  sequences,
		txManager:  txManager,
	}
}

// CreateBillInput represents the create bill input
type CreateBillInput struct {
	VendorID        uuid.UUID
	VendorBillNo    *string
	BillDate        time.Time
	DueDate         *time.Time
	ShippingCharges decimal.Decimal
	DiscountAmount  decimal.Decimal
	Notes           *string
	Items           []LineItemInput
}

// CreateBill creates a draft bill with the full amount outstanding
func (s *BillService) CreateBill(ctx context.Context, input *CreateBillInput) (*entity.Bill, error) {
	companyID, ok := infraRepo.GetCompanyID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Company context required")
	}
	if err := validateLineItems(input.Items); err != nil {
		return nil, err
	}

	vendor, err := s.vendorRepo.GetByID(ctx, input.VendorID)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, apperror.NewNotFoundError("Vendor")
	}

	totals := computeTotals(input.Items, input.ShippingCharges, input.DiscountAmount)

	bill := &entity.Bill{
		CompanyID:       companyID,
		VendorID:        vendor.ID,
		VendorName:      vendor.Name,
		VendorAddress:   vendor.AddressSnapshot(),
		VendorBillNo:    input.VendorBillNo,
		BillDate:        dateOrToday(input.BillDate),
		DueDate:         input.DueDate,
		Status:          enum.BillStatusDraft,
		PaymentStatus:   enum.PaymentStatusUnpaid,
		Subtotal:        totals.Subtotal,
		TaxAmount:       totals.TaxAmount,
		DiscountAmount:  input.DiscountAmount,
		ShippingCharges: input.ShippingCharges,
		GrandTotal:      totals.GrandTotal,
		AmountPaid:      decimal.Zero,
		AmountDue:       totals.GrandTotal,
		Notes:           input.Notes,
		Items:           buildBillItems(input.Items, totals),
	}

	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		documentNo, err := s.sequences.Next(ctx, enum.DocumentTypeBill)
		if err != nil {
			return err
		}
		bill.DocumentNo = documentNo
		return apperror.FromDBError(s.billRepo.Create(ctx, bill), "Bill")
	})
	if err != nil {
		return nil, err
	}
	return bill, nil
}

// GetBill retrieves a bill with its lines
func (s *BillService) GetBill(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	bill, err := s.billRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}
	return bill, nil
}

// ListBills lists bills with filters
func (s *BillService) ListBills(ctx context.Context, params *repository.BillFilterParams) (*pagination.PaginatedResult[entity.Bill], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	bills, total, err := s.billRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.Limit, total)
	return pagination.NewPaginatedResult(bills, pag), nil
}

// UpdateBillInput represents the update bill input
type UpdateBillInput struct {
	ID              uuid.UUID
	VendorBillNo    *string
	BillDate        *time.Time
	DueDate         *time.Time
	ShippingCharges *decimal.Decimal
	DiscountAmount  *decimal.Decimal
	Notes           *string
	Items           []LineItemInput
}

// UpdateBill replaces a draft bill's editable fields and line set. The
// draft check runs under the row lock.
func (s *BillService) UpdateBill(ctx context.Context, input *UpdateBillInput) (*entity.Bill, error) {
	if err := validateLineItems(input.Items); err != nil {
		return nil, err
	}

	var bill *entity.Bill
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		bill, err = s.billRepo.GetByIDForUpdate(ctx, input.ID)
		if err != nil {
			return err
		}
		if bill == nil {
			return apperror.NewNotFoundError("Bill")
		}
		if bill.Status != enum.BillStatusDraft {
			return apperror.NewConflictError("Only draft bills can be edited")
		}

		if input.VendorBillNo != nil {
			bill.VendorBillNo = input.VendorBillNo
		}
		if input.BillDate != nil {
			bill.BillDate = *input.BillDate
		}
		if input.DueDate != nil {
			bill.DueDate = input.DueDate
		}
		if input.ShippingCharges != nil {
			bill.ShippingCharges = *input.ShippingCharges
		}
		if input.DiscountAmount != nil {
			bill.DiscountAmount = *input.DiscountAmount
		}
		if input.Notes != nil {
			bill.Notes = input.Notes
		}

		totals := computeTotals(input.Items, bill.ShippingCharges, bill.DiscountAmount)
		bill.Subtotal = totals.Subtotal
		bill.TaxAmount = totals.TaxAmount
		bill.GrandTotal = totals.GrandTotal
		bill.AmountDue = totals.GrandTotal.Sub(bill.AmountPaid)
		items := buildBillItems(input.Items, totals)

		if err := s.billRepo.ReplaceItems(ctx, bill.ID, items); err != nil {
			return err
		}
		if err := s.billRepo.Update(ctx, bill); err != nil {
			return err
		}
		bill.Items = items
		return nil
	})
	if err != nil {
		return nil, err
	}
	return bill, nil
}

// DeleteBill soft-deletes a draft bill
func (s *BillService) DeleteBill(ctx context.Context, id uuid.UUID) error {
	return s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		bill, err := s.billRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if bill == nil {
			return apperror.NewNotFoundError("Bill")
		}
		if bill.Status != enum.BillStatusDraft {
			return apperror.NewConflictError("Only draft bills can be deleted")
		}
		return s.billRepo.Delete(ctx, id)
	})
}

// MarkOverdue flips open bills past their due date to overdue
func (s *BillService) MarkOverdue(ctx context.Context) (int64, error) {
	return s.billRepo.MarkOverdue(ctx, time.Now())
}

func buildBillItems(items []LineItemInput, totals documentTotals) []entity.BillItem {
	out := make([]entity.BillItem, len(items))
	for i, item := range items {
		out[i] = entity.BillItem{
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
