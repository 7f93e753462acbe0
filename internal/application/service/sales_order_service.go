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

// SalesOrderService handles sales order lifecycle operations
type SalesOrderService struct {
	orderRepo    repository.SalesOrderRepository
	customerRepo repository.CustomerRepository
	sequences    *SequenceService
	txManager    repository.TxManager
}

// NewSalesOrderService creates a new sales order service
func NewSalesOrderService(
	orderRepo repository.SalesOrderRepository,
	customerRepo repository.CustomerRepository,
	sequences *SequenceService,
	txManager repository.TxManager,
) *SalesOrderService {
	return &SalesOrderService{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		sequences:    sequences,
		txManager:    txManager,
	}
}

// CreateSalesOrderInput represents the create sales order input
type CreateSalesOrderInput struct {
	CustomerID      uuid.UUID
	OrderDate       time.Time
	ExpectedDate    *time.Time
	ShippingCharges decimal.Decimal
	DiscountAmount  decimal.Decimal
	Notes           *string
	Items           []LineItemInput
}

// CreateSalesOrder creates a draft sales order
func (s *SalesOrderService) CreateSalesOrder(ctx context.Context, input *CreateSalesOrderInput) (*entity.SalesOrder, error) {
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

	order := &entity.SalesOrder{
		CompanyID:         companyID,
		CustomerID:        customer.ID,
		CustomerName:      customer.Name,
		CustomerAddress:   customer.AddressSnapshot(),
		OrderDate:         dateOrToday(input.OrderDate),
		ExpectedDate:      input.ExpectedDate,
		Status:            enum.SalesOrderStatusDraft,
		FulfillmentStatus: enum.FulfillmentStatusUnfulfilled,
		Subtotal:          totals.Subtotal,
		TaxAmount:         totals.TaxAmount,
		DiscountAmount:    input.DiscountAmount,
		ShippingCharges:   input.ShippingCharges,
		GrandTotal:        totals.GrandTotal,
		Notes:             input.Notes,
		Items:             buildSalesOrderItems(input.Items, totals),
	}

	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		documentNo, err := s.sequences.Next(ctx, enum.DocumentTypeSalesOrder)
		if err != nil {
			return err
		}
		order.DocumentNo = documentNo
		return apperror.FromDBError(s.orderRepo.Create(ctx, order), "Sales order")
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// GetSalesOrder retrieves a sales order with its lines
func (s *SalesOrderService) GetSalesOrder(ctx context.Context, id uuid.UUID) (*entity.SalesOrder, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Sales order")
	}
	return order, nil
}

// ListSalesOrders lists sales orders with filters
func (s *SalesOrderService) ListSalesOrders(ctx context.Context, params *repository.SalesOrderFilterParams) (*pagination.PaginatedResult[entity.SalesOrder], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.Limit, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}

// UpdateSalesOrderInput represents the update sales order input
type UpdateSalesOrderInput struct {
	ID              uuid.UUID
	OrderDate       *time.Time
	ExpectedDate    *time.Time
	ShippingCharges *decimal.Decimal
	DiscountAmount  *decimal.Decimal
	Notes           *string
	Items           []LineItemInput
}

// UpdateSalesOrder replaces a draft order's editable fields and line set.
// The draft check runs under the row lock.
func (s *SalesOrderService) UpdateSalesOrder(ctx context.Context, input *UpdateSalesOrderInput) (*entity.SalesOrder, error) {
	if err := validateLineItems(input.Items); err != nil {
		return nil, err
	}

	var order *entity.SalesOrder
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.orderRepo.GetByIDForUpdate(ctx, input.ID)
		if err != nil {
			return err
		}
		if order == nil {
			return apperror.NewNotFoundError("Sales order")
		}
		if order.Status != enum.SalesOrderStatusDraft {
			return apperror.NewConflictError("Only draft sales orders can be edited")
		}

		if input.OrderDate != nil {
			order.OrderDate = *input.OrderDate
		}
		if input.ExpectedDate != nil {
			order.ExpectedDate = input.ExpectedDate
		}
		if input.ShippingCharges != nil {
			order.ShippingCharges = *input.ShippingCharges
		}
		if input.DiscountAmount != nil {
			order.DiscountAmount = *input.DiscountAmount
		}
		if input.Notes != nil {
			order.Notes = input.Notes
		}

		totals := computeTotals(input.Items, order.ShippingCharges, order.DiscountAmount)
		order.Subtotal = totals.Subtotal
		order.TaxAmount = totals.TaxAmount
		order.GrandTotal = totals.GrandTotal
		items := buildSalesOrderItems(input.Items, totals)

		if err := s.orderRepo.ReplaceItems(ctx, order.ID, items); err != nil {
			return err
		}
		if err := s.orderRepo.Update(ctx, order); err != nil {
			return err
		}
		order.Items = items
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// DeleteSalesOrder soft-deletes a draft sales order
func (s *SalesOrderService) DeleteSalesOrder(ctx context.Context, id uuid.UUID) error {
	return s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		order, err := s.orderRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return apperror.NewNotFoundError("Sales order")
		}
		if order.Status != enum.SalesOrderStatusDraft {
			return apperror.NewConflictError("Only draft sales orders can be deleted")
		}
		return s.orderRepo.Delete(ctx, id)
	})
}

func buildSalesOrderItems(items []LineItemInput, totals documentTotals) []entity.SalesOrderItem {
	out := make([]entity.SalesOrderItem, len(items))
	for i, item := range items {
		out[i] = entity.SalesOrderItem{
			LineNo:       i + 1,
			ProductID:    item.ProductID,
			Description:  item.Description,
			OrderedQty:   item.Quantity,
			DeliveredQty: decimal.Zero,
			Rate:         item.Rate,
			Discount:     item.Discount,
			TaxRate:      item.TaxRate,
			TaxAmount:    totals.Lines[i].TaxAmount,
			LineTotal:    totals.Lines[i].LineTotal,
		}
	}
	return out
}
