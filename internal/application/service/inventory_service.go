package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/ledgerly-api/internal/domain/entity"
	"github.com/sangkips/ledgerly-api/internal/domain/enum"
	"github.com/sangkips/ledgerly-api/internal/domain/repository"
	infraRepo "github.com/sangkips/ledgerly-api/internal/infrastructure/repository"
	"github.com/sangkips/ledgerly-api/pkg/apperror"
	"github.com/sangkips/ledgerly-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

const defaultLocation = "default"

// InventoryService owns the append-only stock ledger. Every movement locks
// the product row, records a transaction with before/after balances, and
// updates the cached current_stock and per-location quantity in the same
// database transaction. Stock can never go negative.
type InventoryService struct {
	productRepo   repository.ProductRepository
	inventoryRepo repository.InventoryRepository
	txManager     repository.TxManager
}

// NewInventoryService creates a new inventory service
func NewInventoryService(
	productRepo repository.ProductRepository,
	inventoryRepo repository.InventoryRepository,
	txManager repository.TxManager,
) *InventoryService {
	return &InventoryService{
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
		txManager:     txManager,
	}
}

// AdjustmentInput represents a manual stock adjustment
type AdjustmentInput struct {
	ProductID uuid.UUID                     `json:"product_id" binding:"required"`
	Type      enum.InventoryTransactionType `json:"type" binding:"required"`
	Quantity  decimal.Decimal               `json:"quantity" binding:"required"`
	Location  string                        `json:"location"`
	Reason    *string                       `json:"reason"`
}

// TransferInput moves stock between two locations of the same product
type TransferInput struct {
	ProductID    uuid.UUID       `json:"product_id" binding:"required"`
	Quantity     decimal.Decimal `json:"quantity" binding:"required"`
	FromLocation string          `json:"from_location" binding:"required"`
	ToLocation   string          `json:"to_location" binding:"required"`
	Reason       *string         `json:"reason"`
}

// Adjust records a manual stock movement (opening stock, adjustment,
// write-off). Inbound types add, outbound types deduct; an outbound
// quantity larger than what is on hand fails with Conflict.
func (s *InventoryService) Adjust(ctx context.Context, input *AdjustmentInput) (*entity.InventoryTransaction, error) {
	if !input.Type.Valid() {
		return nil, apperror.NewBadRequestError("Invalid inventory transaction type")
	}
	switch input.Type {
	case enum.InventoryTxnTransferIn, enum.InventoryTxnTransferOut,
		enum.InventoryTxnDeliveryNote:
		return nil, apperror.NewBadRequestError("Transaction type is not a manual adjustment")
	}
	qty := input.Quantity.Abs()
	if qty.IsZero() {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "quantity", Message: "Quantity must be greater than zero"},
		})
	}
	location := input.Location
	if location == "" {
		location = defaultLocation
	}

	delta := qty
	if !input.Type.Inbound() {
		delta = qty.Neg()
	}

	var txn *entity.InventoryTransaction
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		txn, err = s.move(ctx, input.ProductID, location, delta, input.Type, nil, nil, input.Reason)
		return err
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}

// Transfer moves stock between locations as a paired transfer_out and
// transfer_in, both recorded against the same product. Total stock is
// unchanged; only location balances move.
func (s *InventoryService) Transfer(ctx context.Context, input *TransferInput) ([]entity.InventoryTransaction, error) {
	qty := input.Quantity.Abs()
	if qty.IsZero() {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "quantity", Message: "Quantity must be greater than zero"},
		})
	}
	if input.FromLocation == input.ToLocation {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "to_location", Message: "Source and destination locations must differ"},
		})
	}

	var out, in *entity.InventoryTransaction
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		out, err = s.move(ctx, input.ProductID, input.FromLocation, qty.Neg(),
			enum.InventoryTxnTransferOut, nil, nil, input.Reason)
		if err != nil {
			return err
		}
		in, err = s.move(ctx, input.ProductID, input.ToLocation, qty,
			enum.InventoryTxnTransferIn, nil, nil, input.Reason)
		return err
	})
	if err != nil {
		return nil, err
	}
	return []entity.InventoryTransaction{*out, *in}, nil
}

// DeductForShipment deducts the tracked products on a delivery note from
// stock. Lines without a product, and products that do not track inventory,
// are skipped; any shortfall fails the whole call so a shipment never ships
// partially deducted. Must run inside the caller's transaction.
func (s *InventoryService) DeductForShipment(ctx context.Context, note *entity.DeliveryNote) error {
	refType := string(enum.InventoryTxnDeliveryNote)
	for _, item := range note.Items {
		if item.ProductID == nil {
			continue
		}
		product, err := s.productRepo.GetByID(ctx, *item.ProductID)
		if err != nil {
			return err
		}
		if product == nil || !product.TrackInventory {
			continue
		}
		_, err = s.move(ctx, *item.ProductID, defaultLocation, item.ShippedQty.Abs().Neg(),
			enum.InventoryTxnDeliveryNote, &refType, &note.ID, nil)
		if err != nil {
			return err
		}
	}
	return nil
}

// move applies one signed stock delta under row locks and appends the
// ledger entry. Caller must already be inside a transaction.
func (s *InventoryService) move(
	ctx context.Context,
	productID uuid.UUID,
	location string,
	delta decimal.Decimal,
	txnType enum.InventoryTransactionType,
	referenceType *string,
	referenceID *uuid.UUID,
	reason *string,
) (*entity.InventoryTransaction, error) {
	companyID, ok := infraRepo.GetCompanyID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Company context required")
	}

	product, err := s.productRepo.GetByIDForUpdate(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	balanceBefore := product.CurrentStock
	balanceAfter := balanceBefore.Add(delta)
	if balanceAfter.IsNegative() {
		return nil, apperror.NewConflictError(
			"Insufficient stock for " + product.Name + ": " + balanceBefore.String() + " on hand")
	}

	row, err := s.productRepo.GetStockLocationForUpdate(ctx, productID, location)
	if err != nil {
		return nil, err
	}
	if row == nil {
		row = &entity.ProductStockLocation{
			CompanyID:      companyID,
			ProductID:      productID,
			Location:       location,
			QuantityOnHand: decimal.Zero,
		}
	}
	locationAfter := row.QuantityOnHand.Add(delta)
	if locationAfter.IsNegative() {
		return nil, apperror.NewConflictError(
			"Insufficient stock for " + product.Name + " at " + location + ": " + row.QuantityOnHand.String() + " on hand")
	}
	row.QuantityOnHand = locationAfter
	if err := s.productRepo.SaveStockLocation(ctx, row); err != nil {
		return nil, err
	}
	if err := s.productRepo.UpdateStock(ctx, productID, balanceAfter); err != nil {
		return nil, err
	}

	txn := &entity.InventoryTransaction{
		CompanyID:     companyID,
		ProductID:     productID,
		Type:          txnType,
		Quantity:      delta,
		BalanceBefore: balanceBefore,
		BalanceAfter:  balanceAfter,
		Location:      location,
		ReferenceType: referenceType,
		ReferenceID:   referenceID,
		Reason:        reason,
	}
	if actorID, actorName, ok := infraRepo.GetActor(ctx); ok {
		id := actorID
		txn.ActorID = &id
		txn.ActorName = actorName
	}
	if err := s.inventoryRepo.Create(ctx, txn); err != nil {
		return nil, err
	}
	return txn, nil
}

// ListTransactions returns a filtered, paginated slice of the ledger
func (s *InventoryService) ListTransactions(ctx context.Context, params *repository.InventoryFilterParams) (*pagination.PaginatedResult[entity.InventoryTransaction], error) {
	if params == nil {
		params = &repository.InventoryFilterParams{}
	}
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	txns, total, err := s.inventoryRepo.List(ctx, params)
	if err != nil {
		return nil, apperror.FromDBError(err, "Inventory transactions")
	}
	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.Limit, total)
	return pagination.NewPaginatedResult(txns, pag), nil
}

// ProductLedger returns the full movement history of one product, oldest
// first, together with its per-location balances.
func (s *InventoryService) ProductLedger(ctx context.Context, productID uuid.UUID) ([]entity.InventoryTransaction, []entity.ProductStockLocation, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, nil, apperror.FromDBError(err, "Product")
	}
	if product == nil {
		return nil, nil, apperror.NewNotFoundError("Product")
	}
	txns, err := s.inventoryRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, nil, apperror.FromDBError(err, "Inventory transactions")
	}
	locations, err := s.productRepo.ListStockLocations(ctx, productID)
	if err != nil {
		return nil, nil, apperror.FromDBError(err, "Stock locations")
	}
	return txns, locations, nil
}
