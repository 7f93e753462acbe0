package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/ledgerly-api/internal/domain/entity"
	"github.com/sangkips/ledgerly-api/internal/domain/enum"
	"github.com/sangkips/ledgerly-api/internal/domain/repository"
	"github.com/sangkips/ledgerly-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// ConversionService drives the document pipeline: estimate to sales order,
// sales order to delivery note, and sales order or delivery note to invoice.
// Each conversion locks the source, verifies it has not been converted
// already, creates the target with a fresh document number, and stamps the
// back-reference, all in one transaction.
type ConversionService struct {
	estimateRepo repository.EstimateRepository
	orderRepo    repository.SalesOrderRepository
	noteRepo     repository.DeliveryNoteRepository
	invoiceRepo  repository.InvoiceRepository
	carrierRepo  repository.CarrierRepository
	historyRepo  repository.StatusHistoryRepository
	sequences    *SequenceService
	txManager    repository.TxManager
}

// NewConversionService creates a new conversion service
func NewConversionService(
	estimateRepo repository.EstimateRepository,
	orderRepo repository.SalesOrderRepository,
	noteRepo repository.DeliveryNoteRepository,
	invoiceRepo repository.InvoiceRepository,
	carrierRepo repository.CarrierRepository,
	historyRepo repository.StatusHistoryRepository,
	sequences *SequenceService,
	txManager repository.TxManager,
) *ConversionService {
	return &ConversionService{
		estimateRepo: estimateRepo,
		orderRepo:    orderRepo,
		noteRepo:     noteRepo,
		invoiceRepo:  invoiceRepo,
		carrierRepo:  carrierRepo,
		historyRepo:  historyRepo,
		sequences:    sequences,
		txManager:    txManager,
	}
}

// ConvertEstimate turns an estimate into a draft sales order. Allowed while
// the estimate is draft or accepted; converting twice fails with Conflict.
// The estimate is frozen at status converted.
func (s *ConversionService) ConvertEstimate(ctx context.Context, estimateID uuid.UUID) (*entity.SalesOrder, error) {
	var order *entity.SalesOrder
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		estimate, err := s.estimateRepo.GetByIDForUpdate(ctx, estimateID)
		if err != nil {
			return err
		}
		if estimate == nil {
			return apperror.NewNotFoundError("Estimate")
		}
		if estimate.ConvertedToSalesOrder {
			return apperror.NewConflictError("Estimate has already been converted to a sales order")
		}
		if estimate.Status != enum.EstimateStatusDraft && estimate.Status != enum.EstimateStatusAccepted {
			return apperror.NewConflictError("Only draft or accepted estimates can be converted")
		}

		documentNo, err := s.sequences.Next(ctx, enum.DocumentTypeSalesOrder)
		if err != nil {
			return err
		}

		items := make([]entity.SalesOrderItem, len(estimate.Items))
		for i, line := range estimate.Items {
			items[i] = entity.SalesOrderItem{
				LineNo:       line.LineNo,
				ProductID:    line.ProductID,
				Description:  line.Description,
				OrderedQty:   line.Quantity,
				DeliveredQty: decimal.Zero,
				Rate:         line.Rate,
				Discount:     line.Discount,
				TaxRate:      line.TaxRate,
				TaxAmount:    line.TaxAmount,
				LineTotal:    line.LineTotal,
			}
		}

		order = &entity.SalesOrder{
			CompanyID:         estimate.CompanyID,
			DocumentNo:        documentNo,
			CustomerID:        estimate.CustomerID,
			CustomerName:      estimate.CustomerName,
			CustomerAddress:   estimate.CustomerAddress,
			OrderDate:         time.Now(),
			Status:            enum.SalesOrderStatusDraft,
			FulfillmentStatus: enum.FulfillmentStatusUnfulfilled,
			Subtotal:          estimate.Subtotal,
			TaxAmount:         estimate.TaxAmount,
			DiscountAmount:    estimate.DiscountAmount,
			ShippingCharges:   estimate.ShippingCharges,
			GrandTotal:        estimate.GrandTotal,
			Notes:             estimate.Notes,
			EstimateID:        &estimate.ID,
			Items:             items,
		}
		if err := s.orderRepo.Create(ctx, order); err != nil {
			return apperror.FromDBError(err, "Sales order")
		}

		from := estimate.Status
		estimate.Status = enum.EstimateStatusConverted
		estimate.ConvertedToSalesOrder = true
		estimate.SalesOrderID = &order.ID
		if err := s.estimateRepo.Update(ctx, estimate); err != nil {
			return err
		}
		return s.writeHistory(ctx, estimate, from, enum.EstimateStatusConverted, "Converted to sales order "+order.DocumentNo)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// ShipLineInput picks how much of one sales order line a delivery note ships
type ShipLineInput struct {
	SalesOrderItemID uuid.UUID       `json:"sales_order_item_id" binding:"required"`
	ShipQty          decimal.Decimal `json:"ship_qty" binding:"required"`
}

// CreateDeliveryNoteInput represents a shipment drawn against a sales order
type CreateDeliveryNoteInput struct {
	CarrierID    *uuid.UUID      `json:"carrier_id"`
	TrackingNo   *string         `json:"tracking_no"`
	DeliveryDate time.Time       `json:"delivery_date"`
	Notes        *string         `json:"notes"`
	Lines        []ShipLineInput `json:"lines" binding:"required"`
}

// CreateDeliveryNote creates a delivery note against a confirmed sales
// order. Each shipped quantity must be positive and fit within the line's
// remaining undelivered quantity; delivered quantities are advanced and the
// order's fulfillment status recomputed in the same transaction.
func (s *ConversionService) CreateDeliveryNote(ctx context.Context, orderID uuid.UUID, input *CreateDeliveryNoteInput) (*entity.DeliveryNote, error) {
	if len(input.Lines) == 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "lines", Message: "At least one line is required"},
		})
	}
	if input.CarrierID != nil {
		carrier, err := s.carrierRepo.GetByID(ctx, *input.CarrierID)
		if err != nil {
			return nil, err
		}
		if carrier == nil {
			return nil, apperror.NewNotFoundError("Carrier")
		}
	}

	var note *entity.DeliveryNote
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		order, err := s.orderRepo.GetByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return apperror.NewNotFoundError("Sales order")
		}
		if order.Status != enum.SalesOrderStatusConfirmed && order.Status != enum.SalesOrderStatusInProgress {
			return apperror.NewConflictError("Only confirmed or in-progress sales orders can be shipped")
		}

		orderItems := make(map[uuid.UUID]*entity.SalesOrderItem, len(order.Items))
		for i := range order.Items {
			orderItems[order.Items[i].ID] = &order.Items[i]
		}

		documentNo, err := s.sequences.Next(ctx, enum.DocumentTypeDeliveryNote)
		if err != nil {
			return err
		}

		noteItems := make([]entity.DeliveryNoteItem, 0, len(input.Lines))
		for i, line := range input.Lines {
			orderItem, ok := orderItems[line.SalesOrderItemID]
			if !ok {
				return apperror.NewUnprocessableError("Line does not belong to this sales order")
			}
			if !line.ShipQty.IsPositive() {
				return apperror.NewValidationError([]apperror.FieldError{
					{Field: "ship_qty", Message: "Shipped quantity must be greater than zero"},
				})
			}
			if line.ShipQty.GreaterThan(orderItem.PendingQty()) {
				return apperror.NewConflictError(
					"Shipped quantity exceeds remaining quantity for " + orderItem.Description)
			}

			orderItem.DeliveredQty = orderItem.DeliveredQty.Add(line.ShipQty)
			if err := s.orderRepo.UpdateItem(ctx, orderItem); err != nil {
				return err
			}

			noteItems = append(noteItems, entity.DeliveryNoteItem{
				SalesOrderItemID: orderItem.ID,
				LineNo:           i + 1,
				ProductID:        orderItem.ProductID,
				Description:      orderItem.Description,
				ShippedQty:       line.ShipQty,
			})
		}

		note = &entity.DeliveryNote{
			CompanyID:       order.CompanyID,
			DocumentNo:      documentNo,
			SalesOrderID:    order.ID,
			CustomerID:      order.CustomerID,
			CustomerName:    order.CustomerName,
			CustomerAddress: order.CustomerAddress,
			CarrierID:       input.CarrierID,
			TrackingNo:      input.TrackingNo,
			DeliveryDate:    dateOrToday(input.DeliveryDate),
			Status:          enum.DeliveryNoteStatusDraft,
			Notes:           input.Notes,
			Items:           noteItems,
		}
		if err := s.noteRepo.Create(ctx, note); err != nil {
			return apperror.FromDBError(err, "Delivery note")
		}

		return s.advanceFulfillment(ctx, order, note.DocumentNo)
	})
	if err != nil {
		return nil, err
	}
	return note, nil
}

// advanceFulfillment recomputes the order's fulfillment status from its
// delivered quantities and moves the order status forward when the first or
// final shipment lands.
func (s *ConversionService) advanceFulfillment(ctx context.Context, order *entity.SalesOrder, noteNo string) error {
	allDelivered := true
	anyDelivered := false
	for i := range order.Items {
		if order.Items[i].DeliveredQty.IsPositive() {
			anyDelivered = true
		}
		if order.Items[i].PendingQty().IsPositive() {
			allDelivered = false
		}
	}

	switch {
	case allDelivered:
		order.FulfillmentStatus = enum.FulfillmentStatusFulfilled
	case anyDelivered:
		order.FulfillmentStatus = enum.FulfillmentStatusPartiallyFulfilled
	default:
		order.FulfillmentStatus = enum.FulfillmentStatusUnfulfilled
	}

	// Status advances one legal step at a time so the history trail matches
	// the transition table: a shipment that fully delivers a confirmed order
	// records confirmed->in_progress->completed.
	var steps []string
	if anyDelivered && order.Status == enum.SalesOrderStatusConfirmed {
		steps = append(steps, enum.SalesOrderStatusInProgress)
	}
	if allDelivered {
		steps = append(steps, enum.SalesOrderStatusCompleted)
	}

	for _, to := range steps {
		from := order.Status
		if to == from {
			continue
		}
		order.Status = to
		if err := s.writeHistory(ctx, order, from, to, "Shipment "+noteNo); err != nil {
			return err
		}
	}
	return s.orderRepo.Update(ctx, order)
}

// InvoiceSalesOrder creates a draft invoice covering every line of a sales
// order at its committed rates. An order can be invoiced in full once;
// repeats fail with Conflict.
func (s *ConversionService) InvoiceSalesOrder(ctx context.Context, orderID uuid.UUID) (*entity.Invoice, error) {
	var invoice *entity.Invoice
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		order, err := s.orderRepo.GetByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return apperror.NewNotFoundError("Sales order")
		}
		if order.Invoiced {
			return apperror.NewConflictError("Sales order has already been invoiced")
		}
		if order.Status == enum.SalesOrderStatusDraft || order.Status == enum.SalesOrderStatusCancelled {
			return apperror.NewConflictError("Only confirmed sales orders can be invoiced")
		}

		items := make([]entity.InvoiceItem, len(order.Items))
		for i, line := range order.Items {
			items[i] = entity.InvoiceItem{
				LineNo:      line.LineNo,
				ProductID:   line.ProductID,
				Description: line.Description,
				Quantity:    line.OrderedQty,
				Rate:        line.Rate,
				Discount:    line.Discount,
				TaxRate:     line.TaxRate,
				TaxAmount:   line.TaxAmount,
				LineTotal:   line.LineTotal,
			}
		}

		invoice, err = s.createInvoice(ctx, invoiceSource{
			companyID:       order.CompanyID,
			customerID:      order.CustomerID,
			customerName:    order.CustomerName,
			customerAddress: order.CustomerAddress,
			salesOrderID:    &order.ID,
			subtotal:        order.Subtotal,
			taxAmount:       order.TaxAmount,
			discountAmount:  order.DiscountAmount,
			shippingCharges: order.ShippingCharges,
			grandTotal:      order.GrandTotal,
			notes:           order.Notes,
			items:           items,
		})
		if err != nil {
			return err
		}

		order.Invoiced = true
		order.InvoiceID = &invoice.ID
		return s.orderRepo.Update(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

// InvoiceDeliveryNote creates a draft invoice for the shipped quantities of
// a delivery note, recovering rates from the sales order lines it fulfills.
// A note can be invoiced once; repeats fail with Conflict.
func (s *ConversionService) InvoiceDeliveryNote(ctx context.Context, noteID uuid.UUID) (*entity.Invoice, error) {
	var invoice *entity.Invoice
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		note, err := s.noteRepo.GetByIDForUpdate(ctx, noteID)
		if err != nil {
			return err
		}
		if note == nil {
			return apperror.NewNotFoundError("Delivery note")
		}
		if note.Invoiced {
			return apperror.NewConflictError("Delivery note has already been invoiced")
		}

		order, err := s.orderRepo.GetByID(ctx, note.SalesOrderID)
		if err != nil {
			return err
		}
		rates := make(map[uuid.UUID]*entity.SalesOrderItem)
		if order != nil {
			for i := range order.Items {
				rates[order.Items[i].ID] = &order.Items[i]
			}
		}

		lineInputs := make([]LineItemInput, len(note.Items))
		for i, line := range note.Items {
			input := LineItemInput{
				ProductID:   line.ProductID,
				Description: line.Description,
				Quantity:    line.ShippedQty,
			}
			if src, ok := rates[line.SalesOrderItemID]; ok {
				input.Rate = src.Rate
				input.TaxRate = src.TaxRate
			}
			lineInputs[i] = input
		}
		totals := computeTotals(lineInputs, decimal.Zero, decimal.Zero)

		items := make([]entity.InvoiceItem, len(lineInputs))
		for i, input := range lineInputs {
			items[i] = entity.InvoiceItem{
				LineNo:      i + 1,
				ProductID:   input.ProductID,
				Description: input.Description,
				Quantity:    input.Quantity,
				Rate:        input.Rate,
				Discount:    input.Discount,
				TaxRate:     input.TaxRate,
				TaxAmount:   totals.Lines[i].TaxAmount,
				LineTotal:   totals.Lines[i].LineTotal,
			}
		}

		var notes *string
		if order != nil {
			notes = order.Notes
		}
		invoice, err = s.createInvoice(ctx, invoiceSource{
			companyID:       note.CompanyID,
			customerID:      note.CustomerID,
			customerName:    note.CustomerName,
			customerAddress: note.CustomerAddress,
			salesOrderID:    &note.SalesOrderID,
			deliveryNoteID:  &note.ID,
			subtotal:        totals.Subtotal,
			taxAmount:       totals.TaxAmount,
			discountAmount:  decimal.Zero,
			shippingCharges: decimal.Zero,
			grandTotal:      totals.GrandTotal,
			notes:           notes,
			items:           items,
		})
		if err != nil {
			return err
		}

		note.Invoiced = true
		note.InvoiceID = &invoice.ID
		return s.noteRepo.Update(ctx, note)
	})
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

type invoiceSource struct {
	companyID       uuid.UUID
	customerID      uuid.UUID
	customerName    string
	customerAddress string
	salesOrderID    *uuid.UUID
	deliveryNoteID  *uuid.UUID
	subtotal        decimal.Decimal
	taxAmount       decimal.Decimal
	discountAmount  decimal.Decimal
	shippingCharges decimal.Decimal
	grandTotal      decimal.Decimal
	notes           *string
	items           []entity.InvoiceItem
}

func (s *ConversionService) createInvoice(ctx context.Context, src invoiceSource) (*entity.Invoice, error) {
	documentNo, err := s.sequences.Next(ctx, enum.DocumentTypeInvoice)
	if err != nil {
		return nil, err
	}

	invoice := &entity.Invoice{
		CompanyID:       src.companyID,
		DocumentNo:      documentNo,
		CustomerID:      src.customerID,
		CustomerName:    src.customerName,
		CustomerAddress: src.customerAddress,
		InvoiceDate:     time.Now(),
		Status:          enum.InvoiceStatusDraft,
		PaymentStatus:   enum.PaymentStatusUnpaid,
		Subtotal:        src.subtotal,
		TaxAmount:       src.taxAmount,
		DiscountAmount:  src.discountAmount,
		ShippingCharges: src.shippingCharges,
		GrandTotal:      src.grandTotal,
		AmountPaid:      decimal.Zero,
		AmountDue:       src.grandTotal,
		Notes:           src.notes,
		SalesOrderID:    src.salesOrderID,
		DeliveryNoteID:  src.deliveryNoteID,
		Items:           src.items,
	}
	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, apperror.FromDBError(err, "Invoice")
	}
	return invoice, nil
}

func (s *ConversionService) writeHistory(ctx context.Context, doc entity.Document, from, to, reason string) error {
	r := reason
	history, err := buildStatusHistory(ctx, doc, from, to, &r)
	if err != nil {
		return err
	}
	return s.historyRepo.Create(ctx, history)
}
