package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/ledgerly-api/internal/domain/entity"
	"github.com/sangkips/ledgerly-api/internal/domain/enum"
	"github.com/sangkips/ledgerly-api/internal/domain/repository"
	"github.com/sangkips/ledgerly-api/internal/domain/statemachine"
	infraRepo "github.com/sangkips/ledgerly-api/internal/infrastructure/repository"
	"github.com/sangkips/ledgerly-api/pkg/apperror"
)

// StatusService is the transition engine shared by every flowing document
// type. It validates the move against the transition table, writes the new
// status and one history row in a single transaction, and runs the side
// effects a transition carries (inventory deduction on shipping).
type StatusService struct {
	estimateRepo repository.EstimateRepository
	orderRepo    repository.SalesOrderRepository
	noteRepo     repository.DeliveryNoteRepository
	invoiceRepo  repository.InvoiceRepository
	billRepo     repository.BillRepository
	historyRepo  repository.StatusHistoryRepository
	inventory    *InventoryService
	notifier     *NotificationService
	txManager    repository.TxManager
}

// NewStatusService creates a new status transition service
func NewStatusService(
	estimateRepo repository.EstimateRepository,
	orderRepo repository.SalesOrderRepository,
	noteRepo repository.DeliveryNoteRepository,
	invoiceRepo repository.InvoiceRepository,
	billRepo repository.BillRepository,
	historyRepo repository.StatusHistoryRepository,
	inventory *InventoryService,
	notifier *NotificationService,
	txManager repository.TxManager,
) *StatusService {
	return &StatusService{
		estimateRepo: estimateRepo,
		orderRepo:    orderRepo,
		noteRepo:     noteRepo,
		invoiceRepo:  invoiceRepo,
		billRepo:     billRepo,
		historyRepo:  historyRepo,
		inventory:    inventory,
		notifier:     notifier,
		txManager:    txManager,
	}
}

// TransitionInput represents a requested status change
type TransitionInput struct {
	DocumentType enum.DocumentType
	DocumentID   uuid.UUID
	ToStatus     string
	Reason       *string
	// DeductInventory applies to delivery notes moving to shipped: tracked
	// products on the note are deducted from stock in the same transaction.
	DeductInventory bool
}

// Transition moves a document to a new status. The document row is locked
// for the duration so concurrent transitions serialize; illegal moves fail
// with Conflict and terminal statuses allow nothing further.
func (s *StatusService) Transition(ctx context.Context, input *TransitionInput) (entity.Document, error) {
	if !statemachine.HasStateMachine(input.DocumentType) {
		return nil, apperror.NewBadRequestError("Document type has no status lifecycle")
	}

	var result entity.Document
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		doc, err := s.loadForUpdate(ctx, input.DocumentType, input.DocumentID)
		if err != nil {
			return err
		}

		from := doc.GetStatus()
		if !statemachine.CanTransition(input.DocumentType, from, input.ToStatus) {
			return apperror.NewConflictError(
				"Cannot transition " + string(input.DocumentType) + " from " + from + " to " + input.ToStatus)
		}

		if err := s.applyStatus(ctx, doc, input); err != nil {
			return err
		}
		if err := s.recordHistory(ctx, doc, from, input.ToStatus, input.Reason); err != nil {
			return err
		}

		result = doc
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil && input.ToStatus == enum.EstimateStatusSent {
		switch result.(type) {
		case *entity.Estimate, *entity.Invoice:
			s.notifier.NotifyDocumentSent(ctx, result)
		}
	}

	return result, nil
}

// History lists the transition audit trail of a document, oldest first
func (s *StatusService) History(ctx context.Context, docType enum.DocumentType, docID uuid.UUID) ([]entity.StatusHistory, error) {
	if !statemachine.HasStateMachine(docType) {
		return nil, apperror.NewBadRequestError("Document type has no status lifecycle")
	}
	return s.historyRepo.ListByDocument(ctx, docType, docID)
}

// AllowedTargets returns the statuses a document may move to next
func (s *StatusService) AllowedTargets(ctx context.Context, docType enum.DocumentType, docID uuid.UUID) ([]string, error) {
	doc, err := s.load(ctx, docType, docID)
	if err != nil {
		return nil, err
	}
	return statemachine.AllowedTargets(docType, doc.GetStatus()), nil
}

func (s *StatusService) load(ctx context.Context, docType enum.DocumentType, id uuid.UUID) (entity.Document, error) {
	switch docType {
	case enum.DocumentTypeEstimate:
		doc, err := s.estimateRepo.GetByID(ctx, id)
		return checkLoaded(doc, err, doc == nil, "Estimate")
	case enum.DocumentTypeSalesOrder:
		doc, err := s.orderRepo.GetByID(ctx, id)
		return checkLoaded(doc, err, doc == nil, "Sales order")
	case enum.DocumentTypeDeliveryNote:
		doc, err := s.noteRepo.GetByID(ctx, id)
		return checkLoaded(doc, err, doc == nil, "Delivery note")
	case enum.DocumentTypeInvoice:
		doc, err := s.invoiceRepo.GetByID(ctx, id)
		return checkLoaded(doc, err, doc == nil, "Invoice")
	case enum.DocumentTypeBill:
		doc, err := s.billRepo.GetByID(ctx, id)
		return checkLoaded(doc, err, doc == nil, "Bill")
	}
	return nil, apperror.NewBadRequestError("Unknown document type")
}

func (s *StatusService) loadForUpdate(ctx context.Context, docType enum.DocumentType, id uuid.UUID) (entity.Document, error) {
	switch docType {
	case enum.DocumentTypeEstimate:
		doc, err := s.estimateRepo.GetByIDForUpdate(ctx, id)
		return checkLoaded(doc, err, doc == nil, "Estimate")
	case enum.DocumentTypeSalesOrder:
		doc, err := s.orderRepo.GetByIDForUpdate(ctx, id)
		return checkLoaded(doc, err, doc == nil, "Sales order")
	case enum.DocumentTypeDeliveryNote:
		doc, err := s.noteRepo.GetByIDForUpdate(ctx, id)
		return checkLoaded(doc, err, doc == nil, "Delivery note")
	case enum.DocumentTypeInvoice:
		doc, err := s.invoiceRepo.GetByIDForUpdate(ctx, id)
		return checkLoaded(doc, err, doc == nil, "Invoice")
	case enum.DocumentTypeBill:
		doc, err := s.billRepo.GetByIDForUpdate(ctx, id)
		return checkLoaded(doc, err, doc == nil, "Bill")
	}
	return nil, apperror.NewBadRequestError("Unknown document type")
}

func checkLoaded(doc entity.Document, err error, missing bool, resource string) (entity.Document, error) {
	if err != nil {
		return nil, err
	}
	if missing {
		return nil, apperror.NewNotFoundError(resource)
	}
	return doc, nil
}

func (s *StatusService) applyStatus(ctx context.Context, doc entity.Document, input *TransitionInput) error {
	switch d := doc.(type) {
	case *entity.Estimate:
		d.Status = input.ToStatus
		return s.estimateRepo.Update(ctx, d)
	case *entity.SalesOrder:
		d.Status = input.ToStatus
		return s.orderRepo.Update(ctx, d)
	case *entity.DeliveryNote:
		if input.ToStatus == enum.DeliveryNoteStatusShipped && input.DeductInventory && !d.InventoryDeducted {
			if err := s.inventory.DeductForShipment(ctx, d); err != nil {
				return err
			}
			d.InventoryDeducted = true
		}
		d.Status = input.ToStatus
		return s.noteRepo.Update(ctx, d)
	case *entity.Invoice:
		d.Status = input.ToStatus
		return s.invoiceRepo.Update(ctx, d)
	case *entity.Bill:
		d.Status = input.ToStatus
		return s.billRepo.Update(ctx, d)
	}
	return apperror.NewBadRequestError("Unknown document type")
}

func (s *StatusService) recordHistory(ctx context.Context, doc entity.Document, from, to string, reason *string) error {
	history, err := buildStatusHistory(ctx, doc, from, to, reason)
	if err != nil {
		return err
	}
	return s.historyRepo.Create(ctx, history)
}

// buildStatusHistory assembles an audit row for a status change, stamping the
// company and acting user from the request context.
func buildStatusHistory(ctx context.Context, doc entity.Document, from, to string, reason *string) (*entity.StatusHistory, error) {
	companyID, ok := infraRepo.GetCompanyID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Company context required")
	}

	history := &entity.StatusHistory{
		CompanyID:    companyID,
		DocumentType: doc.GetDocumentType(),
		DocumentID:   doc.GetID(),
		DocumentNo:   doc.GetDocumentNo(),
		FromStatus:   from,
		ToStatus:     to,
		Reason:       reason,
	}
	if actorID, actorName, ok := infraRepo.GetActor(ctx); ok {
		id := actorID
		history.ActorID = &id
		history.ActorName = actorName
	}
	return history, nil
}
