package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/ledgerly-api/internal/domain/entity"
	"github.com/sangkips/ledgerly-api/internal/domain/enum"
	"github.com/sangkips/ledgerly-api/internal/domain/repository"
	"github.com/sangkips/ledgerly-api/pkg/apperror"
	"github.com/sangkips/ledgerly-api/pkg/pagination"
)

// DeliveryNoteService handles delivery note operations. Delivery notes are
// only born from sales order conversion; this service covers reads, edits
// of the shipping details, and deletion.
type DeliveryNoteService struct {
	noteRepo    repository.DeliveryNoteRepository
	carrierRepo repository.CarrierRepository
	txManager   repository.TxManager
}

// NewDeliveryNoteService creates a new delivery note service
func NewDeliveryNoteService(
	noteRepo repository.DeliveryNoteRepository,
	carrierRepo repository.CarrierRepository,
	txManager repository.TxManager,
) *DeliveryNoteService {
	return &DeliveryNoteService{noteRepo: noteRepo, carrierRepo: carrierRepo, txManager: txManager}
}

// GetDeliveryNote retrieves a delivery note with its lines
func (s *DeliveryNoteService) GetDeliveryNote(ctx context.Context, id uuid.UUID) (*entity.DeliveryNote, error) {
	note, err := s.noteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperror.NewNotFoundError("Delivery note")
	}
	return note, nil
}

// ListDeliveryNotes lists delivery notes with filters
func (s *DeliveryNoteService) ListDeliveryNotes(ctx context.Context, params *repository.DeliveryNoteFilterParams) (*pagination.PaginatedResult[entity.DeliveryNote], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	notes, total, err := s.noteRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.Limit, total)
	return pagination.NewPaginatedResult(notes, pag), nil
}

// UpdateDeliveryNoteInput represents the editable shipping details
type UpdateDeliveryNoteInput struct {
	ID           uuid.UUID
	CarrierID    *uuid.UUID
	TrackingNo   *string
	DeliveryDate *time.Time
	Notes        *string
}

// UpdateDeliveryNote updates shipping details. Shipped quantities are fixed
// at conversion time and never edited; only draft notes can change, and the
// status check runs under the row lock.
func (s *DeliveryNoteService) UpdateDeliveryNote(ctx context.Context, input *UpdateDeliveryNoteInput) (*entity.DeliveryNote, error) {
	var note *entity.DeliveryNote
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		note, err = s.noteRepo.GetByIDForUpdate(ctx, input.ID)
		if err != nil {
			return err
		}
		if note == nil {
			return apperror.NewNotFoundError("Delivery note")
		}
		if note.Status != enum.DeliveryNoteStatusDraft {
			return apperror.NewConflictError("Only draft delivery notes can be edited")
		}

		if input.CarrierID != nil {
			carrier, err := s.carrierRepo.GetByID(ctx, *input.CarrierID)
			if err != nil {
				return err
			}
			if carrier == nil {
				return apperror.NewNotFoundError("Carrier")
			}
			note.CarrierID = input.CarrierID
		}
		if input.TrackingNo != nil {
			note.TrackingNo = input.TrackingNo
		}
		if input.DeliveryDate != nil {
			note.DeliveryDate = *input.DeliveryDate
		}
		if input.Notes != nil {
			note.Notes = input.Notes
		}

		return apperror.FromDBError(s.noteRepo.Update(ctx, note), "Delivery note")
	})
	if err != nil {
		return nil, err
	}
	return note, nil
}

// DeleteDeliveryNote soft-deletes a delivery note that has not shipped yet
func (s *DeliveryNoteService) DeleteDeliveryNote(ctx context.Context, id uuid.UUID) error {
	return s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		note, err := s.noteRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if note == nil {
			return apperror.NewNotFoundError("Delivery note")
		}
		if note.Status != enum.DeliveryNoteStatusDraft && note.Status != enum.DeliveryNoteStatusReadyToShip {
			return apperror.NewConflictError("Delivery note can only be deleted before shipping")
		}
		return s.noteRepo.Delete(ctx, id)
	})
}
