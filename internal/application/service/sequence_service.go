package service

import (
	"context"
	"time"

	"github.com/sangkips/ledgerly-api/internal/domain/entity"
	"github.com/sangkips/ledgerly-api/internal/domain/enum"
	"github.com/sangkips/ledgerly-api/internal/domain/repository"
	"github.com/sangkips/ledgerly-api/pkg/apperror"
)

// SequenceService issues document numbers. Numbers are monotonic per
// (company, document type); a consumed number is never reissued, even when
// the document that used it is deleted.
type SequenceService struct {
	sequenceRepo repository.SequenceRepository
}

// NewSequenceService creates a new sequence service
func NewSequenceService(sequenceRepo repository.SequenceRepository) *SequenceService {
	return &SequenceService{sequenceRepo: sequenceRepo}
}

// Next consumes and formats the next number for a document type
func (s *SequenceService) Next(ctx context.Context, docType enum.DocumentType) (string, error) {
	if !docType.Valid() {
		return "", apperror.NewBadRequestError("Unknown document type")
	}
	seq, consumed, err := s.sequenceRepo.ConsumeNext(ctx, docType)
	if err != nil {
		return "", err
	}
	return seq.Format(consumed, time.Now()), nil
}

// Peek formats the number the next call to Next would return, without
// advancing the counter.
func (s *SequenceService) Peek(ctx context.Context, docType enum.DocumentType) (string, error) {
	if !docType.Valid() {
		return "", apperror.NewBadRequestError("Unknown document type")
	}
	seq, err := s.sequenceRepo.GetOrCreate(ctx, docType)
	if err != nil {
		return "", err
	}
	return seq.Format(seq.NextNumber, time.Now()), nil
}

// List returns all sequences of the company
func (s *SequenceService) List(ctx context.Context) ([]entity.Sequence, error) {
	return s.sequenceRepo.List(ctx)
}

// UpdateSequenceInput represents the configurable parts of a sequence
type UpdateSequenceInput struct {
	Prefix      *string
	Padding     *int
	IncludeDate *bool
	NextNumber  *int64
}

// Update changes a sequence's formatting settings. The counter can be
// raised but never lowered, so already issued numbers stay unique.
func (s *SequenceService) Update(ctx context.Context, docType enum.DocumentType, input *UpdateSequenceInput) (*entity.Sequence, error) {
	if !docType.Valid() {
		return nil, apperror.NewBadRequestError("Unknown document type")
	}
	seq, err := s.sequenceRepo.GetOrCreate(ctx, docType)
	if err != nil {
		return nil, err
	}

	if input.Prefix != nil && *input.Prefix != "" {
		seq.Prefix = *input.Prefix
	}
	if input.Padding != nil && *input.Padding > 0 && *input.Padding <= 10 {
		seq.Padding = *input.Padding
	}
	if input.IncludeDate != nil {
		seq.IncludeDate = *input.IncludeDate
	}
	if input.NextNumber != nil {
		if *input.NextNumber < seq.NextNumber {
			return nil, apperror.NewConflictError("Sequence counter cannot be lowered")
		}
		seq.NextNumber = *input.NextNumber
	}

	if err := s.sequenceRepo.Update(ctx, seq); err != nil {
		return nil, err
	}
	return seq, nil
}
