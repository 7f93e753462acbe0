package repository

import (
	"context"

	"github.com/sangkips/ledgerly-api/internal/domain/entity"
	"github.com/sangkips/ledgerly-api/internal/domain/enum"
)

// SequenceRepository defines the interface for document number sequences
type SequenceRepository interface {
	// GetOrCreate returns the sequence row for a document type, creating it
	// with defaults on first use.
	GetOrCreate(ctx context.Context, docType enum.DocumentType) (*entity.Sequence, error)
	// ConsumeNext atomically increments the counter and returns the value
	// consumed by this call. Two concurrent calls never observe the same number.
	ConsumeNext(ctx context.Context, docType enum.DocumentType) (*entity.Sequence, int64, error)
	Update(ctx context.Context, seq *entity.Sequence) error
	List(ctx context.Context) ([]entity.Sequence, error)
}
