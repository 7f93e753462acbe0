package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/ledgerly-api/internal/domain/entity"
	"github.com/sangkips/ledgerly-api/internal/domain/enum"
)

// StatusHistoryRepository defines the interface for the transition audit trail
type StatusHistoryRepository interface {
	Create(ctx context.Context, history *entity.StatusHistory) error
	ListByDocument(ctx context.Context, docType enum.DocumentType, docID uuid.UUID) ([]entity.StatusHistory, error)
}
