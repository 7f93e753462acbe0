package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/ledgerly-api/internal/domain/entity"
	"github.com/sangkips/ledgerly-api/internal/domain/enum"
	domainRepo "github.com/sangkips/ledgerly-api/internal/domain/repository"
	"gorm.io/gorm"
)

type statusHistoryRepository struct {
	db *gorm.DB
}

// NewStatusHistoryRepository creates a new status history repository
func NewStatusHistoryRepository(db *gorm.DB) domainRepo.StatusHistoryRepository {
	return &statusHistoryRepository{db: db}
}

func (r *statusHistoryRepository) Create(ctx context.Context, history *entity.StatusHistory) error {
	return dbFrom(ctx, r.db).Create(history).Error
}

func (r *statusHistoryRepository) ListByDocument(ctx context.Context, docType enum.DocumentType, docID uuid.UUID) ([]entity.StatusHistory, error) {
	var history []entity.StatusHistory
	err := dbFrom(ctx, r.db).Scopes(CompanyScope(ctx)).
		Where("document_type = ? AND document_id = ?", docType, docID).
		Order("created_at ASC").
		Find(&history).Error
	return history, err
}
