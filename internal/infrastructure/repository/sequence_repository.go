package repository

import (
	"context"
	"errors"

	"github.com/sangkips/ledgerly-api/internal/domain/entity"
	"github.com/sangkips/ledgerly-api/internal/domain/enum"
	domainRepo "github.com/sangkips/ledgerly-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type sequenceRepository struct {
	db *gorm.DB
}

// NewSequenceRepository creates a new sequence repository
func NewSequenceRepository(db *gorm.DB) domainRepo.SequenceRepository {
	return &sequenceRepository{db: db}
}

func (r *sequenceRepository) GetOrCreate(ctx context.Context, docType enum.DocumentType) (*entity.Sequence, error) {
	companyID, ok := GetCompanyID(ctx)
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}

	var seq entity.Sequence
	err := dbFrom(ctx, r.db).
		First(&seq, "company_id = ? AND document_type = ?", companyID, docType).Error
	if err == nil {
		return &seq, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	seq = entity.Sequence{
		CompanyID:    companyID,
		DocumentType: docType,
		Prefix:       docType.DefaultSequencePrefix(),
		NextNumber:   1,
		Padding:      5,
	}
	// A concurrent first use can win the insert race; fall back to the row
	// it created.
	if err := dbFrom(ctx, r.db).Create(&seq).Error; err != nil {
		var existing entity.Sequence
		if ferr := dbFrom(ctx, r.db).
			First(&existing, "company_id = ? AND document_type = ?", companyID, docType).Error; ferr == nil {
			return &existing, nil
		}
		return nil, err
	}
	return &seq, nil
}

// ConsumeNext increments next_number in a single UPDATE ... RETURNING so
// that concurrent callers never observe the same value.
func (r *sequenceRepository) ConsumeNext(ctx context.Context, docType enum.DocumentType) (*entity.Sequence, int64, error) {
	seq, err := r.GetOrCreate(ctx, docType)
	if err != nil {
		return nil, 0, err
	}

	var updated entity.Sequence
	res := dbFrom(ctx, r.db).Model(&updated).
		Clauses(clause.Returning{}).
		Where("id = ?", seq.ID).
		Update("next_number", gorm.Expr("next_number + 1"))
	if res.Error != nil {
		return nil, 0, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, 0, gorm.ErrRecordNotFound
	}

	// RETURNING yields the post-increment value; the number consumed by
	// this call is the one before it.
	return &updated, updated.NextNumber - 1, nil
}

func (r *sequenceRepository) Update(ctx context.Context, seq *entity.Sequence) error {
	return dbFrom(ctx, r.db).Save(seq).Error
}

func (r *sequenceRepository) List(ctx context.Context) ([]entity.Sequence, error) {
	var seqs []entity.Sequence
	err := dbFrom(ctx, r.db).Scopes(CompanyScope(ctx)).Order("document_type ASC").Find(&seqs).Error
	return seqs, err
}
