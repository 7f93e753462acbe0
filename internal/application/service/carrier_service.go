package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/ledgerly-api/internal/domain/entity"
	"github.com/sangkips/ledgerly-api/internal/domain/repository"
	infraRepo "github.com/sangkips/ledgerly-api/internal/infrastructure/repository"
	"github.com/sangkips/ledgerly-api/pkg/apperror"
)

// CarrierService handles shipping carrier operations
type CarrierService struct {
	carrierRepo repository.CarrierRepository
}

// NewCarrierService creates a new carrier service
func NewCarrierService(carrierRepo repository.CarrierRepository) *CarrierService {
	return &CarrierService{carrierRepo: carrierRepo}
}

// CarrierInput represents the carrier create/update fields
type CarrierInput struct {
	Name        string
	Phone       *string
	Website     *string
	TrackingURL *string
}

// CreateCarrier creates a new carrier
func (s *CarrierService) CreateCarrier(ctx context.Context, input *CarrierInput) (*entity.Carrier, error) {
	companyID, ok := infraRepo.GetCompanyID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Company context required")
	}

	carrier := &entity.Carrier{
		CompanyID:   companyID,
		Name:        input.Name,
		Phone:       input.Phone,
		Website:     input.Website,
		TrackingURL: input.TrackingURL,
	}

	if err := s.carrierRepo.Create(ctx, carrier); err != nil {
		return nil, apperror.FromDBError(err, "Carrier")
	}
	return carrier, nil
}

// GetCarrier retrieves a carrier by ID
func (s *CarrierService) GetCarrier(ctx context.Context, id uuid.UUID) (*entity.Carrier, error) {
	carrier, err := s.carrierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if carrier == nil {
		return nil, apperror.NewNotFoundError("Carrier")
	}
	return carrier, nil
}

// ListCarriers lists all carriers of the company
func (s *CarrierService) ListCarriers(ctx context.Context) ([]entity.Carrier, error) {
	return s.carrierRepo.List(ctx)
}

// UpdateCarrier updates a carrier
func (s *CarrierService) UpdateCarrier(ctx context.Context, id uuid.UUID, input *CarrierInput) (*entity.Carrier, error) {
	carrier, err := s.carrierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if carrier == nil {
		return nil, apperror.NewNotFoundError("Carrier")
	}

	if input.Name != "" {
		carrier.Name = input.Name
	}
	if input.Phone != nil {
		carrier.Phone = input.Phone
	}
	if input.Website != nil {
		carrier.Website = input.Website
	}
	if input.TrackingURL != nil {
		carrier.TrackingURL = input.TrackingURL
	}

	if err := s.carrierRepo.Update(ctx, carrier); err != nil {
		return nil, apperror.FromDBError(err, "Carrier")
	}
	return carrier, nil
}

// DeleteCarrier soft-deletes a carrier
func (s *CarrierService) DeleteCarrier(ctx context.Context, id uuid.UUID) error {
	carrier, err := s.carrierRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if carrier == nil {
		return apperror.NewNotFoundError("Carrier")
	}
	return s.carrierRepo.Delete(ctx, id)
}
