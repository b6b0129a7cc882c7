package service

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/oakline/propmaint-api/internal/models"
	appErrors "github.com/oakline/propmaint-api/pkg/errors"
)

type apartmentRepository interface {
	ListByBuilding(ctx context.Context, buildingID int64) ([]models.Apartment, error)
	Find(ctx context.Context, buildingID int64, aptNumber int) (*models.Apartment, error)
	Update(ctx context.Context, buildingID int64, aptNumber int, patch models.ApartmentPatch) error
	SetOccupant(ctx context.Context, buildingID int64, aptNumber int, renterID int64) error
	ClearOccupant(ctx context.Context, buildingID int64, aptNumber int) error
}

// UpdateApartmentRequest holds the patchable apartment fields.
type UpdateApartmentRequest struct {
	RentalCost *float64   `json:"rentalCost"`
	RenterID   *int64     `json:"renterId"`
	DateRented *time.Time `json:"dateRented"`
}

// SetVacancyInput carries the occupancy change. RenterPresent distinguishes
// an explicit JSON null (vacate) from the key being absent entirely.
type SetVacancyInput struct {
	RenterPresent bool
	RenterID      *int64
}

// ApartmentService handles apartment use-cases.
type ApartmentService struct {
	repo   apartmentRepository
	logger *zap.Logger
}

// NewApartmentService constructs the apartment service.
func NewApartmentService(repo apartmentRepository, logger *zap.Logger) *ApartmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ApartmentService{repo: repo, logger: logger}
}

// List returns the apartments of a building.
func (s *ApartmentService) List(ctx context.Context, buildingID int64) ([]models.Apartment, error) {
	apartments, err := s.repo.ListByBuilding(ctx, buildingID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list apartments")
	}
	if apartments == nil {
		apartments = []models.Apartment{}
	}
	return apartments, nil
}

// Update applies a partial update to an apartment.
func (s *ApartmentService) Update(ctx context.Context, buildingID int64, aptNumber int, req UpdateApartmentRequest) error {
	patch := models.ApartmentPatch{RentalCost: req.RentalCost, RenterID: req.RenterID, DateRented: req.DateRented}
	if patch.Empty() {
		return appErrors.Clone(appErrors.ErrValidation, "no updatable fields supplied")
	}
	if err := s.repo.Update(ctx, buildingID, aptNumber, patch); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "apartment not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update apartment")
	}
	return nil
}

// GetVacancy returns the occupancy snapshot of an apartment.
func (s *ApartmentService) GetVacancy(ctx context.Context, buildingID int64, aptNumber int) (*models.Apartment, error) {
	apartment, err := s.repo.Find(ctx, buildingID, aptNumber)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "apartment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load apartment")
	}
	return apartment, nil
}

// SetVacancy changes occupancy. A null renter vacates the apartment and
// clears the rental date; a renter value occupies it and stamps today's
// date server-side.
func (s *ApartmentService) SetVacancy(ctx context.Context, buildingID int64, aptNumber int, input SetVacancyInput) error {
	if !input.RenterPresent {
		return appErrors.Clone(appErrors.ErrValidation, "renterId is required (null vacates the apartment)")
	}

	var err error
	if input.RenterID == nil {
		err = s.repo.ClearOccupant(ctx, buildingID, aptNumber)
	} else {
		err = s.repo.SetOccupant(ctx, buildingID, aptNumber, *input.RenterID)
	}
	if err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "apartment not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to set vacancy")
	}
	return nil
}
