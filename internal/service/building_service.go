package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/oakline/propmaint-api/internal/models"
	appErrors "github.com/oakline/propmaint-api/pkg/errors"
)

type buildingRepository interface {
	ListSummaries(ctx context.Context) ([]models.BuildingSummary, error)
	Create(ctx context.Context, building *models.Building) error
	Update(ctx context.Context, id int64, patch models.BuildingPatch) error
}

// CreateBuildingRequest holds payload for creating buildings.
type CreateBuildingRequest struct {
	Address   string `json:"address" validate:"required"`
	ManagerID *int64 `json:"managerID" validate:"required"`
}

// UpdateBuildingRequest holds the patchable building fields.
type UpdateBuildingRequest struct {
	Address   *string `json:"address"`
	ManagerID *int64  `json:"managerID"`
}

// BuildingService handles building use-cases.
type BuildingService struct {
	repo      buildingRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewBuildingService constructs the building service.
func NewBuildingService(repo buildingRepository, validate *validator.Validate, logger *zap.Logger) *BuildingService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BuildingService{repo: repo, validator: validate, logger: logger}
}

// List returns every building with its aggregate counters.
func (s *BuildingService) List(ctx context.Context) ([]models.BuildingSummary, error) {
	summaries, err := s.repo.ListSummaries(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list buildings")
	}
	if summaries == nil {
		summaries = []models.BuildingSummary{}
	}
	return summaries, nil
}

// Create registers a new building.
func (s *BuildingService) Create(ctx context.Context, req CreateBuildingRequest) (*models.Building, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "address and managerID are required")
	}
	building := &models.Building{Address: req.Address, ManagerID: req.ManagerID}
	if err := s.repo.Create(ctx, building); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create building")
	}
	return building, nil
}

// Update applies a partial update to a building.
func (s *BuildingService) Update(ctx context.Context, id int64, req UpdateBuildingRequest) error {
	patch := models.BuildingPatch{Address: req.Address, ManagerID: req.ManagerID}
	if patch.Empty() {
		return appErrors.Clone(appErrors.ErrValidation, "no updatable fields supplied")
	}
	if err := s.repo.Update(ctx, id, patch); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "building not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update building")
	}
	return nil
}
