package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"

	"github.com/oakline/propmaint-api/internal/models"
	appErrors "github.com/oakline/propmaint-api/pkg/errors"
)

type partRepository interface {
	List(ctx context.Context) ([]models.Part, error)
	Find(ctx context.Context, id int64) (*models.Part, error)
	Create(ctx context.Context, part *models.Part) error
	Update(ctx context.Context, id int64, patch models.PartPatch) error
	Usage(ctx context.Context, id int64) ([]models.PartUsage, error)
	AdjustQuantity(ctx context.Context, id int64, delta int) error
}

// CreatePartRequest holds payload for registering an inventory part.
// Quantity defaults to zero when omitted.
type CreatePartRequest struct {
	Name     string   `json:"name" validate:"required"`
	Cost     *float64 `json:"cost" validate:"required,gte=0"`
	Quantity *int     `json:"quantity" validate:"omitempty,gte=0"`
}

// UpdatePartRequest holds the patchable part fields.
type UpdatePartRequest struct {
	Name     *string  `json:"name"`
	Cost     *float64 `json:"cost" validate:"omitempty,gte=0"`
	Quantity *int     `json:"quantity" validate:"omitempty,gte=0"`
}

// AdjustQuantityRequest carries a signed stock delta. Negative deltas are
// allowed and may drive the quantity below zero.
type AdjustQuantityRequest struct {
	QuantityDelta *int `json:"quantityDelta" validate:"required"`
}

// PartService handles parts-inventory use-cases.
type PartService struct {
	repo      partRepository
	validator *validator.Validate
}

// NewPartService constructs the part service.
func NewPartService(repo partRepository, validate *validator.Validate) *PartService {
	if validate == nil {
		validate = validator.New()
	}
	return &PartService{repo: repo, validator: validate}
}

// List returns the full parts inventory.
func (s *PartService) List(ctx context.Context) ([]models.Part, error) {
	parts, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list parts")
	}
	if parts == nil {
		parts = []models.Part{}
	}
	return parts, nil
}

// Get returns one part with its per-request usage history.
func (s *PartService) Get(ctx context.Context, id int64) (*models.PartDetail, error) {
	part, err := s.repo.Find(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "part not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load part")
	}

	usage, err := s.repo.Usage(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load part usage")
	}
	if usage == nil {
		usage = []models.PartUsage{}
	}
	return &models.PartDetail{Part: *part, Usage: usage}, nil
}

// Create registers a new part.
func (s *PartService) Create(ctx context.Context, req CreatePartRequest) (*models.Part, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "name and cost are required")
	}

	quantity := 0
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	part := &models.Part{Name: req.Name, Cost: *req.Cost, Quantity: quantity}
	if err := s.repo.Create(ctx, part); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create part")
	}
	return part, nil
}

// Update applies a partial update to a part.
func (s *PartService) Update(ctx context.Context, id int64, req UpdatePartRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "cost and quantity must be non-negative")
	}

	patch := models.PartPatch{Name: req.Name, Cost: req.Cost, Quantity: req.Quantity}
	if patch.Empty() {
		return appErrors.Clone(appErrors.ErrValidation, "no updatable fields supplied")
	}
	if err := s.repo.Update(ctx, id, patch); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "part not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update part")
	}
	return nil
}

// AdjustQuantity applies a signed delta to the stock count. The repository
// increments in a single statement, so concurrent adjustments never lose
// updates.
func (s *PartService) AdjustQuantity(ctx context.Context, id int64, req AdjustQuantityRequest) (*models.Part, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "quantityDelta is required")
	}

	if err := s.repo.AdjustQuantity(ctx, id, *req.QuantityDelta); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "part not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to adjust part quantity")
	}

	part, err := s.repo.Find(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reload part")
	}
	return part, nil
}
