package service

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/oakline/propmaint-api/internal/models"
	"github.com/oakline/propmaint-api/pkg/config"
	appErrors "github.com/oakline/propmaint-api/pkg/errors"
)

type requestRepository interface {
	List(ctx context.Context, filter models.RequestFilter) ([]models.MaintenanceRequest, int, error)
	Create(ctx context.Context, req *models.MaintenanceRequest) error
	Find(ctx context.Context, id int64) (*models.RequestDetail, error)
	Photos(ctx context.Context, requestID int64) ([]models.RequestPhoto, error)
	Notes(ctx context.Context, requestID int64) ([]models.RequestNote, error)
	History(ctx context.Context, requestID int64) ([]models.RequestHistoryEntry, error)
	AssignedEmployees(ctx context.Context, requestID int64) ([]models.Employee, error)
	PartsUsed(ctx context.Context, requestID int64) ([]models.RequestPart, error)
	Update(ctx context.Context, id int64, patch models.RequestPatch) error
	ReplaceAssignment(ctx context.Context, requestID, employeeID int64) error
	Exists(ctx context.Context, id int64) (bool, error)
	Cancel(ctx context.Context, id int64) error
	InsertHistory(ctx context.Context, requestID int64, entry models.RequestHistoryEntry) error
}

var knownStatuses = map[string]struct{}{
	models.StatusOpen:       {},
	models.StatusEnRoute:    {},
	models.StatusInProgress: {},
	models.StatusBlocked:    {},
	models.StatusCompleted:  {},
	models.StatusCanceled:   {},
}

// CreateRequestRequest holds payload for creating maintenance requests.
type CreateRequestRequest struct {
	IssueType     string          `json:"issueType" validate:"required"`
	Description   string          `json:"description" validate:"required"`
	BuildingID    *int64          `json:"buildingID" validate:"required"`
	AptNumber     *models.FlexInt `json:"aptNumber"`
	Priority      string          `json:"priority"`
	StudentID     *int64          `json:"studentID"`
	DateRequested *time.Time      `json:"dateRequested"`
}

// UpdateRequestRequest holds the patchable request fields. The status key
// patches the active-status column; assignedEmployeeID is not a column but
// an idempotent re-assignment side effect.
type UpdateRequestRequest struct {
	IssueType          *string         `json:"issueType"`
	Description        *string         `json:"description"`
	Status             *string         `json:"status"`
	Priority           *string         `json:"priority"`
	BuildingID         *int64          `json:"buildingID"`
	AptNumber          *models.FlexInt `json:"aptNumber"`
	DateCompleted      *time.Time      `json:"dateCompleted"`
	AssignedEmployeeID *int64          `json:"assignedEmployeeID"`
}

// CancelRequestRequest carries the optional cancellation context.
type CancelRequestRequest struct {
	Reason string `json:"reason"`
	UserID *int64 `json:"user_id"`
}

// RequestService handles maintenance-request use-cases.
type RequestService struct {
	repo      requestRepository
	caps      models.Capabilities
	cache     *CacheService
	cfg       config.RequestsConfig
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRequestService constructs the request service.
func NewRequestService(repo requestRepository, caps models.Capabilities, cache *CacheService, cfg config.RequestsConfig, validate *validator.Validate, logger *zap.Logger) *RequestService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = 100
	}
	if cfg.MaxLimit <= 0 {
		cfg.MaxLimit = 1000
	}
	return &RequestService{repo: repo, caps: caps, cache: cache, cfg: cfg, validator: validate, logger: logger}
}

// List returns requests matching the filter plus pagination metadata.
func (s *RequestService) List(ctx context.Context, filter models.RequestFilter) ([]models.MaintenanceRequest, *models.Pagination, error) {
	if filter.Limit <= 0 {
		filter.Limit = s.cfg.DefaultLimit
	}
	if filter.Limit > s.cfg.MaxLimit {
		filter.Limit = s.cfg.MaxLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	requests, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list requests")
	}
	if requests == nil {
		requests = []models.MaintenanceRequest{}
	}
	pagination := &models.Pagination{Limit: filter.Limit, Offset: filter.Offset, TotalCount: total}
	return requests, pagination, nil
}

// Create registers a new maintenance request. The ID comes from the database
// sequence, so concurrent creates never collide.
func (s *RequestService) Create(ctx context.Context, req CreateRequestRequest) (*models.MaintenanceRequest, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "issueType, description and buildingID are required")
	}

	priority := req.Priority
	if priority == "" {
		priority = models.DefaultPriority
	}
	dateRequested := time.Now().UTC()
	if req.DateRequested != nil {
		dateRequested = *req.DateRequested
	}

	request := &models.MaintenanceRequest{
		IssueType:           req.IssueType,
		Description:         req.Description,
		ActiveStatus:        models.StatusOpen,
		Priority:            priority,
		DateRequested:       dateRequested,
		BuildingID:          *req.BuildingID,
		StudentRequestingID: req.StudentID,
	}
	if req.AptNumber != nil {
		apt := req.AptNumber.Int()
		request.AptNumber = &apt
	}

	if err := s.repo.Create(ctx, request); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create request")
	}
	s.invalidateReports(ctx)
	return request, nil
}

// Detail assembles the full request view. Each secondary collection degrades
// independently to an empty list when its source is unavailable; only the
// primary row is load-bearing.
func (s *RequestService) Detail(ctx context.Context, id int64) (*models.RequestDetail, error) {
	detail, err := s.repo.Find(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "request not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load request")
	}

	detail.Photos = s.loadPhotos(ctx, detail)
	detail.Notes = s.loadNotes(ctx, detail)
	detail.History = s.loadHistory(ctx, id)

	if employees, err := s.repo.AssignedEmployees(ctx, id); err != nil {
		s.logger.Warn("assigned employees fetch degraded", zap.Int64("request_id", id), zap.Error(err))
		detail.AssignedEmployees = []models.Employee{}
	} else if employees == nil {
		detail.AssignedEmployees = []models.Employee{}
	} else {
		detail.AssignedEmployees = employees
	}

	if parts, err := s.repo.PartsUsed(ctx, id); err != nil {
		s.logger.Warn("parts fetch degraded", zap.Int64("request_id", id), zap.Error(err))
		detail.Parts = []models.RequestPart{}
	} else if parts == nil {
		detail.Parts = []models.RequestPart{}
	} else {
		detail.Parts = parts
	}

	return detail, nil
}

func (s *RequestService) loadPhotos(ctx context.Context, detail *models.RequestDetail) []models.RequestPhoto {
	if s.caps.Photos {
		photos, err := s.repo.Photos(ctx, detail.ID)
		if err != nil {
			s.logger.Warn("photo fetch degraded", zap.Int64("request_id", detail.ID), zap.Error(err))
			return []models.RequestPhoto{}
		}
		if photos != nil {
			return photos
		}
		return []models.RequestPhoto{}
	}
	// No photo table: fall back to the legacy inline column.
	if detail.PhotoURL != nil && *detail.PhotoURL != "" {
		return []models.RequestPhoto{{FilePath: *detail.PhotoURL, UploadedAt: detail.DateRequested}}
	}
	return []models.RequestPhoto{}
}

func (s *RequestService) loadNotes(ctx context.Context, detail *models.RequestDetail) []models.RequestNote {
	if s.caps.Notes {
		notes, err := s.repo.Notes(ctx, detail.ID)
		if err != nil {
			s.logger.Warn("note fetch degraded", zap.Int64("request_id", detail.ID), zap.Error(err))
			return []models.RequestNote{}
		}
		if notes != nil {
			return notes
		}
		return []models.RequestNote{}
	}
	if detail.InlineNotes != nil && *detail.InlineNotes != "" {
		return []models.RequestNote{{Body: *detail.InlineNotes, CreatedAt: detail.DateRequested}}
	}
	return []models.RequestNote{}
}

func (s *RequestService) loadHistory(ctx context.Context, id int64) []models.RequestHistoryEntry {
	if !s.caps.History {
		return []models.RequestHistoryEntry{}
	}
	history, err := s.repo.History(ctx, id)
	if err != nil {
		s.logger.Warn("history fetch degraded", zap.Int64("request_id", id), zap.Error(err))
		return []models.RequestHistoryEntry{}
	}
	if history == nil {
		return []models.RequestHistoryEntry{}
	}
	return history
}

// Update applies a partial update and/or an employee re-assignment. Repeating
// the same assignment leaves exactly one row for the (request, employee) pair.
func (s *RequestService) Update(ctx context.Context, id int64, req UpdateRequestRequest) error {
	patch := models.RequestPatch{
		IssueType:     req.IssueType,
		Description:   req.Description,
		Priority:      req.Priority,
		BuildingID:    req.BuildingID,
		DateCompleted: req.DateCompleted,
	}
	if req.AptNumber != nil {
		apt := req.AptNumber.Int()
		patch.AptNumber = &apt
	}
	if req.Status != nil {
		status := strings.ToLower(strings.TrimSpace(*req.Status))
		if _, ok := knownStatuses[status]; !ok {
			return appErrors.Clone(appErrors.ErrValidation, "unknown status "+status)
		}
		patch.ActiveStatus = &status
		// Completion stamps the completion date unless the caller provided one.
		if patch.DateCompleted == nil && (status == models.StatusCompleted || status == models.StatusCanceled) {
			now := time.Now().UTC()
			patch.DateCompleted = &now
		}
	}

	if patch.Empty() && req.AssignedEmployeeID == nil {
		return appErrors.Clone(appErrors.ErrValidation, "no updatable fields supplied")
	}

	if !patch.Empty() {
		if err := s.repo.Update(ctx, id, patch); err != nil {
			if err == sql.ErrNoRows {
				return appErrors.Clone(appErrors.ErrNotFound, "request not found")
			}
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update request")
		}
	} else {
		exists, err := s.repo.Exists(ctx, id)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load request")
		}
		if !exists {
			return appErrors.Clone(appErrors.ErrNotFound, "request not found")
		}
	}

	if req.AssignedEmployeeID != nil {
		if err := s.repo.ReplaceAssignment(ctx, id, *req.AssignedEmployeeID); err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to assign employee")
		}
	}

	s.invalidateReports(ctx)
	return nil
}

// Cancel soft-deletes a request and appends a best-effort history row. The
// history write never fails or rolls back the status change.
func (s *RequestService) Cancel(ctx context.Context, id int64, req CancelRequestRequest) error {
	detail, err := s.repo.Find(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "request not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load request")
	}

	if err := s.repo.Cancel(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "request not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to cancel request")
	}

	if s.caps.History {
		reason := req.Reason
		if reason == "" {
			reason = "Canceled via API"
		}
		entry := models.RequestHistoryEntry{
			OldStatus: detail.ActiveStatus,
			NewStatus: models.StatusCanceled,
			ChangedBy: req.UserID,
			Note:      reason,
		}
		if err := s.repo.InsertHistory(ctx, id, entry); err != nil {
			s.logger.Warn("cancel history write degraded", zap.Int64("request_id", id), zap.Error(err))
		}
	}

	s.invalidateReports(ctx)
	return nil
}

func (s *RequestService) invalidateReports(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, "reports:*")
	}
}
