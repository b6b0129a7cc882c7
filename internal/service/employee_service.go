package service

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/oakline/propmaint-api/internal/models"
	appErrors "github.com/oakline/propmaint-api/pkg/errors"
)

type employeeRepository interface {
	List(ctx context.Context, filter models.EmployeeFilter) ([]models.Employee, error)
	Create(ctx context.Context, employee *models.Employee) error
}

// CreateEmployeeRequest holds payload for registering an employee.
type CreateEmployeeRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Role      string `json:"role" validate:"required"`
}

// EmployeeService handles employee use-cases.
type EmployeeService struct {
	repo      employeeRepository
	validator *validator.Validate
}

// NewEmployeeService constructs the employee service.
func NewEmployeeService(repo employeeRepository, validate *validator.Validate) *EmployeeService {
	if validate == nil {
		validate = validator.New()
	}
	return &EmployeeService{repo: repo, validator: validate}
}

// List returns employees, optionally filtered by role.
func (s *EmployeeService) List(ctx context.Context, filter models.EmployeeFilter) ([]models.Employee, error) {
	employees, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list employees")
	}
	if employees == nil {
		employees = []models.Employee{}
	}
	return employees, nil
}

// Create registers a new employee.
func (s *EmployeeService) Create(ctx context.Context, req CreateEmployeeRequest) (*models.Employee, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "firstName, lastName and role are required")
	}

	employee := &models.Employee{FirstName: req.FirstName, LastName: req.LastName, Role: req.Role}
	if err := s.repo.Create(ctx, employee); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create employee")
	}
	return employee, nil
}
