package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/oakline/propmaint-api/internal/models"
)

// EmployeeRepository manages persistence for employees.
type EmployeeRepository struct {
	db *sqlx.DB
}

// NewEmployeeRepository constructs an EmployeeRepository.
func NewEmployeeRepository(db *sqlx.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

// List returns employees, optionally filtered by role.
func (r *EmployeeRepository) List(ctx context.Context, filter models.EmployeeFilter) ([]models.Employee, error) {
	query := "SELECT id, first_name, last_name, role FROM employees"
	args := []interface{}{}
	if filter.Role != "" {
		args = append(args, filter.Role)
		query += fmt.Sprintf(" WHERE role = $%d", len(args))
	}
	query += " ORDER BY last_name, first_name"

	var employees []models.Employee
	if err := r.db.SelectContext(ctx, &employees, query, args...); err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return employees, nil
}

// Create inserts an employee and fills in the generated ID.
func (r *EmployeeRepository) Create(ctx context.Context, employee *models.Employee) error {
	const query = `INSERT INTO employees (first_name, last_name, role) VALUES ($1, $2, $3) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query,
		employee.FirstName, employee.LastName, employee.Role).Scan(&employee.ID); err != nil {
		return fmt.Errorf("create employee: %w", err)
	}
	return nil
}
