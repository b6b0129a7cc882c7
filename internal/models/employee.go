package models

// Employee is a maintenance worker or warehouse staff member. Employees
// relate to requests many-to-many through the request_assignments table.
type Employee struct {
	ID        int64  `db:"id" json:"employeeID"`
	FirstName string `db:"first_name" json:"firstName"`
	LastName  string `db:"last_name" json:"lastName"`
	Role      string `db:"role" json:"role"`
}

// EmployeeFilter captures the supported listing filters.
type EmployeeFilter struct {
	Role string
}
