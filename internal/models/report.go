package models

import "time"

// ReportRange is an inclusive date window for aggregate reports.
type ReportRange struct {
	From time.Time
	To   time.Time
}

// Revenue interval multipliers: monthly figures as stored, yearly as x12.
const (
	IntervalMonth = "Month"
	IntervalYear  = "Year"
)

// CostRow is one row of the maintenance-cost report. BuildingID and Address
// are nil for the ungrouped aggregate.
type CostRow struct {
	BuildingID *int64  `db:"building_id" json:"buildingID,omitempty"`
	Address    *string `db:"address" json:"address,omitempty"`
	TotalCost  float64 `db:"total_cost" json:"totalCost"`
}

// RevenueRow is one row of the rental-revenue report.
type RevenueRow struct {
	BuildingID   *int64  `db:"building_id" json:"buildingID,omitempty"`
	Address      *string `db:"address" json:"address,omitempty"`
	TotalRevenue float64 `db:"total_revenue" json:"totalRevenue"`
}

// VacancyRow is one row of the vacancy report.
type VacancyRow struct {
	BuildingID *int64  `db:"building_id" json:"buildingID,omitempty"`
	Address    *string `db:"address" json:"address,omitempty"`
	Vacancies  int     `db:"vacancies" json:"vacancies"`
}

// IssueTypeCountRow is a per-issue-type request count; the service divides
// the count by the number of months in the report range.
type IssueTypeCountRow struct {
	IssueType     string `db:"issue_type" json:"issueType"`
	TotalRequests int    `db:"total_requests" json:"totalRequests"`
}

// IssueTypeAverageRow is the externally visible average-per-month row.
type IssueTypeAverageRow struct {
	IssueType          string  `json:"issueType"`
	TotalRequests      int     `json:"totalRequests"`
	AvgRequestsPerMonth float64 `json:"avgRequestsPerMonth"`
}

// BuildingActivityRow compares request workload across buildings.
// AvgDaysToComplete is nil when no completion took a measurable number of
// days; zero-day completions are excluded so they do not skew the average.
type BuildingActivityRow struct {
	BuildingID        int64    `db:"building_id" json:"buildingID"`
	Address           string   `db:"address" json:"address"`
	TotalRequests     int      `db:"total_requests" json:"totalRequests"`
	CompletedRequests int      `db:"completed_requests" json:"completedRequests"`
	AvgDaysToComplete *float64 `db:"avg_days_to_complete" json:"avgDaysToComplete"`
}
