package models

import "time"

// Part is an inventory item. Quantity is mutated by signed deltas so that
// request/restock events stay additive; no floor at zero is enforced.
type Part struct {
	ID       int64   `db:"id" json:"partID"`
	Name     string  `db:"name" json:"name"`
	Cost     float64 `db:"cost" json:"cost"`
	Quantity int     `db:"quantity" json:"quantity"`
}

// PartPatch enumerates the patchable part fields.
type PartPatch struct {
	Name     *string
	Cost     *float64
	Quantity *int
}

// Empty reports whether no field is present.
func (p PartPatch) Empty() bool {
	return p.Name == nil && p.Cost == nil && p.Quantity == nil
}

// PartUsage is one historical consumption of a part by a request.
type PartUsage struct {
	RequestID       int64      `db:"request_id" json:"requestID"`
	IssueType       string     `db:"issue_type" json:"issueType"`
	DateRequested   time.Time  `db:"date_requested" json:"dateRequested"`
	DateCompleted   *time.Time `db:"date_completed" json:"dateCompleted"`
	BuildingAddress string     `db:"building_address" json:"buildingAddress"`
	AptNumber       *int       `db:"apt_number" json:"aptNumber"`
}

// PartDetail combines a part with its usage history.
type PartDetail struct {
	Part
	Usage []PartUsage `json:"usage"`
}
