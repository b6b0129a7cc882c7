package models

// Building represents a managed residential building.
type Building struct {
	ID        int64  `db:"id" json:"buildingID"`
	Address   string `db:"address" json:"address"`
	ManagerID *int64 `db:"manager_id" json:"managerID,omitempty"`
}

// BuildingSummary is one row of the building listing with aggregate counters.
// Buildings without apartments or requests still appear with zero counts.
type BuildingSummary struct {
	ID            int64  `db:"id" json:"buildingID"`
	Address       string `db:"address" json:"address"`
	NumApartments int    `db:"num_apartments" json:"numApartments"`
	Vacancies     int    `db:"vacancies" json:"vacancies"`
	TotalRequests int    `db:"total_requests" json:"totalRequests"`
}

// BuildingPatch enumerates the patchable building fields. Nil means absent.
type BuildingPatch struct {
	Address   *string
	ManagerID *int64
}

// Empty reports whether no field is present.
func (p BuildingPatch) Empty() bool {
	return p.Address == nil && p.ManagerID == nil
}
