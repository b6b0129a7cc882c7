package models

import "time"

// Apartment represents a unit inside a building. The pair (BuildingID,
// AptNumber) is the natural key. An apartment is vacant exactly when
// RenterID is null, in which case DateRented is null too.
type Apartment struct {
	BuildingID int64      `db:"building_id" json:"buildingID"`
	AptNumber  int        `db:"apt_number" json:"aptNumber"`
	RentalCost float64    `db:"rental_cost" json:"rentalCost"`
	RenterID   *int64     `db:"renter_id" json:"renterId"`
	DateRented *time.Time `db:"date_rented" json:"dateRented"`
	IsVacant   bool       `db:"is_vacant" json:"isVacant"`
}

// ApartmentPatch enumerates the patchable apartment fields.
type ApartmentPatch struct {
	RentalCost *float64
	RenterID   *int64
	DateRented *time.Time
}

// Empty reports whether no field is present.
func (p ApartmentPatch) Empty() bool {
	return p.RentalCost == nil && p.RenterID == nil && p.DateRented == nil
}
