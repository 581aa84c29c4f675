package models

import "time"

// Route is one scheduled trip sold by a company. Capacity is snapshotted
// from the assigned vehicle at creation and only changes through the
// controlled reschedule path.
type Route struct {
	ID        int64 `json:"id"`
	CompanyID int64 `json:"company_id"`
	VehicleID int64 `json:"vehicle_id"`
	Capacity  int   `json:"capacity"`

	OriginCity       string `json:"origin_city"`
	OriginState      string `json:"origin_state"`
	DestinationCity  string `json:"destination_city"`
	DestinationState string `json:"destination_state"`

	Price           int64     `json:"price"` // per seat, integer currency units
	Departure       time.Time `json:"departure"`
	DurationMinutes int       `json:"duration_minutes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SameTravelDay reports whether t falls on the same calendar day as the
// current departure, in the departure's location.
func (r Route) SameTravelDay(t time.Time) bool {
	a := r.Departure.In(time.Local)
	b := t.In(time.Local)
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
