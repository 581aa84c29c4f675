package models

import "time"

// BookingStatus is the booking lifecycle state.
// PENDING -> {CONFIRMED, CANCELLED}; CONFIRMED -> COMPLETED;
// CANCELLED and COMPLETED are terminal.
type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingCompleted BookingStatus = "COMPLETED"
)

// BookingOrigin distinguishes self-service bookings from counter sales.
type BookingOrigin string

const (
	OriginOnline BookingOrigin = "ONLINE"
	OriginManual BookingOrigin = "MANUAL"
)

// PaymentMethod values accepted by the booking flow.
type PaymentMethod string

const (
	PayCard     PaymentMethod = "card"
	PayTransfer PaymentMethod = "transfer"
	PayCash     PaymentMethod = "cash"
	PayPOS      PaymentMethod = "pos"
)

// IsCard reports whether the method settles through the card gateway.
func (m PaymentMethod) IsCard() bool { return m == PayCard }

// Booking belongs to exactly one route. ServiceFee and CompanyRevenue
// are captured at confirmation time so later commission-rate changes
// never rewrite historical splits.
type Booking struct {
	ID        int64         `json:"id"`
	RouteID   int64         `json:"route_id"`
	UserID    int64         `json:"user_id,omitempty"` // 0 for guest bookings
	Status    BookingStatus `json:"status"`
	Origin    BookingOrigin `json:"origin"`
	SeatLabel string        `json:"seat_label"` // "3" or a range "4-6"
	SeatCount int           `json:"seat_count"`

	GuestName        string `json:"guest_name,omitempty"`
	GuestPhone       string `json:"guest_phone,omitempty"`
	GuestEmail       string `json:"guest_email,omitempty"`
	EmergencyContact string `json:"emergency_contact,omitempty"`

	TotalAmount    int64 `json:"total_amount"`
	ServiceFee     int64 `json:"service_fee"`
	CompanyRevenue int64 `json:"company_revenue"`

	PaymentMethod PaymentMethod `json:"payment_method"`
	PaymentRef    string        `json:"payment_ref,omitempty"`
	ProofFile     string        `json:"proof_file,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasSplit reports whether the fee/revenue split was already captured.
// Zero-total bookings are treated as captured to avoid dividing nothing.
func (b Booking) HasSplit() bool {
	if b.TotalAmount == 0 {
		return true
	}
	return b.ServiceFee != 0 || b.CompanyRevenue != 0
}

// IsTerminal reports whether the status accepts no further transitions.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingCancelled || s == BookingCompleted
}

// OnlineOccupying is the status set that reserves capacity for online
// bookings: PENDING holds a seat while a bank transfer is verified so
// the route cannot oversell in the meantime.
func OnlineOccupying() []BookingStatus {
	return []BookingStatus{BookingPending, BookingConfirmed, BookingCompleted}
}

// ManualOccupying is the status set counter staff check before selling
// a seat in person.
func ManualOccupying() []BookingStatus {
	return []BookingStatus{BookingPending, BookingConfirmed}
}
