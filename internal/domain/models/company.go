package models

import "time"

// Company is reference data owned by company management; this core
// reads it for identity, scoping and the split-payment arrangement.
type Company struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	// SplitCode is the gateway sub-account code. Non-empty means card
	// revenue settles directly to the company, bypassing our custody.
	SplitCode string    `json:"split_code,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// HasSplitArrangement reports whether card payments are split at the
// gateway and never pass through the platform balance.
func (c Company) HasSplitArrangement() bool { return c.SplitCode != "" }

// Vehicle reference data; only capacity matters to the booking core.
type Vehicle struct {
	ID          int64  `json:"id"`
	CompanyID   int64  `json:"company_id"`
	PlateNumber string `json:"plate_number"`
	Name        string `json:"name"`
	Capacity    int    `json:"capacity"`
}

// CompanyFinancials is the aggregate a company dashboard renders.
// Balance is always derived from the ledger fold, never stored.
type CompanyFinancials struct {
	CompanyID      int64         `json:"company_id"`
	Balance        int64         `json:"balance"`
	TotalRevenue   int64         `json:"total_revenue"` // booking-sourced, gross earned
	TotalBonus     int64         `json:"total_bonus"`
	TotalWithdrawn int64         `json:"total_withdrawn"` // PAYOUT and COMPLETED only
	Transactions   []Transaction `json:"transactions"`
}

// CompanyLedgerSummary is one row of the platform-wide report.
type CompanyLedgerSummary struct {
	CompanyID      int64  `json:"company_id"`
	CompanyName    string `json:"company_name"`
	Balance        int64  `json:"balance"`
	TotalRevenue   int64  `json:"total_revenue"`
	TotalWithdrawn int64  `json:"total_withdrawn"`
}

// PlatformSummary reports marketplace-wide money movement.
type PlatformSummary struct {
	TotalCommission int64                  `json:"total_commission"` // sum of service fees over recognized bookings
	GrossVolume     int64                  `json:"gross_volume"`     // sum of booking totals
	Companies       []CompanyLedgerSummary `json:"companies"`
}
