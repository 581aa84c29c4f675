package models

import "time"

// TxType classifies how a ledger row affects the company balance.
type TxType string

const (
	TxCredit     TxType = "CREDIT"
	TxDebit      TxType = "DEBIT"
	TxWithdrawal TxType = "WITHDRAWAL"
	// TxInfo records money that moved outside platform custody
	// (e.g. gateway split payout); never part of balance math.
	TxInfo TxType = "INFO"
)

// TxCategory labels the business reason behind a ledger row.
type TxCategory string

const (
	CatBookingRevenue      TxCategory = "BOOKING_REVENUE"
	CatCommissionDeduction TxCategory = "COMMISSION_DEDUCTION"
	CatPayout              TxCategory = "PAYOUT"
	CatAdjustment          TxCategory = "ADJUSTMENT"
	CatBonus               TxCategory = "BONUS"
	CatExternalPayment     TxCategory = "EXTERNAL_PAYMENT"
)

// TxStatus is the lifecycle state of a ledger row. COMPLETED and
// REJECTED are terminal; only PENDING rows may transition, exactly once.
type TxStatus string

const (
	TxPending   TxStatus = "PENDING"
	TxCompleted TxStatus = "COMPLETED"
	TxFailed    TxStatus = "FAILED"
	TxRejected  TxStatus = "REJECTED"
)

// Transaction is one append-only ledger entry. Rows are never deleted;
// superseded states are in-place status updates, not new rows.
type Transaction struct {
	ID          int64      `json:"id"`
	CompanyID   int64      `json:"company_id"`
	BookingID   int64      `json:"booking_id,omitempty"` // 0 when not booking-linked
	Type        TxType     `json:"type"`
	Category    TxCategory `json:"category"`
	Amount      int64      `json:"amount"`
	Status      TxStatus   `json:"status"`
	Description string     `json:"description"`
	Reference   string     `json:"reference,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CountsTowardBalance reports whether the row participates in the
// balance fold: INFO rows and REJECTED rows never do.
func (t Transaction) CountsTowardBalance() bool {
	return t.Type != TxInfo && t.Status != TxRejected
}
