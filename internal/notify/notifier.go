// Package notify carries the outbound notification side effects of the
// booking and withdrawal flows. Delivery is best-effort per channel and
// never rolls back or blocks the financial mutation that triggered it.
package notify

import (
	"context"

	"backend/internal/domain/models"
	"backend/internal/utils"
)

// Sender is one outbound channel (email, SMS, WhatsApp). Implementations
// live outside this core; delivery failures are logged, not propagated.
type Sender interface {
	Send(recipient, content string) error
}

// Publisher pushes structured events onto the notification queue for
// asynchronous delivery workers.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Event is the payload published for every notification-worthy change.
type Event struct {
	Kind      string `json:"kind"`
	BookingID int64  `json:"booking_id,omitempty"`
	CompanyID int64  `json:"company_id,omitempty"`
	TxID      int64  `json:"tx_id,omitempty"`
	Amount    int64  `json:"amount,omitempty"`
	Recipient string `json:"recipient,omitempty"`
	Message   string `json:"message"`
}

// Dispatcher fans one event out to the queue and the direct channels.
// Any field may be nil; missing channels are skipped silently.
type Dispatcher struct {
	Email     Sender
	SMS       Sender
	WhatsApp  Sender
	Queue     Publisher
	RequestID string
}

// Dispatch publishes the event and pushes it to each configured direct
// channel. Every failure is isolated and logged; Dispatch never fails.
func (d Dispatcher) Dispatch(ctx context.Context, ev Event) {
	if d.Queue != nil {
		if err := d.Queue.Publish(ctx, ev); err != nil {
			utils.LogEvent(d.RequestID, "notify", "publish", "queue publish failed: "+err.Error())
		}
	}
	for name, ch := range map[string]Sender{"email": d.Email, "sms": d.SMS, "whatsapp": d.WhatsApp} {
		if ch == nil || ev.Recipient == "" {
			continue
		}
		if err := ch.Send(ev.Recipient, ev.Message); err != nil {
			utils.LogEvent(d.RequestID, "notify", name, "send failed: "+err.Error())
		}
	}
}

// BookingConfirmed notifies the customer their seat is locked in.
func (d Dispatcher) BookingConfirmed(ctx context.Context, b models.Booking) {
	d.Dispatch(ctx, Event{
		Kind:      "booking.confirmed",
		BookingID: b.ID,
		Amount:    b.TotalAmount,
		Recipient: bookingContact(b),
		Message:   "Booking " + b.SeatLabel + " dikonfirmasi. Terima kasih.",
	})
}

// BookingRejected notifies the customer their payment was not accepted.
func (d Dispatcher) BookingRejected(ctx context.Context, b models.Booking) {
	d.Dispatch(ctx, Event{
		Kind:      "booking.rejected",
		BookingID: b.ID,
		Recipient: bookingContact(b),
		Message:   "Pembayaran booking tidak dapat diverifikasi. Silakan hubungi kami.",
	})
}

// WithdrawalRequested alerts the platform operator a payout needs review.
func (d Dispatcher) WithdrawalRequested(ctx context.Context, tx models.Transaction) {
	d.Dispatch(ctx, Event{
		Kind:      "withdrawal.requested",
		CompanyID: tx.CompanyID,
		TxID:      tx.ID,
		Amount:    tx.Amount,
		Message:   "Permintaan penarikan " + utils.FormatRupiah(tx.Amount) + " menunggu persetujuan.",
	})
}

// WithdrawalResolved informs the company of the payout decision.
func (d Dispatcher) WithdrawalResolved(ctx context.Context, tx models.Transaction) {
	msg := "Penarikan " + utils.FormatRupiah(tx.Amount) + " telah dibayarkan."
	if tx.Status == models.TxRejected {
		msg = "Penarikan " + utils.FormatRupiah(tx.Amount) + " ditolak; saldo dikembalikan."
	}
	d.Dispatch(ctx, Event{
		Kind:      "withdrawal.resolved",
		CompanyID: tx.CompanyID,
		TxID:      tx.ID,
		Amount:    tx.Amount,
		Message:   msg,
	})
}

func bookingContact(b models.Booking) string {
	if b.GuestEmail != "" {
		return b.GuestEmail
	}
	return b.GuestPhone
}
