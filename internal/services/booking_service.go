package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/notify"
	"backend/internal/payment"
	"backend/internal/utils"
)

// BookingStore is the booking persistence the state machine drives.
type BookingStore interface {
	Insert(ctx context.Context, b *models.Booking) error
	GetByID(ctx context.Context, id int64) (models.Booking, error)
	UpdateStatusFrom(ctx context.Context, id int64, from, to models.BookingStatus) (bool, error)
}

// Distributor triggers revenue distribution after confirmation.
type Distributor interface {
	Distribute(ctx context.Context, bookingID int64) error
}

// BookingDraft carries a booking request before it has a seat.
type BookingDraft struct {
	RouteID int64 `json:"route_id"`
	UserID  int64 `json:"user_id"`
	Seats   int   `json:"seats"`

	GuestName        string `json:"guest_name"`
	GuestPhone       string `json:"guest_phone"`
	GuestEmail       string `json:"guest_email"`
	EmergencyContact string `json:"emergency_contact"`

	PaymentMethod models.PaymentMethod `json:"payment_method"`
	PaymentRef    string               `json:"payment_ref"`
	ProofFile     string               `json:"proof_file"`
}

// BookingService owns the booking lifecycle. Online bookings confirm
// immediately on a verified card payment and stay PENDING while a bank
// transfer waits for manual review; manual (counter) bookings are
// created CONFIRMED because payment was collected in person.
type BookingService struct {
	Bookings  BookingStore
	Routes    RouteStore
	Capacity  CapacityService
	Revenue   Distributor
	Settings  RateSource
	Verifier  payment.Verifier
	Notify    notify.Dispatcher
	RequestID string
}

// CreateOnline handles a self-service booking request.
func (s BookingService) CreateOnline(ctx context.Context, d BookingDraft) (models.Booking, error) {
	if err := validateDraft(d); err != nil {
		return models.Booking{}, err
	}
	if d.PaymentMethod != models.PayCard && d.PaymentMethod != models.PayTransfer {
		return models.Booking{}, domain.ValidationError{Field: "payment_method", Msg: "metode tidak didukung untuk booking online"}
	}

	route, err := s.Routes.GetByID(ctx, d.RouteID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, domain.NotFoundError{Resource: "route", Err: err}
		}
		return models.Booking{}, domain.InternalError{Err: err}
	}

	total := route.Price * int64(d.Seats)

	status := models.BookingPending
	if d.PaymentMethod.IsCard() {
		verdict, err := s.Verifier.Verify(ctx, d.PaymentRef, total)
		if err != nil {
			utils.LogEvent(s.RequestID, "booking", "verify", "gateway error: "+err.Error())
			verdict = payment.VerdictUnknown
		}
		switch verdict {
		case payment.VerdictSuccess:
			status = models.BookingConfirmed
		case payment.VerdictFailed:
			return models.Booking{}, domain.ValidationError{Field: "payment_ref", Msg: "pembayaran tidak terverifikasi"}
		}
	}

	b, err := s.create(ctx, d, route, total, status, models.OriginOnline, models.OnlineOccupying())
	if err != nil {
		return models.Booking{}, err
	}

	if b.Status == models.BookingConfirmed {
		s.afterConfirm(ctx, b)
	}
	return b, nil
}

// CreateManual records a counter sale; payment was already collected,
// so the booking starts CONFIRMED and revenue distributes immediately.
func (s BookingService) CreateManual(ctx context.Context, d BookingDraft) (models.Booking, error) {
	if err := validateDraft(d); err != nil {
		return models.Booking{}, err
	}

	route, err := s.Routes.GetByID(ctx, d.RouteID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, domain.NotFoundError{Resource: "route", Err: err}
		}
		return models.Booking{}, domain.InternalError{Err: err}
	}

	total := route.Price * int64(d.Seats)
	b, err := s.create(ctx, d, route, total, models.BookingConfirmed, models.OriginManual, models.ManualOccupying())
	if err != nil {
		return models.Booking{}, err
	}

	s.afterConfirm(ctx, b)
	return b, nil
}

// Approve moves a PENDING booking (verified proof of transfer) to
// CONFIRMED, distributes revenue, and notifies the customer.
func (s BookingService) Approve(ctx context.Context, id int64) (models.Booking, error) {
	b, err := s.get(ctx, id)
	if err != nil {
		return models.Booking{}, err
	}

	ok, err := s.Bookings.UpdateStatusFrom(ctx, id, models.BookingPending, models.BookingConfirmed)
	if err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}
	if !ok {
		return models.Booking{}, domain.InvalidStateError{
			Resource: "booking", Current: string(b.Status), Expected: string(models.BookingPending),
		}
	}
	b.Status = models.BookingConfirmed

	s.afterConfirm(ctx, b)
	return b, nil
}

// Reject cancels a PENDING booking. No ledger effect: no revenue was
// ever recognized for a pending booking.
func (s BookingService) Reject(ctx context.Context, id int64) (models.Booking, error) {
	b, err := s.get(ctx, id)
	if err != nil {
		return models.Booking{}, err
	}

	ok, err := s.Bookings.UpdateStatusFrom(ctx, id, models.BookingPending, models.BookingCancelled)
	if err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}
	if !ok {
		return models.Booking{}, domain.InvalidStateError{
			Resource: "booking", Current: string(b.Status), Expected: string(models.BookingPending),
		}
	}
	b.Status = models.BookingCancelled

	s.Notify.BookingRejected(ctx, b)
	return b, nil
}

func (s BookingService) create(ctx context.Context, d BookingDraft, route models.Route, total int64, status models.BookingStatus, origin models.BookingOrigin, occupying []models.BookingStatus) (models.Booking, error) {
	rate, err := s.Settings.GetCommissionRate(ctx)
	if err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}
	fee, revenue := utils.SplitCommission(total, rate)

	b := models.Booking{
		RouteID:          route.ID,
		UserID:           d.UserID,
		Status:           status,
		Origin:           origin,
		SeatCount:        d.Seats,
		GuestName:        utils.NormalizeSpace(d.GuestName),
		GuestPhone:       utils.TrimOrEmpty(d.GuestPhone),
		GuestEmail:       utils.TrimOrEmpty(d.GuestEmail),
		EmergencyContact: utils.NormalizeSpace(d.EmergencyContact),
		TotalAmount:      total,
		ServiceFee:       fee,
		CompanyRevenue:   revenue,
		PaymentMethod:    d.PaymentMethod,
		PaymentRef:       strings.TrimSpace(d.PaymentRef),
		ProofFile:        strings.TrimSpace(d.ProofFile),
	}

	_, err = s.Capacity.Reserve(ctx, route.ID, d.Seats, occupying, func(ctx context.Context, seatLabel string) error {
		b.SeatLabel = seatLabel
		return s.Bookings.Insert(ctx, &b)
	})
	if err != nil {
		return models.Booking{}, err
	}

	utils.LogEvent(s.RequestID, "booking", "create",
		fmt.Sprintf("booking_id=%d route_id=%d seats=%s status=%s", b.ID, route.ID, b.SeatLabel, b.Status))
	return b, nil
}

// afterConfirm runs the confirmation side effects. Distribution logs
// its own failures; notifications are best-effort and never block.
func (s BookingService) afterConfirm(ctx context.Context, b models.Booking) {
	if err := s.Revenue.Distribute(ctx, b.ID); err != nil {
		utils.LogEvent(s.RequestID, "booking", "distribute",
			fmt.Sprintf("booking_id=%d distribusi gagal: %v", b.ID, err))
	}
	s.Notify.BookingConfirmed(ctx, b)
}

func (s BookingService) get(ctx context.Context, id int64) (models.Booking, error) {
	b, err := s.Bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, domain.NotFoundError{Resource: "booking", Err: err}
		}
		return models.Booking{}, domain.InternalError{Err: err}
	}
	return b, nil
}

func validateDraft(d BookingDraft) error {
	if d.RouteID <= 0 {
		return domain.ValidationError{Field: "route_id", Msg: "id tidak valid"}
	}
	if d.Seats <= 0 {
		return domain.ValidationError{Field: "seats", Msg: "jumlah kursi harus positif"}
	}
	if d.UserID == 0 && strings.TrimSpace(d.GuestName) == "" {
		return domain.ValidationError{Field: "guest_name", Msg: "nama wajib untuk booking tamu"}
	}
	if d.PaymentMethod == "" {
		return domain.ValidationError{Field: "payment_method", Msg: "wajib diisi"}
	}
	return nil
}
