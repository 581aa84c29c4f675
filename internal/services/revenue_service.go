package services

import (
	"context"
	"fmt"

	"backend/internal/domain/models"
	"backend/internal/utils"

	"github.com/google/uuid"
)

// RevenueLedger is the ledger slice the distribution engine writes to.
type RevenueLedger interface {
	Insert(ctx context.Context, t *models.Transaction) error
	ExistsForBooking(ctx context.Context, bookingID int64, typ models.TxType, cat models.TxCategory) (bool, error)
}

// RevenueBookingStore loads bookings and backfills legacy splits.
type RevenueBookingStore interface {
	GetByID(ctx context.Context, id int64) (models.Booking, error)
	UpdateSplit(ctx context.Context, id int64, fee, revenue int64) error
}

// CompanyStore loads company reference data.
type CompanyStore interface {
	GetByID(ctx context.Context, id int64) (models.Company, error)
}

// RateSource reads the current platform commission percentage.
type RateSource interface {
	GetCommissionRate(ctx context.Context) (int64, error)
}

// RevenueService turns a confirmed booking into ledger rows. Distribute
// is idempotent: every insert is guarded by a (booking, type, category)
// existence check, so redundant or concurrent calls never double-count.
type RevenueService struct {
	Ledger    RevenueLedger
	Bookings  RevenueBookingStore
	Routes    RouteStore
	Companies CompanyStore
	Settings  RateSource
	RequestID string
}

// Distribute computes the commission/company split for the booking and
// writes the matching ledger rows.
//
// Card payment with a gateway split arrangement records an INFO row only
// (money already reached the company). Card without split credits the
// company. Any non-card method records the full amount as INFO (company
// physically holds the cash) plus a DEBIT for our commission; the two-row
// convention is kept for compatibility with existing statements.
func (s RevenueService) Distribute(ctx context.Context, bookingID int64) error {
	b, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		utils.LogEvent(s.RequestID, "revenue", "distribute",
			fmt.Sprintf("booking_id=%d tidak ditemukan: %v", bookingID, err))
		return nil
	}

	if b.Status != models.BookingConfirmed && b.Status != models.BookingCompleted {
		utils.LogEvent(s.RequestID, "revenue", "distribute",
			fmt.Sprintf("booking_id=%d status=%s, revenue belum diakui", bookingID, b.Status))
		return nil
	}

	route, err := s.Routes.GetByID(ctx, b.RouteID)
	if err != nil {
		// Data-integrity problem, not retryable: log and leave the ledger alone.
		utils.LogEvent(s.RequestID, "revenue", "distribute",
			fmt.Sprintf("booking_id=%d route_id=%d hilang: %v", bookingID, b.RouteID, err))
		return nil
	}
	company, err := s.Companies.GetByID(ctx, route.CompanyID)
	if err != nil {
		utils.LogEvent(s.RequestID, "revenue", "distribute",
			fmt.Sprintf("booking_id=%d company_id=%d hilang: %v", bookingID, route.CompanyID, err))
		return nil
	}

	fee, revenue, err := s.resolveSplit(ctx, &b)
	if err != nil {
		return err
	}

	if b.PaymentMethod.IsCard() {
		if company.HasSplitArrangement() {
			// Gateway already paid the company its share directly;
			// record it without touching the balance.
			return s.insertOnce(ctx, models.Transaction{
				CompanyID:   company.ID,
				BookingID:   b.ID,
				Type:        models.TxInfo,
				Category:    models.CatExternalPayment,
				Amount:      revenue,
				Status:      models.TxCompleted,
				Description: fmt.Sprintf("Pendapatan booking #%d via split gateway", b.ID),
			})
		}
		return s.insertOnce(ctx, models.Transaction{
			CompanyID:   company.ID,
			BookingID:   b.ID,
			Type:        models.TxCredit,
			Category:    models.CatBookingRevenue,
			Amount:      revenue,
			Status:      models.TxCompleted,
			Description: fmt.Sprintf("Pendapatan booking #%d", b.ID),
		})
	}

	// Non-card: the company collected the full amount itself. Record the
	// gross as INFO and charge our commission as a DEBIT.
	if err := s.insertOnce(ctx, models.Transaction{
		CompanyID:   company.ID,
		BookingID:   b.ID,
		Type:        models.TxInfo,
		Category:    models.CatBookingRevenue,
		Amount:      b.TotalAmount,
		Status:      models.TxCompleted,
		Description: fmt.Sprintf("Pembayaran langsung booking #%d (%s)", b.ID, b.PaymentMethod),
	}); err != nil {
		return err
	}
	return s.insertOnce(ctx, models.Transaction{
		CompanyID:   company.ID,
		BookingID:   b.ID,
		Type:        models.TxDebit,
		Category:    models.CatCommissionDeduction,
		Amount:      fee,
		Status:      models.TxCompleted,
		Description: fmt.Sprintf("Komisi platform booking #%d", b.ID),
	})
}

// resolveSplit returns the fee/revenue captured on the booking, or
// backfills legacy rows once from the current commission rate.
func (s RevenueService) resolveSplit(ctx context.Context, b *models.Booking) (fee, revenue int64, err error) {
	if b.HasSplit() {
		return b.ServiceFee, b.CompanyRevenue, nil
	}

	rate, err := s.Settings.GetCommissionRate(ctx)
	if err != nil {
		return 0, 0, err
	}
	fee, revenue = utils.SplitCommission(b.TotalAmount, rate)
	if err := s.Bookings.UpdateSplit(ctx, b.ID, fee, revenue); err != nil {
		return 0, 0, err
	}
	b.ServiceFee, b.CompanyRevenue = fee, revenue
	return fee, revenue, nil
}

func (s RevenueService) insertOnce(ctx context.Context, t models.Transaction) error {
	exists, err := s.Ledger.ExistsForBooking(ctx, t.BookingID, t.Type, t.Category)
	if err != nil {
		return err
	}
	if exists {
		utils.LogEvent(s.RequestID, "revenue", "distribute",
			fmt.Sprintf("booking_id=%d %s/%s sudah tercatat, skip", t.BookingID, t.Type, t.Category))
		return nil
	}
	t.Reference = uuid.NewString()
	return s.Ledger.Insert(ctx, &t)
}
