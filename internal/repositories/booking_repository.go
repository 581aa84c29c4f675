package repositories

import (
	"context"
	"database/sql"
	"strings"

	intdb "backend/internal/db"
	"backend/internal/domain/models"
)

type BookingRepository struct {
	DB *sql.DB
}

const bookingColumns = `id, route_id, COALESCE(user_id, 0), status, origin, seat_label, seat_count,
	guest_name, guest_phone, guest_email, emergency_contact,
	total_amount, service_fee, company_revenue,
	payment_method, payment_ref, proof_file, created_at, updated_at`

func (r BookingRepository) Insert(ctx context.Context, b *models.Booking) error {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO bookings
			(route_id, user_id, status, origin, seat_label, seat_count,
			 guest_name, guest_phone, guest_email, emergency_contact,
			 total_amount, service_fee, company_revenue,
			 payment_method, payment_ref, proof_file)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.RouteID,
		intdb.NullIfZero(b.UserID),
		string(b.Status),
		string(b.Origin),
		b.SeatLabel,
		b.SeatCount,
		b.GuestName,
		b.GuestPhone,
		b.GuestEmail,
		b.EmergencyContact,
		b.TotalAmount,
		b.ServiceFee,
		b.CompanyRevenue,
		string(b.PaymentMethod),
		b.PaymentRef,
		b.ProofFile,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = id
	return nil
}

func (r BookingRepository) GetByID(ctx context.Context, id int64) (models.Booking, error) {
	var b models.Booking
	err := r.DB.QueryRowContext(ctx, `
		SELECT `+bookingColumns+` FROM bookings WHERE id=? LIMIT 1`, id).
		Scan(&b.ID, &b.RouteID, &b.UserID, &b.Status, &b.Origin, &b.SeatLabel, &b.SeatCount,
			&b.GuestName, &b.GuestPhone, &b.GuestEmail, &b.EmergencyContact,
			&b.TotalAmount, &b.ServiceFee, &b.CompanyRevenue,
			&b.PaymentMethod, &b.PaymentRef, &b.ProofFile, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

// UpdateStatusFrom transitions id from exactly one expected status.
// Returns false when the row was not in that status; the check runs in
// SQL so concurrent approvals cannot double-fire.
func (r BookingRepository) UpdateStatusFrom(ctx context.Context, id int64, from, to models.BookingStatus) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE bookings SET status=?, updated_at=NOW()
		WHERE id=? AND status=?`,
		string(to), id, string(from))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// CountByRouteStatus counts seat-occupying bookings for a route. The
// occupying status set is caller-defined; seats, not rows, are counted.
func (r BookingRepository) CountByRouteStatus(ctx context.Context, routeID int64, statuses []models.BookingStatus) (int, error) {
	if len(statuses) == 0 {
		return 0, nil
	}
	ph, args := statusArgs(statuses)
	args = append([]any{routeID}, args...)
	var n int
	err := r.DB.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(seat_count), 0) FROM bookings
		WHERE route_id=? AND status IN (`+ph+`)`, args...).Scan(&n)
	return n, err
}

// BulkTransition moves every booking of the route in one of the from
// statuses to the target status. Used when a reschedule closes out the
// old trip instance.
func (r BookingRepository) BulkTransition(ctx context.Context, routeID int64, from []models.BookingStatus, to models.BookingStatus) (int64, error) {
	if len(from) == 0 {
		return 0, nil
	}
	ph, args := statusArgs(from)
	args = append([]any{string(to), routeID}, args...)
	res, err := r.DB.ExecContext(ctx, `
		UPDATE bookings SET status=?, updated_at=NOW()
		WHERE route_id=? AND status IN (`+ph+`)`, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// UpdateSplit backfills the captured fee/revenue split on legacy rows.
func (r BookingRepository) UpdateSplit(ctx context.Context, id int64, fee, revenue int64) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE bookings SET service_fee=?, company_revenue=?, updated_at=NOW()
		WHERE id=?`, fee, revenue, id)
	return err
}

func (r BookingRepository) ListByRoute(ctx context.Context, routeID int64) ([]models.Booking, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+bookingColumns+` FROM bookings WHERE route_id=? ORDER BY id`, routeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		var b models.Booking
		if err := rows.Scan(&b.ID, &b.RouteID, &b.UserID, &b.Status, &b.Origin, &b.SeatLabel, &b.SeatCount,
			&b.GuestName, &b.GuestPhone, &b.GuestEmail, &b.EmergencyContact,
			&b.TotalAmount, &b.ServiceFee, &b.CompanyRevenue,
			&b.PaymentMethod, &b.PaymentRef, &b.ProofFile, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// SumSplitByCompany folds revenue, fee and gross totals over recognized
// bookings (CONFIRMED/COMPLETED) of all the company's routes. This is
// the booking-sourced cross-check against the ledger balance.
func (r BookingRepository) SumSplitByCompany(ctx context.Context, companyID int64, statuses []models.BookingStatus) (revenue, fee, gross int64, err error) {
	if len(statuses) == 0 {
		return 0, 0, 0, nil
	}
	ph, args := statusArgs(statuses)
	args = append([]any{companyID}, args...)
	err = r.DB.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(b.company_revenue), 0), COALESCE(SUM(b.service_fee), 0), COALESCE(SUM(b.total_amount), 0)
		FROM bookings b
		JOIN routes r ON r.id = b.route_id
		WHERE r.company_id=? AND b.status IN (`+ph+`)`, args...).
		Scan(&revenue, &fee, &gross)
	return revenue, fee, gross, err
}

func statusArgs(statuses []models.BookingStatus) (string, []any) {
	ph := make([]string, 0, len(statuses))
	args := make([]any, 0, len(statuses))
	for _, s := range statuses {
		ph = append(ph, "?")
		args = append(args, string(s))
	}
	return strings.Join(ph, ","), args
}
