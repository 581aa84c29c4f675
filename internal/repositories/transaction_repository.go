package repositories

import (
	"context"
	"database/sql"
	"fmt"

	intdb "backend/internal/db"
	"backend/internal/domain/models"
)

// TransactionRepository owns the append-only ledger table. Rows are
// never deleted; PENDING rows transition exactly once via a conditional
// update keyed on the expected prior status.
type TransactionRepository struct {
	DB *sql.DB
}

const txColumns = `id, company_id, COALESCE(booking_id, 0), type, category, amount, status, description, reference, created_at, updated_at`

func (r TransactionRepository) Insert(ctx context.Context, t *models.Transaction) error {
	if t.Amount < 0 {
		return fmt.Errorf("amount negatif tidak diperbolehkan")
	}
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO transactions
			(company_id, booking_id, type, category, amount, status, description, reference)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.CompanyID,
		intdb.NullIfZero(t.BookingID),
		string(t.Type),
		string(t.Category),
		t.Amount,
		string(t.Status),
		t.Description,
		t.Reference,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = id
	return nil
}

func (r TransactionRepository) GetByID(ctx context.Context, id int64) (models.Transaction, error) {
	var t models.Transaction
	err := r.DB.QueryRowContext(ctx, `
		SELECT `+txColumns+` FROM transactions WHERE id=? LIMIT 1`, id).
		Scan(&t.ID, &t.CompanyID, &t.BookingID, &t.Type, &t.Category, &t.Amount,
			&t.Status, &t.Description, &t.Reference, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

// ExistsForBooking is the idempotency guard of the distribution engine:
// at most one row per (booking, type, category).
func (r TransactionRepository) ExistsForBooking(ctx context.Context, bookingID int64, typ models.TxType, cat models.TxCategory) (bool, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM transactions
		WHERE booking_id=? AND type=? AND category=?`,
		bookingID, string(typ), string(cat)).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r TransactionRepository) ListByCompany(ctx context.Context, companyID int64, limit int) ([]models.Transaction, error) {
	query := `SELECT ` + txColumns + ` FROM transactions WHERE company_id=? ORDER BY id DESC`
	args := []any{companyID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Transaction{}
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.CompanyID, &t.BookingID, &t.Type, &t.Category, &t.Amount,
			&t.Status, &t.Description, &t.Reference, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// UpdateStatusIfPending resolves a PENDING row. Returns false when the
// row was already resolved (or never existed); the guard lives in SQL so
// two concurrent resolvers cannot both win.
func (r TransactionRepository) UpdateStatusIfPending(ctx context.Context, id int64, to models.TxStatus) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE transactions SET status=?, updated_at=NOW()
		WHERE id=? AND status=?`,
		string(to), id, string(models.TxPending))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
