package services

import (
	"context"
	"database/sql"
	"errors"

	"backend/internal/domain"
	"backend/internal/domain/models"
)

// FinanceLedger reads the full ledger history for a company. The fold
// over this history is the source of truth for every balance; nothing
// is cached.
type FinanceLedger interface {
	ListByCompany(ctx context.Context, companyID int64, limit int) ([]models.Transaction, error)
}

// FinanceBookingStore supplies the booking-sourced revenue cross-check.
type FinanceBookingStore interface {
	SumSplitByCompany(ctx context.Context, companyID int64, statuses []models.BookingStatus) (revenue, fee, gross int64, err error)
}

// CompanyLister extends CompanyStore with the platform-wide listing.
type CompanyLister interface {
	CompanyStore
	List(ctx context.Context) ([]models.Company, error)
}

const recentTransactionLimit = 20

// FinanceService recomputes balances and category totals by folding
// over the ledger.
type FinanceService struct {
	Ledger    FinanceLedger
	Bookings  FinanceBookingStore
	Companies CompanyLister
}

// FoldBalance computes credits minus debits-and-withdrawals over
// non-REJECTED rows. INFO rows never participate. PENDING withdrawals
// count: requested funds are unavailable until the request resolves.
func FoldBalance(txs []models.Transaction) int64 {
	var balance int64
	for _, t := range txs {
		if !t.CountsTowardBalance() {
			continue
		}
		switch t.Type {
		case models.TxCredit:
			balance += t.Amount
		case models.TxDebit, models.TxWithdrawal:
			balance -= t.Amount
		}
	}
	return balance
}

// Balance recomputes the company's current available balance.
func (s FinanceService) Balance(ctx context.Context, companyID int64) (int64, error) {
	txs, err := s.Ledger.ListByCompany(ctx, companyID, 0)
	if err != nil {
		return 0, err
	}
	return FoldBalance(txs), nil
}

// CompanyFinancials aggregates everything a company dashboard shows.
// TotalRevenue comes from bookings, not the ledger: the ledger balance
// is net payable, booking-sourced revenue is gross earned.
func (s FinanceService) CompanyFinancials(ctx context.Context, companyID int64) (models.CompanyFinancials, error) {
	if _, err := s.Companies.GetByID(ctx, companyID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.CompanyFinancials{}, domain.NotFoundError{Resource: "company", Err: err}
		}
		return models.CompanyFinancials{}, domain.InternalError{Err: err}
	}

	txs, err := s.Ledger.ListByCompany(ctx, companyID, 0)
	if err != nil {
		return models.CompanyFinancials{}, domain.InternalError{Err: err}
	}

	out := models.CompanyFinancials{
		CompanyID: companyID,
		Balance:   FoldBalance(txs),
	}
	for _, t := range txs {
		if t.Type == models.TxCredit && t.Category == models.CatBonus && t.Status != models.TxRejected {
			out.TotalBonus += t.Amount
		}
		if t.Category == models.CatPayout && t.Status == models.TxCompleted {
			out.TotalWithdrawn += t.Amount
		}
	}

	revenue, _, _, err := s.Bookings.SumSplitByCompany(ctx, companyID,
		[]models.BookingStatus{models.BookingConfirmed, models.BookingCompleted})
	if err != nil {
		return models.CompanyFinancials{}, domain.InternalError{Err: err}
	}
	out.TotalRevenue = revenue

	if len(txs) > recentTransactionLimit {
		txs = txs[:recentTransactionLimit]
	}
	out.Transactions = txs
	return out, nil
}

// PlatformSummary reports the marketplace-wide ledger state plus total
// commission collected and gross booking volume.
func (s FinanceService) PlatformSummary(ctx context.Context) (models.PlatformSummary, error) {
	companies, err := s.Companies.List(ctx)
	if err != nil {
		return models.PlatformSummary{}, domain.InternalError{Err: err}
	}

	recognized := []models.BookingStatus{models.BookingConfirmed, models.BookingCompleted}
	out := models.PlatformSummary{Companies: []models.CompanyLedgerSummary{}}
	for _, c := range companies {
		txs, err := s.Ledger.ListByCompany(ctx, c.ID, 0)
		if err != nil {
			return models.PlatformSummary{}, domain.InternalError{Err: err}
		}

		row := models.CompanyLedgerSummary{
			CompanyID:   c.ID,
			CompanyName: c.Name,
			Balance:     FoldBalance(txs),
		}
		for _, t := range txs {
			if t.Category == models.CatPayout && t.Status == models.TxCompleted {
				row.TotalWithdrawn += t.Amount
			}
		}

		revenue, fee, gross, err := s.Bookings.SumSplitByCompany(ctx, c.ID, recognized)
		if err != nil {
			return models.PlatformSummary{}, domain.InternalError{Err: err}
		}
		row.TotalRevenue = revenue
		out.TotalCommission += fee
		out.GrossVolume += gross
		out.Companies = append(out.Companies, row)
	}
	return out, nil
}
