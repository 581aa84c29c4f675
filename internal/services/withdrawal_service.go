package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/locks"
	"backend/internal/notify"
	"backend/internal/utils"

	"github.com/google/uuid"
)

// WithdrawalLedger is the ledger slice the payout workflow touches.
type WithdrawalLedger interface {
	Insert(ctx context.Context, t *models.Transaction) error
	GetByID(ctx context.Context, id int64) (models.Transaction, error)
	UpdateStatusIfPending(ctx context.Context, id int64, to models.TxStatus) (bool, error)
}

// BalanceSource recomputes the available balance before a request.
type BalanceSource interface {
	Balance(ctx context.Context, companyID int64) (int64, error)
}

// WithdrawalService validates, creates and resolves WITHDRAWAL rows.
// Requests are serialized per company: two concurrent requests must not
// both pass the balance check before either is written.
type WithdrawalService struct {
	Ledger    WithdrawalLedger
	Finance   BalanceSource
	Locker    locks.Locker
	Notify    notify.Dispatcher
	RequestID string
}

// Request inserts a PENDING WITHDRAWAL/PAYOUT row after checking the
// balance inside the company lock. The pending row itself debits the
// available balance, so the same funds cannot be requested twice.
func (s WithdrawalService) Request(ctx context.Context, companyID, amount int64, bankRef string) (models.Transaction, error) {
	if companyID <= 0 {
		return models.Transaction{}, domain.ValidationError{Field: "company_id", Msg: "id tidak valid"}
	}
	if amount <= 0 {
		return models.Transaction{}, domain.ValidationError{Field: "amount", Msg: "jumlah harus positif"}
	}

	unlock, err := s.Locker.Lock(ctx, "company:"+strconv.FormatInt(companyID, 10))
	if err != nil {
		return models.Transaction{}, domain.InternalError{Msg: "gagal mengunci perusahaan", Err: err}
	}
	defer unlock()

	balance, err := s.Finance.Balance(ctx, companyID)
	if err != nil {
		return models.Transaction{}, domain.InternalError{Err: err}
	}
	if amount > balance {
		return models.Transaction{}, domain.InsufficientBalanceError{
			CompanyID: companyID, Requested: amount, Available: balance,
		}
	}

	t := models.Transaction{
		CompanyID:   companyID,
		Type:        models.TxWithdrawal,
		Category:    models.CatPayout,
		Amount:      amount,
		Status:      models.TxPending,
		Description: "Permintaan penarikan dana ke " + strings.TrimSpace(bankRef),
		Reference:   uuid.NewString(),
	}
	if err := s.Ledger.Insert(ctx, &t); err != nil {
		return models.Transaction{}, domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "withdrawal", "request",
		fmt.Sprintf("company_id=%d tx_id=%d amount=%d", companyID, t.ID, amount))
	s.Notify.WithdrawalRequested(ctx, t)
	return t, nil
}

// Resolve moves a PENDING withdrawal to COMPLETED or REJECTED. The
// status guard runs in the store, so a withdrawal can never be resolved
// twice; rejection returns the funds because REJECTED rows drop out of
// the balance fold.
func (s WithdrawalService) Resolve(ctx context.Context, txID int64, approve bool) (models.Transaction, error) {
	t, err := s.Ledger.GetByID(ctx, txID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Transaction{}, domain.NotFoundError{Resource: "withdrawal", Err: err}
		}
		return models.Transaction{}, domain.InternalError{Err: err}
	}
	if t.Type != models.TxWithdrawal {
		return models.Transaction{}, domain.ValidationError{Field: "transaction_id", Msg: "bukan transaksi penarikan"}
	}

	to := models.TxCompleted
	if !approve {
		to = models.TxRejected
	}

	ok, err := s.Ledger.UpdateStatusIfPending(ctx, txID, to)
	if err != nil {
		return models.Transaction{}, domain.InternalError{Err: err}
	}
	if !ok {
		return models.Transaction{}, domain.InvalidStateError{
			Resource: "withdrawal", Current: string(t.Status), Expected: string(models.TxPending),
		}
	}
	t.Status = to

	utils.LogEvent(s.RequestID, "withdrawal", "resolve",
		fmt.Sprintf("tx_id=%d status=%s", txID, to))
	s.Notify.WithdrawalResolved(ctx, t)
	return t, nil
}
