package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/locks"
	"backend/internal/notify"
)

type withdrawalFixture struct {
	svc     WithdrawalService
	finance FinanceService
	ledger  *memLedger
	company models.Company
}

func newWithdrawalFixture(startingBalance int64) *withdrawalFixture {
	routes := newMemRoutes()
	bookings := newMemBookings(routes)
	ledger := newMemLedger()
	companies := newMemCompanies()
	company := companies.add(models.Company{ID: 1, Name: "PT Armada Sejahtera"})

	finance := FinanceService{Ledger: ledger, Bookings: bookings, Companies: companies}
	if startingBalance > 0 {
		tx := models.Transaction{
			CompanyID: company.ID, Type: models.TxCredit,
			Category: models.CatBookingRevenue, Amount: startingBalance,
			Status: models.TxCompleted,
		}
		if err := ledger.Insert(context.Background(), &tx); err != nil {
			panic(err)
		}
	}

	return &withdrawalFixture{
		svc: WithdrawalService{
			Ledger:  ledger,
			Finance: finance,
			Locker:  locks.NewKeyedMutex(),
			Notify:  notify.Dispatcher{},
		},
		finance: finance,
		ledger:  ledger,
		company: company,
	}
}

func TestWithdrawalRequestFullBalance(t *testing.T) {
	f := newWithdrawalFixture(10000)
	ctx := context.Background()

	tx, err := f.svc.Request(ctx, f.company.ID, 10000, "BCA 1234567890")
	require.NoError(t, err)
	assert.Equal(t, models.TxWithdrawal, tx.Type)
	assert.Equal(t, models.CatPayout, tx.Category)
	assert.Equal(t, models.TxPending, tx.Status)
	assert.NotEmpty(t, tx.Reference)

	// The pending row already holds the funds.
	balance, err := f.finance.Balance(ctx, f.company.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)

	// The same funds cannot be requested again.
	_, err = f.svc.Request(ctx, f.company.ID, 1, "BCA 1234567890")
	require.True(t, domain.IsInsufficientBalance(err))

	var insufErr domain.InsufficientBalanceError
	require.ErrorAs(t, err, &insufErr)
	assert.Equal(t, int64(1), insufErr.Requested)
	assert.Equal(t, int64(0), insufErr.Available)
}

func TestWithdrawalRequestOverBalance(t *testing.T) {
	f := newWithdrawalFixture(5000)

	_, err := f.svc.Request(context.Background(), f.company.ID, 5001, "BNI 99")
	assert.True(t, domain.IsInsufficientBalance(err))
}

func TestWithdrawalRequestValidation(t *testing.T) {
	f := newWithdrawalFixture(5000)
	ctx := context.Background()

	_, err := f.svc.Request(ctx, 0, 100, "x")
	assert.True(t, domain.IsValidation(err))

	_, err = f.svc.Request(ctx, f.company.ID, 0, "x")
	assert.True(t, domain.IsValidation(err))

	_, err = f.svc.Request(ctx, f.company.ID, -100, "x")
	assert.True(t, domain.IsValidation(err))
}

func TestWithdrawalApproveCompletes(t *testing.T) {
	f := newWithdrawalFixture(10000)
	ctx := context.Background()

	tx, err := f.svc.Request(ctx, f.company.ID, 10000, "BCA 1")
	require.NoError(t, err)

	resolved, err := f.svc.Resolve(ctx, tx.ID, true)
	require.NoError(t, err)
	assert.Equal(t, models.TxCompleted, resolved.Status)

	// Completed payout stays deducted.
	balance, _ := f.finance.Balance(ctx, f.company.ID)
	assert.Equal(t, int64(0), balance)

	// Terminal: no second resolution.
	_, err = f.svc.Resolve(ctx, tx.ID, false)
	assert.True(t, domain.IsInvalidState(err))
}

func TestWithdrawalRejectRestoresBalance(t *testing.T) {
	f := newWithdrawalFixture(10000)
	ctx := context.Background()

	tx, err := f.svc.Request(ctx, f.company.ID, 10000, "BCA 1")
	require.NoError(t, err)

	resolved, err := f.svc.Resolve(ctx, tx.ID, false)
	require.NoError(t, err)
	assert.Equal(t, models.TxRejected, resolved.Status)

	balance, _ := f.finance.Balance(ctx, f.company.ID)
	assert.Equal(t, int64(10000), balance)

	// And the funds are requestable again.
	_, err = f.svc.Request(ctx, f.company.ID, 10000, "BCA 1")
	assert.NoError(t, err)
}

func TestResolveUnknownTransaction(t *testing.T) {
	f := newWithdrawalFixture(0)

	_, err := f.svc.Resolve(context.Background(), 404, true)
	assert.True(t, domain.IsNotFound(err))
}

func TestResolveNonWithdrawalTransaction(t *testing.T) {
	f := newWithdrawalFixture(10000)

	rows := f.ledger.all()
	require.NotEmpty(t, rows)

	_, err := f.svc.Resolve(context.Background(), rows[0].ID, true)
	assert.True(t, domain.IsValidation(err))
}

// Two concurrent requests for the full balance: exactly one passes the
// check inside the company lock, the other sees the held funds.
func TestWithdrawalConcurrentRequests(t *testing.T) {
	f := newWithdrawalFixture(10000)
	ctx := context.Background()

	var wg sync.WaitGroup
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Request(ctx, f.company.ID, 10000, "BCA 1")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var ok, insufficient int
	for err := range results {
		if err == nil {
			ok++
			continue
		}
		require.True(t, domain.IsInsufficientBalance(err), "unexpected error: %v", err)
		insufficient++
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, insufficient)

	balance, _ := f.finance.Balance(ctx, f.company.ID)
	assert.Equal(t, int64(0), balance)
}
