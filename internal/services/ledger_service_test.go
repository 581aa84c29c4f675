package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backend/internal/domain"
	"backend/internal/domain/models"
)

func newLedgerFixture() (LedgerService, *memLedger) {
	ledger := newMemLedger()
	companies := newMemCompanies()
	companies.add(models.Company{ID: 1, Name: "PT Nusantara"})
	return LedgerService{Ledger: ledger, Companies: companies}, ledger
}

func TestGrantBonus(t *testing.T) {
	svc, ledger := newLedgerFixture()

	tx, err := svc.GrantBonus(context.Background(), 1, 25000, "Bonus target September")
	require.NoError(t, err)
	assert.Equal(t, models.TxCredit, tx.Type)
	assert.Equal(t, models.CatBonus, tx.Category)
	assert.Equal(t, models.TxCompleted, tx.Status)
	assert.NotEmpty(t, tx.Reference)
	assert.Equal(t, int64(25000), FoldBalance(ledger.all()))
}

func TestAdjustDebitAndCredit(t *testing.T) {
	svc, ledger := newLedgerFixture()
	ctx := context.Background()

	_, err := svc.Adjust(ctx, 1, 50000, true, "Koreksi saldo")
	require.NoError(t, err)
	_, err = svc.Adjust(ctx, 1, 20000, false, "Koreksi lebih bayar")
	require.NoError(t, err)

	rows := ledger.all()
	require.Len(t, rows, 2)
	assert.Equal(t, models.TxCredit, rows[0].Type)
	assert.Equal(t, models.TxDebit, rows[1].Type)
	assert.Equal(t, models.CatAdjustment, rows[0].Category)
	assert.Equal(t, int64(30000), FoldBalance(rows))
}

func TestLedgerAppendValidation(t *testing.T) {
	svc, _ := newLedgerFixture()
	ctx := context.Background()

	_, err := svc.GrantBonus(ctx, 1, 0, "x")
	assert.True(t, domain.IsValidation(err))

	_, err = svc.GrantBonus(ctx, 1, -5, "x")
	assert.True(t, domain.IsValidation(err))

	_, err = svc.GrantBonus(ctx, 404, 100, "x")
	assert.True(t, domain.IsNotFound(err))
}
