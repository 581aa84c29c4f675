package services

import (
	"context"
	"fmt"
	"strings"

	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/utils"

	"github.com/google/uuid"
)

// LedgerWriter appends operator-initiated rows (bonus, adjustment).
type LedgerWriter interface {
	Insert(ctx context.Context, t *models.Transaction) error
}

// LedgerService covers the platform-operator side of the ledger:
// bonuses and manual adjustments outside the booking flow.
type LedgerService struct {
	Ledger    LedgerWriter
	Companies CompanyStore
	RequestID string
}

// GrantBonus credits a promotional bonus to the company balance.
func (s LedgerService) GrantBonus(ctx context.Context, companyID, amount int64, description string) (models.Transaction, error) {
	return s.append(ctx, companyID, amount, models.TxCredit, models.CatBonus, description)
}

// Adjust records a manual correction. credit=false debits the company.
func (s LedgerService) Adjust(ctx context.Context, companyID, amount int64, credit bool, description string) (models.Transaction, error) {
	typ := models.TxDebit
	if credit {
		typ = models.TxCredit
	}
	return s.append(ctx, companyID, amount, typ, models.CatAdjustment, description)
}

func (s LedgerService) append(ctx context.Context, companyID, amount int64, typ models.TxType, cat models.TxCategory, description string) (models.Transaction, error) {
	if amount <= 0 {
		return models.Transaction{}, domain.ValidationError{Field: "amount", Msg: "jumlah harus positif"}
	}
	if _, err := s.Companies.GetByID(ctx, companyID); err != nil {
		return models.Transaction{}, domain.NotFoundError{Resource: "company", Err: err}
	}

	t := models.Transaction{
		CompanyID:   companyID,
		Type:        typ,
		Category:    cat,
		Amount:      amount,
		Status:      models.TxCompleted,
		Description: strings.TrimSpace(description),
		Reference:   uuid.NewString(),
	}
	if err := s.Ledger.Insert(ctx, &t); err != nil {
		return models.Transaction{}, domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "ledger", "append",
		fmt.Sprintf("company_id=%d tx_id=%d %s/%s amount=%d", companyID, t.ID, typ, cat, amount))
	return t, nil
}
