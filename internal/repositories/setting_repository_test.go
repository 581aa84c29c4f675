package repositories

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestGetCommissionRateDefault(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT value FROM settings").
		WithArgs("commission_rate").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	repo := SettingRepository{DB: db}
	rate, err := repo.GetCommissionRate(context.Background())
	if err != nil {
		t.Fatalf("get rate error: %v", err)
	}
	if rate != 5 {
		t.Fatalf("expected default rate 5, got %d", rate)
	}
}

func TestGetCommissionRateStoredAndGarbage(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT value FROM settings").
		WithArgs("commission_rate").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("12"))
	mock.ExpectQuery("SELECT value FROM settings").
		WithArgs("commission_rate").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("150"))

	repo := SettingRepository{DB: db}
	rate, err := repo.GetCommissionRate(context.Background())
	if err != nil {
		t.Fatalf("get rate error: %v", err)
	}
	if rate != 12 {
		t.Fatalf("expected stored rate 12, got %d", rate)
	}

	// Out-of-range stored values fall back to the default.
	rate, err = repo.GetCommissionRate(context.Background())
	if err != nil {
		t.Fatalf("get rate error: %v", err)
	}
	if rate != 5 {
		t.Fatalf("expected fallback rate 5, got %d", rate)
	}
}

func TestSetCommissionRateBounds(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	repo := SettingRepository{DB: db}
	if err := repo.SetCommissionRate(context.Background(), -1); err == nil {
		t.Fatalf("expected error for negative rate")
	}
	if err := repo.SetCommissionRate(context.Background(), 101); err == nil {
		t.Fatalf("expected error for rate over 100")
	}

	mock.ExpectExec("INSERT INTO settings").
		WithArgs("commission_rate", "8").
		WillReturnResult(sqlmock.NewResult(1, 1))
	if err := repo.SetCommissionRate(context.Background(), 8); err != nil {
		t.Fatalf("set rate error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
