package services

import (
	"bytes"
	"context"
	"testing"

	"backend/internal/domain"
	"backend/internal/domain/models"
)

func newReportsFixture() (ReportsService, *financeFixture) {
	f := newFinanceFixture()
	svc := ReportsService{
		Finance:   f.svc,
		Ledger:    f.ledger,
		Companies: f.companies,
	}
	return svc, f
}

func TestCompanyStatementPDF(t *testing.T) {
	svc, f := newReportsFixture()
	ctx := context.Background()

	f.insertTx(models.Transaction{Type: models.TxCredit, Category: models.CatBookingRevenue, Amount: 90000, Status: models.TxCompleted})
	f.insertTx(models.Transaction{Type: models.TxWithdrawal, Category: models.CatPayout, Amount: 40000, Status: models.TxCompleted})

	pdf, filename, err := svc.CompanyStatementPDF(ctx, f.company.ID)
	if err != nil {
		t.Fatalf("CompanyStatementPDF returned error: %v", err)
	}
	if len(pdf) == 0 || filename == "" {
		t.Fatalf("CompanyStatementPDF returned empty data")
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("output is not a PDF document")
	}
}

func TestCompanyStatementPDFUnknownCompany(t *testing.T) {
	svc, _ := newReportsFixture()

	_, _, err := svc.CompanyStatementPDF(context.Background(), 999)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestPlatformReportPDF(t *testing.T) {
	svc, f := newReportsFixture()

	f.bookings.add(models.Booking{
		RouteID: f.route.ID, Status: models.BookingConfirmed, SeatCount: 1,
		TotalAmount: 100000, ServiceFee: 10000, CompanyRevenue: 90000,
	})

	pdf, filename, err := svc.PlatformReportPDF(context.Background())
	if err != nil {
		t.Fatalf("PlatformReportPDF returned error: %v", err)
	}
	if len(pdf) == 0 || filename == "" {
		t.Fatalf("PlatformReportPDF returned empty data")
	}
}
