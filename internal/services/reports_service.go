package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"backend/internal/domain"
	"backend/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// ReportsService renders financial reports for operators and companies.
type ReportsService struct {
	Finance   FinanceService
	Ledger    FinanceLedger
	Companies CompanyLister
	RequestID string
}

// CompanyStatementPDF builds the company ledger statement: balance,
// totals and the transaction history.
func (s ReportsService) CompanyStatementPDF(ctx context.Context, companyID int64) ([]byte, string, error) {
	company, err := s.Companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, "", domain.NotFoundError{Resource: "company", Err: err}
	}
	fin, err := s.Finance.CompanyFinancials(ctx, companyID)
	if err != nil {
		return nil, "", err
	}
	txs, err := s.Ledger.ListByCompany(ctx, companyID, 0)
	if err != nil {
		return nil, "", domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "reports", "company_statement", fmt.Sprintf("company_id=%d", companyID))

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Laporan Keuangan", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "LAPORAN KEUANGAN")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Perusahaan      : %s", company.Name),
		fmt.Sprintf("Tanggal Cetak   : %s", utils.FormatDateTime(time.Now())),
		fmt.Sprintf("Saldo           : %s", utils.FormatRupiah(fin.Balance)),
		fmt.Sprintf("Total Pendapatan: %s", utils.FormatRupiah(fin.TotalRevenue)),
		fmt.Sprintf("Total Bonus     : %s", utils.FormatRupiah(fin.TotalBonus)),
		fmt.Sprintf("Total Penarikan : %s", utils.FormatRupiah(fin.TotalWithdrawn)),
	}
	for _, l := range lines {
		pdf.Cell(0, 7, l)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Riwayat Transaksi:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 10)
	for _, t := range txs {
		line := fmt.Sprintf("#%d %s %s/%s %s %s",
			t.ID, utils.FormatDate(t.CreatedAt), t.Type, t.Category,
			utils.FormatRupiah(t.Amount), t.Status)
		pdf.Cell(0, 6, line)
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", domain.InternalError{Err: err}
	}
	filename := fmt.Sprintf("LAPORAN_%d_%s.pdf", companyID, time.Now().Format("20060102"))
	return buf.Bytes(), filename, nil
}

// PlatformReportPDF builds the marketplace-wide finance summary.
func (s ReportsService) PlatformReportPDF(ctx context.Context) ([]byte, string, error) {
	summary, err := s.Finance.PlatformSummary(ctx)
	if err != nil {
		return nil, "", err
	}

	utils.LogEvent(s.RequestID, "reports", "platform_summary", "")

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Ringkasan Platform", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "RINGKASAN KEUANGAN PLATFORM")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Total Komisi : "+utils.FormatRupiah(summary.TotalCommission))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Volume Bruto : "+utils.FormatRupiah(summary.GrossVolume))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Per Perusahaan:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range summary.Companies {
		line := fmt.Sprintf("%s: saldo %s, pendapatan %s, ditarik %s",
			row.CompanyName,
			utils.FormatRupiah(row.Balance),
			utils.FormatRupiah(row.TotalRevenue),
			utils.FormatRupiah(row.TotalWithdrawn))
		pdf.Cell(0, 6, line)
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", domain.InternalError{Err: err}
	}
	filename := fmt.Sprintf("PLATFORM_%s.pdf", time.Now().Format("20060102"))
	return buf.Bytes(), filename, nil
}
