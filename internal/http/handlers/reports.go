package handlers

import (
	"net/http"

	"backend/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// GET /api/reports/finance: platform-wide ledger summary, operator only.
func GetFinanceReport(c *gin.Context) {
	summary, err := financeService().PlatformSummary(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GET /api/reports/finance.pdf: operator only.
func GetFinanceReportPDF(c *gin.Context) {
	rid := middleware.GetRequestID(c)
	data, filename, err := reportsService(rid).PlatformReportPDF(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

// GET /api/companies/:id/statement.pdf
func GetCompanyStatementPDF(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if !middleware.GetActor(c).CanActFor(id) {
		RespondError(c, http.StatusForbidden, "laporan perusahaan lain", nil)
		return
	}

	rid := middleware.GetRequestID(c)
	data, filename, err := reportsService(rid).CompanyStatementPDF(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
