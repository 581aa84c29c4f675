package handlers

import (
	"net/http"
	"strconv"

	intconfig "backend/internal/config"
	"backend/internal/http/middleware"
	"backend/internal/repositories"

	"github.com/gin-gonic/gin"
)

// GET /api/companies/:id/financials
func GetCompanyFinancials(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if !middleware.GetActor(c).CanActFor(id) {
		RespondError(c, http.StatusForbidden, "data keuangan perusahaan lain", nil)
		return
	}

	fin, err := financeService().CompanyFinancials(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, fin)
}

// GET /api/companies/:id/transactions?limit=
func GetCompanyTransactions(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if !middleware.GetActor(c).CanActFor(id) {
		RespondError(c, http.StatusForbidden, "data keuangan perusahaan lain", nil)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	repo := repositories.TransactionRepository{DB: intconfig.DB}
	txs, err := repo.ListByCompany(c.Request.Context(), id, limit)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "gagal mengambil transaksi", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": txs})
}

type bonusRequest struct {
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
}

// POST /api/companies/:id/bonus: operator only.
func GrantBonus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req bonusRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	rid := middleware.GetRequestID(c)
	tx, err := ledgerService(rid).GrantBonus(c.Request.Context(), id, req.Amount, req.Description)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tx)
}

type adjustmentRequest struct {
	Amount      int64  `json:"amount"`
	Credit      bool   `json:"credit"`
	Description string `json:"description"`
}

// POST /api/companies/:id/adjustments: operator only.
func CreateAdjustment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req adjustmentRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	rid := middleware.GetRequestID(c)
	tx, err := ledgerService(rid).Adjust(c.Request.Context(), id, req.Amount, req.Credit, req.Description)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tx)
}

// GET /api/settings/commission-rate
func GetCommissionRate(c *gin.Context) {
	repo := repositories.SettingRepository{DB: intconfig.DB}
	rate, err := repo.GetCommissionRate(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "gagal membaca commission rate", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"commission_rate": rate})
}

type commissionRequest struct {
	Rate int64 `json:"rate"`
}

// PUT /api/settings/commission-rate: operator only. Changing the rate
// never rewrites splits already captured on bookings.
func SetCommissionRate(c *gin.Context) {
	var req commissionRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	repo := repositories.SettingRepository{DB: intconfig.DB}
	if err := repo.SetCommissionRate(c.Request.Context(), req.Rate); err != nil {
		RespondError(c, http.StatusBadRequest, "gagal menyimpan commission rate", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"commission_rate": req.Rate})
}
