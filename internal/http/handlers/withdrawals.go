package handlers

import (
	"net/http"
	"strings"

	"backend/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

type withdrawalRequest struct {
	Amount  int64  `json:"amount"`
	BankRef string `json:"bank_ref"`
}

// POST /api/companies/:id/withdrawals
func RequestWithdrawal(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if !middleware.GetActor(c).CanActFor(id) {
		RespondError(c, http.StatusForbidden, "penarikan untuk perusahaan lain", nil)
		return
	}

	var req withdrawalRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	rid := middleware.GetRequestID(c)
	tx, err := withdrawalService(rid).Request(c.Request.Context(), id, req.Amount, req.BankRef)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tx)
}

type resolveRequest struct {
	Action string `json:"action"` // "approve" | "reject"
}

// PUT /api/withdrawals/:id/resolve: operator only.
func ResolveWithdrawal(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req resolveRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	var approve bool
	switch strings.ToLower(strings.TrimSpace(req.Action)) {
	case "approve":
		approve = true
	case "reject":
		approve = false
	default:
		RespondError(c, http.StatusBadRequest, "action harus approve atau reject", nil)
		return
	}

	rid := middleware.GetRequestID(c)
	tx, err := withdrawalService(rid).Resolve(c.Request.Context(), id, approve)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, tx)
}
