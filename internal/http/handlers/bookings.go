package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	intconfig "backend/internal/config"
	"backend/internal/http/middleware"
	"backend/internal/repositories"
	"backend/internal/services"

	"github.com/gin-gonic/gin"
)

// POST /api/bookings: self-service booking request.
func CreateBooking(c *gin.Context) {
	var draft services.BookingDraft
	if !BindJSONOrError(c, &draft) {
		return
	}

	rid := middleware.GetRequestID(c)
	booking, err := bookingService(rid).CreateOnline(c.Request.Context(), draft)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// POST /api/bookings/manual: counter sale by company staff.
func CreateManualBooking(c *gin.Context) {
	var draft services.BookingDraft
	if !BindJSONOrError(c, &draft) {
		return
	}

	if !assertRouteScope(c, draft.RouteID) {
		return
	}

	rid := middleware.GetRequestID(c)
	booking, err := bookingService(rid).CreateManual(c.Request.Context(), draft)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// GET /api/bookings/:id
func GetBooking(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	repo := repositories.BookingRepository{DB: intconfig.DB}
	booking, err := repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			RespondError(c, http.StatusNotFound, "booking tidak ditemukan", nil)
			return
		}
		RespondError(c, http.StatusInternalServerError, "gagal mengambil booking", err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// PUT /api/bookings/:id/approve: proof of transfer verified.
func ApproveBooking(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if !assertBookingScope(c, id) {
		return
	}

	rid := middleware.GetRequestID(c)
	booking, err := bookingService(rid).Approve(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// PUT /api/bookings/:id/reject
func RejectBooking(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if !assertBookingScope(c, id) {
		return
	}

	rid := middleware.GetRequestID(c)
	booking, err := bookingService(rid).Reject(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// POST /api/bookings/:id/distribute: idempotent, safe to retry.
func DistributeBooking(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if !assertBookingScope(c, id) {
		return
	}

	rid := middleware.GetRequestID(c)
	if err := revenueService(rid).Distribute(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "distribusi selesai"})
}

// assertBookingScope resolves the booking's route owner and rejects
// cross-company writes.
func assertBookingScope(c *gin.Context, bookingID int64) bool {
	repo := repositories.BookingRepository{DB: intconfig.DB}
	booking, err := repo.GetByID(c.Request.Context(), bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			RespondError(c, http.StatusNotFound, "booking tidak ditemukan", nil)
			return false
		}
		RespondError(c, http.StatusInternalServerError, "gagal mengambil booking", err)
		return false
	}
	return assertRouteScope(c, booking.RouteID)
}
