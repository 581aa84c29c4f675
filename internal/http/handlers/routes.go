package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	intconfig "backend/internal/config"
	"backend/internal/domain/models"
	"backend/internal/http/middleware"
	"backend/internal/repositories"
	"backend/internal/services"
	"backend/internal/utils"

	"github.com/gin-gonic/gin"
)

// POST /api/routes
func CreateRoute(c *gin.Context) {
	var draft services.RouteDraft
	if !BindJSONOrError(c, &draft) {
		return
	}

	actor := middleware.GetActor(c)
	if !actor.CanActFor(draft.CompanyID) {
		RespondError(c, http.StatusForbidden, "tidak boleh membuat rute untuk perusahaan lain", nil)
		return
	}

	rid := middleware.GetRequestID(c)
	route, err := routeService(rid).Create(c.Request.Context(), draft)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, route)
}

// GET /api/routes?company_id=
func GetRoutes(c *gin.Context) {
	companyID, err := strconv.ParseInt(c.Query("company_id"), 10, 64)
	if err != nil || companyID <= 0 {
		RespondError(c, http.StatusBadRequest, "company_id tidak valid", err)
		return
	}

	repo := repositories.RouteRepository{DB: intconfig.DB}
	routes, err := repo.ListByCompany(c.Request.Context(), companyID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "gagal mengambil rute", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"routes": routes})
}

// GET /api/routes/:id
func GetRouteByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	repo := repositories.RouteRepository{DB: intconfig.DB}
	route, err := repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			RespondError(c, http.StatusNotFound, "rute tidak ditemukan", nil)
			return
		}
		RespondError(c, http.StatusInternalServerError, "gagal mengambil rute", err)
		return
	}

	rid := middleware.GetRequestID(c)
	occupied, err := capacityService(rid).CountOccupying(c.Request.Context(), id, models.OnlineOccupying())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "gagal menghitung kursi", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"route":           route,
		"seats_available": route.Capacity - occupied,
	})
}

type rescheduleRequest struct {
	Departure string `json:"departure"` // "YYYY-MM-DD HH:MM:SS"
	Capacity  int    `json:"capacity"`
}

// PUT /api/routes/:id/reschedule
func RescheduleRoute(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req rescheduleRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	departure, err := utils.ParseDateTime(req.Departure)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "format tanggal tidak valid", err)
		return
	}

	if !assertRouteScope(c, id) {
		return
	}

	rid := middleware.GetRequestID(c)
	if err := routeService(rid).Reschedule(c.Request.Context(), id, departure, req.Capacity); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "jadwal diperbarui"})
}

// GET /api/routes/:id/bookings
func ListRouteBookings(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if !assertRouteScope(c, id) {
		return
	}

	repo := repositories.BookingRepository{DB: intconfig.DB}
	bookings, err := repo.ListByRoute(c.Request.Context(), id)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "gagal mengambil booking", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// assertRouteScope loads the route and rejects cross-company writes.
func assertRouteScope(c *gin.Context, routeID int64) bool {
	repo := repositories.RouteRepository{DB: intconfig.DB}
	route, err := repo.GetByID(c.Request.Context(), routeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			RespondError(c, http.StatusNotFound, "rute tidak ditemukan", nil)
			return false
		}
		RespondError(c, http.StatusInternalServerError, "gagal mengambil rute", err)
		return false
	}
	if !middleware.GetActor(c).CanActFor(route.CompanyID) {
		RespondError(c, http.StatusForbidden, "rute milik perusahaan lain", nil)
		return false
	}
	return true
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "id tidak valid", err)
		return 0, false
	}
	return id, true
}
