package api

import (
	"log"
	stdhttp "net/http"

	intconfig "backend/internal/config"
	"backend/internal/domain"
	h "backend/internal/http/handlers"
	"backend/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route tidak ditemukan",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		// Auth
		api.POST("/auth/login", h.Login(env.JWTSecret))

		// Public catalogue + online booking
		api.GET("/routes", h.GetRoutes)
		api.GET("/routes/:id", h.GetRouteByID)
		api.POST("/bookings", h.CreateBooking)
		api.GET("/bookings/:id", h.GetBooking)

		auth := api.Group("")
		auth.Use(middleware.Auth(env.JWTSecret))
		{
			staff := auth.Group("")
			staff.Use(middleware.RequireRole(domain.RoleOperator, domain.RoleCompanyAdmin))
			{
				// Route management
				staff.POST("/routes", h.CreateRoute)
				staff.PUT("/routes/:id/reschedule", h.RescheduleRoute)
				staff.GET("/routes/:id/bookings", h.ListRouteBookings)

				// Booking lifecycle
				staff.POST("/bookings/manual", h.CreateManualBooking)
				staff.PUT("/bookings/:id/approve", h.ApproveBooking)
				staff.PUT("/bookings/:id/reject", h.RejectBooking)
				staff.POST("/bookings/:id/distribute", h.DistributeBooking)

				// Company finance
				staff.GET("/companies/:id/financials", h.GetCompanyFinancials)
				staff.GET("/companies/:id/transactions", h.GetCompanyTransactions)
				staff.GET("/companies/:id/statement.pdf", h.GetCompanyStatementPDF)
				staff.POST("/companies/:id/withdrawals", h.RequestWithdrawal)
			}

			operator := auth.Group("")
			operator.Use(middleware.RequireRole(domain.RoleOperator))
			{
				operator.PUT("/withdrawals/:id/resolve", h.ResolveWithdrawal)
				operator.POST("/companies/:id/bonus", h.GrantBonus)
				operator.POST("/companies/:id/adjustments", h.CreateAdjustment)
				operator.GET("/settings/commission-rate", h.GetCommissionRate)
				operator.PUT("/settings/commission-rate", h.SetCommissionRate)
				operator.GET("/reports/finance", h.GetFinanceReport)
				operator.GET("/reports/finance.pdf", h.GetFinanceReportPDF)
			}
		}
	}

	return r
}
