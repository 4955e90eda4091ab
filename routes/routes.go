package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"rclinic-backend/config"
	"rclinic-backend/controllers"
	"rclinic-backend/models"
	"rclinic-backend/utils"
)

const sessionName = "rclinic_session"

func SetupRouter(cfg *config.Config, h *controllers.Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.Origins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(config.PerformanceLogger())

	sessionStore := cookie.NewStore([]byte(cfg.Session.Secret))
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int((2 * time.Hour).Seconds()),
		HttpOnly: true,
		Secure:   cfg.Session.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, sessionStore))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	requireAuth := utils.AuthMiddleware(cfg.JWT.Secret)

	auth := r.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/referrer-login", h.Auth.ReferrerLogin)
		auth.POST("/logout", h.Auth.Logout)

		auth.Use(requireAuth)
		auth.GET("/me", h.Auth.Me)
	}

	api := r.Group("/api")
	{
		// Page routing
		api.GET("/routes", GetRouteTable)
		api.GET("/routes/resolve", ResolveRoute)

		// Public catalog
		api.GET("/offers", h.Coupons.GetOffers)
		api.GET("/coupons", h.Coupons.GetCoupons)
		api.GET("/coupons/:id", h.Coupons.GetCoupon)
		api.POST("/coupons/:id/generate", h.Coupons.GenerateCoupon)
		api.GET("/associates", h.Coupons.GetAssociates)
		api.GET("/medical-centers", h.Coupons.GetMedicalCenters)

		// Coupon verifier
		api.GET("/coupon-codes/:code", h.Coupons.VerifyCode)
		api.POST("/coupon-codes/:code/redeem", h.Coupons.RedeemCode)

		// Specialist search
		api.GET("/search/catalog", h.Search.GetCatalog)
		api.GET("/search/specialists", h.Search.SearchSpecialists)

		wizard := api.Group("/booking/wizard")
		{
			wizard.GET("", h.Booking.GetWizard)
			wizard.POST("/specialist", h.Booking.SelectSpecialist)
			wizard.POST("/date", h.Booking.SelectDate)
			wizard.POST("/time", h.Booking.SelectTime)
			wizard.POST("/next", h.Booking.Next)
			wizard.POST("/patient", h.Booking.SubmitPatient)
			wizard.POST("/back", h.Booking.Back)
			wizard.POST("/reset", h.Booking.Reset)
		}

		// Referral program
		api.POST("/referrals/register", h.Referrals.Register)
		api.GET("/referrals/dashboard", requireAuth, utils.RequireRole(models.RoleReferrer), h.Referrals.GetDashboard)
	}

	agenda := api.Group("/agenda", requireAuth, utils.RequireRole(models.RoleAdmin, models.RoleDoctor))
	{
		agenda.GET("", h.Agenda.GetAgenda)
		agenda.GET("/doctors", h.Agenda.GetDoctors)
		agenda.GET("/stats", h.Reports.GetAgendaReport)
		agenda.GET("/reminders/:date", h.Agenda.PrepareReminders)
		agenda.POST("/reminders/:date", h.Agenda.SendReminders)
		agenda.POST("/appointments/:id/confirm", h.Agenda.Confirm)
		agenda.POST("/appointments/:id/cancel", h.Agenda.Cancel)
		agenda.POST("/appointments/:id/reschedule", h.Agenda.Reschedule)
	}

	admin := api.Group("/admin", requireAuth, utils.RequireRole(models.RoleAdmin))
	{
		h.Offers.Register(admin.Group("/offers"))
		h.CouponTemplates.Register(admin.Group("/coupons"))
		h.Associates.Register(admin.Group("/associates"))
		h.MedicalCenters.Register(admin.Group("/medical-centers"))
		h.Specialists.Register(admin.Group("/specialists"))
		h.ScheduleUsers.Register(admin.Group("/schedule-users"))
		h.ReminderTemplates.Register(admin.Group("/reminder-templates"))

		admin.GET("/reminder-logs", h.Reminders.GetReminderLogs)
		admin.GET("/reports/redemptions", h.Reports.GetRedemptionHistory)

		referrers := admin.Group("/referrers")
		{
			referrers.GET("", h.Referrals.GetReferrers)
			referrers.PATCH("/:id/approve", h.Referrals.Approve)
			referrers.PATCH("/:id/reject", h.Referrals.Reject)
			referrers.PATCH("/:id/toggle-activity", h.Referrals.ToggleActivity)
		}

		schedules := admin.Group("/schedules")
		{
			schedules.GET("", h.Schedules.GetDoctors)
			schedules.GET("/:id", h.Schedules.GetWorkingHours)
			schedules.POST("/:id/times", h.Schedules.AddWorkingHour)
			schedules.DELETE("/:id/times", h.Schedules.RemoveWorkingHour)
		}
	}

	return r
}

// GetRouteTable lists the page routes of the portal.
func GetRouteTable(c *gin.Context) {
	c.JSON(http.StatusOK, RouteTable())
}

// ResolveRoute resolves ?fragment= to a page.
func ResolveRoute(c *gin.Context) {
	c.JSON(http.StatusOK, ResolveFragment(c.Query("fragment")))
}
