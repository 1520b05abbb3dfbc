package routes

import (
	"net/http"
	"time"

	"carelink/handlers"
	"carelink/middleware"
	"carelink/models"
	"carelink/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterAuthRoutes registers login, registration and session endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/login", hb.LoginHandler)
		api.POST("/register/participant", hb.RegisterParticipantHandler)
		api.POST("/register/provider", hb.RegisterProviderHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware(hb.Auth, false))
		protected.POST("/logout", hb.LogoutHandler)
		protected.GET("/session", hb.SessionHandler)
	}
}

// RegisterProviderRoutes registers directory search and provider endpoints.
func RegisterProviderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/api/categories", hb.CategoriesHandler)

	api := r.Group("/api/providers")
	{
		api.GET("", hb.SearchProvidersHandler)
		api.GET("/featured", hb.FeaturedProvidersHandler)
		api.GET("/:id", hb.GetProviderHandler)
		api.POST("/:id/views", hb.RecordViewHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware(hb.Auth, false))
		protected.PATCH("/:id", middleware.RequireRole(models.RoleProvider, models.RoleAdmin), hb.UpdateProviderHandler)
		protected.GET("/:id/analytics", middleware.RequireRole(models.RoleProvider, models.RoleAdmin), hb.AnalyticsHandler)
	}
}

// RegisterParticipantRoutes registers participant profile and favourites endpoints.
func RegisterParticipantRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	api.Use(middleware.JWTAuthMiddleware(hb.Auth, false))
	{
		api.PATCH("/participants/:id", middleware.RequireRole(models.RoleParticipant, models.RoleAdmin), hb.UpdateParticipantHandler)

		favourites := api.Group("/favourites", middleware.RequireRole(models.RoleParticipant))
		favourites.GET("", hb.FavouritesHandler)
		favourites.POST("/:providerId", hb.ToggleFavouriteHandler)
	}
}

// RegisterEnquiryRoutes registers the enquiry thread endpoints.
func RegisterEnquiryRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/enquiries")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.Auth, false))
		api.GET("", hb.ListEnquiriesHandler)
		api.POST("", middleware.RequireRole(models.RoleParticipant), hb.SendEnquiryHandler)
		api.POST("/:id/messages", hb.ReplyEnquiryHandler)
		api.POST("/:id/close", hb.CloseEnquiryHandler)
	}
}

// RegisterBookingRoutes registers the booking endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.Auth, false))
		api.GET("", hb.ListBookingsHandler)
		api.POST("", middleware.RequireRole(models.RoleParticipant), hb.CreateBookingHandler)
		api.PATCH("/:id", hb.UpdateBookingStatusHandler)
		api.POST("/:id/cancel", hb.CancelBookingHandler)
	}
}

// RegisterReviewRoutes registers review and review response endpoints.
func RegisterReviewRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reviews")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.Auth, false))
		api.POST("", middleware.RequireRole(models.RoleParticipant), hb.SubmitReviewHandler)
		api.PUT("/:id/response", middleware.RequireRole(models.RoleProvider), hb.RespondReviewHandler)
	}
}

// RegisterBillingRoutes registers checkout and the Stripe webhook.
func RegisterBillingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/billing")
	{
		api.POST("/webhook", hb.StripeWebhookHandler)
		api.POST("/checkout",
			middleware.JWTAuthMiddleware(hb.Auth, false),
			middleware.RequireRole(models.RoleProvider),
			hb.CheckoutHandler)
	}
}

// RegisterStateRoutes registers navigation and UI state endpoints. The
// session appears in responses only for its bearer.
func RegisterStateRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/state", middleware.JWTAuthMiddleware(hb.Auth, true))
	{
		api.GET("", hb.StateHandler)
		api.POST("/navigate", hb.NavigateHandler)
		api.POST("/back", hb.BackHandler)
		api.PUT("/filters", hb.SetFiltersHandler)
		api.PUT("/selected-provider", hb.SelectProviderHandler)
		api.PUT("/dashboard-tab", hb.SetDashboardTabHandler)
		api.PUT("/theme", hb.SetThemeHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		code := http.StatusOK
		if !status.Healthy() {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": status, "message": "Hi, I'm CareLink"})
	})
}

// RegisterMetricsRoute exposes the Prometheus registry.
func RegisterMetricsRoute(r *gin.Engine, gatherer prometheus.Gatherer) {
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, gatherer prometheus.Gatherer) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterProviderRoutes(r, hb)
	RegisterParticipantRoutes(r, hb)
	RegisterEnquiryRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterReviewRoutes(r, hb)
	RegisterBillingRoutes(r, hb)
	RegisterStateRoutes(r, hb)
	RegisterHealthRoute(r)
	RegisterMetricsRoute(r, gatherer)
}
