package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/jyotishya/jyotishya-backend/internal/http/handlers"
	"github.com/jyotishya/jyotishya-backend/internal/http/middleware"
	"github.com/jyotishya/jyotishya-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	AllowedOrigins string

	Auth *middleware.AuthMiddleware

	Health       *handlers.HealthHandler
	Horoscope    *handlers.HoroscopeHandler
	Panchang     *handlers.PanchangHandler
	Chart        *handlers.ChartHandler
	Astrologer   *handlers.AstrologerHandler
	Consultation *handlers.ConsultationHandler
	User         *handlers.UserHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware("jyotishya"))
	router.Use(middleware.AttachTraceContext())
	router.Use(middleware.RequestLogger(cfg.Log))
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	router.GET("/healthz", cfg.Health.HealthCheck)

	api := router.Group("/api")

	// Public read surface. No identity required.
	api.GET("/horoscope/daily", cfg.Horoscope.GetDaily)
	api.GET("/horoscope/daily/batch", cfg.Horoscope.GetDailyBatch)
	api.GET("/panchang/today", cfg.Panchang.GetToday)
	api.POST("/chart/compute", cfg.Chart.Compute)
	api.POST("/chart/svg", cfg.Chart.ComputeSVG)
	api.GET("/astrologers", cfg.Astrologer.List)
	api.GET("/astrologers/:id", cfg.Astrologer.Get)

	protected := api.Group("")
	protected.Use(cfg.Auth.RequireAuth())

	protected.GET("/user/me", cfg.User.Me)
	protected.PATCH("/user/profile", cfg.User.UpdateProfile)
	protected.PATCH("/user/preferences", cfg.User.UpdatePreferences)

	protected.POST("/user/kundli", cfg.Chart.Save)
	protected.GET("/user/kundli", cfg.Chart.List)
	protected.GET("/user/kundli/:id", cfg.Chart.Get)
	protected.PATCH("/user/kundli/:id", cfg.Chart.Rename)
	protected.DELETE("/user/kundli/:id", cfg.Chart.Delete)

	protected.POST("/consultations", cfg.Consultation.Book)
	protected.GET("/consultations", cfg.Consultation.List)
	protected.POST("/consultations/:id/cancel", cfg.Consultation.Cancel)

	return router
}
