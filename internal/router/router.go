package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ateriyan143-bot/school-clinic/internal/handler"
	accountHandler "github.com/ateriyan143-bot/school-clinic/internal/handler/account"
	analyticsHandler "github.com/ateriyan143-bot/school-clinic/internal/handler/analytics"
	authHandler "github.com/ateriyan143-bot/school-clinic/internal/handler/auth"
	studentHandler "github.com/ateriyan143-bot/school-clinic/internal/handler/student"
	visitHandler "github.com/ateriyan143-bot/school-clinic/internal/handler/visit"
	"github.com/ateriyan143-bot/school-clinic/internal/middleware"
)

type Config struct {
	RateLimitRPS   float64
	RateLimitBurst int
	MaxBodyBytes   int64
}

type Router struct {
	engine     *gin.Engine
	auth       *middleware.AuthMiddleware
	authH      *authHandler.Handler
	accountH   *accountHandler.Handler
	studentH   *studentHandler.Handler
	visitH     *visitHandler.Handler
	analyticsH *analyticsHandler.Handler
	h          *handler.Handler
	metrics    *routerMetrics
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
}

func NewRouter(
	auth *middleware.AuthMiddleware,
	authH *authHandler.Handler,
	accountH *accountHandler.Handler,
	studentH *studentHandler.Handler,
	visitH *visitHandler.Handler,
	analyticsH *analyticsHandler.Handler,
	h *handler.Handler,
	cfg Config,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	r := &Router{
		engine:     engine,
		auth:       auth,
		authH:      authH,
		accountH:   accountH,
		studentH:   studentH,
		visitH:     visitH,
		analyticsH: analyticsH,
		h:          h,
		metrics:    newRouterMetrics(),
	}

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		RPS:   cfg.RateLimitRPS,
		Burst: cfg.RateLimitBurst,
	})

	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
		r.metricsMiddleware(),
		rateLimiter.RateLimit(),
		middleware.SizeLimit(cfg.MaxBodyBytes),
	)

	return r
}

func (r *Router) Setup() {
	r.engine.GET("/health", r.h.HealthCheck)
	r.engine.GET("/metrics", r.h.MetricsHandler)

	api := r.engine.Group("/api")

	// Login is the only route reachable without a token.
	r.authH.RegisterPublicRoutes(api)

	protected := api.Group("")
	protected.Use(r.auth.Authenticate())

	r.authH.RegisterRoutes(protected)
	r.studentH.RegisterRoutes(protected)
	r.visitH.RegisterRoutes(protected)
	r.analyticsH.RegisterRoutes(protected)

	admin := protected.Group("")
	admin.Use(r.auth.RequireAdmin())
	r.accountH.RegisterRoutes(admin)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func newRouterMetrics() *routerMetrics {
	return &routerMetrics{
		requestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "clinic_api_request_duration_seconds",
				Help: "Duration of HTTP requests in seconds",
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "clinic_api_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
	}
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		duration := time.Since(start).Seconds()

		r.metrics.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
		r.metrics.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()
	}
}
