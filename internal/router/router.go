package router

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/booking-api/internal/handler"
	"github.com/jwalitptl/booking-api/internal/middleware"
	"github.com/jwalitptl/booking-api/internal/repository"
)

type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

// PublicHandler additionally exposes a subset of its routes to
// unauthenticated, tenant-scoped booking clients.
type PublicHandler interface {
	Handler
	RegisterPublicRoutes(*gin.RouterGroup)
}

type Router struct {
	engine       *gin.Engine
	auth         *middleware.AuthMiddleware
	tenants      repository.TenantRepository
	healthH      *handler.HealthHandler
	authH        Handler
	availability Handler
	booking      Handler
	appointmentH Handler
	workWindowH  Handler
	staffH       Handler
	catalogH     PublicHandler
	metrics      *routerMetrics
}

type Config struct {
	RateLimit     rate.Limit
	RateBurst     int
	CORSConfig    middleware.CORSConfig
	MetricsPrefix string
}

func NewRouter(
	auth *middleware.AuthMiddleware,
	tenants repository.TenantRepository,
	healthH *handler.HealthHandler,
	authH Handler,
	availabilityH Handler,
	bookingH Handler,
	appointmentH Handler,
	workWindowH Handler,
	staffH Handler,
	catalogH PublicHandler,
	config Config,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	r := &Router{
		engine:       engine,
		auth:         auth,
		tenants:      tenants,
		healthH:      healthH,
		authH:        authH,
		availability: availabilityH,
		booking:      bookingH,
		appointmentH: appointmentH,
		workWindowH:  workWindowH,
		staffH:       staffH,
		catalogH:     catalogH,
		metrics:      newRouterMetrics(config.MetricsPrefix),
	}

	engine.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		r.metricsMiddleware(),
		middleware.ErrorHandler(),
		middleware.CORS(config.CORSConfig),
	)

	rateLimiter := middleware.NewRateLimiter(config.RateLimit, config.RateBurst)
	engine.Use(rateLimiter.RateLimit())

	return r
}

func (r *Router) Setup() {
	r.engine.GET("/health", r.healthH.Health)
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.engine.Group("/api/v1")
	api.Use(func(c *gin.Context) {
		c.Header("X-API-Version", "1.0")
		c.Next()
	})

	r.authH.RegisterRoutes(api)

	// Unauthenticated booking surface, scoped to a tenant by slug. The
	// resolver turns the slug into a tenant ID or 404s before any domain
	// code runs.
	public := api.Group("/public/:tenant_slug")
	public.Use(middleware.TenantResolver(r.tenants))
	r.availability.RegisterRoutes(public)
	r.booking.RegisterRoutes(public)
	r.catalogH.RegisterPublicRoutes(public)

	// Tenant dashboard, JWT only. Dashboard bookings commit through the same
	// handler and service as the public surface.
	protected := api.Group("")
	protected.Use(r.auth.RequireAuth())
	r.booking.RegisterRoutes(protected)
	r.availability.RegisterRoutes(protected)
	r.appointmentH.RegisterRoutes(protected)
	r.workWindowH.RegisterRoutes(protected)
	r.staffH.RegisterRoutes(protected)
	r.catalogH.RegisterRoutes(protected)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	errorTotal      *prometheus.CounterVec
}

func newRouterMetrics(prefix string) *routerMetrics {
	return &routerMetrics{
		requestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: prefix + "_request_duration_seconds",
				Help: "Duration of HTTP requests in seconds",
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		errorTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_errors_total",
				Help: "Total number of HTTP errors",
			},
			[]string{"method", "path", "type"},
		),
	}
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()

		c.Next()

		status := fmt.Sprintf("%d", c.Writer.Status())
		duration := time.Since(start).Seconds()

		r.metrics.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
		r.metrics.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()

		if c.Writer.Status() >= 400 {
			r.metrics.errorTotal.WithLabelValues(c.Request.Method, path, "http").Inc()
		}
	}
}
