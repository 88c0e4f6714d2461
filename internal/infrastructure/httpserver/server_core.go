package httpserver

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/rudralabs/rudra/internal/core/domain/plan"
	"github.com/rudralabs/rudra/internal/core/ports"
	customMiddleware "github.com/rudralabs/rudra/internal/infrastructure/httpserver/middleware"
)

type ServerConfig struct {
	Host           string
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	TLSCertFile    string
	TLSKeyFile     string
	AllowedOrigins []string
	Environment    string
}

type ServerDeps struct {
	AuthService        ports.AuthService
	TenantService      ports.TenantService
	UserService        ports.UserService
	OrgService         ports.OrganizationService
	SSOService         ports.SSOService
	WebhookService     ports.WebhookService
	CouponService      ports.CouponService
	AnalyticsService   ports.AnalyticsService
	RateLimiterService ports.RateLimiterService
	Plans              *plan.Registry
	HealthCheckers     []ports.HealthChecker
}

type Server struct {
	echo           *echo.Echo
	config         *ServerConfig
	logger         *logrus.Logger
	authSvc        ports.AuthService
	tenantService  ports.TenantService
	userService    ports.UserService
	orgService     ports.OrganizationService
	ssoService     ports.SSOService
	webhookService ports.WebhookService
	couponService  ports.CouponService
	analyticsSvc   ports.AnalyticsService
	plans          *plan.Registry
	middleware     *customMiddleware.MiddlewareCollection
	healthCheckers []ports.HealthChecker
}

func NewServer(serverConfig *ServerConfig, logger *logrus.Logger, deps ServerDeps) *Server {
	e := echo.New()
	e.HideBanner = true

	server := &Server{
		echo:           e,
		config:         serverConfig,
		logger:         logger,
		authSvc:        deps.AuthService,
		tenantService:  deps.TenantService,
		userService:    deps.UserService,
		orgService:     deps.OrgService,
		ssoService:     deps.SSOService,
		webhookService: deps.WebhookService,
		couponService:  deps.CouponService,
		analyticsSvc:   deps.AnalyticsService,
		plans:          deps.Plans,
		healthCheckers: deps.HealthCheckers,
		middleware: customMiddleware.NewMiddlewareCollection(
			deps.AuthService,
			deps.RateLimiterService,
			logger,
			GetRequestsTotal(),
			GetRequestDuration(),
		),
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}
