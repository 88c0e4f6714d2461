package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	config "github.com/rudralabs/rudra/configs"
	"github.com/rudralabs/rudra/internal/application/services"
	"github.com/rudralabs/rudra/internal/core/domain/plan"
	"github.com/rudralabs/rudra/internal/core/ports"
	"github.com/rudralabs/rudra/internal/infrastructure/db"
	"github.com/rudralabs/rudra/internal/infrastructure/email"
	"github.com/rudralabs/rudra/internal/infrastructure/health"
	"github.com/rudralabs/rudra/internal/infrastructure/httpserver"
	"github.com/rudralabs/rudra/internal/infrastructure/keycloak"
	"github.com/rudralabs/rudra/internal/infrastructure/redis"
	"github.com/rudralabs/rudra/internal/infrastructure/repositories"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Setup logger
	logger := logrus.New()
	if cfg.Log.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(level)
	}

	logger.Info("Starting Rudra control plane...")

	// Initialize database (apply pool settings from config)
	database, err := db.NewDatabase(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database:", err)
	}
	defer database.Close()

	logger.Info("Connected to database successfully")

	// Initialize Redis client
	redisClient, err := redis.NewRedisClient(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis:", err)
	}
	defer redisClient.Close()

	logger.Info("Connected to Redis successfully")

	// Run migrations
	if err := database.Migrate("./migrations"); err != nil {
		logger.Warn("Failed to run migrations:", err)
	}

	// Identity provider gateway
	idp := keycloak.NewClient(&cfg.Keycloak, logger)

	// The master realm ships with SSL required; relax it so the admin API
	// works over plain HTTP in development deployments.
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	if err := idp.UpdateRealm(startupCtx, "master", map[string]any{"sslRequired": "none"}); err != nil {
		logger.WithError(err).Warn("Could not relax master realm SSL requirement")
	}
	cancelStartup()

	// Redis-backed pieces
	redisCache := redis.NewRedisCache(redisClient, "appcache")
	rateLimitRepo := repositories.NewRateLimitRedisRepository(redisClient)

	// DB repositories; the tenant repository is decorated with caching
	// since every realm-scoped request reads it.
	baseTenantRepo := repositories.NewTenantRepository(database, logger)
	tenantRepo := repositories.NewCachingTenantRepository(baseTenantRepo, redisCache, 10*time.Minute)
	adminRepo := repositories.NewAdminRepository(database, logger)
	couponRepo := repositories.NewCouponRepository(database, logger)
	orgRepo := repositories.NewOrganizationRepository(database, logger)
	invitationRepo := repositories.NewInvitationRepository(database, logger)
	webhookRepo := repositories.NewWebhookRepository(database, logger)
	activityRepo := repositories.NewActivityRepository(database, logger)
	analyticsRepo := repositories.NewAnalyticsRepository(database, logger)

	emailService, err := email.NewEmailService(&cfg.Email, logger)
	if err != nil {
		logger.Fatal("Failed to initialize email service:", err)
	}

	// Wire all services
	plans := plan.BuiltinRegistry()
	entitlements := services.NewEntitlementService(logger)
	activity := services.NewActivityService(activityRepo, analyticsRepo, logger)
	authService := services.NewAuthService(adminRepo, activity, &cfg.JWT, logger)
	couponService := services.NewCouponService(couponRepo, activity, logger)
	webhookService := services.NewWebhookService(webhookRepo, tenantRepo, plans, entitlements, activity, &cfg.Webhook, logger)
	tenantService := services.NewTenantService(tenantRepo, orgRepo, webhookRepo, invitationRepo, analyticsRepo, idp, plans, entitlements, couponService, activity, logger)
	userService := services.NewUserService(tenantRepo, idp, plans, entitlements, activity, webhookService, logger)
	orgService := services.NewOrganizationService(orgRepo, invitationRepo, tenantRepo, idp, plans, entitlements, activity, webhookService, emailService, logger)
	ssoService := services.NewSSOService(tenantRepo, idp, plans, entitlements, activity, logger)
	analyticsService := services.NewAnalyticsService(analyticsRepo, activityRepo, tenantRepo, orgRepo, idp, plans, entitlements, logger)
	rateLimiterService := services.NewRateLimiterService(rateLimitRepo, tenantRepo, plans, &cfg.RateLimit, logger)

	hcSlice := []ports.HealthChecker{health.NewDBHealthChecker(database), health.NewRedisHealthChecker(redisClient), health.NewIdentityProviderHealthChecker(idp)}

	// Create server configuration
	serverConfig := &httpserver.ServerConfig{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		TLSCertFile:    cfg.Server.TLSCertFile,
		TLSKeyFile:     cfg.Server.TLSKeyFile,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Environment:    cfg.Server.Environment,
	}

	deps := httpserver.ServerDeps{
		AuthService:        authService,
		TenantService:      tenantService,
		UserService:        userService,
		OrgService:         orgService,
		SSOService:         ssoService,
		WebhookService:     webhookService,
		CouponService:      couponService,
		AnalyticsService:   analyticsService,
		RateLimiterService: rateLimiterService,
		Plans:              plans,
		HealthCheckers:     hcSlice,
	}

	server := httpserver.NewServer(serverConfig, logger, deps)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal("Failed to start server:", err)
		}
	}()

	logger.Infof("Server started on %s:%s", cfg.Server.Host, cfg.Server.Port)

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown:", err)
	}

	logger.Info("Server exited")
}
