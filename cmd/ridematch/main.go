package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/richxcame/ridematch/internal/geography"
	"github.com/richxcame/ridematch/internal/matching"
	"github.com/richxcame/ridematch/pkg/common"
	"github.com/richxcame/ridematch/pkg/config"
	"github.com/richxcame/ridematch/pkg/database"
	"github.com/richxcame/ridematch/pkg/errors"
	"github.com/richxcame/ridematch/pkg/logger"
	"github.com/richxcame/ridematch/pkg/middleware"
	redisclient "github.com/richxcame/ridematch/pkg/redis"
	"github.com/richxcame/ridematch/pkg/resilience"
	"github.com/richxcame/ridematch/pkg/tracing"
	"go.uber.org/zap"
)

const serviceName = "ridematch-service"

func main() {
	cfg, err := config.Load(serviceName)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	version := cfg.Server.Version

	if err := logger.Init(cfg.Server.Environment, zap.String("service", serviceName)); err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	logger.Info("Starting ride search service",
		zap.String("version", version),
		zap.String("environment", cfg.Server.Environment),
	)

	sentryConfig := errors.DefaultSentryConfig(cfg.Sentry.DSN, cfg.Server.Environment)
	sentryConfig.ServerName = serviceName
	sentryConfig.Release = version
	if err := errors.InitSentry(sentryConfig); err != nil {
		logger.Warn("Failed to initialize Sentry, continuing without error tracking", zap.Error(err))
	} else {
		defer errors.Flush(2 * time.Second)
		logger.Info("Sentry error tracking initialized successfully")
	}

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.Config{
			ServiceName:    serviceName,
			ServiceVersion: version,
			Environment:    cfg.Server.Environment,
			OTLPEndpoint:   cfg.Tracing.OTLPEndpoint,
			SampleRate:     cfg.Tracing.SampleRate,
			Enabled:        true,
		}, logger.Get())
		if err != nil {
			logger.Warn("Failed to initialize tracer, continuing without tracing", zap.Error(err))
		} else {
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := tp.Shutdown(shutdownCtx); err != nil {
					logger.Warn("Failed to shutdown tracer", zap.Error(err))
				}
			}()
			logger.Info("OpenTelemetry tracing initialized successfully")
		}
	}

	db, err := database.NewPostgresPool(context.Background(), &cfg.Database, serviceName)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)
	logger.Info("Connected to database")

	var provinceCache geography.Cache = geography.NewMemoryCache()
	var redisClient *redisclient.Client
	if cfg.Search.SharedCacheEnabled {
		redisClient, err = redisclient.NewRedisClient(&cfg.Redis)
		if err != nil {
			logger.Warn("Failed to connect to redis, using process-local province cache", zap.Error(err))
		} else {
			provinceCache = geography.NewLayeredCache(provinceCache, geography.NewRedisCache(redisclient.WithRetry(redisClient), ""))
			logger.Info("Shared province cache enabled", zap.String("addr", cfg.Redis.RedisAddr()))
			defer func() {
				if err := redisClient.Close(); err != nil {
					logger.Warn("Failed to close redis client", zap.Error(err))
				}
			}()
		}
	}

	provinceRepo := geography.NewRepository(db)
	resolver := geography.NewResolver(provinceRepo, provinceCache, geography.ResolverConfig{
		LookupTimeout: cfg.Search.ProvinceLookupTimeout(),
		CacheNegative: cfg.Search.CacheNegativeResults,
	})

	rideRepo := matching.NewRepository(db)
	breakers := map[string]*resilience.CircuitBreaker{}
	for _, name := range []string{matching.StrategySmartFunction, matching.StrategyProvinceSQL, matching.StrategyInMemory} {
		breakers[name] = newTierBreaker(cfg.Resilience.CircuitBreaker, name)
	}

	tiers := []matching.Tier{
		{Strategy: matching.NewSmartFunctionStrategy(rideRepo), Breaker: breakers[matching.StrategySmartFunction]},
		{Strategy: matching.NewProvinceSQLStrategy(rideRepo), Breaker: breakers[matching.StrategyProvinceSQL]},
		{Strategy: matching.NewInMemoryStrategy(rideRepo, resolver, breakers[matching.StrategyInMemory], cfg.Search.FallbackScanLimit)},
	}

	service := matching.NewService(resolver, tiers, cfg.Search)
	service.SetReverseGeocoder(geography.NewLocalityGeocoder(geography.DefaultGeocodeRadiusKm))

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.SentryMiddleware())
	router.Use(middleware.CorrelationID())
	router.Use(middleware.RequestLogger(serviceName))
	router.Use(middleware.CORS(cfg.Server.CORSOrigins))
	if cfg.Tracing.Enabled {
		router.Use(middleware.TracingMiddleware(serviceName))
	}
	router.Use(middleware.ErrorHandler())

	router.GET("/healthz", common.HealthCheck(serviceName, version))
	router.GET("/health/live", common.LivenessHandler(serviceName, version))

	healthChecks := map[string]common.CheckFunc{
		"database": db.Ping,
	}
	if redisClient != nil {
		healthChecks["redis"] = redisClient.Ping
	}
	router.GET("/health/ready", common.ReadinessHandler(serviceName, version, healthChecks, func() map[string]interface{} {
		states := make(map[string]interface{}, len(breakers))
		for name, breaker := range breakers {
			states[name] = breaker.State()
		}
		return map[string]interface{}{"circuit_breakers": states}
	}))

	router.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": serviceName,
			"version": version,
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	matching.NewHandler(service).RegisterRoutes(api)
	geography.NewHandler(resolver, provinceRepo).RegisterRoutes(api)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("Server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server stopped")
}

// newTierBreaker returns nil when breakers are disabled, which runs the tier unguarded.
func newTierBreaker(cbConfig config.CircuitBreakerConfig, strategy string) *resilience.CircuitBreaker {
	if !cbConfig.Enabled {
		return nil
	}

	name := "search-tier-" + strategy
	settings := cbConfig.SettingsFor(name)
	breaker := resilience.NewCircuitBreaker(resilience.Settings{
		Name:             name,
		Interval:         time.Duration(settings.IntervalSeconds) * time.Second,
		Timeout:          time.Duration(settings.TimeoutSeconds) * time.Second,
		FailureThreshold: uint32(settings.FailureThreshold),
		SuccessThreshold: uint32(settings.SuccessThreshold),
		Benign:           []error{matching.ErrEmptyResult},
	})

	logger.Info("Circuit breaker configured for search tier",
		zap.String("breaker", name),
		zap.Int("failure_threshold", settings.FailureThreshold),
		zap.Int("timeout_seconds", settings.TimeoutSeconds),
	)
	return breaker
}
