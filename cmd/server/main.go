package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/ckobasti77/alati-sub000/internal/application/catalog"
	orderapp "github.com/ckobasti77/alati-sub000/internal/application/order"
	"github.com/ckobasti77/alati-sub000/internal/infrastructure/auth"
	"github.com/ckobasti77/alati-sub000/internal/infrastructure/cache"
	"github.com/ckobasti77/alati-sub000/internal/infrastructure/config"
	"github.com/ckobasti77/alati-sub000/internal/infrastructure/logger"
	"github.com/ckobasti77/alati-sub000/internal/infrastructure/notification"
	"github.com/ckobasti77/alati-sub000/internal/infrastructure/persistence"
	"github.com/ckobasti77/alati-sub000/internal/interfaces/http/handler"
	"github.com/ckobasti77/alati-sub000/internal/interfaces/http/middleware"
	"github.com/ckobasti77/alati-sub000/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// version is set at build time via -ldflags
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output)
	defer log.Sync()

	log.Info("Starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("version", version))

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to migrate database", zap.Error(err))
	}
	log.Info("Database migrated")

	// Repositories
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)

	// Product cache: Redis when reachable, in-memory otherwise
	productCache, err := cache.NewProductCacheFactory(cfg.Redis, cache.WithLogger(log)).CreateCache()
	if err != nil {
		log.Fatal("Failed to create product cache", zap.Error(err))
	}
	cachedProducts := cache.NewCachedProductRepository(productRepo, productCache)

	// Application services
	orderService := orderapp.NewOrderService(orderRepo, cachedProducts)
	catalogService := catalogapp.NewCatalogService(cachedProducts, supplierRepo)

	if notifier := notification.NewMailNotifier(&cfg.Mail); notifier != nil {
		orderService.SetNotifier(notifier)
		log.Info("Order notifications enabled", zap.String("endpoint", cfg.Mail.Endpoint))
	} else {
		log.Info("Order notifications disabled (no mail endpoint configured)")
	}

	// HTTP engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	engine.Use(
		middleware.RequestID(),
		logger.Recovery(log),
		logger.GinMiddleware(log),
		middleware.CORSWithConfig(corsConfig),
	)

	// Health endpoints live outside the versioned, scope-gated API
	handler.NewSystemHandler(db, version).RegisterRoutes(engine)

	apiMiddleware := []gin.HandlerFunc{}
	if cfg.JWT.Secret != "" {
		jwtCfg := middleware.DefaultJWTConfig(auth.NewJWTService(cfg.JWT))
		jwtCfg.Logger = log
		apiMiddleware = append(apiMiddleware, middleware.JWTAuthMiddlewareWithConfig(jwtCfg))
	} else {
		log.Warn("JWT secret not configured, API authentication disabled")
	}
	apiMiddleware = append(apiMiddleware, middleware.ScopeMiddleware())

	router.NewRouter(engine, router.WithMiddleware(apiMiddleware...)).
		Register(handler.NewOrderHandler(orderService)).
		Register(handler.NewCatalogHandler(catalogService)).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
