package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"

	appcatalog "github.com/orderhub/backend/internal/application/catalog"
	"github.com/orderhub/backend/internal/application/importer"
	appordering "github.com/orderhub/backend/internal/application/ordering"
	"github.com/orderhub/backend/internal/infrastructure/cache"
	"github.com/orderhub/backend/internal/infrastructure/config"
	"github.com/orderhub/backend/internal/infrastructure/event"
	"github.com/orderhub/backend/internal/infrastructure/logger"
	"github.com/orderhub/backend/internal/infrastructure/notify"
	"github.com/orderhub/backend/internal/infrastructure/persistence"
	"github.com/orderhub/backend/internal/infrastructure/telemetry"
	"github.com/orderhub/backend/internal/interfaces/http/handler"
	"github.com/orderhub/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting orderhub backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	tracer, err := telemetry.NewTracerProvider(context.Background(), cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}

	db, err := persistence.NewConnection(persistence.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		Logger:          logger.NewGormLogger(log, gormLogLevel(cfg.Log.Level)),
		EnableTracing:   cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
	})
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	log.Info("Database connected")

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to redis", zap.Error(err))
	}
	defer func() {
		_ = redisClient.Close()
	}()

	// Repositories
	shopRepo := persistence.NewGormShopRepository(db)
	categoryRepo := persistence.NewGormCategoryRepository(db)
	productRepo := persistence.NewGormProductRepository(db)
	listingRepo := persistence.NewGormListingRepository(db)
	orderRepo := persistence.NewGormBuyerOrderRepository(db)
	contactRepo := persistence.NewGormContactRepository(db)
	catalogScope := persistence.NewGormCatalogTransactionScope(db)
	orderingScope := persistence.NewGormOrderingTransactionScope(db)

	// Notifications go out by mail when SMTP is configured, to the log
	// otherwise
	var notifier appordering.Notifier
	if cfg.SMTP.Host != "" {
		notifier = notify.NewSMTPNotifier(cfg.SMTP)
	} else {
		log.Info("No SMTP host configured, notifications go to the log")
		notifier = notify.NewLogNotifier(log)
	}

	// Event bus and notification handlers
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(appordering.NewOrderAcceptedHandler(
		orderRepo, contactRepo, shopRepo, productRepo, listingRepo, notifier, log))
	eventBus.Subscribe(appordering.NewSellerOrderStateHandler(
		orderRepo, shopRepo, notifier, log))

	// Application services
	shopService := appcatalog.NewShopService(shopRepo, log)
	listingService := appcatalog.NewListingService(catalogScope, shopRepo, listingRepo, log)
	publicService := appcatalog.NewPublicService(shopRepo, categoryRepo, productRepo, listingRepo, log)
	importService := importer.NewService(catalogScope, log)
	importGuard := cache.NewRedisImportGuard(redisClient)
	importScheduler := importer.NewScheduler(importService, importGuard, cfg.Import.TaskTimeout, log)

	contactService := appordering.NewContactService(contactRepo, log)
	basketService := appordering.NewBasketService(orderingScope, orderRepo, log)
	checkoutService := appordering.NewCheckoutService(orderingScope, eventBus, log)
	orderService := appordering.NewOrderService(orderingScope, orderRepo, shopRepo, eventBus, log)

	engine := router.New(cfg, log, router.Handlers{
		Import:        handler.NewImportHandler(importScheduler),
		PartnerShop:   handler.NewPartnerCatalogHandler(shopService, listingService),
		PartnerOrders: handler.NewPartnerOrderHandler(orderService),
		Public:        handler.NewPublicCatalogHandler(publicService),
		Contacts:      handler.NewContactHandler(contactService),
		Basket:        handler.NewBasketHandler(basketService),
		Orders:        handler.NewOrderHandler(checkoutService, orderService),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
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
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := tracer.Shutdown(ctx); err != nil {
		log.Error("Error shutting down tracing", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// gormLogLevel maps the application log level to gorm's query logging
func gormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "debug":
		return gormlogger.Info
	case "warn", "error":
		return gormlogger.Error
	default:
		return gormlogger.Warn
	}
}
