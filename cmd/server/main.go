package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	cartapp "github.com/storefront/backend/internal/application/cart"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
	checkoutapp "github.com/storefront/backend/internal/application/checkout"
	customerapp "github.com/storefront/backend/internal/application/customer"
	orderapp "github.com/storefront/backend/internal/application/order"
	promotionapp "github.com/storefront/backend/internal/application/promotion"
	walletapp "github.com/storefront/backend/internal/application/wallet"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
	"github.com/storefront/backend/internal/infrastructure/cache"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/infrastructure/notification"
	paymentgw "github.com/storefront/backend/internal/infrastructure/payment"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"github.com/storefront/backend/internal/infrastructure/telemetry"
	"github.com/storefront/backend/internal/interfaces/http/handler"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
	"github.com/storefront/backend/internal/interfaces/http/router"
)

//	@title			Storefront Backend API
//	@version		1.0
//	@description	Order, pricing and wallet core of the storefront

//	@host		localhost:8080
//	@BasePath	/api/v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting storefront backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	ctx := context.Background()

	// Telemetry providers are no-ops when telemetry is disabled
	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	meterProvider, err := telemetry.NewMeterProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer func() {
		if err := meterProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
	}()

	businessMetrics, err := telemetry.NewBusinessMetrics(meterProvider.Meter("storefront"))
	if err != nil {
		log.Fatal("Failed to register business metrics", zap.Error(err))
	}

	// Database with zap-backed gorm logging
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		if err := db.EnableTracing(cfg.Database.DBName); err != nil {
			log.Warn("Failed to enable database tracing", zap.Error(err))
		}
	}
	log.Info("Database connected successfully")

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	brandRepo := persistence.NewGormBrandRepository(db.DB)
	offerRepo := persistence.NewGormOfferRepository(db.DB)
	couponRepo := persistence.NewGormCouponRepository(db.DB)
	cartRepo := persistence.NewGormCartRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	walletRepo := persistence.NewGormWalletRepository(db.DB)
	addressRepo := persistence.NewGormAddressRepository(db.DB)
	checkoutScope := persistence.NewGormCheckoutTransactionScope(db.DB)
	lifecycleScope := persistence.NewGormLifecycleTransactionScope(db.DB)

	// Idempotency store for checkout retries
	idemFactory := cache.NewIdempotencyStoreFactory(cfg.Redis, cache.WithLogger(log))
	var idemStore shared.IdempotencyStore
	if cfg.Idempotency.Backend == "redis" {
		idemStore, err = idemFactory.CreateStore()
		if err != nil {
			log.Fatal("Failed to create idempotency store", zap.Error(err))
		}
	} else {
		idemStore = idemFactory.CreateInMemoryStore()
	}
	defer func() {
		if err := idemStore.Close(); err != nil {
			log.Error("Error closing idempotency store", zap.Error(err))
		}
	}()

	// External collaborators
	gateway := paymentgw.NewRazorpayGateway(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret)
	notifier := notification.NewLogSender(log)

	// Pricing and refund constants come from configuration
	pricingPolicy := cartapp.PricingPolicy{
		TaxRate:               decimal.NewFromFloat(cfg.Pricing.TaxRate),
		FreeShippingThreshold: valueobject.NewMoneyINRFromFloat(cfg.Pricing.FreeShippingThreshold),
		ShippingFee:           valueobject.NewMoneyINRFromFloat(cfg.Pricing.ShippingFee),
	}
	refundPolicy := orderapp.RefundPolicy{
		TaxRate:               decimal.NewFromFloat(cfg.Refund.CancelMultiplier).Sub(decimal.NewFromInt(1)),
		FreeShippingThreshold: valueobject.NewMoneyINRFromFloat(cfg.Refund.FreeShippingThreshold),
		ShippingFee:           valueobject.NewMoneyINRFromFloat(cfg.Pricing.ShippingFee),
		CancelShippingRefund:  valueobject.NewMoneyINRFromFloat(cfg.Refund.CancelShippingRefund),
		ReturnConvenienceFee:  valueobject.NewMoneyINRFromFloat(cfg.Refund.ReturnConvenienceFee),
	}
	idemConfig := shared.IdempotencyConfig{
		TTL:     cfg.Idempotency.TTL,
		Enabled: cfg.Idempotency.Enabled,
	}

	// Application services
	pricingService := catalogapp.NewPricingService(offerRepo)
	productService := catalogapp.NewProductService(productRepo, categoryRepo, brandRepo, pricingService)
	offerService := catalogapp.NewOfferService(offerRepo, productRepo)
	couponService := promotionapp.NewCouponService(couponRepo, orderRepo)
	cartService := cartapp.NewService(cartRepo, productRepo, pricingService, pricingPolicy)
	checkoutService := checkoutapp.NewService(checkoutScope, addressRepo, orderRepo, gateway, notifier, idemStore, idemConfig, pricingPolicy)
	checkoutService.SetMetrics(businessMetrics)
	lifecycleService := orderapp.NewLifecycleService(lifecycleScope, orderRepo, notifier, refundPolicy)
	lifecycleService.SetMetrics(businessMetrics)
	walletService := walletapp.NewService(walletRepo)
	addressService := customerapp.NewAddressService(addressRepo)

	// HTTP handlers
	productHandler := handler.NewProductHandler(productService)
	cartHandler := handler.NewCartHandler(cartService)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService)
	orderHandler := handler.NewOrderHandler(lifecycleService)
	walletHandler := handler.NewWalletHandler(walletService)
	addressHandler := handler.NewAddressHandler(addressService)
	offerHandler := handler.NewOfferHandler(offerService)
	couponHandler := handler.NewCouponHandler(couponService)
	adminOrderHandler := handler.NewAdminOrderHandler(lifecycleService)
	systemHandler := handler.NewSystemHandler(db)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORS(cfg.HTTP.CORSAllowedOrigin))
	if cfg.Telemetry.Enabled {
		engine.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", systemHandler.Health)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(middleware.Identity())

	// Public catalog browsing
	catalogRoutes := router.NewDomainGroup("catalog", "")
	catalogRoutes.GET("/products", productHandler.List)
	catalogRoutes.GET("/products/:id", productHandler.GetByID)
	catalogRoutes.GET("/categories", productHandler.ListCategories)
	catalogRoutes.GET("/brands", productHandler.ListBrands)

	// Cart, checkout, orders, wallet and addresses need a signed-in user
	cartRoutes := router.NewDomainGroup("cart", "/cart").Use(middleware.RequireUser())
	cartRoutes.GET("", cartHandler.Get)
	cartRoutes.POST("/lines", cartHandler.AddLine)
	cartRoutes.PATCH("/lines/:id", cartHandler.UpdateQuantity)
	cartRoutes.DELETE("/lines/:id", cartHandler.RemoveLine)
	cartRoutes.DELETE("", cartHandler.Clear)

	checkoutRoutes := router.NewDomainGroup("checkout", "/checkout").Use(middleware.RequireUser())
	checkoutRoutes.POST("", checkoutHandler.PlaceOrder)
	checkoutRoutes.POST("/:id/verify", checkoutHandler.VerifyPayment)

	orderRoutes := router.NewDomainGroup("orders", "/orders").Use(middleware.RequireUser())
	orderRoutes.GET("", orderHandler.List)
	orderRoutes.GET("/:id", orderHandler.GetByID)
	orderRoutes.POST("/:id/cancel", orderHandler.Cancel)
	orderRoutes.POST("/:id/return", orderHandler.RequestReturnOrder)
	orderRoutes.POST("/:id/items/:itemId/cancel", orderHandler.CancelItem)
	orderRoutes.POST("/:id/items/:itemId/return", orderHandler.RequestReturn)

	walletRoutes := router.NewDomainGroup("wallet", "/wallet").Use(middleware.RequireUser())
	walletRoutes.GET("", walletHandler.GetBalance)
	walletRoutes.GET("/transactions", walletHandler.ListTransactions)

	addressRoutes := router.NewDomainGroup("addresses", "/addresses").Use(middleware.RequireUser())
	addressRoutes.POST("", addressHandler.Create)
	addressRoutes.GET("", addressHandler.List)
	addressRoutes.DELETE("/:id", addressHandler.Delete)

	// Back office
	adminRoutes := router.NewDomainGroup("admin", "/admin").Use(middleware.RequireAdmin())
	adminRoutes.POST("/offers", offerHandler.Create)
	adminRoutes.GET("/offers", offerHandler.List)
	adminRoutes.GET("/offers/:id", offerHandler.GetByID)
	adminRoutes.PATCH("/offers/:id", offerHandler.Update)
	adminRoutes.POST("/coupons", couponHandler.Create)
	adminRoutes.GET("/coupons", couponHandler.List)
	adminRoutes.GET("/coupons/:id", couponHandler.GetByID)
	adminRoutes.DELETE("/coupons/:id", couponHandler.Deactivate)
	adminRoutes.POST("/orders/:id/items/:itemId/return", adminOrderHandler.ResolveReturn)
	adminRoutes.PATCH("/orders/:id/shipping", adminOrderHandler.UpdateShipping)
	adminRoutes.POST("/wallets/:userId/credit", walletHandler.Credit)
	adminRoutes.GET("/system/stats", systemHandler.Stats)

	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/ping", systemHandler.Ping)

	r.Register(catalogRoutes).
		Register(cartRoutes).
		Register(checkoutRoutes).
		Register(orderRoutes).
		Register(walletRoutes).
		Register(addressRoutes).
		Register(adminRoutes).
		Register(systemRoutes)

	r.Setup()

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

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
