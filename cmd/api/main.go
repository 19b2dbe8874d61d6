package main

import (
	"context"
	"log"
	"time"

	"storefront-gateway/internal/core/apiclient"
	"storefront-gateway/internal/core/cache"
	"storefront-gateway/internal/core/config"
	"storefront-gateway/internal/core/httpclient"
	"storefront-gateway/internal/core/logger"
	"storefront-gateway/internal/core/server"
	cartadapter "storefront-gateway/internal/features/cart/adapters"
	carthandler "storefront-gateway/internal/features/cart/handler"
	cartservice "storefront-gateway/internal/features/cart/service"
	checkoutadapter "storefront-gateway/internal/features/checkout/adapters"
	checkouthandler "storefront-gateway/internal/features/checkout/handler"
	checkoutservice "storefront-gateway/internal/features/checkout/service"
	orderadapter "storefront-gateway/internal/features/orders/adapters"
	orderhandler "storefront-gateway/internal/features/orders/handler"
	orderservice "storefront-gateway/internal/features/orders/service"

	"go.uber.org/zap"
)

// @title Storefront Gateway API
// @version 1.0
// @description Backend-for-frontend for the storefront: cart mirroring, checkout orchestration and order views over the commerce API.
// @contact.name API Support
// @contact.email support@storefront.example.com
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
		zap.String("store_id", cfg.Commerce.StoreID),
	)

	// Session state store
	redisCache, err := cache.NewRedisAdapter(cfg.Session.RedisURL, "storefront:")
	if err != nil {
		l.Fatal("Failed to create Redis cache", zap.Error(err))
	}
	defer redisCache.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisCache.Ping(pingCtx); err != nil {
		l.Fatal("Redis Health Check Failed", zap.Error(err))
	}
	l.Info("Redis connection verified")

	// Commerce API client and health check
	httpClient := httpclient.NewProxiedClient(cfg.Commerce.Timeout, cfg.Proxy.Settings())
	apiClient := apiclient.New(cfg.Commerce.URL, cfg.Commerce.StoreID, httpClient)
	if err := apiClient.Ping(pingCtx); err != nil {
		l.Fatal("Commerce API Health Check Failed", zap.Error(err))
	}
	l.Info("Commerce API connection verified")

	// Cart
	cartSessions := cartservice.NewSessions(
		cartadapter.NewStorefrontCartAdapter(apiClient),
		cartadapter.NewRedisStateRepository(redisCache, cfg.Session.TTL),
		cartservice.Options{ErrorTTL: cfg.Checkout.CartErrorTTL},
	)
	cartHdl := carthandler.NewCartHandler(cartSessions)

	// Checkout
	checkoutSessions := checkoutservice.NewSessions(
		checkoutadapter.NewStorefrontCheckoutAdapter(apiClient),
		checkoutadapter.NewHostedWidget(httpclient.NewClient(cfg.Commerce.Timeout), cfg.Payment.ScriptURL),
		checkoutadapter.NewCartSessionSource(cartSessions),
		checkoutadapter.NewRedisCheckoutRepository(redisCache, cfg.Session.TTL),
		checkoutservice.Config{
			KeyID:         cfg.Payment.KeyID,
			ScriptURL:     cfg.Payment.ScriptURL,
			Currency:      cfg.Payment.Currency,
			StoreName:     cfg.Payment.StoreName,
			MaxRetries:    cfg.Checkout.MaxRetries,
			ErrorTTL:      cfg.Checkout.ErrorTTL,
			RedirectDelay: cfg.Checkout.RedirectDelay,
		},
		checkoutservice.Options{},
	)
	checkoutHdl := checkouthandler.NewCheckoutHandler(checkoutSessions)

	// Orders
	orderService := orderservice.NewOrderService(orderadapter.NewStorefrontOrderAdapter(apiClient))
	orderHdl := orderhandler.NewOrderHandler(orderService)

	srv := server.New(cfg)

	// Register Routes
	cartHdl.Register(srv.App)
	checkoutHdl.Register(srv.App)
	orderHdl.Register(srv.App)

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}
