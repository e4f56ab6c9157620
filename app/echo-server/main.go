package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"damaloy/app/echo-server/router"
	"damaloy/business/admin"
	"damaloy/business/cart"
	"damaloy/business/orders"
	"damaloy/business/product"
	"damaloy/business/review"
	"damaloy/business/seller"
	"damaloy/business/user"
	"damaloy/internal/middleware"
	psqlRepo "damaloy/internal/repository/postgres"
	cacheRepo "damaloy/internal/repository/redis"
	"damaloy/internal/repository/stripe"
	"damaloy/internal/rest"
	"damaloy/pkg/config"
	"damaloy/pkg/database"
	redisdb "damaloy/pkg/database/redis"
	"damaloy/pkg/logger"
	"damaloy/pkg/metrics"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting Damaloy", "version", cfg.App.Version)

	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	// Redis is optional. Without it the dashboard aggregates hit postgres
	// on every request.
	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		logger.Warn("Redis unavailable, caching disabled", "error", err)
		redisClient = nil
	}
	cache := cacheRepo.NewCache(redisClient, 60*time.Second)

	stripeRepo := stripe.NewStripeRepository(stripe.StripeConfig{
		SecretKey: cfg.Stripe.SecretKey,
		BaseURL:   cfg.Stripe.BaseURL,
	})

	// Init validate
	validate := validator.New()

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	sellerRepo := psqlRepo.NewSellerRepository(db)
	productRepo := psqlRepo.NewProductRepository(db)
	historyRepo := psqlRepo.NewPriceHistoryRepository(db)
	cartRepo := psqlRepo.NewCartRepository(db)
	ordersRepo := psqlRepo.NewOrdersRepository(db)
	reviewRepo := psqlRepo.NewReviewRepository(db)
	statsRepo := psqlRepo.NewStatsRepository(db)

	// Init service
	userService := user.NewUserService(userRepo, validate)
	sellerService := seller.NewSellerService(sellerRepo, userRepo, statsRepo)
	productService := product.NewProductService(productRepo, historyRepo, cache)
	cartService := cart.NewCartService(cartRepo)
	ordersService := orders.NewOrdersService(ordersRepo, cartRepo, stripeRepo, cfg.Stripe.Currency)
	reviewService := review.NewReviewService(reviewRepo, userRepo)
	adminService := admin.NewAdminService(statsRepo, cache)

	// Init handler
	userHandler := rest.NewUserHandler(userService)
	sellerHandler := rest.NewSellerHandler(sellerService)
	productHandler := rest.NewProductHandler(productService)
	cartHandler := rest.NewCartHandler(cartService)
	ordersHandler := rest.NewOrdersHandler(ordersService)
	reviewHandler := rest.NewReviewHandler(reviewService)
	adminHandler := rest.NewAdminHandler(adminService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(middleware.Metrics())

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Setup routes
	api := e.Group("/api")
	router.SetupUserRoutes(api, userHandler)
	router.SetupSellerRoutes(api, sellerHandler)
	router.SetupProductRoutes(api, productHandler)
	router.SetupCartRoutes(api, cartHandler)
	router.SetupOrdersRoutes(api, ordersHandler)
	router.SetupReviewRoutes(api, reviewHandler)
	router.SetupAdminRoutes(api, adminHandler)

	// Goroutine server
	go func() {
		addr := ":" + cfg.Server.Port
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	if err := redisdb.CloseRedisClient(redisClient); err != nil {
		logger.Error("Failed to close Redis client", "error", err)
	}

	logger.Info("Server stopped")
}
