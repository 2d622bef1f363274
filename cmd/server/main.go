package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"wholesale-backend/internal/auth"
	"wholesale-backend/internal/cache"
	"wholesale-backend/internal/config"
	"wholesale-backend/internal/database"
	"wholesale-backend/internal/db"
	"wholesale-backend/internal/events"
	"wholesale-backend/internal/feed"
	"wholesale-backend/internal/handlers"
	"wholesale-backend/internal/health"
	h "wholesale-backend/internal/http"
	"wholesale-backend/internal/middleware"
	"wholesale-backend/internal/repositories"
	"wholesale-backend/internal/services"
	"wholesale-backend/migrations"
)

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	// Load configuration
	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	// Connect to PostgreSQL
	pool := db.Connect(cfg)
	defer pool.Close()

	// Initialize Redis cache (optional - graceful fallback if unavailable)
	if err := cache.Init(); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (carts and caching disabled)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}

	// Run database migrations from the embedded filesystem
	log.Println("Running database migrations...")
	migrator := database.NewMigrator(pool, migrations.Files)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := migrator.Run(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Kafka event stream (optional - empty broker list disables publishing)
	writer := events.NewWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	if writer == nil {
		log.Println("[Kafka] No brokers configured, event publishing disabled")
	}
	publisher := events.NewPublisher(writer)
	defer publisher.Close()

	// Live back-office feed
	hub := feed.NewHub()
	go hub.Run()

	// Initialize health checker
	healthChecker := health.NewHealthChecker(pool)

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(pool)
	totpRepo := repositories.NewTOTPRepository(pool)
	buyerRepo := repositories.NewBuyerRepository(pool)
	productRepo := repositories.NewProductRepository(pool)
	catalogRepo := repositories.NewCatalogRepository(pool)
	orderRepo := repositories.NewOrderRepository(pool)
	ledgerRepo := repositories.NewLedgerRepository(pool)
	settingRepo := repositories.NewSettingRepository(pool)
	cartRepo := repositories.NewCartRepository(cache.GetClient())
	wishlistRepo := repositories.NewWishlistRepository(cache.GetClient())

	// Initialize services
	totpService := services.NewTOTPService(userRepo, totpRepo)
	userService := services.NewUserService(userRepo, jwtManager, totpService)
	settingService := services.NewSettingService(settingRepo)
	buyerService := services.NewBuyerService(buyerRepo, settingService, hub)
	otpService := services.NewOTPService(cfg, buyerRepo)
	catalogService := services.NewCatalogService(productRepo, catalogRepo)
	cartService := services.NewCartService(cartRepo, productRepo)
	wishlistService := services.NewWishlistService(wishlistRepo, productRepo)
	ledgerService := services.NewLedgerService(ledgerRepo, publisher, hub)
	orderService := services.NewOrderService(orderRepo, ledgerService, cartService, publisher, hub)
	receiptService := services.NewReceiptService(settingService)

	mediaService, err := services.NewMediaService(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize media storage: %v", err)
	}
	if !mediaService.Enabled() {
		log.Println("[Media] Object storage not configured, uploads disabled")
	}

	// Bootstrap admin account on an empty install
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminEmail != "" && adminPassword != "" {
		if err := userService.EnsureAdmin(ctx, adminEmail, adminPassword); err != nil {
			log.Printf("[Bootstrap] Failed to ensure admin account: %v", err)
		}
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	buyerAuthHandler := handlers.NewBuyerAuthHandler(buyerService, otpService, jwtManager)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	cartHandler := handlers.NewCartHandler(cartService)
	wishlistHandler := handlers.NewWishlistHandler(wishlistService)
	orderHandler := handlers.NewOrderHandler(orderService, buyerService, receiptService)
	ledgerHandler := handlers.NewLedgerHandler(ledgerService, receiptService)
	buyerHandler := handlers.NewBuyerHandler(buyerService)
	userHandler := handlers.NewUserHandler(userService)
	totpHandler := handlers.NewTOTPHandler(totpService, userService)
	settingHandler := handlers.NewSettingHandler(settingService)
	mediaHandler := handlers.NewMediaHandler(mediaService)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo, buyerRepo)

	router := h.NewRouter(
		authHandler,
		buyerAuthHandler,
		catalogHandler,
		cartHandler,
		wishlistHandler,
		orderHandler,
		ledgerHandler,
		buyerHandler,
		userHandler,
		totpHandler,
		settingHandler,
		mediaHandler,
		healthHandler,
		hub,
		authMiddleware,
	)

	// Middleware chain: recovery outermost, then CORS, then metrics
	handler := middleware.PanicRecovery(middleware.NewCORS(cfg)(middleware.MetricsMiddleware(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
