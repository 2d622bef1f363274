package http

import (
	"wholesale-backend/internal/feed"
	"wholesale-backend/internal/handlers"
	"wholesale-backend/internal/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	buyerAuthHandler *handlers.BuyerAuthHandler,
	catalogHandler *handlers.CatalogHandler,
	cartHandler *handlers.CartHandler,
	wishlistHandler *handlers.WishlistHandler,
	orderHandler *handlers.OrderHandler,
	ledgerHandler *handlers.LedgerHandler,
	buyerHandler *handlers.BuyerHandler,
	userHandler *handlers.UserHandler,
	totpHandler *handlers.TOTPHandler,
	settingHandler *handlers.SettingHandler,
	mediaHandler *handlers.MediaHandler,
	healthHandler *handlers.HealthHandler,
	hub *feed.Hub,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public storefront routes
	r.HandleFunc("/api/auth/register", buyerAuthHandler.Register).Methods("POST")
	r.HandleFunc("/api/auth/otp/request", buyerAuthHandler.RequestOTP).Methods("POST")
	r.HandleFunc("/api/auth/otp/verify", buyerAuthHandler.VerifyOTP).Methods("POST")

	r.HandleFunc("/api/catalog/home", catalogHandler.Home).Methods("GET")
	r.HandleFunc("/api/products", catalogHandler.ListProducts).Methods("GET")
	r.HandleFunc("/api/products/categories", catalogHandler.Categories).Methods("GET")
	r.HandleFunc("/api/products/{id:[0-9]+}", catalogHandler.GetProduct).Methods("GET")

	// Buyer routes (buyer token required)
	buyerAPI := r.PathPrefix("/api").Subrouter()
	buyerAPI.Use(authMiddleware.AuthenticateBuyer)
	buyerAPI.HandleFunc("/buyer/profile", buyerAuthHandler.Profile).Methods("GET")
	buyerAPI.HandleFunc("/cart", cartHandler.Get).Methods("GET")
	buyerAPI.HandleFunc("/cart", cartHandler.Add).Methods("POST")
	buyerAPI.HandleFunc("/cart", cartHandler.Clear).Methods("DELETE")
	buyerAPI.HandleFunc("/cart/{cartId}", cartHandler.UpdateQuantity).Methods("PUT")
	buyerAPI.HandleFunc("/cart/{cartId}", cartHandler.Remove).Methods("DELETE")
	buyerAPI.HandleFunc("/wishlist", wishlistHandler.List).Methods("GET")
	buyerAPI.HandleFunc("/wishlist/{productId:[0-9]+}", wishlistHandler.Add).Methods("POST")
	buyerAPI.HandleFunc("/wishlist/{productId:[0-9]+}", wishlistHandler.Remove).Methods("DELETE")
	buyerAPI.HandleFunc("/orders/checkout", orderHandler.Checkout).Methods("POST")
	buyerAPI.HandleFunc("/orders/my", orderHandler.MyOrders).Methods("GET")
	buyerAPI.HandleFunc("/orders/my/{id}", orderHandler.MyOrder).Methods("GET")

	// Staff login (public)
	r.HandleFunc("/api/admin/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/api/admin/login/verify-totp", authHandler.VerifyTOTP).Methods("POST")

	// Back-office routes (staff token required; admin and accountant)
	adminAPI := r.PathPrefix("/api/admin").Subrouter()
	adminAPI.Use(authMiddleware.RequireRole("admin", "accountant"))

	adminAPI.HandleFunc("/change-password", authHandler.ChangePassword).Methods("POST")
	adminAPI.HandleFunc("/2fa/setup", totpHandler.Setup).Methods("POST")
	adminAPI.HandleFunc("/2fa/enable", totpHandler.Enable).Methods("POST")
	adminAPI.HandleFunc("/2fa/disable", totpHandler.Disable).Methods("POST")

	adminAPI.HandleFunc("/orders", orderHandler.List).Methods("GET")
	adminAPI.HandleFunc("/orders/stats", orderHandler.Stats).Methods("GET")
	adminAPI.HandleFunc("/orders/{id}", orderHandler.Get).Methods("GET")
	adminAPI.HandleFunc("/orders/{id}/status", orderHandler.UpdateStatus).Methods("PATCH")
	adminAPI.HandleFunc("/orders/{id}/dispatch", orderHandler.PartialDispatch).Methods("PATCH")
	adminAPI.HandleFunc("/orders/{id}/payments", orderHandler.RecordPayment).Methods("POST")
	adminAPI.HandleFunc("/orders/{id}/receipt", orderHandler.Receipt).Methods("GET")

	adminAPI.HandleFunc("/ledger", ledgerHandler.List).Methods("GET")
	adminAPI.HandleFunc("/ledger", ledgerHandler.Create).Methods("POST")
	adminAPI.HandleFunc("/ledger/summary", ledgerHandler.Summary).Methods("GET")
	adminAPI.HandleFunc("/ledger/statement", ledgerHandler.Statement).Methods("GET")
	adminAPI.HandleFunc("/ledger/order/{orderId}", ledgerHandler.ByOrder).Methods("GET")
	adminAPI.HandleFunc("/ledger/{txnId}", ledgerHandler.Update).Methods("PUT")
	adminAPI.HandleFunc("/ledger/{txnId}", ledgerHandler.Delete).Methods("DELETE")

	adminAPI.HandleFunc("/buyers", buyerHandler.List).Methods("GET")
	adminAPI.HandleFunc("/buyers/{id}", buyerHandler.Get).Methods("GET")
	adminAPI.HandleFunc("/buyers/{id}/status", buyerHandler.SetStatus).Methods("PATCH")

	// Catalog management and staff administration are admin only
	catalogAdmin := r.PathPrefix("/api/admin").Subrouter()
	catalogAdmin.Use(authMiddleware.RequireRole("admin"))

	catalogAdmin.HandleFunc("/products", catalogHandler.CreateProduct).Methods("POST")
	catalogAdmin.HandleFunc("/products/{id}", catalogHandler.UpdateProduct).Methods("PUT")
	catalogAdmin.HandleFunc("/products/{id}/stock", catalogHandler.UpdateStock).Methods("PATCH")
	catalogAdmin.HandleFunc("/products/{id}", catalogHandler.DeleteProduct).Methods("DELETE")

	catalogAdmin.HandleFunc("/collections", catalogHandler.ListCollections).Methods("GET")
	catalogAdmin.HandleFunc("/collections", catalogHandler.CreateCollection).Methods("POST")
	catalogAdmin.HandleFunc("/collections/{id}", catalogHandler.UpdateCollection).Methods("PUT")
	catalogAdmin.HandleFunc("/collections/{id}", catalogHandler.DeleteCollection).Methods("DELETE")

	catalogAdmin.HandleFunc("/fabrics", catalogHandler.ListFabricCategories).Methods("GET")
	catalogAdmin.HandleFunc("/fabrics", catalogHandler.UpsertFabricCategory).Methods("PUT")
	catalogAdmin.HandleFunc("/fabrics/{id}", catalogHandler.DeleteFabricCategory).Methods("DELETE")

	catalogAdmin.HandleFunc("/banners", catalogHandler.ListBanners).Methods("GET")
	catalogAdmin.HandleFunc("/banners", catalogHandler.CreateBanner).Methods("POST")
	catalogAdmin.HandleFunc("/banners/{id}", catalogHandler.UpdateBanner).Methods("PUT")
	catalogAdmin.HandleFunc("/banners/{id}", catalogHandler.DeleteBanner).Methods("DELETE")

	catalogAdmin.HandleFunc("/media", mediaHandler.Upload).Methods("POST")
	catalogAdmin.HandleFunc("/media", mediaHandler.Delete).Methods("DELETE")

	catalogAdmin.HandleFunc("/users", userHandler.List).Methods("GET")
	catalogAdmin.HandleFunc("/users", userHandler.Create).Methods("POST")
	catalogAdmin.HandleFunc("/users/{id}/active", userHandler.SetActive).Methods("PATCH")

	catalogAdmin.HandleFunc("/settings", settingHandler.List).Methods("GET")
	catalogAdmin.HandleFunc("/settings", settingHandler.Set).Methods("PUT")

	catalogAdmin.HandleFunc("/system/stats", healthHandler.Stats).Methods("GET")

	// Live back-office feed over websocket
	r.HandleFunc("/ws/feed", hub.HandleWS)

	// Health endpoint (no auth required - for Kubernetes probes)
	r.HandleFunc("/health", healthHandler.Health).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
