package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
	"github.com/stripe/stripe-go/v79"

	"github.com/moeeznaveed278/myplug/internal/checkout"
	"github.com/moeeznaveed278/myplug/internal/config"
	"github.com/moeeznaveed278/myplug/internal/email"
	"github.com/moeeznaveed278/myplug/internal/handlers"
	"github.com/moeeznaveed278/myplug/internal/metrics"
	"github.com/moeeznaveed278/myplug/internal/store"
)

func main() {
	handlerOpts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, handlerOpts))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	stripe.Key = cfg.StripeSecretKey

	// 2. Init DB
	db, err := store.NewStore(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize store", "error", err)
		os.Exit(1)
	}

	if err := db.Migrate("migrations"); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	// 3. Session Setup
	sessionStore := sessions.NewCookieStore(cfg.SessionKey)
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.Secure = cfg.CookieSecure
	sessionStore.Options.SameSite = http.SameSiteLaxMode
	sessionStore.Options.Path = "/"
	if cfg.CookieDomain != "" {
		sessionStore.Options.Domain = cfg.CookieDomain
	}

	// 4. Templates
	templates := handlers.NewTemplateCache()
	if err := templates.Load("templates"); err != nil {
		slog.Error("Failed to load templates", "error", err)
		os.Exit(1)
	}

	// 5. Pipeline wiring
	pipelineMetrics := metrics.NewPipeline()

	var dispatcher *email.Dispatcher
	if cfg.ResendAPIKey != "" {
		dispatcher = email.NewDispatcher(email.NewResendSender(cfg.ResendAPIKey), cfg.EmailFrom)
	} else {
		dispatcher = email.NewDispatcher(nil, cfg.EmailFrom) // drops everything
	}

	checkoutSvc := &checkout.Service{
		Store:   db,
		BaseURL: cfg.BaseURL,
		Metrics: pipelineMetrics,
	}
	fulfiller := &checkout.Fulfiller{
		Store:   db,
		Email:   dispatcher,
		Metrics: pipelineMetrics,
	}

	// 6. Handlers
	shopHandler := &handlers.ShopHandler{Store: db, Templates: templates, SessionStore: sessionStore}
	cartHandler := &handlers.CartHandler{Store: db, Templates: templates, SessionStore: sessionStore}
	checkoutHandler := &handlers.CheckoutHandler{Templates: templates, SessionStore: sessionStore, Checkout: checkoutSvc}
	preorderHandler := &handlers.PreorderHandler{Store: db, Templates: templates, SessionStore: sessionStore}
	adminHandler := &handlers.AdminHandler{Store: db, SessionStore: sessionStore, Templates: templates}
	webhookHandler := &handlers.WebhookHandler{Secret: cfg.StripeWebhookSecret, Fulfiller: fulfiller}

	if err := os.MkdirAll("static/uploads", 0o755); err != nil {
		slog.Error("Failed to create uploads directory", "error", err)
		os.Exit(1)
	}

	mux := http.NewServeMux()

	// Static Files
	fileServer := http.FileServer(http.Dir("./static"))
	mux.Handle("/static/", http.StripPrefix("/static", fileServer))

	rateLimiter := handlers.NewRateLimiter(10 * time.Second)

	// Public Routes
	mux.HandleFunc("/{$}", shopHandler.Index)
	mux.HandleFunc("/shop", shopHandler.Shop)
	mux.HandleFunc("/product/{productId}", shopHandler.ProductPage)

	mux.HandleFunc("/cart", cartHandler.View)
	mux.HandleFunc("POST /cart/add", cartHandler.Add)
	mux.HandleFunc("POST /cart/update", cartHandler.Update)
	mux.HandleFunc("POST /cart/remove", cartHandler.Remove)
	mux.HandleFunc("POST /cart/clear", cartHandler.Clear)
	mux.HandleFunc("POST /cart/delivery", cartHandler.SetDelivery)

	mux.HandleFunc("POST /checkout", rateLimiter.Middleware(checkoutHandler.Begin))
	mux.HandleFunc("/checkout/success", checkoutHandler.Success)

	mux.HandleFunc("/preorder", preorderHandler.Form)
	mux.HandleFunc("POST /preorder", rateLimiter.Middleware(preorderHandler.Submit))

	mux.HandleFunc("/login", adminHandler.LoginGet)
	mux.HandleFunc("POST /login", adminHandler.LoginPost)
	mux.HandleFunc("/logout", adminHandler.Logout)

	// Protected Routes
	mux.HandleFunc("/admin", adminHandler.AuthMiddleware(adminHandler.Dashboard))
	mux.HandleFunc("/admin/products", adminHandler.AuthMiddleware(adminHandler.ListProducts))
	mux.HandleFunc("/admin/products/new", adminHandler.AuthMiddleware(adminHandler.NewProductForm))
	mux.HandleFunc("POST /admin/products", adminHandler.AuthMiddleware(adminHandler.CreateProduct))
	mux.HandleFunc("/admin/products/edit", adminHandler.AuthMiddleware(adminHandler.EditProductForm))
	mux.HandleFunc("POST /admin/products/update", adminHandler.AuthMiddleware(adminHandler.UpdateProduct))
	mux.HandleFunc("POST /admin/products/archive", adminHandler.AuthMiddleware(adminHandler.ArchiveProduct))
	mux.HandleFunc("/admin/orders", adminHandler.AuthMiddleware(adminHandler.ListOrders))
	mux.HandleFunc("/admin/orders/{orderId}", adminHandler.AuthMiddleware(adminHandler.OrderDetail))
	mux.HandleFunc("/admin/preorders", adminHandler.AuthMiddleware(adminHandler.ListPreorders))
	mux.HandleFunc("POST /admin/preorders/status", adminHandler.AuthMiddleware(adminHandler.UpdatePreorderStatus))
	mux.HandleFunc("POST /admin/preorders/delete", adminHandler.AuthMiddleware(adminHandler.DeletePreorder))

	CSRF := csrf.Protect(
		cfg.CSRFKey,
		csrf.Secure(cfg.CookieSecure),
		csrf.TrustedOrigins([]string{"localhost:" + cfg.Port, "127.0.0.1:" + cfg.Port, "localhost", "127.0.0.1"}),
	)

	// The webhook and metrics endpoints sit outside the CSRF wrapper: the
	// webhook authenticates with its signature header, not a token.
	root := http.NewServeMux()
	root.HandleFunc("POST /webhooks/stripe", webhookHandler.Handle)
	root.Handle("/metrics", metrics.Handler())
	root.Handle("/", CSRF(mux))

	handler := handlers.LoggingMiddleware(
		handlers.SecurityHeadersMiddleware(root),
	)

	// 7. Start Server with Graceful Shutdown
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to listen and serve", "error", err)
			os.Exit(1)
		}
	}()

	<-stop

	slog.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	// Let in-flight receipt emails finish before exiting.
	dispatcher.Wait()

	slog.Info("Server exited gracefully.")
}
