package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/athanas-ai/nakhasbit/internal/config"
	"github.com/athanas-ai/nakhasbit/internal/handlers"
	"github.com/athanas-ai/nakhasbit/internal/store"
	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
	"github.com/shopspring/decimal"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	// Using TextHandler for console readability; for production JSONHandler might be preferred.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// 2. Init DB
	db, err := store.NewStore(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize store", "error", err)
		os.Exit(1)
	}
	if err := db.InitSchema(); err != nil {
		slog.Error("Failed to create schema", "error", err)
		os.Exit(1)
	}
	// Idempotent first-run seeding: one admin, one settings row.
	if err := db.Seed(cfg.AdminUsername, cfg.WhatsAppNumber); err != nil {
		slog.Error("Failed to seed database", "error", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		slog.Error("Failed to create upload directory", "dir", cfg.UploadDir, "error", err)
		os.Exit(1)
	}

	// 3. Session Setup
	sessionStore := sessions.NewCookieStore(cfg.SessionKey)
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.Secure = cfg.CookieSecure // Configurable for production
	sessionStore.Options.SameSite = http.SameSiteLaxMode
	sessionStore.Options.Path = "/"
	if cfg.CookieDomain != "" {
		sessionStore.Options.Domain = cfg.CookieDomain
	}

	// 4. Init Templates
	templates := handlers.NewTemplateCache()
	templates.AddFunc("money", func(d decimal.Decimal) string { return d.StringFixed(2) })
	if err := templates.Load("templates"); err != nil {
		slog.Error("Failed to load templates", "error", err)
		os.Exit(1)
	}

	// 5. Setup Handlers
	shopHandler := &handlers.ShopHandler{
		Store:        db,
		Templates:    templates,
		SessionStore: sessionStore,
		Cfg:          cfg,
	}
	cartHandler := &handlers.CartHandler{
		Store:        db,
		Templates:    templates,
		SessionStore: sessionStore,
		Cfg:          cfg,
	}
	orderHandler := &handlers.OrderHandler{
		Store:        db,
		Templates:    templates,
		SessionStore: sessionStore,
		Cfg:          cfg,
	}
	adminHandler := &handlers.AdminHandler{
		Store:        db,
		SessionStore: sessionStore,
		Templates:    templates,
		Cfg:          cfg,
	}

	mux := http.NewServeMux()

	// Static assets and uploaded product images; directory indexes stay hidden.
	mux.Handle("/static/", http.StripPrefix("/static", handlers.NoDirListing(http.FileServer(http.Dir("./static")))))
	mux.Handle("/uploads/", http.StripPrefix("/uploads/", handlers.NoDirListing(http.FileServer(http.Dir(cfg.UploadDir)))))

	// Rate limiter for the public intake form
	rateLimiter := handlers.NewRateLimiter(1 * time.Minute)

	// Public Routes
	mux.HandleFunc("/{$}", shopHandler.Home)
	mux.HandleFunc("/products", shopHandler.Products)
	mux.HandleFunc("/product/{id}", shopHandler.ProductDetail)
	mux.HandleFunc("/about", shopHandler.About)
	mux.HandleFunc("/contact", shopHandler.Contact)

	mux.HandleFunc("/cart", cartHandler.ViewCart)
	mux.HandleFunc("/add_to_cart/{id}", cartHandler.AddToCart)
	mux.HandleFunc("/remove_from_cart/{id}", cartHandler.RemoveFromCart)

	mux.HandleFunc("/custom_order", orderHandler.CustomOrderForm)
	mux.HandleFunc("POST /custom_order", rateLimiter.Middleware(orderHandler.SubmitCustomOrder))

	mux.HandleFunc("/admin/login", adminHandler.LoginGet)
	mux.HandleFunc("POST /admin/login", adminHandler.LoginPost)
	mux.HandleFunc("/admin/logout", adminHandler.Logout)

	// Protected Routes
	mux.HandleFunc("/admin/dashboard", adminHandler.AuthMiddleware(adminHandler.Dashboard))
	mux.HandleFunc("/admin/settings", adminHandler.AuthMiddleware(adminHandler.SettingsForm))
	mux.HandleFunc("POST /admin/settings", adminHandler.AuthMiddleware(adminHandler.UpdateSettings))
	mux.HandleFunc("/admin/product/new", adminHandler.AuthMiddleware(adminHandler.NewProductForm))
	mux.HandleFunc("POST /admin/product/new", adminHandler.AuthMiddleware(adminHandler.CreateProduct))
	mux.HandleFunc("/admin/product/edit/{id}", adminHandler.AuthMiddleware(adminHandler.EditProductForm))
	mux.HandleFunc("POST /admin/product/edit/{id}", adminHandler.AuthMiddleware(adminHandler.UpdateProduct))
	mux.HandleFunc("/admin/product/delete/{id}", adminHandler.AuthMiddleware(adminHandler.DeleteProduct))

	// 6. Middleware Setup
	CSRF := csrf.Protect(
		cfg.CSRFKey,
		csrf.Secure(cfg.CookieSecure), // Configurable for production
		csrf.TrustedOrigins([]string{"localhost:" + cfg.Port, "127.0.0.1:" + cfg.Port, "localhost", "127.0.0.1"}),
	)

	// Chain: Logger -> Security Headers -> CSRF -> Mux
	handler := handlers.LoggingMiddleware(
		handlers.SecurityHeadersMiddleware(
			CSRF(mux),
		),
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

	slog.Info("Server exited gracefully.")
}
