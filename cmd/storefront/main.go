package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/evenlines/storefront/internal/auth"
	"github.com/evenlines/storefront/internal/cart"
	"github.com/evenlines/storefront/internal/catalog"
	"github.com/evenlines/storefront/internal/checkout"
	"github.com/evenlines/storefront/internal/config"
	h "github.com/evenlines/storefront/internal/http"
	"github.com/evenlines/storefront/internal/payment"
	"github.com/evenlines/storefront/internal/validate"
)

func main() {
	cfg := config.Load()

	// Product catalog
	repo, err := catalog.NewRepository(cfg.CatalogDBPath)
	if err != nil {
		log.Fatalf("failed to open catalog database: %v", err)
	}
	defer repo.Close()

	if err := repo.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}
	products := catalog.NewService(repo)

	// Cart storage
	var store cart.Store
	switch cfg.CartStore {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		defer client.Close()
		store = cart.NewRedisStore(client)
	default:
		memStore := cart.NewMemoryStore()
		defer memStore.Close()
		store = memStore
	}
	carts := cart.NewService(store)

	// Auth
	provider := auth.NewStubProvider(cfg.Identity)
	session := auth.NewSession(provider)
	session.Init()
	defer session.Close()

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.SessionTTL)

	// Payment gateway
	var gateway payment.Gateway
	switch cfg.Gateway {
	case "shoppay":
		gateway = payment.NewShopPayGateway(cfg.Payment, products, cfg.GatewayLatency)
	default:
		gateway = payment.NewStripeGateway(cfg.Payment, products, cfg.GatewayLatency)
	}
	breaker := payment.NewBreaker(gateway)

	checkouts := checkout.NewService(carts, breaker, session, nil, cfg.SubmitDelay, cfg.ConfirmDisplayDelay)

	cartHandler := h.NewCartHandler(carts, cfg.RequestTimeout)
	checkoutHandler := h.NewCheckoutHandler(checkouts, carts)
	productHandler := h.NewProductHandler(products)
	authHandler := h.NewAuthHandler(session, tokens)

	loginLimiter := validate.NewRateLimiter(cfg.LoginRateLimit, cfg.LoginRateWindow)

	// Setup router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(h.RequestIDMiddleware)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(h.SecurityHeadersMiddleware)
	r.Use(h.AuthMiddleware(tokens))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(h.RateLimitMiddleware(loginLimiter)).Post("/login", authHandler.Login)
			r.Post("/register", authHandler.Register)
			r.Post("/logout", authHandler.Logout)
			r.Post("/reset-password", authHandler.ResetPassword)
			r.Put("/profile", authHandler.UpdateProfile)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.ListProducts)
			r.Get("/{product_id}", productHandler.GetProduct)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{item_id}", cartHandler.UpdateQuantity)
			r.Delete("/items/{item_id}", cartHandler.RemoveItem)
			r.Post("/panel/toggle", cartHandler.TogglePanel)
			r.Post("/panel/open", cartHandler.OpenPanel)
			r.Post("/panel/close", cartHandler.ClosePanel)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/", checkoutHandler.Begin)
			r.Get("/", checkoutHandler.Status)
			r.Get("/quote", checkoutHandler.Quote)
			r.Post("/shipping", checkoutHandler.SubmitShipping)
			r.Post("/payment", checkoutHandler.SubmitPayment)
			r.Post("/back", checkoutHandler.Back)
			r.Post("/place-order", checkoutHandler.PlaceOrder)
		})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(r, "storefront"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("storefront starting on :%s (gateway=%s, cart store=%s)", cfg.HTTPPort, cfg.Gateway, cfg.CartStore)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
