package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"ncwcc-portal/internal/apiclient"
	"ncwcc-portal/internal/config"
	"ncwcc-portal/internal/db"
	"ncwcc-portal/internal/events"
	"ncwcc-portal/internal/handlers"
	"ncwcc-portal/internal/health"
	h "ncwcc-portal/internal/http"
	"ncwcc-portal/internal/middleware"
	"ncwcc-portal/internal/pdf"
	"ncwcc-portal/internal/repositories"
	"ncwcc-portal/internal/services"
	"ncwcc-portal/internal/session"
	"ncwcc-portal/internal/storage"
)

func connectRedis(cfg *config.Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		log.Printf("[Redis] unavailable (%v), sessions fall back to memory", err)
		return nil
	}
	return client
}

func main() {
	cfg := config.Load()

	// Redis: sessions + invoice list cache (graceful degradation to memory)
	rdb := connectRedis(cfg)
	var sessions session.Store
	if rdb != nil {
		sessions = session.NewRedisStore(rdb)
	} else {
		sessions = session.NewMemoryStore()
	}

	// Session invalidation events reach the browser over the websocket hub
	hub := events.NewHub()
	go hub.Run()
	sessions.OnInvalidate(hub.PublishInvalidation)

	// Postgres: portal-owned FAQ and contact content (optional)
	var contactService *services.ContactService
	var faqService *services.FAQService
	pool, err := db.Connect(cfg)
	if err != nil {
		log.Printf("[DB] unavailable (%v), FAQ and contact endpoints disabled", err)
	} else {
		if err := db.EnsureSchema(context.Background(), pool); err != nil {
			log.Fatalf("schema setup failed: %v", err)
		}
		contactService = services.NewContactService(repositories.NewContactRepository(pool))
		faqService = services.NewFAQService(repositories.NewFAQRepository(pool))
	}

	// Core business API client
	timeout := time.Duration(cfg.Upstream.TimeoutSeconds) * time.Second
	api := apiclient.New(cfg.Upstream.BaseURL, timeout, sessions)

	// Domain services
	authService := services.NewAuthService(api, sessions)
	googleService := services.NewGoogleService(authService, cfg.Google.ClientID)
	renderer := pdf.NewRenderer("NCWCC Cleaning Services")
	archive := storage.New(cfg)
	invoiceService := services.NewInvoiceService(api, rdb, renderer, archive)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, googleService)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceService)
	profileHandler := handlers.NewProfileHandler(api, authService)
	accountHandler := handlers.NewAccountHandler(api)
	contactHandler := handlers.NewContactHandler(contactService)
	faqHandler := handlers.NewFAQHandler(faqService)
	checker := health.NewHealthChecker(pool, rdb, authService)
	healthHandler := handlers.NewHealthHandler(checker)

	sessionMiddleware := middleware.NewSessionMiddleware(sessions)

	router := h.NewRouter(
		authHandler,
		invoiceHandler,
		profileHandler,
		accountHandler,
		contactHandler,
		faqHandler,
		healthHandler,
		sessionMiddleware,
		hub,
	)

	handler := middleware.NewCORS(cfg)(router)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("[Server] portal backend listening on %s (upstream %s)", addr, cfg.Upstream.BaseURL)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
