package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	cartHTTP "github.com/artisy/storefront/internal/cart/delivery/http"
	cartrepo "github.com/artisy/storefront/internal/cart/repository"
	cartcommand "github.com/artisy/storefront/internal/cart/usecase/command"
	cartquery "github.com/artisy/storefront/internal/cart/usecase/query"
	catalogHTTP "github.com/artisy/storefront/internal/catalog/delivery/http"
	catalogrepo "github.com/artisy/storefront/internal/catalog/repository"
	catalogcommand "github.com/artisy/storefront/internal/catalog/usecase/command"
	catalogquery "github.com/artisy/storefront/internal/catalog/usecase/query"
	"github.com/artisy/storefront/internal/config"
	"github.com/artisy/storefront/internal/embedding"
	"github.com/artisy/storefront/internal/identity"
	identityHTTP "github.com/artisy/storefront/internal/identity/delivery/http"
	orderHTTP "github.com/artisy/storefront/internal/order/delivery/http"
	orderrepo "github.com/artisy/storefront/internal/order/repository"
	ordercommand "github.com/artisy/storefront/internal/order/usecase/command"
	orderquery "github.com/artisy/storefront/internal/order/usecase/query"
	"github.com/artisy/storefront/internal/payment"
	"github.com/artisy/storefront/internal/payment/webhook"
	wishlistHTTP "github.com/artisy/storefront/internal/wishlist/delivery/http"
	wishlistrepo "github.com/artisy/storefront/internal/wishlist/repository"
	wishlistcommand "github.com/artisy/storefront/internal/wishlist/usecase/command"
	wishlistquery "github.com/artisy/storefront/internal/wishlist/usecase/query"
	"github.com/artisy/storefront/kafka"
	"github.com/artisy/storefront/pkg/apperr"
	"github.com/artisy/storefront/pkg/cache"
	"github.com/artisy/storefront/pkg/database"
	"github.com/artisy/storefront/pkg/logger"
	"github.com/artisy/storefront/pkg/tracing"
)

const serviceName = "storefront-api"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init(serviceName, true)
		logger.Logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Init(serviceName, cfg.IsDevelopment())
	logger.SetLevel(cfg.LogLevel)
	apperr.Verbose = cfg.IsDevelopment()

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", cfg.Environment).
		Str("log_level", cfg.LogLevel).
		Msg("Starting storefront API")

	// Initialize tracer
	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	// Connect to database
	db, err := database.NewGormConnection(cfg.DB)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	// Repositories and migrations
	catalogRepo := catalogrepo.NewGormCatalogRepository(db)
	reviewRepo := catalogrepo.NewGormReviewRepository(db)
	cartRepo := cartrepo.NewGormCartRepository(db)
	wishlistRepo := wishlistrepo.NewGormWishlistRepository(db)
	orderRepo := orderrepo.NewGormOrderRepository(db)

	for name, migrate := range map[string]func() error{
		"catalog":  catalogRepo.AutoMigrate,
		"cart":     cartRepo.AutoMigrate,
		"wishlist": wishlistRepo.AutoMigrate,
		"order":    orderRepo.AutoMigrate,
	} {
		if err := migrate(); err != nil {
			logger.Logger.Fatal().Err(err).Str("module", name).Msg("Failed to run migrations")
		}
	}
	logger.Logger.Info().Msg("Database initialized successfully")

	// Optional infrastructure
	redisClient := connectRedis(cfg)
	publisher := connectKafka(cfg)
	if publisher != nil {
		defer publisher.Close()
	}

	// Identity
	authenticator := identity.NewAuthenticator(cfg.SupabaseJWTSecret)
	identityClient := identity.NewClient(cfg.SupabaseURL, cfg.SupabaseServiceKey)
	authHandler := identityHTTP.NewAuthHandler(identityClient, authenticator)

	// Catalog
	embedder := embedding.NewClient(cfg.OpenAIAPIKey)
	catalogHandler := catalogHTTP.NewCatalogHandler(
		catalogquery.NewSearchProductsHandler(catalogRepo),
		catalogquery.NewGetProductHandler(catalogRepo),
		catalogquery.NewFeaturedProductsHandler(catalogRepo),
		catalogquery.NewFilterOptionsHandler(catalogRepo),
		catalogquery.NewSemanticSearchHandler(catalogRepo, embedder),
		catalogquery.NewListReviewsHandler(reviewRepo),
		catalogcommand.NewAddReviewHandler(catalogRepo, reviewRepo),
		authenticator,
	)

	// Cart
	productFinder := cartrepo.NewCatalogProductFinder(catalogRepo)
	cartHandler := cartHTTP.NewCartHandler(
		cartquery.NewGetCartHandler(cartRepo),
		cartcommand.NewAddItemHandler(cartRepo, productFinder),
		cartcommand.NewUpdateItemHandler(cartRepo),
		cartcommand.NewRemoveItemHandler(cartRepo),
		cartcommand.NewClearCartHandler(cartRepo),
		authenticator,
	)

	// Wishlist
	wishlistHandler := wishlistHTTP.NewWishlistHandler(
		wishlistquery.NewListWishlistHandler(wishlistRepo),
		wishlistquery.NewContainsHandler(wishlistRepo),
		wishlistcommand.NewAddItemHandler(wishlistRepo, productFinder),
		wishlistcommand.NewRemoveItemHandler(wishlistRepo),
		authenticator,
	)

	// Orders and payments
	gateway := payment.NewStripeGateway(cfg.StripeSecretKey, cfg.SiteURL)
	orderHandler := orderHTTP.NewOrderHandler(
		ordercommand.NewCreateCheckoutHandler(orderRepo, gateway),
		orderquery.NewListOrdersHandler(orderRepo),
		orderquery.NewGetOrderHandler(orderRepo),
		orderquery.NewGetStatusHandler(orderRepo),
		authenticator,
	)
	var eventPublisher webhook.EventPublisher
	if publisher != nil {
		eventPublisher = publisher
	}
	webhookHandler := webhook.NewHandler(webhook.NewReconciler(orderRepo, eventPublisher), cfg.StripeWebhookSecret)

	// Router
	router := mux.NewRouter()
	api := router.PathPrefix("/api").Subrouter()

	cacheWrap := cache.Middleware(redisClient, cache.DefaultConfig())
	authHandler.RegisterRoutes(api)
	catalogHandler.RegisterRoutes(api, cacheWrap)
	cartHandler.RegisterRoutes(api)
	wishlistHandler.RegisterRoutes(api)
	orderHandler.RegisterRoutes(api)
	api.Handle("/payments/webhook", webhookHandler).Methods("POST")
	api.HandleFunc("/health", healthHandler(cfg, sqlDB)).Methods("GET")

	router.Handle("/metrics", promhttp.Handler())

	// CORS restricted to the storefront origin
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.SiteURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	handler := otelhttp.NewHandler(c.Handler(router), "http.server")

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Logger.Info().
			Str("port", cfg.Port).
			Str("metrics_endpoint", "/metrics").
			Msg("HTTP server started")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("Server shutdown failed")
	}
}

// connectRedis returns nil when Redis is not configured or unreachable;
// the response cache degrades to pass-through.
func connectRedis(cfg *config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Logger.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("Redis unavailable, response cache disabled")
		return nil
	}
	logger.Logger.Info().Str("addr", cfg.RedisAddr).Msg("Redis connected")
	return client
}

// connectKafka returns nil when no brokers are configured or the
// producer cannot be created; order events are then skipped.
func connectKafka(cfg *config.Config) *kafka.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		return nil
	}
	publisher, err := kafka.NewPublisher(cfg.KafkaBrokers)
	if err != nil {
		logger.Logger.Warn().Err(err).Strs("brokers", cfg.KafkaBrokers).Msg("Kafka unavailable, order events disabled")
		return nil
	}
	return publisher
}

func healthHandler(cfg *config.Config, sqlDB *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := "ok"
		code := http.StatusOK
		if err := sqlDB.PingContext(ctx); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
			logger.Error(r.Context()).Err(err).Msg("Health check database ping failed")
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		w.Write([]byte(`{"status":"` + status + `","timestamp":"` + time.Now().UTC().Format(time.RFC3339) + `","environment":"` + cfg.Environment + `"}`))
	}
}
