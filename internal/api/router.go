package api

import (
	"net/http"
	"time"

	"github.com/ecofinds/ecofinds-api/internal/api/handler"
	customMiddleware "github.com/ecofinds/ecofinds-api/internal/api/middleware"
	"github.com/ecofinds/ecofinds-api/internal/assistant"
	"github.com/ecofinds/ecofinds-api/internal/assistant/corpus"
	"github.com/ecofinds/ecofinds-api/internal/config"
	"github.com/ecofinds/ecofinds-api/internal/domain"
	"github.com/ecofinds/ecofinds-api/internal/repository/memory"
	"github.com/ecofinds/ecofinds-api/internal/repository/mongo"
	"github.com/ecofinds/ecofinds-api/internal/repository/redis"
	"github.com/ecofinds/ecofinds-api/internal/security"
	"github.com/ecofinds/ecofinds-api/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
)

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, db *mongo.DB, redisClient *redis.Client) (http.Handler, error) {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.RequestTimeout))
	r.Use(customMiddleware.RequestIDHeader)

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	jwtManager := security.NewJWTManager(
		cfg.Auth.JWTSecret,
		cfg.Auth.AccessTokenTTL,
		cfg.Auth.RefreshTokenTTL,
	)

	// Repositories
	userRepo := mongo.NewUserRepository(db)
	productRepo := mongo.NewProductRepository(db)
	cartRepo := mongo.NewCartRepository(db)
	purchaseRepo := mongo.NewPurchaseRepository(db)

	rateLimiter := redis.NewRateLimiter(
		redisClient,
		cfg.Security.RateLimit.RequestsPerMinute,
		cfg.Security.RateLimit.Burst,
	)

	// Conversation session store
	var conversationStore domain.ConversationStore
	if cfg.Assistant.SessionStore == "memory" {
		log.Info().Msg("using in-memory conversation store")
		conversationStore = memory.NewConversationStore(cfg.Assistant.SessionTTL)
	} else {
		conversationStore = redis.NewConversationStore(redisClient, cfg.Assistant.SessionTTL)
	}

	// Services
	authService := service.NewAuthService(userRepo, jwtManager)
	productService := service.NewProductService(productRepo, userRepo)
	cartService := service.NewCartService(cartRepo, productRepo)
	purchaseService := service.NewPurchaseService(purchaseRepo, cartRepo, productRepo, userRepo)

	// Assistant pipeline
	knowledge, err := corpus.Load()
	if err != nil {
		return nil, err
	}
	rng := assistant.NewLockedRand(time.Now().UnixNano())
	retriever := assistant.NewKnowledgeRetriever(knowledge, rng)
	productAdapter := assistant.NewProductQueryAdapter(productService)
	engine := assistant.NewEngine(retriever, productAdapter, rng, assistant.Options{
		WarningLimit:     cfg.Assistant.WarningLimit,
		BlockDuration:    cfg.Assistant.BlockDuration,
		ThinkingDelayMin: cfg.Assistant.ThinkingDelayMin,
		ThinkingDelayMax: cfg.Assistant.ThinkingDelayMax,
	})
	chatService := service.NewChatService(conversationStore, engine)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(productService)
	cartHandler := handler.NewCartHandler(cartService)
	purchaseHandler := handler.NewPurchaseHandler(purchaseService)
	chatHandler := handler.NewChatHandler(chatService)

	authMiddleware := customMiddleware.NewAuthMiddleware(jwtManager)
	rateLimitMiddleware := customMiddleware.NewRateLimitMiddleware(rateLimiter)

	r.Route("/api/v1", func(r chi.Router) {
		// Health
		r.Get("/health", handler.HealthCheck)
		r.Get("/ready", handler.ReadyCheck(db))

		// Auth (public)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.Authenticate)
				r.Get("/me", authHandler.Me)
				r.Patch("/me", authHandler.UpdateMe)
			})
		})

		// Catalog: browsing is public, listing management needs auth
		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.List)
			r.Get("/{productID}", productHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.Authenticate)
				r.Post("/", productHandler.Create)
				r.Get("/user/my-products", productHandler.MyProducts)
				r.Put("/{productID}", productHandler.Update)
				r.Delete("/{productID}", productHandler.Delete)
			})
		})

		// Cart
		r.Route("/cart", func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Post("/", cartHandler.Add)
			r.Get("/", cartHandler.Get)
			r.Delete("/", cartHandler.Clear)
			r.Put("/{productID}", cartHandler.UpdateItem)
			r.Delete("/{productID}", cartHandler.RemoveItem)
		})

		// Purchases
		r.Route("/purchases", func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Post("/", purchaseHandler.Checkout)
			r.Get("/", purchaseHandler.List)
			r.Get("/{purchaseID}", purchaseHandler.Get)
		})

		// Assistant widget; rate limited, no auth required
		r.Route("/chat", func(r chi.Router) {
			r.Use(rateLimitMiddleware.Limit)
			r.Post("/query", chatHandler.Query)
			r.Get("/time-remaining", chatHandler.TimeRemaining)
			r.Get("/sessions/{sessionID}", chatHandler.History)
			r.Delete("/sessions/{sessionID}", chatHandler.ClearSession)
		})
	})

	return r, nil
}
