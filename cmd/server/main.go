package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	cartapp "github.com/emansa3ed/jewelry-store/internal/application/cart"
	catalogapp "github.com/emansa3ed/jewelry-store/internal/application/catalog"
	checkoutapp "github.com/emansa3ed/jewelry-store/internal/application/checkout"
	favapp "github.com/emansa3ed/jewelry-store/internal/application/favorite"
	identityapp "github.com/emansa3ed/jewelry-store/internal/application/identity"
	inventoryapp "github.com/emansa3ed/jewelry-store/internal/application/inventory"
	orderapp "github.com/emansa3ed/jewelry-store/internal/application/order"
	"github.com/emansa3ed/jewelry-store/internal/infrastructure/auth"
	"github.com/emansa3ed/jewelry-store/internal/infrastructure/cache"
	"github.com/emansa3ed/jewelry-store/internal/infrastructure/config"
	"github.com/emansa3ed/jewelry-store/internal/infrastructure/logger"
	"github.com/emansa3ed/jewelry-store/internal/infrastructure/persistence"
	"github.com/emansa3ed/jewelry-store/internal/interfaces/http/handler"
	"github.com/emansa3ed/jewelry-store/internal/interfaces/http/middleware"
	"github.com/emansa3ed/jewelry-store/internal/interfaces/http/router"
)

//	@title			Jewelry Store API
//	@version		1.0
//	@description	Storefront backend with cart, checkout and inventory ledger

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting jewelry store backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database with a zap-backed GORM logger
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithGormLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Redis is optional. Without it the product cache is process-local and
	// token revocation does not survive restarts.
	var (
		productCache   catalogapp.ProductCache
		tokenBlacklist auth.TokenBlacklist
	)
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Error closing redis client", zap.Error(err))
			}
		}()

		productCache = cache.NewRedisProductCache(redisClient,
			cache.WithProductTTL(cfg.Cache.ProductTTL),
			cache.WithCacheLogger(log),
		)
		tokenBlacklist = auth.NewRedisTokenBlacklist(redisClient)
		log.Info("Redis connected",
			zap.String("host", cfg.Redis.Host),
			zap.Duration("product_ttl", cfg.Cache.ProductTTL),
		)
	} else {
		productCache = cache.NewInMemoryProductCache(cfg.Cache.ProductTTL)
		tokenBlacklist = auth.NewInMemoryTokenBlacklist()
		log.Info("Redis disabled, using in-memory cache and token blacklist")
	}

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	cartRepo := persistence.NewGormCartRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	favoriteRepo := persistence.NewGormFavoriteRepository(db.DB)
	movementRepo := persistence.NewGormMovementRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	checkoutScope := persistence.NewGormCheckoutScope(db.DB)

	// Services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, tokenBlacklist, log)
	userService := identityapp.NewUserService(userRepo, log)
	productService := catalogapp.NewProductService(productRepo, categoryRepo, productCache, log)
	categoryService := catalogapp.NewCategoryService(categoryRepo)
	cartService := cartapp.NewCartService(cartRepo, productRepo, log)
	checkoutService := checkoutapp.NewCheckoutService(productRepo, cartRepo, checkoutScope, log)
	checkoutService.SetCacheInvalidator(productCache)
	orderService := orderapp.NewOrderService(orderRepo, log)
	favoriteService := favapp.NewFavoriteService(favoriteRepo, productRepo)
	movementService := inventoryapp.NewMovementService(movementRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	productHandler := handler.NewProductHandler(productService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	cartHandler := handler.NewCartHandler(cartService)
	orderHandler := handler.NewOrderHandler(checkoutService, orderService)
	favoriteHandler := handler.NewFavoriteHandler(favoriteService)
	stockHandler := handler.NewStockHandler(movementService)
	healthHandler := handler.NewHealthHandler(db)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	var rateLimiter *middleware.RateLimiter
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter = middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check sits outside API versioning
	engine.GET("/health", healthHandler.Check)

	requireAuth := middleware.JWTAuth(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: tokenBlacklist,
		Logger:         log,
	})
	requireAdmin := middleware.RequireAdmin()

	// Public routes
	authRoutes := router.NewGroup("/auth").
		POST("/register", authHandler.Register).
		POST("/login", authHandler.Login).
		POST("/refresh", authHandler.Refresh).
		POST("/logout", requireAuth, authHandler.Logout).
		GET("/me", requireAuth, authHandler.Me)

	catalogRoutes := router.NewGroup("/catalog").
		GET("/products", productHandler.List).
		GET("/products/:id", productHandler.GetByID).
		GET("/categories", categoryHandler.List).
		GET("/categories/:id", categoryHandler.GetByID).
		GET("/categories/:id/products", productHandler.GetByCategory).
		// Catalog writes and the movement audit are admin only
		POST("/products", requireAuth, requireAdmin, productHandler.Create).
		PUT("/products/:id", requireAuth, requireAdmin, productHandler.Update).
		DELETE("/products/:id", requireAuth, requireAdmin, productHandler.Delete).
		GET("/products/:id/movements", requireAuth, requireAdmin, stockHandler.Movements).
		POST("/categories", requireAuth, requireAdmin, categoryHandler.Create).
		PUT("/categories/:id", requireAuth, requireAdmin, categoryHandler.Update).
		DELETE("/categories/:id", requireAuth, requireAdmin, categoryHandler.Delete)

	cartRoutes := router.NewGroup("/cart", requireAuth).
		GET("", cartHandler.Get).
		DELETE("", cartHandler.Clear).
		POST("/items", cartHandler.AddItem).
		PUT("/items/:product_id", cartHandler.UpdateItem).
		DELETE("/items/:product_id", cartHandler.RemoveItem)

	orderRoutes := router.NewGroup("/orders", requireAuth).
		POST("", orderHandler.Place).
		POST("/checkout", orderHandler.CheckoutCart).
		GET("/my", orderHandler.ListMy).
		GET("/:id", orderHandler.Get).
		GET("", requireAdmin, orderHandler.ListAll).
		DELETE("/:id", requireAdmin, orderHandler.Delete)

	favoriteRoutes := router.NewGroup("/favorites", requireAuth).
		GET("", favoriteHandler.List).
		POST("", favoriteHandler.Add).
		DELETE("/:product_id", favoriteHandler.Remove)

	userRoutes := router.NewGroup("/users", requireAuth, requireAdmin).
		GET("", userHandler.List).
		DELETE("/:id", userHandler.Delete)

	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(authRoutes).
		Register(catalogRoutes).
		Register(cartRoutes).
		Register(orderRoutes).
		Register(favoriteRoutes).
		Register(userRoutes).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}
	if rateLimiter != nil {
		rateLimiter.Stop()
	}

	log.Info("Server exited gracefully")
}
