package main

import (
	"context"                           // context package is needed for Redis operations
	"log"                               // log package is needed for logging
	"wish_registry/internal/api"        // Custom package for API handlers
	"wish_registry/internal/config"     // Custom package for configuration
	"wish_registry/internal/core"       // Custom package for the core components
	"wish_registry/internal/middleware" // Custom package for middleware

	// For loading .env files
	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Connect to the database. TranslateError lets duplicate-key failures
	// surface as gorm.ErrDuplicatedKey, which the identity store relies on.
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Core components over the shared database handle
	users := core.NewUsers(db)           // Identity store
	ledger := core.NewLedger(db)         // Wish store and funding invariants
	offers := core.NewOffers(db, ledger) // Pledge processor
	cloner := core.NewCloner(db)         // Wish duplication
	wishlists := core.NewWishlists(db)   // Wishlist collections

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Auth routes
	r.POST("/signup", api.SignupHandler(users))                // Registration endpoint
	r.POST("/signin", api.SigninHandler(users, cfg.JWTSecret)) // Login endpoint

	// Public wish feeds
	r.GET("/wishes/last", api.LastWishesHandler(ledger, redisClient)) // Recent wishes
	r.GET("/wishes/top", api.TopWishesHandler(ledger, redisClient))   // Most copied wishes

	// Authenticated routes, with the Redis client injected for invalidation
	authed := r.Group("")
	authed.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret), func(c *gin.Context) {
		c.Set("redisClient", redisClient)
		c.Next()
	})

	// Profile routes
	authed.GET("/users/me", api.GetMeHandler(users))                       // Own profile
	authed.PATCH("/users/me", api.UpdateMeHandler(users))                  // Edit own profile
	authed.GET("/users/me/wishes", api.GetMyWishesHandler(users))          // Own wishes
	authed.POST("/users/find", api.FindUsersHandler(users))                // Substring search
	authed.GET("/users/:username", api.GetUserHandler(users, redisClient)) // Public profile
	authed.GET("/users/:username/wishes", api.GetUserWishesHandler(users)) // Public wishes

	// Wish routes
	authed.POST("/wishes", api.CreateWishHandler(ledger))        // Publish a wish
	authed.GET("/wishes/:id", api.GetWishHandler(ledger))        // Wish with owner and offers
	authed.PATCH("/wishes/:id", api.UpdateWishHandler(ledger))   // Edit, blocked once funded
	authed.DELETE("/wishes/:id", api.DeleteWishHandler(ledger))  // Delete, blocked once funded
	authed.POST("/wishes/:id/copy", api.CopyWishHandler(cloner)) // Clone into own collection

	// Offer routes
	authed.POST("/offers", api.CreateOfferHandler(offers)) // Pledge toward a wish
	authed.GET("/offers", api.ListOffersHandler(offers))   // All offers
	authed.GET("/offers/:id", api.GetOfferHandler(offers)) // Single offer

	// Wishlist routes
	authed.POST("/wishlists", api.CreateWishlistHandler(wishlists))       // Create a wishlist
	authed.GET("/wishlists", api.ListWishlistsHandler(wishlists))         // All wishlists
	authed.GET("/wishlists/:id", api.GetWishlistHandler(wishlists))       // Single wishlist
	authed.PATCH("/wishlists/:id", api.UpdateWishlistHandler(wishlists))  // Edit, owner only
	authed.DELETE("/wishlists/:id", api.DeleteWishlistHandler(wishlists)) // Remove, owner scoped

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
