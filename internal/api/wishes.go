package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"time"     // Time durations

	"wish_registry/internal/core"   // Core components
	"wish_registry/internal/domain" // Importing domain models
	"wish_registry/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// Cache keys for the public wish feeds
const (
	lastWishesKey = "wishes:last" // Cache key for the recent feed
	topWishesKey  = "wishes:top"  // Cache key for the most-copied ranking
	feedCacheTTL  = 60 * time.Second
)

// CreateWishRequest represents a new wish
type CreateWishRequest struct {
	Name        string  `json:"name" binding:"required"`       // Gift name
	Link        string  `json:"link"`                          // Shop link
	Image       string  `json:"image"`                         // Image URL
	Description string  `json:"description"`                   // Description
	Price       float64 `json:"price" binding:"required,gt=0"` // Funding target
}

// UpdateWishRequest carries the optional wish fields for an edit
type UpdateWishRequest struct {
	Name        *string  `json:"name"`        // New name
	Link        *string  `json:"link"`        // New shop link
	Image       *string  `json:"image"`       // New image URL
	Description *string  `json:"description"` // New description
	Price       *float64 `json:"price"`       // New funding target
}

// invalidateFeeds drops the cached wish feeds after a write that affects them
func invalidateFeeds(c *gin.Context) {
	if rdb, ok := c.MustGet("redisClient").(*redis.Client); ok {
		ctx := context.Background()                                  // Context for Redis operations
		_ = utils.DeleteCache(ctx, rdb, lastWishesKey, topWishesKey) // Invalidate both feeds
	}
}

// wishID parses the :id path parameter
func wishID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		// If invalid, return bad request
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid wish id"})
		return 0, false
	}
	return uint(id), true
}

// CreateWishHandler publishes a new wish for the authenticated user
func CreateWishHandler(ledger *core.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := actorID(c) // Authenticated actor
		if !ok {
			return
		}
		var req CreateWishRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		wish := domain.Wish{
			Name:        req.Name,        // Gift name
			Link:        req.Link,        // Shop link
			Image:       req.Image,       // Image URL
			Description: req.Description, // Description
			Price:       req.Price,       // Funding target
			OwnerID:     userID,          // Owner is the actor
		}
		if err := ledger.Create(&wish); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create wish"})
			return
		}
		invalidateFeeds(c) // New wish changes the recent feed
		// Return the created wish
		c.JSON(http.StatusCreated, wish)
	}
}

// LastWishesHandler returns the most recently published wishes
func LastWishesHandler(ledger *core.Ledger, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()                                    // Context for Redis operations
		var cached []domain.Wish                                       // Cached feed
		found, err := utils.GetCache(ctx, rdb, lastWishesKey, &cached) // Try to get from cache
		// If found in cache, return it
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"wishes": cached, "cached": true})
			return
		}
		wishes, err := ledger.Last()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wishes"})
			return
		}
		_ = utils.SetCache(ctx, rdb, lastWishesKey, wishes, feedCacheTTL) // Cache the feed
		c.JSON(http.StatusOK, gin.H{"wishes": wishes, "cached": false})
	}
}

// TopWishesHandler returns the most copied wishes
func TopWishesHandler(ledger *core.Ledger, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()                                   // Context for Redis operations
		var cached []domain.Wish                                      // Cached ranking
		found, err := utils.GetCache(ctx, rdb, topWishesKey, &cached) // Try to get from cache
		// If found in cache, return it
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"wishes": cached, "cached": true})
			return
		}
		wishes, err := ledger.Top()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wishes"})
			return
		}
		_ = utils.SetCache(ctx, rdb, topWishesKey, wishes, feedCacheTTL) // Cache the ranking
		c.JSON(http.StatusOK, gin.H{"wishes": wishes, "cached": false})
	}
}

// GetWishHandler returns a single wish with its owner and offers
func GetWishHandler(ledger *core.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := wishID(c) // Parse path parameter
		if !ok {
			return
		}
		wish, err := ledger.LoadWithOffers(id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, wish)
	}
}

// UpdateWishHandler edits a wish owned by the authenticated user. Fails
// with a conflict once the wish has offers.
func UpdateWishHandler(ledger *core.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := actorID(c) // Authenticated actor
		if !ok {
			return
		}
		id, ok := wishID(c) // Parse path parameter
		if !ok {
			return
		}
		var req UpdateWishRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Reject a non-positive price before it reaches the ledger
		if req.Price != nil && *req.Price <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be positive"})
			return
		}
		wish, err := ledger.Mutate(id, userID, core.WishPatch{
			Name:        req.Name,        // New name
			Link:        req.Link,        // New shop link
			Image:       req.Image,       // New image URL
			Description: req.Description, // New description
			Price:       req.Price,       // New funding target
		})
		if err != nil {
			respondError(c, err)
			return
		}
		invalidateFeeds(c) // Edited wish may appear in the feeds
		c.JSON(http.StatusOK, wish)
	}
}

// DeleteWishHandler removes a wish owned by the authenticated user. Fails
// with a conflict while offers reference it.
func DeleteWishHandler(ledger *core.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := actorID(c) // Authenticated actor
		if !ok {
			return
		}
		id, ok := wishID(c) // Parse path parameter
		if !ok {
			return
		}
		wish, err := ledger.Delete(id, userID)
		if err != nil {
			respondError(c, err)
			return
		}
		invalidateFeeds(c) // Deleted wish leaves the feeds
		c.JSON(http.StatusOK, wish)
	}
}

// CopyWishHandler clones a wish into the authenticated user's collection
func CopyWishHandler(cloner *core.Cloner) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := actorID(c) // Authenticated actor
		if !ok {
			return
		}
		id, ok := wishID(c) // Parse path parameter
		if !ok {
			return
		}
		clone, err := cloner.Copy(id, userID)
		if err != nil {
			respondError(c, err)
			return
		}
		invalidateFeeds(c) // Copy bumps the ranking counter
		c.JSON(http.StatusCreated, clone)
	}
}
