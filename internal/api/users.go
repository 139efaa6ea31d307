package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"strings"  // String manipulation
	"time"     // Time durations

	"wish_registry/internal/core"   // Core components
	"wish_registry/internal/domain" // Importing domain models
	"wish_registry/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// profileKey builds the cache key for a public profile lookup. Usernames
// are stored lowercased, so the key is lowercased too: a lookup for
// "Alice" and the invalidation for "alice" must hit the same entry.
func profileKey(username string) string {
	return "profile:" + strings.ToLower(username)
}

// UpdateMeRequest carries the optional profile fields for an update
type UpdateMeRequest struct {
	Username *string `json:"username"` // New username
	Email    *string `json:"email"`    // New email
	About    *string `json:"about"`    // New profile text
	Avatar   *string `json:"avatar"`   // New avatar URL
	Password *string `json:"password"` // New password, re-hashed by the store
}

// FindUsersRequest carries the substring query for a user search
type FindUsersRequest struct {
	Query string `json:"query" binding:"required"` // Substring over username/email
}

// GetMeHandler returns the authenticated user's own profile
func GetMeHandler(users *core.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := actorID(c) // Authenticated actor
		if !ok {
			return
		}
		user, err := users.FindByID(userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// UpdateMeHandler edits the authenticated user's profile
func UpdateMeHandler(users *core.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := actorID(c) // Authenticated actor
		if !ok {
			return
		}
		var req UpdateMeRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Validate the fields that have shape rules
		if req.Username != nil && !isValidUsername(*req.Username) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username must be 2-30 word characters"})
			return
		}
		if req.Email != nil && !isValidEmail(*req.Email) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email"})
			return
		}
		if req.Password != nil && !isValidPassword(*req.Password) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be 8-64 characters"})
			return
		}
		// Remember the old username so its cached profile can be dropped
		before, err := users.FindByID(userID)
		if err != nil {
			respondError(c, err)
			return
		}
		user, err := users.UpdateProfile(userID, core.UserPatch{
			Username: req.Username, // New username
			Email:    req.Email,    // New email
			About:    req.About,    // New profile text
			Avatar:   req.Avatar,   // New avatar URL
			Password: req.Password, // New password
		})
		if err != nil {
			respondError(c, err)
			return
		}
		// Invalidate the cached public profile under both names
		if rdb, ok := c.MustGet("redisClient").(*redis.Client); ok {
			ctx := context.Background()                                  // Context for Redis operations
			_ = utils.DeleteCache(ctx, rdb, profileKey(before.Username)) // Old username key
			_ = utils.DeleteCache(ctx, rdb, profileKey(user.Username))   // New username key
		}
		c.JSON(http.StatusOK, user)
	}
}

// GetMyWishesHandler returns the wishes owned by the authenticated user
func GetMyWishesHandler(users *core.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := actorID(c) // Authenticated actor
		if !ok {
			return
		}
		wishes, err := users.WishesOf(userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"wishes": wishes})
	}
}

// FindUsersHandler searches users by a substring over username and email
func FindUsersHandler(users *core.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req FindUsersRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		found, err := users.Search(req.Query)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search users"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"users": found})
	}
}

// GetUserHandler returns a public profile by username, cached for a minute
func GetUserHandler(users *core.Users, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.Param("username")                           // Username from path
		ctx := context.Background()                               // Context for Redis operations
		cacheKey := profileKey(username)                          // Cache key for this profile
		var cached domain.User                                    // Cached profile
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached) // Try to get from cache
		// If found in cache, return it
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"user": cached, "cached": true})
			return
		}
		user, err := users.FindByUsername(username)
		if err != nil {
			respondError(c, err)
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, user, 60*time.Second) // Cache the profile for 60 seconds
		c.JSON(http.StatusOK, gin.H{"user": user, "cached": false})
	}
}

// GetUserWishesHandler returns the wishes owned by the named user
func GetUserWishesHandler(users *core.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		wishes, err := users.WishesOfUsername(c.Param("username"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"wishes": wishes})
	}
}
