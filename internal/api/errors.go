package api

import (
	"errors"   // Error matching
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework

	"wish_registry/internal/core" // Core error kinds
)

// respondError translates a core error kind into an HTTP response. Conflict
// kinds (locked wish, duplicate identity, lost funding race) map to 409 to
// distinguish "the state changed" from "you did something wrong".
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, core.ErrOwnershipViolation):
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not the owner"})
	case errors.Is(err, core.ErrSelfFunding):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot fund your own wish"})
	case errors.Is(err, core.ErrOverfunding):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount exceeds remaining price"})
	case errors.Is(err, core.ErrWishLocked):
		c.JSON(http.StatusConflict, gin.H{"error": "Wish already has offers"})
	case errors.Is(err, core.ErrDuplicateIdentity):
		c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
	case errors.Is(err, core.ErrStaleState):
		c.JSON(http.StatusConflict, gin.H{"error": "Wish changed concurrently, try again"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}

// actorID extracts the authenticated user id the JWT middleware stored in
// the context. Reports false after responding 401 when it is missing.
func actorID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get("userID") // Get userID from context
	if !exists {
		// If not, return unauthorized
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return userID.(uint), true
}
