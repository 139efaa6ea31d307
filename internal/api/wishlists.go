package api

import (
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"wish_registry/internal/core" // Core components

	"github.com/gin-gonic/gin" // Gin web framework
)

// CreateWishlistRequest represents a new wishlist
type CreateWishlistRequest struct {
	Name        string `json:"name" binding:"required"` // Wishlist name
	Image       string `json:"image"`                   // Cover image URL
	Description string `json:"description"`             // Description
	ItemIDs     []uint `json:"items_id"`                // Member wish ids, unresolved ids are dropped
}

// UpdateWishlistRequest carries the optional wishlist fields for an update
type UpdateWishlistRequest struct {
	Name        *string `json:"name"`        // New name
	Image       *string `json:"image"`       // New cover image
	Description *string `json:"description"` // New description
	ItemIDs     *[]uint `json:"items_id"`    // Full membership replacement
}

// wishlistID parses the :id path parameter
func wishlistID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		// If invalid, return bad request
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid wishlist id"})
		return 0, false
	}
	return uint(id), true
}

// CreateWishlistHandler creates a wishlist for the authenticated user
func CreateWishlistHandler(wishlists *core.Wishlists) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := actorID(c) // Authenticated actor
		if !ok {
			return
		}
		var req CreateWishlistRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		wishlist, err := wishlists.Create(userID, req.Name, req.Image, req.Description, req.ItemIDs)
		if err != nil {
			respondError(c, err)
			return
		}
		// Return the created wishlist
		c.JSON(http.StatusCreated, wishlist)
	}
}

// ListWishlistsHandler returns all wishlists with items and owner populated
func ListWishlistsHandler(wishlists *core.Wishlists) gin.HandlerFunc {
	return func(c *gin.Context) {
		all, err := wishlists.GetAll()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wishlists"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"wishlists": all})
	}
}

// GetWishlistHandler returns a single wishlist by id
func GetWishlistHandler(wishlists *core.Wishlists) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := wishlistID(c) // Parse path parameter
		if !ok {
			return
		}
		wishlist, err := wishlists.GetByID(id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, wishlist)
	}
}

// UpdateWishlistHandler edits a wishlist owned by the authenticated user.
// A provided items_id replaces the whole membership set.
func UpdateWishlistHandler(wishlists *core.Wishlists) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := actorID(c) // Authenticated actor
		if !ok {
			return
		}
		id, ok := wishlistID(c) // Parse path parameter
		if !ok {
			return
		}
		var req UpdateWishlistRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		wishlist, err := wishlists.Update(id, userID, core.WishlistPatch{
			Name:        req.Name,        // New name
			Image:       req.Image,       // New cover image
			Description: req.Description, // New description
			ItemIDs:     req.ItemIDs,     // Membership replacement
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, wishlist)
	}
}

// DeleteWishlistHandler removes a wishlist owned by the authenticated user
func DeleteWishlistHandler(wishlists *core.Wishlists) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := actorID(c) // Authenticated actor
		if !ok {
			return
		}
		id, ok := wishlistID(c) // Parse path parameter
		if !ok {
			return
		}
		wishlist, err := wishlists.Remove(id, userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, wishlist)
	}
}
