package api

import (
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"wish_registry/internal/core" // Core components

	"github.com/gin-gonic/gin" // Gin web framework
)

// CreateOfferRequest represents a funding pledge
type CreateOfferRequest struct {
	ItemID uint    `json:"item_id" binding:"required"`     // Target wish
	Amount float64 `json:"amount" binding:"required,gt=0"` // Pledged amount
	Hidden bool    `json:"hidden"`                         // Anonymous pledge flag
}

// CreateOfferHandler records a pledge by the authenticated user toward
// another user's wish
func CreateOfferHandler(offers *core.Offers) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := actorID(c) // Authenticated actor
		if !ok {
			return
		}
		var req CreateOfferRequest // Bind JSON request to struct
		// Validate request
		if err := c.ShouldBindJSON(&req); err != nil || req.Amount <= 0 {
			// If invalid, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		offer, err := offers.Create(req.ItemID, req.Amount, req.Hidden, userID)
		if err != nil {
			respondError(c, err)
			return
		}
		invalidateFeeds(c) // Raised totals in the feeds went stale
		// Return the created offer
		c.JSON(http.StatusCreated, offer)
	}
}

// ListOffersHandler returns all offers with user and wish populated
func ListOffersHandler(offers *core.Offers) gin.HandlerFunc {
	return func(c *gin.Context) {
		all, err := offers.ListAll()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch offers"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"offers": all})
	}
}

// GetOfferHandler returns a single offer by id
func GetOfferHandler(offers *core.Offers) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			// If invalid, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid offer id"})
			return
		}
		offer, err := offers.FindOne(uint(id))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, offer)
	}
}
