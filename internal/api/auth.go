package api

import (
	"net/http" // HTTP status codes
	"regexp"   // Regular expressions

	"wish_registry/internal/core"  // Core components
	"wish_registry/internal/utils" // Utility functions

	"github.com/gin-gonic/gin" // Gin web framework
)

// Request struct for signup
type SignupRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
	About    string `json:"about"`                       // Optional profile text
	Avatar   string `json:"avatar"`                      // Optional avatar URL
}

// Request struct for signin
type SigninRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// Response struct for authentication
type AuthResponse struct {
	Token string `json:"access_token"` // JWT token
}

// isValidUsername checks if the username contains only word characters
func isValidUsername(username string) bool {
	matched, _ := regexp.MatchString(`^\w{2,30}$`, username) // Letters, digits and underscore, 2-30 chars
	return matched                                           // Return whether it matched
}

// isValidEmail loosely checks the email shape
func isValidEmail(email string) bool {
	matched, _ := regexp.MatchString(`^[^@\s]+@[^@\s]+\.[^@\s]+$`, email) // Something@something.something
	return matched                                                        // Return whether it matched
}

// isValidPassword checks if the password length is between 8 and 64 characters
func isValidPassword(password string) bool {
	return len(password) >= 8 && len(password) <= 64 // Return true if length is valid
}

// SignupHandler registers a new user
func SignupHandler(users *core.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignupRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Validate username shape
		if !isValidUsername(req.Username) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username must be 2-30 word characters"})
			return
		}
		// Validate email shape
		if !isValidEmail(req.Email) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email"})
			return
		}
		// Validate password length
		if !isValidPassword(req.Password) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be 8-64 characters"})
			return
		}
		// Create the user, hashing happens in the identity store
		user, err := users.Create(req.Username, req.Email, req.Password, req.About, req.Avatar)
		if err != nil {
			respondError(c, err)
			return
		}
		// Return the created profile
		c.JSON(http.StatusCreated, user)
	}
}

// SigninHandler authenticates a user and returns a JWT token
func SigninHandler(users *core.Users, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SigninRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Check the credentials against the identity store
		user, err := users.VerifyPassword(req.Username, req.Password)
		if err != nil {
			// Bad username and bad password look the same to the caller
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		// Generate JWT token
		token, err := utils.GenerateJWT(user.ID, jwtSecret)
		if err != nil {
			// If token generation fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		// Return the token in the response
		c.JSON(http.StatusOK, AuthResponse{Token: token})
	}
}
