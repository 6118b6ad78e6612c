package api

import (
	"net/http" // HTTP status codes
	"regexp"   // Regular expressions
	"strings"  // String manipulation

	"gifty/internal/domain" // Importing domain models
	"gifty/internal/store"  // Persistence layer

	"github.com/gin-gonic/gin"   // Gin web framework
	"golang.org/x/crypto/bcrypt" // Password hashing
)

// RegisterUserRequest is the typed registration payload. There is no login
// and no session handling anywhere in this service; the account only anchors
// gift card ownership and merchant records.
type RegisterUserRequest struct {
	Username string `json:"username" binding:"required"`       // Username must be provided
	Email    string `json:"email" binding:"required,email"`    // Email must be provided
	Password string `json:"password" binding:"required"`       // Password must be provided
	Name     string `json:"name" binding:"required"`           // Display name must be provided
}

// isValidUsername checks if the username contains only alphanumeric characters
func isValidUsername(username string) bool {
	matched, _ := regexp.MatchString(`^[A-Za-z0-9]+$`, username) // Regex to match alphanumerics only
	return matched                                               // Return whether it matched
}

// isValidPassword checks if the password length is between 8 and 64 characters
func isValidPassword(password string) bool {
	return len(password) >= 8 && len(password) <= 64 // Return true if length is valid
}

// RegisterUserHandler creates a user account with a hashed password
func RegisterUserHandler(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterUserRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Validate username
		if !isValidUsername(req.Username) {
			// If username is invalid, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username must be alphanumeric only"})
			return
		}
		// Validate password length
		if !isValidPassword(req.Password) {
			// If password is invalid, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be 8-64 characters"})
			return
		}
		// Hash the password and create the user
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			// If hashing fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		// Create user with lowercase username to ensure uniqueness
		user := domain.User{
			Username: strings.ToLower(req.Username), // Normalized username
			Email:    strings.ToLower(req.Email),    // Normalized email
			Password: string(hash),                  // Hashed password
			Name:     req.Name,                      // Display name
			Role:     "user",                        // Default role
		}
		// Attempt to create the user in the database
		if err := st.CreateUser(&user); err != nil {
			// If creation fails (e.g., duplicate username or email), return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username or email already exists"})
			return
		}
		// Return the created account (password is never serialized)
		c.JSON(http.StatusCreated, user)
	}
}
