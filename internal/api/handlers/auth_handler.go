package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mertcaneren0/arkyatirim/internal/api/middleware"
	"github.com/mertcaneren0/arkyatirim/internal/auth"
	"github.com/mertcaneren0/arkyatirim/internal/services"
)

// AuthHandler handles the admin login flow and credential maintenance.
type AuthHandler struct {
	userService services.IUserService
	jwtSecret   string
	jwtTTL      time.Duration
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(userService services.IUserService, jwtSecret string, jwtTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		jwtSecret:   jwtSecret,
		jwtTTL:      jwtTTL,
	}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	user, err := h.userService.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	token, err := auth.GenerateJWT(user.ID.Hex(), h.jwtSecret, h.jwtTTL)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// UpdatePassword handles POST /admin/update-password. Runs behind the auth
// middleware; the subject comes from the verified token. The current password
// must be re-verified before the hash is replaced, so a leaked token alone is
// not enough to rotate the credential.
func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	var req updatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "currentPassword and a newPassword of at least 8 characters are required"})
		return
	}

	userIDHex := c.GetString(middleware.ContextKeyUserID)
	userID, err := primitive.ObjectIDFromHex(userIDHex)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user, err := h.userService.FindByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "User not found")
		return
	}

	if !auth.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Current password is incorrect"})
		return
	}

	if err := h.userService.UpdatePassword(c.Request.Context(), userID, req.NewPassword); err != nil {
		respondError(c, err, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}
