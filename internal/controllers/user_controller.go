package controllers

import (
	"net/http"
	"strconv"

	"github.com/Forest815/web-sec-playground-1-main/internal/repositories"
	"github.com/Forest815/web-sec-playground-1-main/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UserController struct {
	userRepo    repositories.UserRepository
	authService *services.AuthService
}

func NewUserController(userRepo repositories.UserRepository, authService *services.AuthService) *UserController {
	return &UserController{userRepo: userRepo, authService: authService}
}

// GetProfile - GET /user
func (uc *UserController) GetProfile(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Unauthorized",
			"message": "Authentication required",
		})
		return
	}

	user, err := uc.userRepo.GetByID(userID.(uuid.UUID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Unable to retrieve user profile",
		})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Not found",
			"message": "User not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":            user.ID,
			"name":          user.Name,
			"email":         user.Email,
			"last_login_at": user.LastLoginAt,
			"created_at":    user.CreatedAt,
		},
	})
}

// GetLoginHistory - GET /user/login-history?limit=20
func (uc *UserController) GetLoginHistory(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Unauthorized",
			"message": "Authentication required",
		})
		return
	}

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	entries, err := uc.authService.LoginHistory(userID.(uuid.UUID), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Unable to retrieve login history",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"login_history": entries})
}
