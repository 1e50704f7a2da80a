package controllers

import (
	"errors"
	"net/http"

	"github.com/Forest815/web-sec-playground-1-main/internal/config"
	"github.com/Forest815/web-sec-playground-1-main/internal/middleware"
	"github.com/Forest815/web-sec-playground-1-main/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthController struct {
	authService *services.AuthService
	sessions    *services.SessionService
	cfg         *config.Config
}

func NewAuthController(authService *services.AuthService, sessions *services.SessionService, cfg *config.Config) *AuthController {
	return &AuthController{
		authService: authService,
		sessions:    sessions,
		cfg:         cfg,
	}
}

type SignupRequest struct {
	Name         string `json:"name" binding:"required,max=100"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	SecretAnswer string `json:"secret_answer" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type CheckEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Email        string `json:"email" binding:"required,email"`
	SecretAnswer string `json:"secret_answer" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// Signup - POST /auth/signup
func (ac *AuthController) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad request",
			"message": "Invalid request body",
		})
		return
	}

	user, err := ac.authService.Register(req.Name, req.Email, req.Password, req.SecretAnswer)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserExists):
			c.JSON(http.StatusConflict, gin.H{
				"error":   "Conflict",
				"message": "This email address is already registered",
			})
		case errors.Is(err, services.ErrPasswordTooShort):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Bad request",
				"message": "Password must be at least 8 characters",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Internal server error",
				"message": "Unable to create account",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
		},
	})
}

// Login - POST /auth/login
//
// All invalid-credential outcomes carry the exact same message whether the
// email is unknown or the password is wrong.
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad request",
			"message": "Invalid request body",
		})
		return
	}

	user, sessionID, err := ac.authService.Login(c.ClientIP(), c.Request.UserAgent(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrIPBlocked):
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":   "Too many requests",
				"message": "This address is temporarily blocked. Please try again later",
			})
		case errors.Is(err, services.ErrTooManyAttempts):
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":   "Too many requests",
				"message": "Too many login attempts. Please wait before trying again",
			})
		case errors.Is(err, services.ErrAccountLockedNow):
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "Forbidden",
				"message": "Account locked after repeated failed logins. Please try again later",
			})
		case errors.Is(err, services.ErrAccountLocked):
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "Forbidden",
				"message": "Account is locked. Please try again later",
			})
		case errors.Is(err, services.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Unauthorized",
				"message": "Incorrect email or password",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Internal server error",
				"message": "Login failed",
			})
		}
		return
	}

	middleware.SetSessionCookie(c, &ac.cfg.Server, sessionID.String(), int(ac.sessions.TTL().Seconds()))

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":            user.ID,
			"name":          user.Name,
			"email":         user.Email,
			"last_login_at": user.LastLoginAt,
		},
	})
}

// Logout - DELETE /auth/logout
//
// Always reports success; an absent or already-dead session is fine.
func (ac *AuthController) Logout(c *gin.Context) {
	if value, err := c.Cookie(middleware.SessionCookieName); err == nil && value != "" {
		if sessionID, err := uuid.Parse(value); err == nil {
			if err := ac.authService.Logout(sessionID); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{
					"error":   "Internal server error",
					"message": "Logout failed",
				})
				return
			}
		}
		middleware.ClearSessionCookie(c, &ac.cfg.Server)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// CheckEmail - POST /auth/check-email
func (ac *AuthController) CheckEmail(c *gin.Context) {
	var req CheckEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad request",
			"message": "Email is required",
		})
		return
	}

	exists, err := ac.authService.CheckEmail(req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Unable to check email",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"exists": exists})
}

// ResetPassword - POST /auth/reset-password
//
// Returns the temporary password in the response body exactly once. Unknown
// email and wrong answer get the same message.
func (ac *AuthController) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad request",
			"message": "Invalid request body",
		})
		return
	}

	tempPassword, err := ac.authService.ResetPassword(req.Email, req.SecretAnswer)
	if err != nil {
		if errors.Is(err, services.ErrInvalidSecretAnswer) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Unauthorized",
				"message": "The secret answer is incorrect",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Unable to reset password",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"temp_password": tempPassword,
		"message":       "Password has been reset. Sign in with the temporary password",
	})
}

// ChangePassword - POST /auth/password/change (session required)
func (ac *AuthController) ChangePassword(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Unauthorized",
			"message": "Authentication required",
		})
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad request",
			"message": "Invalid request body",
		})
		return
	}

	err := ac.authService.ChangePassword(userID.(uuid.UUID), req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Unauthorized",
				"message": "Current password is incorrect",
			})
		case errors.Is(err, services.ErrPasswordTooShort):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Bad request",
				"message": "New password must be at least 8 characters",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Internal server error",
				"message": "Unable to change password",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Password changed successfully",
	})
}
