package routes

import (
	"github.com/Forest815/web-sec-playground-1-main/internal/controllers"
	"github.com/gin-gonic/gin"
)

func RegisterAuthRoutes(router *gin.RouterGroup, authController *controllers.AuthController, sessionAuth gin.HandlerFunc) {
	// Public auth endpoints
	// POST /auth/signup - Register new user
	router.POST("/signup", authController.Signup)

	// POST /auth/login - Login with email and password
	router.POST("/login", authController.Login)

	// DELETE /auth/logout - Logout (works with or without a live session)
	router.DELETE("/logout", authController.Logout)

	// POST /auth/check-email - Check whether an email is already registered
	router.POST("/check-email", authController.CheckEmail)

	// POST /auth/reset-password - Reset password via secret question
	router.POST("/reset-password", authController.ResetPassword)

	// Protected auth endpoints (require valid session cookie)
	protected := router.Group("")
	protected.Use(sessionAuth)
	{
		// POST /auth/password/change - Change password (requires current password)
		protected.POST("/password/change", authController.ChangePassword)
	}
}
