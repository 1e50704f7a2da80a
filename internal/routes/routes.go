package routes

import (
	"github.com/Forest815/web-sec-playground-1-main/internal/controllers"
	"github.com/gin-gonic/gin"
)

// SetupRoutes registers all application routes.
func SetupRoutes(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	sessionAuth gin.HandlerFunc,
) {
	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/")

	// Auth routes: /auth/*
	authGroup := api.Group("/auth")
	RegisterAuthRoutes(authGroup, authController, sessionAuth)

	// User routes: /user/*
	userGroup := api.Group("/user")
	RegisterUserRoutes(userGroup, userController, sessionAuth)
}
