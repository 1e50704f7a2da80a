package routes

import (
	"github.com/Forest815/web-sec-playground-1-main/internal/controllers"
	"github.com/gin-gonic/gin"
)

func RegisterUserRoutes(router *gin.RouterGroup, userController *controllers.UserController, sessionAuth gin.HandlerFunc) {
	router.Use(sessionAuth)
	{
		// GET /user - Current user's profile
		router.GET("", userController.GetProfile)

		// GET /user/login-history - Recent login attempts, newest first
		router.GET("/login-history", userController.GetLoginHistory)
	}
}
