package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/Forest815/web-sec-playground-1-main/internal/admin"
	"github.com/Forest815/web-sec-playground-1-main/internal/config"
	"github.com/Forest815/web-sec-playground-1-main/internal/controllers"
	"github.com/Forest815/web-sec-playground-1-main/internal/database"
	"github.com/Forest815/web-sec-playground-1-main/internal/middleware"
	"github.com/Forest815/web-sec-playground-1-main/internal/repositories"
	"github.com/Forest815/web-sec-playground-1-main/internal/routes"
	"github.com/Forest815/web-sec-playground-1-main/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := database.Connect(&cfg.Database); err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.Printf("error closing database: %v", err)
		}
	}()

	if err := database.RunMigrations(&cfg.Database); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	db := database.GetDB()

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	sessionRepo := repositories.NewSessionRepository(db)
	historyRepo := repositories.NewLoginHistoryRepository(db)

	// Services
	hasher, err := services.NewCredentialHasher(cfg.Auth.BcryptCost)
	if err != nil {
		log.Fatalf("failed to initialize credential hasher: %v", err)
	}
	throttle := services.NewLoginThrottle(
		cfg.Auth.ThrottleWindow(),
		cfg.Auth.ThrottleMaxAttempts,
		cfg.Auth.ThrottleBlockDuration(),
	)
	sessionService := services.NewSessionService(sessionRepo, cfg.Auth.SessionDuration())
	authService := services.NewAuthService(userRepo, historyRepo, sessionService, throttle, hasher, &cfg.Auth)

	// Controllers
	authController := controllers.NewAuthController(authService, sessionService, cfg)
	userController := controllers.NewUserController(userRepo, authService)

	// Setup router
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	router.Use(corsMiddleware(cfg))

	sessionAuth := middleware.SessionAuth(sessionService, cfg)
	routes.SetupRoutes(router, authController, userController, sessionAuth)

	admin.Setup(router, db, cfg.Admin.Secret)

	addr := cfg.Server.Host + ":" + strconv.Itoa(cfg.Server.Port)
	go func() {
		log.Printf("Server running on %s", addr)
		if err := router.Run(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to run server: %v", err)
		}
	}()

	waitForShutdown()
}

func waitForShutdown() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	log.Println("Shutting down server...")
}

func corsMiddleware(cfg *config.Config) gin.HandlerFunc {
	origins := "*"
	if len(cfg.CORS.AllowedOrigins) > 0 {
		origins = strings.Join(cfg.CORS.AllowedOrigins, ", ")
	}
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origins)
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, X-Admin-Secret")
		if cfg.CORS.AllowCredentials {
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
