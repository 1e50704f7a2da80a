package admin

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Forest815/web-sec-playground-1-main/internal/models"
)

// Single-file admin surface for support operators: inspect locked accounts
// and force-unlock one without waiting out the lock duration. Guarded by a
// shared secret header rather than the session middleware so it can be driven
// from ops tooling.

type lockedAccount struct {
	ID                  uuid.UUID  `json:"id"`
	Email               string     `json:"email"`
	FailedLoginAttempts int        `json:"failed_login_attempts"`
	LockedAt            *time.Time `json:"locked_at"`
}

func Setup(router *gin.Engine, db *gorm.DB, secret string) {
	group := router.Group("/api/admin")
	group.Use(requireSecret(secret))
	{
		group.GET("/locked", listLocked(db))
		group.POST("/unlock/:id", unlockAccount(db))
	}
}

func requireSecret(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader("X-Admin-Secret")
		if secret == "" || provided != secret {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid or missing X-Admin-Secret"})
			return
		}
		c.Next()
	}
}

func listLocked(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var locked []lockedAccount
		err := db.Model(&models.User{}).
			Where("is_locked = ?", true).
			Order("locked_at DESC").
			Find(&locked).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"locked_accounts": locked})
	}
}

func unlockAccount(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
			return
		}

		result := db.Model(&models.User{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"is_locked":             false,
				"failed_login_attempts": 0,
				"locked_at":             nil,
			})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Update failed"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Account unlocked"})
	}
}
