package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HealthHandler returns a health check handler that pings the database
func HealthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		dbStatus := "ok"
		if err := db.Exec("SELECT 1").Error; err != nil {
			dbStatus = err.Error()
		}

		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"db":     dbStatus,
			"time":   time.Now().Format(time.RFC3339),
		})
	}
}
