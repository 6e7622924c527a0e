package middleware

import (
	"home-budget/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuditMiddleware records method, path and client details of authenticated
// requests. Failures to write the log never fail the request.
func AuditMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		v, ok := c.Get(CurrentUserKey)
		if !ok {
			return
		}
		user, ok := v.(*models.User)
		if !ok || user == nil {
			return
		}

		entry := models.AuditLog{
			UserID:    user.ID,
			Method:    c.Request.Method,
			Path:      c.Request.URL.Path,
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		}
		_ = db.WithContext(c.Request.Context()).Create(&entry).Error
	}
}
