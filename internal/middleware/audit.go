package middleware

import (
	"bytes"
	"io"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/teamtrack/backend/internal/models"
	"github.com/teamtrack/backend/pkg/logger"
	"gorm.io/gorm"
)

const maxAuditBody = 2000

var secretFieldRegex = regexp.MustCompile(`(?i)("(?:password|api_key|apikey|secret|token)"\s*:\s*)"[^"]*"`)

// Audit records mutating requests (POST/PUT/PATCH/DELETE) to the audit_logs
// table after the handler has run. Password-like values in the captured
// body are masked before persisting.
func Audit(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		method := c.Request.Method
		if method == "GET" || method == "HEAD" || method == "OPTIONS" {
			c.Next()
			return
		}

		var bodySnippet string
		if c.Request.Body != nil {
			bodyBytes, _ := io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
			bodySnippet = string(bodyBytes)
			if len(bodySnippet) > maxAuditBody {
				bodySnippet = bodySnippet[:maxAuditBody] + "...[truncated]"
			}
			bodySnippet = maskSecrets(bodySnippet)
		}

		c.Next()

		var uid *uint
		if id := GetUserID(c); id > 0 {
			uid = &id
		}

		entry := models.AuditLog{
			UserID:    uid,
			Actor:     GetEmail(c),
			Method:    method,
			Path:      c.Request.URL.Path,
			Status:    c.Writer.Status(),
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
			Detail:    bodySnippet,
			CreatedAt: time.Now(),
		}
		if err := db.Create(&entry).Error; err != nil {
			logger.Warn().Err(err).Msg("failed to write audit log")
		}
	}
}

// maskSecrets blanks the values of credential-bearing JSON fields.
func maskSecrets(body string) string {
	return secretFieldRegex.ReplaceAllString(body, `$1"***"`)
}
