package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ariebrainware/medical-forum/util"
	"github.com/gin-gonic/gin"
)

// AuditTrail records every request that tries to modify data, successful or
// not, through util.RecordAuditEvent. Events are persisted to the database
// injected by DatabaseMiddleware when there is one.
func AuditTrail() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isMutating(c.Request.Method) {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		status := c.Writer.Status()

		eventType := util.EventResourceCreated
		if status >= http.StatusBadRequest {
			eventType = util.EventRequestRejected
		}

		details := map[string]interface{}{
			"method":      c.Request.Method,
			"path":        c.FullPath(),
			"raw_path":    c.Request.URL.Path,
			"status":      status,
			"duration_ms": time.Since(start).Milliseconds(),
		}
		if location := c.Writer.Header().Get("Location"); location != "" {
			details["location"] = location
		}
		if len(c.Errors) > 0 {
			details["error"] = c.Errors.Last().Error()
		}

		util.RecordAuditEvent(GetDB(c), util.AuditEvent{
			EventType: eventType,
			RequestID: GetRequestID(c),
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
			Message:   fmt.Sprintf("%s %s -> %d", c.Request.Method, c.Request.URL.Path, status),
			Details:   details,
		})
	}
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}
