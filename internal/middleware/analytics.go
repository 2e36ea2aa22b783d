package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jmallet/cashplan/internal/utils"
)

// untrackedPaths are infrastructure endpoints that would drown real usage events.
var untrackedPaths = map[string]bool{
	"/health": true,
}

// AnalyticsMiddleware captures a usage event per authenticated, successful
// request. Failed requests and anonymous traffic are not tracked.
func AnalyticsMiddleware(analytics *utils.AnalyticsClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !analytics.Enabled() || untrackedPaths[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		userID, exists := GetUserIDFromContext(c)
		if !exists {
			return
		}

		// The route pattern, not the raw path, so events aggregate across IDs.
		event := strings.ReplaceAll(strings.TrimPrefix(c.FullPath(), "/"), "/", "_")
		if event == "" {
			return
		}

		analytics.Capture(userID, event, map[string]any{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
		})
	}
}
