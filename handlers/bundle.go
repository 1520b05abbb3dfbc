package handlers

import (
	"carelink/services/auth"
	"carelink/services/billing"
	"carelink/services/directory"
	"carelink/services/search"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HandlerBundle groups the services the HTTP endpoints are served from.
type HandlerBundle struct {
	Directory *directory.Service
	Search    *search.Service
	Auth      *auth.Service
	Billing   *billing.Service
	Fulfiller billing.Fulfiller
}

// getLogger retrieves the request logger set by middleware.RequestLogger.
func getLogger(c *gin.Context) *zap.Logger {
	if l, exists := c.Get("logger"); exists {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return zap.L()
}
