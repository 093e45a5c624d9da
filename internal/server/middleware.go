package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/joseph-ayodele/invoice-analyzer/internal/common"
)

const (
	HeaderRequestID    = "X-Request-ID"
	HeaderInvoiceParse = "X-Invoice-Parse"

	maxRequestIDLen = 128
)

// requestID echoes a sane incoming X-Request-ID or generates one, and stores it with a
// request-scoped logger on the request context.
func requestID(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.New().String()
		}
		c.Header(HeaderRequestID, id)

		ctx := common.WithRequestID(c.Request.Context(), id)
		ctx = common.WithLogger(ctx, logger.With("req_id", id))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		common.LoggerFromContext(c.Request.Context(), nil).Info("http.request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"bytes", c.Writer.Size(),
			"client_ip", c.ClientIP(),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
	}
}

func recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, rec any) {
		common.LoggerFromContext(c.Request.Context(), nil).Error("http.panic", "panic", rec)
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorBody{Error: "internal error", Code: common.CodeInternal})
	})
}
