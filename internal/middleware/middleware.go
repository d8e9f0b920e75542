package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joshua-takyi/togethernow/internal/helpers"
)

// Verifier validates a bearer credential and returns the caller identity.
// Satisfied by helpers.TokenVerifier; faked in tests.
type Verifier interface {
	Verify(ctx context.Context, token string) (*helpers.Identity, error)
}

// RequestID middleware adds a unique request ID to each request
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// StructuredLogger provides structured logging middleware
func StructuredLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		clientIP := c.ClientIP()
		method := c.Request.Method
		statusCode := c.Writer.Status()

		if raw != "" {
			path = path + "?" + raw
		}

		requestID, _ := c.Get("request_id")

		logger.Info("HTTP Request",
			"request_id", requestID,
			"method", method,
			"path", path,
			"status", statusCode,
			"latency", latency,
			"client_ip", clientIP,
		)
	}
}

// Auth verifies the bearer credential from the Authorization header and
// stores the resulting identity in the request context. Every protected
// request is verified from scratch; there is no session state.
func Auth(verifier Verifier, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		// Clients send either the raw token or the Bearer scheme.
		token = strings.TrimPrefix(token, "Bearer ")

		identity, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			requestID, _ := c.Get("request_id")
			logger.Info("Token verification failed",
				"request_id", requestID,
				"error", err,
			)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		c.Set("identity", identity)
		c.Next()
	}
}

// IdentityFrom returns the verified identity set by Auth.
func IdentityFrom(c *gin.Context) (*helpers.Identity, bool) {
	v, exists := c.Get("identity")
	if !exists {
		return nil, false
	}
	identity, ok := v.(*helpers.Identity)
	return identity, ok
}
