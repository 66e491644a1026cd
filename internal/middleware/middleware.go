package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"catalog-api/internal/helpers"
	"catalog-api/internal/models"
	"catalog-api/internal/services"
)

const userContextKey = "user"

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

// Auth verifies the bearer token and resolves its user_id claim to a live
// account, which is attached to the context for downstream handlers. Absent,
// malformed and expired tokens, as well as tokens for deleted users, all end
// the request with 401.
func Auth(jwtSecret string, userService *services.UserService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, models.ErrorPayload{Error: "missing bearer token"})
			c.Abort()
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		userID, err := helpers.VerifyToken(jwtSecret, tokenStr)
		if err != nil {
			c.JSON(http.StatusUnauthorized, models.ErrorPayload{Error: "invalid or expired token"})
			c.Abort()
			return
		}

		user, err := userService.GetProfile(c.Request.Context(), userID)
		if err != nil {
			if _, ok := err.(*models.NotFoundError); !ok {
				logger.Error("failed to resolve token user",
					"user_id", userID,
					"error", err,
				)
			}
			c.JSON(http.StatusUnauthorized, models.ErrorPayload{Error: "user no longer exists"})
			c.Abort()
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// AdminOnly gates admin routes. It assumes Auth already ran and rejects
// authenticated non-admin callers with 403.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorPayload{Error: "unauthorized"})
			c.Abort()
			return
		}
		if !user.IsAdmin {
			c.JSON(http.StatusForbidden, models.ErrorPayload{Error: "admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser pulls the authenticated user the Auth middleware stored.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(userContextKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}
