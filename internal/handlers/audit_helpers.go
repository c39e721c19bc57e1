package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDContextKey = "request_id"
	userIDContextKey    = "userID"
)

// requestIDFromContext returns the caller supplied X-Request-ID, or a fresh
// uuid remembered for the rest of the request.
func requestIDFromContext(c *gin.Context) string {
	if id := c.GetString(requestIDContextKey); id != "" {
		return id
	}

	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Set(requestIDContextKey, requestID)
	return requestID
}

// userIDFromContext returns the id verified by the auth middleware, nil on
// unauthenticated routes.
func userIDFromContext(c *gin.Context) *int64 {
	userID := c.GetInt64(userIDContextKey)
	if userID == 0 {
		return nil
	}
	return &userID
}
