package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"post-service/internal/middleware"
	"post-service/internal/telemetry"
)

// RegisterDebugRoutes wires debug-only endpoints.
func RegisterDebugRoutes(router *gin.Engine, emitter *telemetry.AuditEmitter, jwtSecret []byte, enabled bool) {
	if !enabled {
		return
	}

	router.GET("/debug/audit-test", func(c *gin.Context) {
		if emitter == nil {
			respondError(c, http.StatusServiceUnavailable, "audit emitter not configured")
			return
		}
		emitter.Emit(c.Request.Context(), "INFO", "audit test", requestIDFromContext(c), userIDFromContext(c))
		respondOK(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// local development only: mint a short lived token for any user id
	router.GET("/debug/token", func(c *gin.Context) {
		var req struct {
			UserID int64 `form:"user_id" binding:"required,min=1"`
		}
		if !bindQuery(c, &req) {
			return
		}
		token, err := middleware.IssueToken(jwtSecret, req.UserID, time.Hour)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "could not sign token")
			return
		}
		respondOK(c, http.StatusOK, gin.H{"token": token})
	})
}
