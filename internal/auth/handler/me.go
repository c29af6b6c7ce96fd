package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"identity-service/internal/middleware"
)

func (h *Handler) Me(c *gin.Context) {
	sess, ok := middleware.FromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	u, err := h.users.GetByID(c.Request.Context(), sess.UserID)
	if err != nil {
		logError(c, "user lookup failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if u == nil {
		// Session outlived the user record.
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id":    u.ID,
		"username":   u.Username,
		"expires_at": sess.ExpiresAt,
	})
}
