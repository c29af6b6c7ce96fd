package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"identity-service/internal/middleware"
	"identity-service/internal/session"
)

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

// ChangePassword replaces the caller's stored credential. The presented
// session is revoked afterwards; the client logs in again with the new
// password.
func (h *Handler) ChangePassword(c *gin.Context) {
	sess, ok := middleware.FromContext(c.Request.Context())
	if !ok {
		// RequireAuthenticated guards this route; reaching here without
		// a session means the route was wired wrong.
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if len(req.NewPassword) < minPasswordLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password too short"})
		return
	}

	valid, err := h.users.ValidatePassword(
		c.Request.Context(),
		sess.UserID,
		req.CurrentPassword,
	)
	if err != nil {
		logError(c, "password validation failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if !valid {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	if err := h.users.UpdateCredential(
		c.Request.Context(),
		sess.UserID,
		req.NewPassword,
	); err != nil {
		logError(c, "credential update failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	_ = h.sessionStore.Delete(c.Request.Context(), sess.SessionID)
	session.ClearCookie(c.Writer, cookieOptions())

	c.Status(http.StatusNoContent)
}
