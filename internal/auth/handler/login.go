package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"identity-service/internal/logger"
	"identity-service/internal/middleware"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	u, err := h.users.ValidateCredentials(
		c.Request.Context(),
		req.Username,
		req.Password,
	)
	if err != nil {
		logError(c, "credential validation failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if u == nil {
		// Uniform body: does not reveal whether the account exists.
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	body, ok := h.issueSession(c, u.ID)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, body)
}

func logError(c *gin.Context, msg string, err error) {
	rid, _ := middleware.RequestIDFromContext(c.Request.Context())
	logger.Error(msg, map[string]any{
		"request_id": rid,
		"path":       c.Request.URL.Path,
		"error":      err.Error(),
	})
}
