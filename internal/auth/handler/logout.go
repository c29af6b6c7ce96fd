package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"identity-service/internal/middleware"
	"identity-service/internal/session"
)

// Logout deletes whichever session the request presented and clears the
// cookie. It always answers 204: logging out twice is not an error.
func (h *Handler) Logout(c *gin.Context) {
	ctx := c.Request.Context()

	if sess, ok := middleware.FromContext(ctx); ok {
		_ = h.sessionStore.Delete(ctx, sess.SessionID)
	} else if cookie, err := c.Request.Cookie(session.CookieName); err == nil && cookie.Value != "" {
		_ = h.sessionStore.Delete(ctx, cookie.Value)
	}

	session.ClearCookie(c.Writer, cookieOptions())

	c.Status(http.StatusNoContent)
}
