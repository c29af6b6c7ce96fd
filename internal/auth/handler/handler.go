package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"identity-service/internal/middleware"
	"identity-service/internal/session"
	"identity-service/internal/user"
)

// UserService is the slice of the user store the auth surface consumes.
type UserService interface {
	ValidateCredentials(ctx context.Context, username, password string) (*user.User, error)
	Create(ctx context.Context, username, password string) (*user.User, error)
	ValidatePassword(ctx context.Context, userID int64, password string) (bool, error)
	UpdateCredential(ctx context.Context, userID int64, newPassword string) error
	GetByID(ctx context.Context, userID int64) (*user.User, error)
}

type Handler struct {
	users        UserService
	sessionStore session.Store
}

func NewHandler(users UserService, sessionStore session.Store) *Handler {
	return &Handler{
		users:        users,
		sessionStore: sessionStore,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/auth/login", middleware.GinRequireAnonymous(), h.Login)
	r.POST("/auth/register", middleware.GinRequireAnonymous(), h.Register)
	r.POST("/auth/logout", h.Logout)
	r.POST("/auth/password", middleware.GinRequireAuthenticated(), h.ChangePassword)
	r.GET("/api/me", middleware.GinRequireAuthenticated(), h.Me)
}

func cookieOptions() session.CookieOptions {
	return session.CookieOptions{
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

// issueSession creates a session for userID and hands both presentation
// forms to the client: the cookie for browsers, the id/key pair in the
// body for bearer clients.
func (h *Handler) issueSession(c *gin.Context, userID int64) (gin.H, bool) {
	sess, err := h.sessionStore.Create(c.Request.Context(), userID)
	if err != nil {
		logError(c, "failed to create session", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session error"})
		return nil, false
	}

	session.SetCookie(c.Writer, sess.SessionID, sess.ExpiresAt, cookieOptions())

	return gin.H{
		"user_id":     sess.UserID,
		"session_id":  sess.SessionID,
		"session_key": sess.SessionKey,
		"expires_at":  sess.ExpiresAt,
	}, true
}
