package middleware

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"identity-service/internal/logger"
	"identity-service/internal/session"
)

const (
	// HeaderSessionID carries "Bearer <session_id>" for API clients.
	HeaderSessionID = "X-Session-Id"
	// HeaderSessionKey carries the secondary secret in bearer mode.
	HeaderSessionKey = "X-Session-Key"

	bearerPrefix = "Bearer "
)

// unexported, collision-proof context key
type sessionContextKeyType struct{}

var sessionContextKey = sessionContextKeyType{}

// FromContext extracts the authenticated session from context.
// The second return is false for anonymous requests.
func FromContext(ctx context.Context) (*session.Session, bool) {
	s, ok := ctx.Value(sessionContextKey).(*session.Session)
	return s, ok
}

func withSession(ctx context.Context, s *session.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, s)
}

type AuthMiddleware struct {
	Store session.Store
	now   func() time.Time
}

func NewAuthMiddleware(store session.Store) *AuthMiddleware {
	return &AuthMiddleware{Store: store, now: time.Now}
}

// Authenticate resolves the session reference a request presents, if
// any, and attaches the result to the request context. Two presentation
// forms are accepted: the bearer header pair, and the session cookie.
// A request presenting neither proceeds as anonymous; handlers opt into
// requiring authentication via RequireAuthenticated.
func (a *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID, bearer, ok := a.extract(w, r)
		if !ok {
			return // response already written
		}

		if sessionID == "" {
			// Anonymous is the default, not an error.
			next.ServeHTTP(w, r)
			return
		}

		sess, err := a.Store.Get(r.Context(), sessionID)
		if err != nil {
			rid, _ := RequestIDFromContext(r.Context())
			logger.Error("session lookup failed", map[string]any{
				"request_id": rid,
				"error":      err.Error(),
			})
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		if sess == nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if bearer != "" && !equalConstantTime(bearer, sess.SessionKey) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		// Re-check expiry even though the store already did. The store
		// and this process may disagree on the clock.
		if sess.Expired(a.now()) {
			_ = a.Store.Delete(r.Context(), sessionID)
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		ctx := withSession(r.Context(), sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// extract pulls the session reference out of the request. It returns
// the session id, the presented bearer key ("" in cookie mode), and
// whether processing may continue. Malformed bearer presentations are
// answered with 400 here, before any store lookup.
func (a *AuthMiddleware) extract(w http.ResponseWriter, r *http.Request) (sessionID, bearer string, ok bool) {
	idHeader := r.Header.Get(HeaderSessionID)
	if idHeader != "" {
		id, found := strings.CutPrefix(idHeader, bearerPrefix)
		if !found || id == "" {
			http.Error(w, "bad request", http.StatusBadRequest)
			return "", "", false
		}

		key := r.Header.Get(HeaderSessionKey)
		if key == "" {
			// Bearer mode without the key is malformed, distinct from
			// "no session presented".
			http.Error(w, "bad request", http.StatusBadRequest)
			return "", "", false
		}

		return id, key, true
	}

	cookie, err := r.Cookie(session.CookieName)
	if err != nil || cookie.Value == "" {
		return "", "", true // anonymous
	}

	return cookie.Value, "", true
}

// RequireAuthenticated gates a handler on the presence of a session in
// the request context.
func RequireAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := FromContext(r.Context()); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAnonymous gates a handler on the absence of a session; an
// already-authenticated caller is forbidden from, e.g., logging in
// again.
func RequireAnonymous(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := FromContext(r.Context()); ok {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// equalConstantTime compares two secrets without leaking timing, even
// when their lengths differ.
func equalConstantTime(a, b string) bool {
	ah := sha256.Sum256([]byte(a))
	bh := sha256.Sum256([]byte(b))
	return subtle.ConstantTimeCompare(ah[:], bh[:]) == 1
}
