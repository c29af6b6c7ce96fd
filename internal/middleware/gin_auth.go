package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// bridge adapts a net/http middleware to Gin. The wrapped request,
// context values included, is handed back to Gin before the chain
// continues; if the middleware already wrote a response, the Gin chain
// is aborted.
func bridge(mw func(http.Handler) http.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c.Request = r
			c.Next()
		})

		mw(next).ServeHTTP(c.Writer, c.Request)

		if c.Writer.Written() {
			c.Abort()
			return
		}
	}
}

// GinAuthenticate adapts the authentication pipeline to Gin.
func GinAuthenticate(auth *AuthMiddleware) gin.HandlerFunc {
	return bridge(auth.Authenticate)
}

// GinRequireAuthenticated adapts RequireAuthenticated to Gin.
func GinRequireAuthenticated() gin.HandlerFunc {
	return bridge(RequireAuthenticated)
}

// GinRequireAnonymous adapts RequireAnonymous to Gin.
func GinRequireAnonymous() gin.HandlerFunc {
	return bridge(RequireAnonymous)
}

// GinRequestID adapts RequestID to Gin.
func GinRequestID() gin.HandlerFunc {
	return bridge(RequestID)
}
