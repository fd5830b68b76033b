package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/itsrohitnegi1/indian-railways-booking-app/services"
	"github.com/itsrohitnegi1/indian-railways-booking-app/utils"
)

// SessionHeader carries the opaque session id between client and server.
const SessionHeader = "X-Session-ID"

const sessionContextKey = "session"

// EnsureSession attaches a session to every request, minting one when the
// client has not presented a known id. The id is echoed back on the response
// so the client can keep it.
func EnsureSession(store *services.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := store.GetOrCreate(c.GetHeader(SessionHeader))
		c.Header(SessionHeader, sess.ID)
		c.Set(sessionContextKey, sess)
		c.Next()
	}
}

// SessionFrom returns the session attached by EnsureSession.
func SessionFrom(c *gin.Context) *services.Session {
	return c.MustGet(sessionContextKey).(*services.Session)
}

// OptionalAuth restores the user from a valid bearer token onto sessions that
// do not have one yet, e.g. a returning client on a fresh session. An absent
// or invalid token is not an error; the page guards decide what needs login.
func OptionalAuth(secret string, sessions *services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			tokenString := strings.TrimPrefix(header, "Bearer ")
			if user, err := utils.ParseToken(secret, tokenString); err == nil {
				sessions.RestoreUser(SessionFrom(c), *user)
			}
		}
		c.Next()
	}
}
