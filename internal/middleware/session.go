package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/muhammadumer-2/GeoAI-Toolkit/internal/session"
)

const (
	// SessionHeader carries the session ID on requests and responses; API
	// clients (and the dashboard's fetch calls) use this.
	SessionHeader = "X-Session-ID"

	// sessionCookie is the fallback for plain browser navigation.
	sessionCookie = "geoai_session"

	// sessionCookieMaxAge caps the cookie's lifetime; the server-side TTL is
	// what actually expires a session.
	sessionCookieMaxAge = 24 * 60 * 60

	// sessionContextKey is where the resolved session lives in gin.Context.
	sessionContextKey = "geoai.session"
)

// Resolve returns a middleware that attaches a live session to every request.
// The ID is taken from the X-Session-ID header, then the session cookie; an
// unknown, expired or absent ID mints a fresh session. The resolved ID is
// echoed on the response so clients can pin it.
func Resolve(mgr *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(SessionHeader)
		if id == "" {
			if cookie, err := c.Cookie(sessionCookie); err == nil {
				id = cookie
			}
		}

		s, ok := mgr.Get(id)
		if !ok {
			s = mgr.Create()
		}

		c.Header(SessionHeader, s.ID)
		c.SetCookie(sessionCookie, s.ID, sessionCookieMaxAge, "/", "", false, true)
		c.Set(sessionContextKey, s)

		c.Next()
	}
}

// CurrentSession extracts the session attached by Resolve. The boolean is
// false only when Resolve is not installed on the route.
func CurrentSession(c *gin.Context) (*session.Session, bool) {
	v, ok := c.Get(sessionContextKey)
	if !ok {
		return nil, false
	}
	s, ok := v.(*session.Session)
	return s, ok
}

// MustSession extracts the session or aborts with a 500. Handlers registered
// under Resolve can rely on it.
func MustSession(c *gin.Context) *session.Session {
	s, ok := CurrentSession(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error": "session middleware not installed",
		})
		return nil
	}
	return s
}
