package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Timeout returns a middleware that attaches a deadline to the request
// context. The handler chain runs synchronously, with no goroutine spawning,
// so gin.Context access stays single-threaded and nothing leaks.
//
// Both external providers (geocoder, router) propagate the request context
// into their HTTP calls, which is where a stuck request actually unblocks
// when the deadline fires. A handler that blocks without checking its context
// cannot be interrupted; none of ours do.
func Timeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		c.Next()

		// The deadline fired and the handler bailed without writing: report
		// the timeout rather than an empty 200.
		if ctx.Err() != nil && !c.Writer.Written() {
			c.AbortWithStatusJSON(http.StatusGatewayTimeout, gin.H{
				"error": "request timed out",
			})
		}
	}
}
