package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/tbourn/campus-pulse/internal/apierr"
)

// MsgOriginNotAllowed is the 403 detail for a cross-origin request from an
// origin outside the allowlist.
const MsgOriginNotAllowed = "Origin not allowed."

// OriginAllowlist refuses cross-origin requests whose Origin is not listed,
// raising a 403 through the error translator so the client gets an envelope.
// It runs ahead of the CORS middleware, which would otherwise answer with a
// bare status. Requests without Origin and same-origin requests pass, as do
// all requests when origins is empty or contains "*".
func OriginAllowlist(origins []string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		if o == "*" {
			allowed = nil
			break
		}
		allowed[o] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if len(allowed) == 0 || origin == "" ||
			origin == "http://"+c.Request.Host || origin == "https://"+c.Request.Host {
			c.Next()
			return
		}
		if _, ok := allowed[origin]; !ok {
			_ = c.Error(apierr.Forbidden(MsgOriginNotAllowed))
			c.Abort()
			return
		}
		c.Next()
	}
}
