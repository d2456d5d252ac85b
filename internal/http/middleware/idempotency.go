// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file validates the optional Idempotency-Key header on POST /posts and
// stashes it for the handler. Replay detection itself happens in the service,
// inside the same transaction as the insert; the handler then marks the
// request with SetReplay so the response carries Idempotent-Replayed.
package middleware

import (
	"regexp"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/campus-pulse/internal/apierr"
)

// HeaderIdempotencyKey is the request header carrying the idempotency key.
const HeaderIdempotencyKey = "Idempotency-Key"

// HeaderIdempotentReplayed is set to "true" on responses served from a
// previously stored result.
const HeaderIdempotentReplayed = "Idempotent-Replayed"

// MsgInvalidIdempotencyKey is the 400 detail for a malformed key.
const MsgInvalidIdempotencyKey = "Invalid Idempotency-Key header."

const (
	ctxKeyIdemKey    = "idem.key"
	ctxKeyIdemReplay = "idem.replay"
)

// defaultKeyPattern is an RFC 7230 token subset.
var defaultKeyPattern = regexp.MustCompile(`^[A-Za-z0-9._~\-:]+$`)

// IdempotencyOptions configures IdempotencyValidator.
type IdempotencyOptions struct {
	// MaxLen caps the accepted key length. Values <= 0 default to 200.
	MaxLen int
	// Pattern restricts allowed characters. Nil means ^[A-Za-z0-9._~\-:]+$.
	Pattern *regexp.Regexp
}

// GetIdempotencyKey returns the key stored by IdempotencyValidator.
func GetIdempotencyKey(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxKeyIdemKey)
	if !ok {
		return "", false
	}
	s, _ := v.(string)
	return s, s != ""
}

// SetReplay marks the request as served from a stored result and sets the
// Idempotent-Replayed response header.
func SetReplay(c *gin.Context) {
	c.Set(ctxKeyIdemReplay, true)
	c.Header(HeaderIdempotentReplayed, "true")
}

// IsReplay reports whether SetReplay was called for this request.
func IsReplay(c *gin.Context) bool {
	v, ok := c.Get(ctxKeyIdemReplay)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// IdempotencyValidator checks the Idempotency-Key header when present. A
// missing header is a no-op; an oversized or malformed key is rejected with a
// 400 BadRequest raised through the error translator.
func IdempotencyValidator(opts IdempotencyOptions) gin.HandlerFunc {
	maxLen := opts.MaxLen
	if maxLen <= 0 {
		maxLen = 200
	}
	pat := opts.Pattern
	if pat == nil {
		pat = defaultKeyPattern
	}

	return func(c *gin.Context) {
		key := c.GetHeader(HeaderIdempotencyKey)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxLen || !pat.MatchString(key) {
			_ = c.Error(apierr.BadRequest(MsgInvalidIdempotencyKey))
			c.Abort()
			return
		}
		c.Set(ctxKeyIdemKey, key)
		c.Next()
	}
}
