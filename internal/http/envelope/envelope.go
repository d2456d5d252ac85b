// Package envelope builds the fixed header/body wrapper returned by every
// endpoint, for successes and failures alike.
//
// Example:
//
//	HTTP/1.1 201 Created
//	{
//	  "header": {
//	    "requestRefId": "3141592653",
//	    "responseCode": 201,
//	    "responseMessage": "Post created successfully.",
//	    "customerMessage": "Post created successfully.",
//	    "timestamp": "2025-01-02T15:04:05.123456Z"
//	  },
//	  "body": { "id": "…", "content": "hello", "category_id": null, "created_at": "…" }
//	}
package envelope

import (
	"math/big"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// TimeLayout is the ISO-8601 layout used for every timestamp the API emits.
const TimeLayout = "2006-01-02T15:04:05.000000Z07:00"

// refIDLen is the number of decimal digits in a requestRefId.
const refIDLen = 10

// Header carries response metadata.
type Header struct {
	RequestRefID    string `json:"requestRefId" example:"3141592653"`
	ResponseCode    int    `json:"responseCode" example:"200"`
	ResponseMessage string `json:"responseMessage" example:"Posts retrieved successfully."`
	CustomerMessage string `json:"customerMessage" example:"Successfully loaded posts."`
	Timestamp       string `json:"timestamp" example:"2025-01-02T15:04:05.123456Z"`
}

// Envelope is the uniform response shape.
type Envelope struct {
	Header Header `json:"header"`
	Body   any    `json:"body"`
}

// now is swapped in tests.
var now = func() time.Time { return time.Now().UTC() }

// New builds an envelope for the given status and messages. body may be any
// JSON-serializable value, or nil.
func New(status int, responseMessage, customerMessage string, body any) Envelope {
	env := Envelope{
		Header: Header{
			RequestRefID:    NewRefID(),
			ResponseCode:    status,
			ResponseMessage: responseMessage,
			CustomerMessage: customerMessage,
			Timestamp:       FormatTime(now()),
		},
		Body: body,
	}
	log.Debug().
		Str("request_ref_id", env.Header.RequestRefID).
		Int("status", status).
		Str("response_message", responseMessage).
		Str("customer_message", customerMessage).
		Msg("envelope")
	return env
}

// JSON writes an envelope with the given status through Gin.
func JSON(c *gin.Context, status int, responseMessage, customerMessage string, body any) {
	c.JSON(status, New(status, responseMessage, customerMessage, body))
}

// Abort writes an envelope and stops the handler chain.
func Abort(c *gin.Context, status int, responseMessage, customerMessage string, body any) {
	c.AbortWithStatusJSON(status, New(status, responseMessage, customerMessage, body))
}

// NewRefID returns the first ten decimal digits of a random UUIDv4 read as
// a 128-bit integer. Good enough for log correlation, not a unique key.
func NewRefID() string {
	u := uuid.New()
	s := new(big.Int).SetBytes(u[:]).String()
	if len(s) < refIDLen {
		s = strings.Repeat("0", refIDLen-len(s)) + s
	}
	return s[:refIDLen]
}

// FormatTime renders t in UTC with microsecond precision.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}
