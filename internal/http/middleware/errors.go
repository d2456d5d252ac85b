package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/tbourn/campus-pulse/internal/apierr"
	"github.com/tbourn/campus-pulse/internal/http/envelope"
)

// Messages used by the error translator.
const (
	MsgValidationError       = "Validation error occurred."
	MsgDataValidationError   = "Data validation error occurred."
	MsgInvalidInputCustomer  = "Invalid data provided. Please check your input."
	MsgDatabaseError         = "Database error occurred."
	MsgDatabaseErrorCustomer = "An internal error occurred. Please try again later."
)

// translation is the envelope an error maps to.
type translation struct {
	status          int
	responseMessage string
	customerMessage string
	body            any
	level           zerolog.Level
}

// Errors is the single place where errors raised with c.Error become
// responses. After the chain runs it takes the last error and, unless a
// response was already written, writes the matching envelope.
func Errors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		tr := translate(err)

		LoggerFrom(c).WithLevel(tr.level).
			Err(err).
			Int("status", tr.status).
			Msg(tr.responseMessage)

		envelope.Abort(c, tr.status, tr.responseMessage, tr.customerMessage, tr.body)
	}
}

func translate(err error) translation {
	var (
		ae  *apierr.Error
		mbe *http.MaxBytesError
		rve *apierr.RequestValidationError
		ves validator.ValidationErrors
		dse *apierr.DatastoreError
	)
	switch {
	case errors.As(err, &ae):
		return translation{ae.Status, ae.Detail, ae.Detail, gin.H{}, zerolog.ErrorLevel}

	case errors.As(err, &mbe):
		he := apierr.HTTP(http.StatusRequestEntityTooLarge, "")
		return translation{he.Status, he.Detail, he.Detail, gin.H{}, zerolog.WarnLevel}

	case errors.As(err, &rve):
		return translation{
			http.StatusUnprocessableEntity, MsgValidationError, MsgInvalidInputCustomer,
			gin.H{"errors": apierr.FieldErrors(rve.Err, rve.Loc)}, zerolog.WarnLevel,
		}

	case errors.As(err, &ves):
		return translation{
			http.StatusUnprocessableEntity, MsgDataValidationError, MsgInvalidInputCustomer,
			gin.H{"errors": apierr.FieldErrors(ves, "")}, zerolog.WarnLevel,
		}

	case errors.As(err, &dse):
		return translation{
			http.StatusInternalServerError, MsgDatabaseError, MsgDatabaseErrorCustomer,
			gin.H{"error": dse.Error()}, zerolog.ErrorLevel,
		}
	}

	ie := apierr.InternalServerError()
	return translation{ie.Status, ie.Detail, ie.Detail, gin.H{}, zerolog.ErrorLevel}
}
