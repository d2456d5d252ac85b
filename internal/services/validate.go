package services

import (
	"github.com/go-playground/validator/v10"

	"github.com/tbourn/campus-pulse/internal/apierr"
	"github.com/tbourn/campus-pulse/internal/domain"
)

// NewValidator returns the validator used for entity checks before a post is
// persisted. Fields are reported by their JSON names, and a struct-level rule
// keeps flag_reason set exactly when flagged is true.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	apierr.RegisterTagNames(v)
	v.RegisterStructValidation(postFlagConsistency, domain.Post{})
	return v
}

func postFlagConsistency(sl validator.StructLevel) {
	p := sl.Current().Interface().(domain.Post)
	if p.Flagged != (p.FlagReason != nil) {
		sl.ReportError(p.FlagReason, "flag_reason", "FlagReason", "flag_reason_iff_flagged", "")
	}
}
