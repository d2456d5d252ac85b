package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError is one field-level problem reported inside a 422 envelope.
// Ctx values are always strings so the list is JSON-serializable whatever
// the validator put into it.
type FieldError struct {
	Type  string            `json:"type" example:"string_too_long"`
	Loc   []string          `json:"loc" example:"body,content"`
	Msg   string            `json:"msg" example:"String should have at most 1000 characters"`
	Input any               `json:"input,omitempty"`
	Ctx   map[string]string `json:"ctx,omitempty"`
}

// Error lets a hand-built FieldError travel as an error. FieldErrors prefixes
// its Loc like any other source.
func (f FieldError) Error() string { return f.Msg }

// IntParsing reports that field carried input that is not an integer.
// An empty field leaves Loc empty.
func IntParsing(field, input string) FieldError {
	fe := FieldError{
		Type:  "int_parsing",
		Msg:   "Input should be a valid integer, unable to parse string as an integer",
		Input: input,
	}
	if field != "" {
		fe.Loc = []string{field}
	}
	return fe
}

// RegisterTagNames makes v report fields by their wire names (json, then
// form, then uri tag) instead of Go field names.
func RegisterTagNames(v *validator.Validate) {
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "form", "uri"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return f.Name
	})
}

// FieldErrors flattens a validation, JSON decoding or parsing error into a
// list of FieldError. loc prefixes every location ("body", "query", ...); an
// empty loc is allowed for entity validation.
func FieldErrors(err error, loc string) []FieldError {
	if err == nil {
		return []FieldError{}
	}
	prefix := []string{}
	if loc != "" {
		prefix = append(prefix, loc)
	}

	var one FieldError
	if errors.As(err, &one) {
		one.Loc = append(append([]string{}, prefix...), one.Loc...)
		return []FieldError{one}
	}

	var ves validator.ValidationErrors
	if errors.As(err, &ves) {
		out := make([]FieldError, 0, len(ves))
		for _, fe := range ves {
			out = append(out, fromFieldError(fe, prefix))
		}
		return out
	}

	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
		numErr    *strconv.NumError
	)
	switch {
	case errors.Is(err, io.EOF):
		return []FieldError{{Type: "missing", Loc: prefix, Msg: "Field required"}}
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return []FieldError{{
			Type: "json_invalid",
			Loc:  prefix,
			Msg:  "JSON decode error",
			Ctx:  map[string]string{"error": err.Error()},
		}}
	case errors.As(err, &typeErr):
		l := append([]string{}, prefix...)
		if typeErr.Field != "" {
			l = append(l, strings.Split(typeErr.Field, ".")...)
		}
		// typeErr.Value names the JSON kind, not what was sent; leave Input out.
		return []FieldError{{
			Type: typeErr.Type.Kind().String() + "_type",
			Loc:  l,
			Msg:  "Input should be a valid " + typeErr.Type.String(),
		}}
	case errors.As(err, &numErr):
		fe := IntParsing("", numErr.Num)
		fe.Loc = prefix
		return []FieldError{fe}
	}
	return []FieldError{{Type: "value_error", Loc: prefix, Msg: err.Error()}}
}

func fromFieldError(fe validator.FieldError, prefix []string) FieldError {
	loc := append([]string{}, prefix...)
	parts := strings.Split(fe.Namespace(), ".")
	if len(parts) > 1 {
		parts = parts[1:] // drop the root struct name
	}
	loc = append(loc, parts...)

	out := FieldError{Loc: loc, Input: fe.Value()}
	isString := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required":
		out.Type, out.Msg, out.Input = "missing", "Field required", nil
	case "max":
		if isString {
			out.Type = "string_too_long"
			out.Msg = fmt.Sprintf("String should have at most %s characters", fe.Param())
			out.Ctx = map[string]string{"max_length": fe.Param()}
		} else {
			out.Type = "less_than_equal"
			out.Msg = "Input should be less than or equal to " + fe.Param()
			out.Ctx = map[string]string{"le": fe.Param()}
		}
	case "min":
		if isString {
			out.Type = "string_too_short"
			out.Msg = fmt.Sprintf("String should have at least %s characters", fe.Param())
			out.Ctx = map[string]string{"min_length": fe.Param()}
		} else {
			out.Type = "greater_than_equal"
			out.Msg = "Input should be greater than or equal to " + fe.Param()
			out.Ctx = map[string]string{"ge": fe.Param()}
		}
	case "uuid", "uuid4":
		out.Type, out.Msg = "uuid_parsing", "Input should be a valid UUID"
	default:
		out.Type = "value_error"
		out.Msg = fmt.Sprintf("Field validation for '%s' failed on the '%s' tag", fe.Field(), fe.Tag())
		if p := fe.Param(); p != "" {
			out.Ctx = map[string]string{fe.Tag(): p}
		}
	}
	return out
}
