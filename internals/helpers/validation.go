package helper

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidatorErrorMap flattens validator.ValidationErrors into the
// field → messages map used by JsonValidationError.
func ValidatorErrorMap(err error) map[string][]string {
	out := map[string][]string{}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		out["_"] = []string{err.Error()}
		return out
	}
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		var msg string
		switch fe.Tag() {
		case "required":
			msg = "is required"
		case "email":
			msg = "must be a valid email address"
		case "min":
			msg = "must be at least " + fe.Param()
		case "max":
			msg = "must be at most " + fe.Param()
		case "oneof":
			msg = "must be one of " + fe.Param()
		case "datetime":
			msg = "must match format " + fe.Param()
		case "past_date":
			msg = "must be a date in the past"
		case "gt":
			msg = "must be greater than " + fe.Param()
		default:
			msg = "is invalid"
		}
		out[field] = append(out[field], msg)
	}
	return out
}
