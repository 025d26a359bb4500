package workflow

import (
	"strconv"
	"strings"

	"jobboard_front/internal/session"
	"jobboard_front/internal/validator"
)

// Rule returns a user-facing message when the fields are not acceptable, "" otherwise.
type Rule func(fields Fields, s session.Session) string

// RequiredID fails unless field holds a positive record id.
func RequiredID(v *validator.Validator, field, message string) Rule {
	return tagRule(v, field, "notblank,numeric-id", message)
}

// NotBlank fails when field is empty or whitespace only.
func NotBlank(v *validator.Validator, field, message string) Rule {
	return tagRule(v, field, "notblank", message)
}

// NotSelf fails when field references the session user.
func NotSelf(field, message string) Rule {
	return func(fields Fields, s session.Session) string {
		id, err := strconv.ParseInt(strings.TrimSpace(fields[field]), 10, 64)
		if err == nil && s.IsUser(id) {
			return message
		}
		return ""
	}
}

func tagRule(v *validator.Validator, field, tag, message string) Rule {
	return func(fields Fields, _ session.Session) string {
		if !v.Check(fields[field], tag) {
			return message
		}
		return ""
	}
}
