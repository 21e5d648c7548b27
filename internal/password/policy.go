// Package password implements the password strength policy and the
// temporary-password generator used when a super-admin resets another
// admin's credentials.
package password

import (
	"strings"
	"unicode"
)

// Result is the transient verdict of one strength check.
type Result struct {
	Strong     bool
	Violations []string
}

// Message returns the violated rules joined into one human-readable message.
func (r Result) Message() string {
	return strings.Join(r.Violations, " ")
}

// Violation messages, reported in a fixed order so that concatenation is
// reproducible: uppercase, then digit, then symbol.
const (
	msgUppercase = "The password must contain at least one uppercase letter."
	msgDigit     = "The password must contain at least one number."
	msgSymbol    = "The password must contain at least one special character."
)

// Check evaluates the fixed rule set against password. Length bounds
// (8..128) are enforced by the request schema, not here.
func Check(password string) Result {
	var hasUpper, hasDigit, hasSymbol bool
	for _, c := range password {
		switch {
		case unicode.IsUpper(c):
			hasUpper = true
		case unicode.IsDigit(c):
			hasDigit = true
		case !unicode.IsLower(c):
			hasSymbol = true
		}
	}

	var violations []string
	if !hasUpper {
		violations = append(violations, msgUppercase)
	}
	if !hasDigit {
		violations = append(violations, msgDigit)
	}
	if !hasSymbol {
		violations = append(violations, msgSymbol)
	}

	return Result{Strong: len(violations) == 0, Violations: violations}
}
