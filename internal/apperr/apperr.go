// Package apperr defines the domain error taxonomy shared by the admin
// lifecycle service and the HTTP boundary. Every domain failure carries a
// stable name, a human-readable message, and the HTTP status it maps to.
package apperr

import "net/http"

// Error is a domain-level failure. It implements the error interface and is
// translated to a JSON envelope by the HTTP boundary's central error writer.
type Error struct {
	Name    string
	Message string
	Status  int
}

func (e *Error) Error() string {
	return e.Name + ": " + e.Message
}

// BadRequest signals malformed or invalid input.
func BadRequest(message string) *Error {
	return &Error{Name: "BadRequest", Message: message, Status: http.StatusBadRequest}
}

// WeakPassword signals a password policy violation. The message is the joined
// list of violated rules in their fixed report order.
func WeakPassword(message string) *Error {
	return &Error{Name: "WeakPassword", Message: message, Status: http.StatusBadRequest}
}

// Unauthorized signals an action forbidden for this role or identity.
func Unauthorized(message string) *Error {
	return &Error{Name: "Unauthorized", Message: message, Status: http.StatusUnauthorized}
}

// Forbidden signals a resource-state conflict such as "user already exists".
func Forbidden(message string) *Error {
	return &Error{Name: "Forbidden", Message: message, Status: http.StatusForbidden}
}

// ResourceNotFound signals that no resource matches the request.
func ResourceNotFound(message string) *Error {
	if message == "" {
		message = "No resource found with this Id"
	}
	return &Error{Name: "ResourceNotFound", Message: message, Status: http.StatusNotFound}
}

// AuthenticationError signals a missing or invalid bearer credential.
func AuthenticationError(message string) *Error {
	return &Error{Name: "AuthenticationError", Message: message, Status: http.StatusUnauthorized}
}
