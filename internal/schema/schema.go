// Package schema declares the request payload shapes and validates incoming
// bodies against them before any domain logic runs. The same schema values
// feed the served OpenAPI document.
package schema

import (
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/xgirma/outreach-admin/internal/apperr"
)

// Fixed messages, one per schema, returned for any structural violation.
const (
	credentialsMessage = "proper username and password is required"
	rotationMessage    = "proper current and new password is required"
)

var (
	credentials = buildCredentials()
	rotation    = buildRotation()
)

// Credentials is the POST /register and POST /signin body: exactly a
// username and a password, password length 8..128.
func Credentials() *openapi3.Schema { return credentials }

// Rotation is the PUT /admins/{id} self-rotation body: exactly
// currentPassword, newPassword, and newPasswordAgain, each 8..128.
func Rotation() *openapi3.Schema { return rotation }

func buildCredentials() *openapi3.Schema {
	s := openapi3.NewObjectSchema().
		WithProperty("username", openapi3.NewStringSchema().WithMinLength(1)).
		WithProperty("password", openapi3.NewStringSchema().WithMinLength(8).WithMaxLength(128)).
		WithMinProperties(2).
		WithMaxProperties(2)
	s.Required = []string{"username", "password"}
	return s
}

func buildRotation() *openapi3.Schema {
	passwordField := func() *openapi3.Schema {
		return openapi3.NewStringSchema().WithMinLength(8).WithMaxLength(128)
	}
	s := openapi3.NewObjectSchema().
		WithProperty("currentPassword", passwordField()).
		WithProperty("newPassword", passwordField()).
		WithProperty("newPasswordAgain", passwordField()).
		WithMinProperties(3).
		WithMaxProperties(3)
	s.Required = []string{"currentPassword", "newPassword", "newPasswordAgain"}
	return s
}

// ValidateCredentials checks a decoded JSON body against the Credentials
// schema. Structural only; strength and cross-field checks happen later.
func ValidateCredentials(body interface{}) error {
	if err := credentials.VisitJSON(body); err != nil {
		return apperr.BadRequest(credentialsMessage)
	}
	return nil
}

// ValidateRotation checks a decoded JSON body against the Rotation schema.
func ValidateRotation(body interface{}) error {
	if err := rotation.VisitJSON(body); err != nil {
		return apperr.BadRequest(rotationMessage)
	}
	return nil
}
