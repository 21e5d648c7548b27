package handler

import (
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/xgirma/outreach-admin/internal/schema"
)

// OpenAPIHandler serves the OpenAPI 3.1 description of the admin API. The
// document is static, so it is built once and reused for every request.
type OpenAPIHandler struct {
	doc *openapi3.T
}

// NewOpenAPIHandler builds the API document.
func NewOpenAPIHandler(baseURL string) *OpenAPIHandler {
	return &OpenAPIHandler{doc: Document(baseURL)}
}

// ServeSpec returns the OpenAPI document.
// GET /openapi.json
func (h *OpenAPIHandler) ServeSpec(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.doc)
}

// Document builds the full API description. The CLI uses it to print the
// spec without starting a server.
func Document(baseURL string) *openapi3.T {
	doc := &openapi3.T{
		OpenAPI: "3.1.0",
		Info: &openapi3.Info{
			Title:       "Outreach Admin API",
			Description: "Administrator authentication and lifecycle management for the Outreach CMS.",
			Version:     "1.0.0",
		},
	}
	if baseURL != "" {
		doc.Servers = openapi3.Servers{{URL: baseURL}}
	}

	components := openapi3.NewComponents()
	components.Schemas = openapi3.Schemas{}
	components.SecuritySchemes = openapi3.SecuritySchemes{}
	doc.Components = &components

	doc.Components.SecuritySchemes["bearerAuth"] = &openapi3.SecuritySchemeRef{
		Value: &openapi3.SecurityScheme{
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "JWT",
		},
	}

	doc.Components.Schemas["Credentials"] = &openapi3.SchemaRef{Value: schema.Credentials()}
	doc.Components.Schemas["Rotation"] = &openapi3.SchemaRef{Value: schema.Rotation()}
	doc.Components.Schemas["Admin"] = adminSchema()
	doc.Components.Schemas["FailResponse"] = failSchema()

	adminRef := openapi3.NewSchemaRef("#/components/schemas/Admin", nil)
	credentialsRef := openapi3.NewSchemaRef("#/components/schemas/Credentials", nil)
	rotationRef := openapi3.NewSchemaRef("#/components/schemas/Rotation", nil)

	doc.Paths = openapi3.NewPaths()

	doc.Paths.Set("/register", &openapi3.PathItem{
		Post: &openapi3.Operation{
			Tags:        []string{"auth"},
			Summary:     "Register the super-admin",
			Description: "Creates the single super-admin account. Fails once one exists.",
			OperationID: "register",
			RequestBody: jsonRequestBody("Super-admin credentials", credentialsRef),
			Responses:   newResponses("201", "Super-admin created", tokenDataSchema()),
		},
	})

	doc.Paths.Set("/signin", &openapi3.PathItem{
		Post: &openapi3.Operation{
			Tags:        []string{"auth"},
			Summary:     "Sign in",
			Description: "Authenticates an admin and returns a bearer token.",
			OperationID: "signin",
			RequestBody: jsonRequestBody("Admin credentials", credentialsRef),
			Responses:   newResponses("200", "Authenticated", tokenDataSchema()),
		},
	})

	bearer := openapi3.SecurityRequirements{{"bearerAuth": {}}}

	doc.Paths.Set("/admins", &openapi3.PathItem{
		Get: &openapi3.Operation{
			Tags:        []string{"admins"},
			Summary:     "List admins",
			Description: "Super-admins see every account; admins see only their own.",
			OperationID: "list_admins",
			Security:    &bearer,
			Responses: newResponses("200", "Admin listing", envelopeSchema(openapi3.Schemas{
				"admins": {Value: &openapi3.Schema{
					Type:  &openapi3.Types{"array"},
					Items: adminRef,
				}},
				"admin": adminRef,
			})),
		},
		Post: &openapi3.Operation{
			Tags:        []string{"admins"},
			Summary:     "Create an admin",
			Description: "Creates a subordinate admin. Super-admin only.",
			OperationID: "create_admin",
			Security:    &bearer,
			RequestBody: jsonRequestBody("New admin credentials", credentialsRef),
			Responses:   newResponses("201", "Admin created", envelopeSchema(openapi3.Schemas{})),
		},
	})

	idParam := &openapi3.ParameterRef{
		Value: openapi3.NewPathParameter("id").
			WithDescription("Admin ID.").
			WithSchema(&openapi3.Schema{Type: &openapi3.Types{"integer"}, Format: "int64"}),
	}

	doc.Paths.Set("/admins/{id}", &openapi3.PathItem{
		Get: &openapi3.Operation{
			Tags:        []string{"admins"},
			Summary:     "Get an admin",
			OperationID: "get_admin",
			Security:    &bearer,
			Parameters:  openapi3.Parameters{idParam},
			Responses: newResponses("200", "Admin record", envelopeSchema(openapi3.Schemas{
				"admin": adminRef,
			})),
		},
		Put: &openapi3.Operation{
			Tags:        []string{"admins"},
			Summary:     "Rotate a password",
			Description: "An admin rotating their own password sends the rotation body. A super-admin targeting another admin sends no body and receives a generated temporary password.",
			OperationID: "rotate_password",
			Security:    &bearer,
			Parameters:  openapi3.Parameters{idParam},
			RequestBody: jsonRequestBody("Current and new passwords (self-rotation only)", rotationRef),
			Responses: newResponses("201", "Password rotated", envelopeSchema(openapi3.Schemas{
				"admin":             adminRef,
				"newPassword":       {Value: openapi3.NewStringSchema()},
				"temporaryPassword": {Value: openapi3.NewStringSchema()},
			})),
		},
		Delete: &openapi3.Operation{
			Tags:        []string{"admins"},
			Summary:     "Delete an admin",
			Description: "Super-admins may delete any account; admins only their own.",
			OperationID: "delete_admin",
			Security:    &bearer,
			Parameters:  openapi3.Parameters{idParam},
			Responses: newResponses("200", "Admin deleted", envelopeSchema(openapi3.Schemas{
				"admin": adminRef,
			})),
		},
	})

	return doc
}

// adminSchema describes the admin record as serialized in responses. The
// password hash never appears on the wire.
func adminSchema() *openapi3.SchemaRef {
	return &openapi3.SchemaRef{
		Value: &openapi3.Schema{
			Type: &openapi3.Types{"object"},
			Properties: openapi3.Schemas{
				"id":       {Value: &openapi3.Schema{Type: &openapi3.Types{"integer"}, Format: "int64"}},
				"username": {Value: openapi3.NewStringSchema()},
				"role": {Value: &openapi3.Schema{
					Type:        &openapi3.Types{"integer"},
					Description: "0 for the super-admin, 1 for a subordinate admin.",
				}},
				"created_at": {Value: openapi3.NewStringSchema().WithFormat("date-time")},
				"updated_at": {Value: openapi3.NewStringSchema().WithFormat("date-time")},
			},
		},
	}
}

func failSchema() *openapi3.SchemaRef {
	return &openapi3.SchemaRef{
		Value: &openapi3.Schema{
			Type: &openapi3.Types{"object"},
			Properties: openapi3.Schemas{
				"status": {Value: openapi3.NewStringSchema()},
				"data": {Value: &openapi3.Schema{
					Type: &openapi3.Types{"object"},
					Properties: openapi3.Schemas{
						"name":    {Value: openapi3.NewStringSchema()},
						"message": {Value: openapi3.NewStringSchema()},
					},
				}},
			},
		},
	}
}

// envelopeSchema wraps data properties in the standard success envelope.
func envelopeSchema(dataProps openapi3.Schemas) *openapi3.SchemaRef {
	return &openapi3.SchemaRef{
		Value: &openapi3.Schema{
			Type: &openapi3.Types{"object"},
			Properties: openapi3.Schemas{
				"status": {Value: openapi3.NewStringSchema()},
				"data": {Value: &openapi3.Schema{
					Type:       &openapi3.Types{"object"},
					Properties: dataProps,
				}},
			},
		},
	}
}

func tokenDataSchema() *openapi3.SchemaRef {
	return envelopeSchema(openapi3.Schemas{
		"token": {Value: openapi3.NewStringSchema()},
	})
}

func jsonRequestBody(description string, ref *openapi3.SchemaRef) *openapi3.RequestBodyRef {
	return &openapi3.RequestBodyRef{
		Value: &openapi3.RequestBody{
			Description: description,
			Content:     openapi3.NewContentWithJSONSchemaRef(ref),
		},
	}
}

// newResponses builds a Responses map with the success response and the
// standard failure responses.
func newResponses(statusCode, description string, schemaRef *openapi3.SchemaRef) *openapi3.Responses {
	responses := openapi3.NewResponses()

	successDesc := description
	responses.Set(statusCode, &openapi3.ResponseRef{
		Value: &openapi3.Response{
			Description: &successDesc,
			Content:     openapi3.NewContentWithJSONSchemaRef(schemaRef),
		},
	})

	failRef := openapi3.NewSchemaRef("#/components/schemas/FailResponse", nil)
	for code, desc := range map[string]string{
		"400": "Bad request",
		"401": "Unauthorized",
		"403": "Forbidden",
		"404": "Not found",
		"500": "Internal server error",
	} {
		d := desc
		responses.Set(code, &openapi3.ResponseRef{
			Value: &openapi3.Response{
				Description: &d,
				Content:     openapi3.NewContentWithJSONSchemaRef(failRef),
			},
		})
	}

	return responses
}
