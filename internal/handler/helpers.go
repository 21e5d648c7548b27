package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/xgirma/outreach-admin/internal/apperr"
	"github.com/xgirma/outreach-admin/internal/model"
)

// writeJSON serializes v as JSON and writes it to the response with the given
// HTTP status code. The Content-Type header is set to application/json.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeSuccess writes the standard success envelope.
func writeSuccess(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, model.Success(data))
}

// writeError is the centralized error translator. Domain errors keep their
// stable name, message, and status; anything else becomes an opaque 500 so
// store-layer details never leak to clients.
func writeError(w http.ResponseWriter, err error) {
	var domainErr *apperr.Error
	if errors.As(err, &domainErr) {
		writeJSON(w, domainErr.Status, model.FailResponse{
			Status: "fail",
			Data:   model.FailDetail{Name: domainErr.Name, Message: domainErr.Message},
		})
		return
	}
	writeJSON(w, http.StatusInternalServerError, model.FailResponse{
		Status: "error",
		Data:   model.FailDetail{Name: "InternalError", Message: "unexpected error"},
	})
}

// readBody decodes the request body as JSON into an untyped value so it can
// be validated against a declarative schema before any field access. An
// empty or malformed body decodes to nil; the relevant schema check then
// produces its fixed message (or, for payload-free operations, no check
// runs at all).
func readBody(r *http.Request) interface{} {
	defer r.Body.Close()
	var body interface{}
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&body); err != nil {
		return nil
	}
	return body
}
