package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/xgirma/outreach-admin/internal/model"
	"github.com/xgirma/outreach-admin/internal/service"
	"github.com/xgirma/outreach-admin/internal/store"
)

type contextKeyAuth string

// ActingAdminKey is the context key for the authenticated admin record.
const ActingAdminKey contextKeyAuth = "acting_admin"

// Authenticate returns an HTTP middleware that resolves the acting admin
// from the Authorization bearer header. The token subject is re-loaded from
// the credential store on every request, so a deleted admin's token stops
// working immediately even though tokens themselves are stateless.
//
// Absence or invalidity of the header fails the request before any
// lifecycle operation runs.
func Authenticate(tokens *service.TokenService, st *store.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeAuthError(w, "bearer token is required")
				return
			}

			adminID, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				writeAuthError(w, "invalid token")
				return
			}

			admin, err := st.GetAdmin(r.Context(), adminID)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					writeAuthError(w, "invalid token")
					return
				}
				writeServerError(w)
				return
			}

			ctx := context.WithValue(r.Context(), ActingAdminKey, admin)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ActingAdmin extracts the authenticated admin from the context. Returns
// nil on an unauthenticated request.
func ActingAdmin(ctx context.Context) *model.Admin {
	if admin, ok := ctx.Value(ActingAdminKey).(*model.Admin); ok {
		return admin
	}
	return nil
}

func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(model.FailResponse{
		Status: "fail",
		Data:   model.FailDetail{Name: "AuthenticationError", Message: message},
	})
}

func writeServerError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(model.FailResponse{
		Status: "error",
		Data:   model.FailDetail{Name: "InternalError", Message: "unexpected error"},
	})
}
