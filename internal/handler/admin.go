package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/xgirma/outreach-admin/internal/apperr"
	"github.com/xgirma/outreach-admin/internal/model"
	"github.com/xgirma/outreach-admin/internal/password"
	"github.com/xgirma/outreach-admin/internal/schema"
	"github.com/xgirma/outreach-admin/internal/server/middleware"
	"github.com/xgirma/outreach-admin/internal/service"
	"github.com/xgirma/outreach-admin/internal/store"
)

// AdminHandler is the HTTP boundary for admin registration, sign-in, and
// lifecycle management.
type AdminHandler struct {
	store  *store.Store
	admins *service.AdminService
	tokens *service.TokenService
	logger *slog.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(st *store.Store, admins *service.AdminService, tokens *service.TokenService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{store: st, admins: admins, tokens: tokens, logger: logger}
}

// Register bootstraps the single super-admin and returns a bearer token.
// POST /register
func (h *AdminHandler) Register(w http.ResponseWriter, r *http.Request) {
	body := readBody(r)
	if err := schema.ValidateCredentials(body); err != nil {
		writeError(w, err)
		return
	}
	username, plaintext := credentialFields(body)

	if verdict := password.Check(plaintext); !verdict.Strong {
		writeError(w, apperr.WeakPassword(verdict.Message()))
		return
	}

	admin, err := h.admins.BootstrapSuperAdmin(r.Context(), username, plaintext)
	if err != nil {
		h.warnOnDomainError(r, "super-admin registration failed", err)
		writeError(w, err)
		return
	}

	token, err := h.tokens.Sign(admin.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	h.logger.Info("super-admin registered", "username", admin.Username)
	writeSuccess(w, http.StatusCreated, map[string]interface{}{"token": token})
}

// SignIn authenticates an existing admin. Failures are a generic forbidden
// so usernames cannot be enumerated.
// POST /signin
func (h *AdminHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	body := readBody(r)
	if err := schema.ValidateCredentials(body); err != nil {
		writeError(w, err)
		return
	}
	username, plaintext := credentialFields(body)

	admin, err := h.admins.Authenticate(r.Context(), username, plaintext)
	if err != nil {
		h.warnOnDomainError(r, "sign-in rejected", err)
		writeError(w, err)
		return
	}

	token, err := h.tokens.Sign(admin.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]interface{}{"token": token})
}

// Create adds a subordinate admin. Only the current super-admin may call it.
// POST /admins
func (h *AdminHandler) Create(w http.ResponseWriter, r *http.Request) {
	acting := middleware.ActingAdmin(r.Context())

	body := readBody(r)
	if err := schema.ValidateCredentials(body); err != nil {
		writeError(w, err)
		return
	}
	username, plaintext := credentialFields(body)

	if verdict := password.Check(plaintext); !verdict.Strong {
		writeError(w, apperr.WeakPassword(verdict.Message()))
		return
	}

	admin, err := h.admins.CreateAdmin(r.Context(), acting, username, plaintext)
	if err != nil {
		h.warnOnDomainError(r, "admin creation failed", err)
		writeError(w, err)
		return
	}

	h.logger.Info("admin registered", "username", admin.Username)
	writeSuccess(w, http.StatusCreated, map[string]interface{}{})
}

// List returns every admin for a super-admin caller, or the caller's own
// record otherwise.
// GET /admins
func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	acting := middleware.ActingAdmin(r.Context())

	if !acting.IsSuperAdmin() {
		writeSuccess(w, http.StatusOK, map[string]interface{}{"admin": acting})
		return
	}

	admins, err := h.admins.ListOrSelf(r.Context(), acting)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]interface{}{"admins": admins})
}

// Get returns a single admin by ID. Subordinate admins always see their own
// record, whatever ID they ask for.
// GET /admins/{id}
func (h *AdminHandler) Get(w http.ResponseWriter, r *http.Request) {
	acting := middleware.ActingAdmin(r.Context())

	target, err := h.resolveTarget(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if !acting.IsSuperAdmin() {
		target = acting
	}
	writeSuccess(w, http.StatusOK, map[string]interface{}{"admin": target})
}

// Rotate updates the target admin's password. The disclosed plaintext
// (chosen or generated) appears in this response exactly once and is never
// logged.
// PUT /admins/{id}
func (h *AdminHandler) Rotate(w http.ResponseWriter, r *http.Request) {
	acting := middleware.ActingAdmin(r.Context())

	target, err := h.resolveTarget(r)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := h.admins.RotatePassword(r.Context(), acting, target, readBody(r))
	if err != nil {
		h.warnOnDomainError(r, "password rotation rejected", err)
		writeError(w, err)
		return
	}

	data := map[string]interface{}{"admin": result.Admin}
	if result.TemporaryPassword != "" {
		data["temporaryPassword"] = result.TemporaryPassword
	} else {
		data["newPassword"] = result.NewPassword
	}
	writeSuccess(w, http.StatusCreated, data)
}

// Delete removes an admin. Super-admins may delete anyone; admins only
// themselves.
// DELETE /admins/{id}
func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	acting := middleware.ActingAdmin(r.Context())

	target, err := h.resolveTarget(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.admins.DeleteAdmin(r.Context(), acting, target); err != nil {
		h.warnOnDomainError(r, "admin deletion rejected", err)
		writeError(w, err)
		return
	}

	h.logger.Info("admin deleted", "username", target.Username)
	writeSuccess(w, http.StatusOK, map[string]interface{}{"admin": target})
}

// resolveTarget parses the {id} URL parameter and loads the admin it names.
// A malformed ID and an absent record are both 404s, with distinct messages.
func (h *AdminHandler) resolveTarget(r *http.Request) (*model.Admin, error) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return nil, apperr.ResourceNotFound("Not a valid admin id")
	}

	target, err := h.store.GetAdmin(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.ResourceNotFound("No resource found with this Id")
		}
		return nil, err
	}
	return target, nil
}

// warnOnDomainError logs rejected operations at warn level. Unexpected
// errors are left to the request logger's 500 escalation.
func (h *AdminHandler) warnOnDomainError(r *http.Request, msg string, err error) {
	var domainErr *apperr.Error
	if errors.As(err, &domainErr) {
		h.logger.Warn(msg,
			"reason", domainErr.Name,
			"request_id", middleware.GetRequestID(r.Context()),
		)
	}
}

func credentialFields(body interface{}) (username, password string) {
	fields, ok := body.(map[string]interface{})
	if !ok {
		return "", ""
	}
	username, _ = fields["username"].(string)
	password, _ = fields["password"].(string)
	return username, password
}
