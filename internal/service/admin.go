package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/xgirma/outreach-admin/internal/apperr"
	"github.com/xgirma/outreach-admin/internal/model"
	"github.com/xgirma/outreach-admin/internal/password"
	"github.com/xgirma/outreach-admin/internal/schema"
	"github.com/xgirma/outreach-admin/internal/store"
)

// AdminService orchestrates the admin lifecycle: super-admin bootstrap,
// subordinate admin creation, password rotation, and deletion. It enforces
// the role rules and re-verifies acting identities against the store rather
// than trusting token claims alone.
type AdminService struct {
	store      *store.Store
	bcryptCost int
}

// NewAdminService creates an AdminService. A zero cost selects
// bcrypt.DefaultCost; tests pass bcrypt.MinCost to keep hashing fast.
func NewAdminService(st *store.Store, bcryptCost int) *AdminService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AdminService{store: st, bcryptCost: bcryptCost}
}

// RotationResult is the outcome of a password rotation. Exactly one of
// NewPassword or TemporaryPassword is set, and it is disclosed to the
// caller exactly once; only the hash is persisted.
type RotationResult struct {
	Admin             *model.Admin
	NewPassword       string
	TemporaryPassword string
}

// BootstrapSuperAdmin creates the single super-admin account. It fails with
// Forbidden if one already exists. The store's partial unique index on the
// super-admin role backs this check against concurrent bootstrap requests.
func (s *AdminService) BootstrapSuperAdmin(ctx context.Context, username, plaintext string) (*model.Admin, error) {
	exists, err := s.store.HasSuperAdmin(ctx)
	if err != nil {
		return nil, fmt.Errorf("check super admin: %w", err)
	}
	if exists {
		return nil, apperr.Forbidden("user already exists")
	}

	hash, err := s.hashPassword(plaintext)
	if err != nil {
		return nil, err
	}

	admin := &model.Admin{
		Username:     username,
		PasswordHash: hash,
		Role:         model.RoleSuperAdmin,
	}
	if err := s.store.CreateAdmin(ctx, admin); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperr.Forbidden("user already exists")
		}
		return nil, fmt.Errorf("create super admin: %w", err)
	}
	return admin, nil
}

// CreateAdmin creates a subordinate admin. Only the current super-admin may
// do this; the acting identity and role are re-verified against the store.
func (s *AdminService) CreateAdmin(ctx context.Context, acting *model.Admin, username, plaintext string) (*model.Admin, error) {
	current, err := s.store.GetAdmin(ctx, acting.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.Forbidden("only the super-admin can create admins")
		}
		return nil, fmt.Errorf("verify acting admin: %w", err)
	}
	if !current.IsSuperAdmin() || current.Username != acting.Username {
		return nil, apperr.Forbidden("only the super-admin can create admins")
	}

	hash, err := s.hashPassword(plaintext)
	if err != nil {
		return nil, err
	}

	admin := &model.Admin{
		Username:     username,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	}
	if err := s.store.CreateAdmin(ctx, admin); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperr.Forbidden("user already exists")
		}
		return nil, fmt.Errorf("create admin: %w", err)
	}
	return admin, nil
}

// RotatePassword updates the target admin's password. Four paths:
//
//  1. super-admin rotating its own password: full payload required
//  2. super-admin rotating another admin's: no payload, a temporary
//     password is generated and disclosed once
//  3. admin rotating its own password: same as 1
//  4. admin targeting another admin: rejected before any payload checks
//
// body is the decoded JSON request body, validated against the rotation
// schema only on the self-rotation paths.
func (s *AdminService) RotatePassword(ctx context.Context, acting, target *model.Admin, body interface{}) (*RotationResult, error) {
	self := acting.ID == target.ID

	switch {
	case self:
		return s.rotateOwn(ctx, target, body)
	case acting.IsSuperAdmin():
		return s.issueTemporary(ctx, target)
	default:
		return nil, apperr.Unauthorized("not authorised to update other admin")
	}
}

func (s *AdminService) rotateOwn(ctx context.Context, target *model.Admin, body interface{}) (*RotationResult, error) {
	if err := schema.ValidateRotation(body); err != nil {
		return nil, err
	}
	fields, ok := body.(map[string]interface{})
	if !ok {
		return nil, apperr.BadRequest("proper current and new password is required")
	}
	currentPassword, _ := fields["currentPassword"].(string)
	newPassword, _ := fields["newPassword"].(string)
	newPasswordAgain, _ := fields["newPasswordAgain"].(string)

	if newPassword != newPasswordAgain {
		return nil, apperr.BadRequest("the two new passwords do not match, try again")
	}
	if newPassword == currentPassword {
		return nil, apperr.BadRequest("new and old password are same")
	}
	if verdict := password.Check(newPassword); !verdict.Strong {
		return nil, apperr.WeakPassword(verdict.Message())
	}
	if bcrypt.CompareHashAndPassword([]byte(target.PasswordHash), []byte(currentPassword)) != nil {
		return nil, apperr.Unauthorized("wrong old password")
	}

	hash, err := s.hashPassword(newPassword)
	if err != nil {
		return nil, err
	}
	if err := s.persistHash(ctx, target, hash); err != nil {
		return nil, err
	}
	return &RotationResult{Admin: target, NewPassword: newPassword}, nil
}

func (s *AdminService) issueTemporary(ctx context.Context, target *model.Admin) (*RotationResult, error) {
	plaintext, err := password.GenerateTemporary()
	if err != nil {
		return nil, fmt.Errorf("generate temporary password: %w", err)
	}
	hash, err := s.hashPassword(plaintext)
	if err != nil {
		return nil, err
	}
	if err := s.persistHash(ctx, target, hash); err != nil {
		return nil, err
	}
	return &RotationResult{Admin: target, TemporaryPassword: plaintext}, nil
}

func (s *AdminService) persistHash(ctx context.Context, target *model.Admin, hash string) error {
	if err := s.store.UpdateAdminPassword(ctx, target.ID, hash); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.ResourceNotFound("")
		}
		return fmt.Errorf("persist password: %w", err)
	}
	target.PasswordHash = hash
	return nil
}

// DeleteAdmin removes the target admin. A super-admin may delete any admin
// including itself; an admin may delete only itself.
func (s *AdminService) DeleteAdmin(ctx context.Context, acting, target *model.Admin) error {
	if !acting.IsSuperAdmin() && acting.ID != target.ID {
		return apperr.Unauthorized("can not delete other admin")
	}
	if err := s.store.DeleteAdmin(ctx, target.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.ResourceNotFound("")
		}
		return fmt.Errorf("delete admin: %w", err)
	}
	return nil
}

// ListOrSelf returns every admin for a super-admin caller, or only the
// caller's own record otherwise.
func (s *AdminService) ListOrSelf(ctx context.Context, acting *model.Admin) ([]model.Admin, error) {
	if acting.IsSuperAdmin() {
		admins, err := s.store.ListAdmins(ctx)
		if err != nil {
			return nil, fmt.Errorf("list admins: %w", err)
		}
		return admins, nil
	}
	return []model.Admin{*acting}, nil
}

// Authenticate verifies a username/password pair for sign-in. Unknown
// usernames and wrong passwords fail identically so the endpoint cannot be
// used to enumerate accounts.
func (s *AdminService) Authenticate(ctx context.Context, username, plaintext string) (*model.Admin, error) {
	admin, err := s.store.GetAdminByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.Forbidden("forbidden")
		}
		return nil, fmt.Errorf("look up admin: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(plaintext)) != nil {
		return nil, apperr.Forbidden("forbidden")
	}
	return admin, nil
}

func (s *AdminService) hashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
