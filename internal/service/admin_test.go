package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/xgirma/outreach-admin/internal/apperr"
	"github.com/xgirma/outreach-admin/internal/model"
	"github.com/xgirma/outreach-admin/internal/store"
)

const (
	testSuperPassword = "Sup3r-secret!"
	testAdminPassword = "Adm1n-secret!"
)

func newTestService(t *testing.T) (*AdminService, *store.Store) {
	t.Helper()
	st, err := store.Open("sqlite", "") // in-memory
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return NewAdminService(st, bcrypt.MinCost), st
}

func bootstrapSuper(t *testing.T, svc *AdminService) *model.Admin {
	t.Helper()
	admin, err := svc.BootstrapSuperAdmin(context.Background(), "root", testSuperPassword)
	if err != nil {
		t.Fatalf("BootstrapSuperAdmin: %v", err)
	}
	return admin
}

func createSubordinate(t *testing.T, svc *AdminService, super *model.Admin, username string) *model.Admin {
	t.Helper()
	admin, err := svc.CreateAdmin(context.Background(), super, username, testAdminPassword)
	if err != nil {
		t.Fatalf("CreateAdmin(%q): %v", username, err)
	}
	return admin
}

func assertDomainError(t *testing.T, err error, wantName, wantMessage string) {
	t.Helper()
	var domainErr *apperr.Error
	if !errors.As(err, &domainErr) {
		t.Fatalf("err = %v, want *apperr.Error", err)
	}
	if domainErr.Name != wantName {
		t.Errorf("name = %q, want %q", domainErr.Name, wantName)
	}
	if wantMessage != "" && domainErr.Message != wantMessage {
		t.Errorf("message = %q, want %q", domainErr.Message, wantMessage)
	}
}

func rotationBody(current, new1, new2 string) map[string]interface{} {
	return map[string]interface{}{
		"currentPassword":  current,
		"newPassword":      new1,
		"newPasswordAgain": new2,
	}
}

// ---------------------------------------------------------------------------
// Bootstrap
// ---------------------------------------------------------------------------

func TestBootstrapSuperAdmin(t *testing.T) {
	svc, _ := newTestService(t)

	admin := bootstrapSuper(t, svc)
	if !admin.IsSuperAdmin() {
		t.Error("bootstrapped admin is not super")
	}
	if admin.PasswordHash == testSuperPassword {
		t.Error("password stored in plaintext")
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(testSuperPassword)) != nil {
		t.Error("stored hash does not match password")
	}
}

func TestBootstrapSuperAdminOnlyOnce(t *testing.T) {
	svc, _ := newTestService(t)
	bootstrapSuper(t, svc)

	_, err := svc.BootstrapSuperAdmin(context.Background(), "second", testSuperPassword)
	assertDomainError(t, err, "Forbidden", "user already exists")
}

// ---------------------------------------------------------------------------
// CreateAdmin
// ---------------------------------------------------------------------------

func TestCreateAdmin(t *testing.T) {
	svc, _ := newTestService(t)
	super := bootstrapSuper(t, svc)

	admin := createSubordinate(t, svc, super, "editor")
	if admin.Role != model.RoleAdmin {
		t.Errorf("role = %v, want RoleAdmin", admin.Role)
	}
}

func TestCreateAdminRejectsNonSuper(t *testing.T) {
	svc, _ := newTestService(t)
	super := bootstrapSuper(t, svc)
	sub := createSubordinate(t, svc, super, "editor")

	_, err := svc.CreateAdmin(context.Background(), sub, "intruder", testAdminPassword)
	assertDomainError(t, err, "Forbidden", "")
}

func TestCreateAdminRejectsStaleActingIdentity(t *testing.T) {
	svc, st := newTestService(t)
	super := bootstrapSuper(t, svc)

	// An acting record whose username no longer matches the stored row must
	// be rejected even though the ID is the super-admin's.
	impostor := &model.Admin{ID: super.ID, Username: "impostor", Role: model.RoleSuperAdmin}
	_, err := svc.CreateAdmin(context.Background(), impostor, "editor", testAdminPassword)
	assertDomainError(t, err, "Forbidden", "")

	// A deleted acting admin is rejected too.
	if err := st.DeleteAdmin(context.Background(), super.ID); err != nil {
		t.Fatalf("DeleteAdmin: %v", err)
	}
	_, err = svc.CreateAdmin(context.Background(), super, "editor", testAdminPassword)
	assertDomainError(t, err, "Forbidden", "")
}

func TestCreateAdminDuplicateUsername(t *testing.T) {
	svc, _ := newTestService(t)
	super := bootstrapSuper(t, svc)
	createSubordinate(t, svc, super, "editor")

	_, err := svc.CreateAdmin(context.Background(), super, "editor", testAdminPassword)
	assertDomainError(t, err, "Forbidden", "user already exists")
}

// ---------------------------------------------------------------------------
// RotatePassword
// ---------------------------------------------------------------------------

func TestRotateOwnPassword(t *testing.T) {
	svc, _ := newTestService(t)
	super := bootstrapSuper(t, svc)

	result, err := svc.RotatePassword(context.Background(), super, super,
		rotationBody(testSuperPassword, "N3w-secret-pw!", "N3w-secret-pw!"))
	if err != nil {
		t.Fatalf("RotatePassword: %v", err)
	}
	if result.NewPassword != "N3w-secret-pw!" {
		t.Errorf("NewPassword = %q, want the chosen password", result.NewPassword)
	}
	if result.TemporaryPassword != "" {
		t.Error("TemporaryPassword set on self-rotation")
	}

	// The old password no longer signs in; the new one does.
	if _, err := svc.Authenticate(context.Background(), "root", testSuperPassword); err == nil {
		t.Error("old password still authenticates")
	}
	if _, err := svc.Authenticate(context.Background(), "root", "N3w-secret-pw!"); err != nil {
		t.Errorf("new password rejected: %v", err)
	}
}

func TestRotateOwnPasswordMismatch(t *testing.T) {
	svc, _ := newTestService(t)
	super := bootstrapSuper(t, svc)

	_, err := svc.RotatePassword(context.Background(), super, super,
		rotationBody(testSuperPassword, "N3w-secret-pw!", "Different-1!"))
	assertDomainError(t, err, "BadRequest", "the two new passwords do not match, try again")
}

func TestRotateOwnPasswordSameAsOld(t *testing.T) {
	svc, _ := newTestService(t)
	super := bootstrapSuper(t, svc)

	_, err := svc.RotatePassword(context.Background(), super, super,
		rotationBody(testSuperPassword, testSuperPassword, testSuperPassword))
	assertDomainError(t, err, "BadRequest", "new and old password are same")
}

func TestRotateOwnPasswordWeak(t *testing.T) {
	svc, _ := newTestService(t)
	super := bootstrapSuper(t, svc)

	_, err := svc.RotatePassword(context.Background(), super, super,
		rotationBody(testSuperPassword, "weakpassword", "weakpassword"))
	assertDomainError(t, err, "WeakPassword", "")
}

func TestRotateOwnPasswordWrongCurrent(t *testing.T) {
	svc, _ := newTestService(t)
	super := bootstrapSuper(t, svc)

	_, err := svc.RotatePassword(context.Background(), super, super,
		rotationBody("Wr0ng-guess!", "N3w-secret-pw!", "N3w-secret-pw!"))
	assertDomainError(t, err, "Unauthorized", "wrong old password")
}

func TestRotateOwnPasswordMissingBody(t *testing.T) {
	svc, _ := newTestService(t)
	super := bootstrapSuper(t, svc)

	_, err := svc.RotatePassword(context.Background(), super, super, nil)
	assertDomainError(t, err, "BadRequest", "proper current and new password is required")
}

func TestSuperIssuesTemporaryPassword(t *testing.T) {
	svc, _ := newTestService(t)
	super := bootstrapSuper(t, svc)
	sub := createSubordinate(t, svc, super, "editor")

	// No payload needed; the super-admin receives a generated password.
	result, err := svc.RotatePassword(context.Background(), super, sub, nil)
	if err != nil {
		t.Fatalf("RotatePassword: %v", err)
	}
	if result.TemporaryPassword == "" {
		t.Fatal("TemporaryPassword not set")
	}
	if result.NewPassword != "" {
		t.Error("NewPassword set on temporary issuance")
	}

	if _, err := svc.Authenticate(context.Background(), "editor", result.TemporaryPassword); err != nil {
		t.Errorf("temporary password rejected: %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "editor", testAdminPassword); err == nil {
		t.Error("old password still authenticates after temporary issuance")
	}
}

func TestAdminCannotRotateOtherAdmin(t *testing.T) {
	svc, _ := newTestService(t)
	super := bootstrapSuper(t, svc)
	a := createSubordinate(t, svc, super, "editor")
	b := createSubordinate(t, svc, super, "writer")

	// Rejected before any payload inspection.
	_, err := svc.RotatePassword(context.Background(), a, b,
		rotationBody(testAdminPassword, "N3w-secret-pw!", "N3w-secret-pw!"))
	assertDomainError(t, err, "Unauthorized", "not authorised to update other admin")

	_, err = svc.RotatePassword(context.Background(), a, super, nil)
	assertDomainError(t, err, "Unauthorized", "not authorised to update other admin")
}

func TestAdminRotatesOwnPassword(t *testing.T) {
	svc, _ := newTestService(t)
	super := bootstrapSuper(t, svc)
	sub := createSubordinate(t, svc, super, "editor")

	result, err := svc.RotatePassword(context.Background(), sub, sub,
		rotationBody(testAdminPassword, "N3w-secret-pw!", "N3w-secret-pw!"))
	if err != nil {
		t.Fatalf("RotatePassword: %v", err)
	}
	if result.NewPassword == "" {
		t.Error("NewPassword not set on self-rotation")
	}
}

// ---------------------------------------------------------------------------
// DeleteAdmin
// ---------------------------------------------------------------------------

func TestSuperDeletesAnyAdmin(t *testing.T) {
	svc, st := newTestService(t)
	super := bootstrapSuper(t, svc)
	sub := createSubordinate(t, svc, super, "editor")

	if err := svc.DeleteAdmin(context.Background(), super, sub); err != nil {
		t.Fatalf("DeleteAdmin: %v", err)
	}
	if _, err := st.GetAdmin(context.Background(), sub.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetAdmin after delete = %v, want ErrNotFound", err)
	}
}

func TestAdminDeletesOnlyItself(t *testing.T) {
	svc, _ := newTestService(t)
	super := bootstrapSuper(t, svc)
	a := createSubordinate(t, svc, super, "editor")
	b := createSubordinate(t, svc, super, "writer")

	err := svc.DeleteAdmin(context.Background(), a, b)
	assertDomainError(t, err, "Unauthorized", "can not delete other admin")

	if err := svc.DeleteAdmin(context.Background(), a, a); err != nil {
		t.Errorf("self-delete: %v", err)
	}
}

func TestSuperDeletesItself(t *testing.T) {
	svc, st := newTestService(t)
	super := bootstrapSuper(t, svc)

	if err := svc.DeleteAdmin(context.Background(), super, super); err != nil {
		t.Fatalf("super self-delete: %v", err)
	}

	// The slot opens up for a fresh bootstrap.
	has, err := st.HasSuperAdmin(context.Background())
	if err != nil {
		t.Fatalf("HasSuperAdmin: %v", err)
	}
	if has {
		t.Error("super-admin still present after self-delete")
	}
}

// ---------------------------------------------------------------------------
// ListOrSelf and Authenticate
// ---------------------------------------------------------------------------

func TestListOrSelf(t *testing.T) {
	svc, _ := newTestService(t)
	super := bootstrapSuper(t, svc)
	sub := createSubordinate(t, svc, super, "editor")

	all, err := svc.ListOrSelf(context.Background(), super)
	if err != nil {
		t.Fatalf("ListOrSelf(super): %v", err)
	}
	if len(all) != 2 {
		t.Errorf("super sees %d admins, want 2", len(all))
	}

	own, err := svc.ListOrSelf(context.Background(), sub)
	if err != nil {
		t.Fatalf("ListOrSelf(sub): %v", err)
	}
	if len(own) != 1 || own[0].Username != "editor" {
		t.Errorf("sub sees %v, want only itself", own)
	}
}

func TestAuthenticateFailsIdentically(t *testing.T) {
	svc, _ := newTestService(t)
	bootstrapSuper(t, svc)

	_, errUnknown := svc.Authenticate(context.Background(), "ghost", testSuperPassword)
	_, errWrongPw := svc.Authenticate(context.Background(), "root", "Wr0ng-guess!")

	assertDomainError(t, errUnknown, "Forbidden", "forbidden")
	assertDomainError(t, errWrongPw, "Forbidden", "forbidden")
}
