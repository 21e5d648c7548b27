package schema

import (
	"errors"
	"testing"

	"github.com/xgirma/outreach-admin/internal/apperr"
)

func TestValidateCredentialsAccepts(t *testing.T) {
	body := map[string]interface{}{
		"username": "root",
		"password": "Sup3r-secret!",
	}
	if err := ValidateCredentials(body); err != nil {
		t.Errorf("ValidateCredentials = %v, want nil", err)
	}
}

func TestValidateCredentialsRejects(t *testing.T) {
	tests := []struct {
		name string
		body interface{}
	}{
		{"nil body", nil},
		{"not an object", "root"},
		{"missing password", map[string]interface{}{"username": "root"}},
		{"missing username", map[string]interface{}{"password": "Sup3r-secret!"}},
		{"empty username", map[string]interface{}{"username": "", "password": "Sup3r-secret!"}},
		{"short password", map[string]interface{}{"username": "root", "password": "Sh0rt!"}},
		{"extra field", map[string]interface{}{"username": "root", "password": "Sup3r-secret!", "role": 0}},
		{"non-string password", map[string]interface{}{"username": "root", "password": 12345678}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCredentials(tt.body)
			var domainErr *apperr.Error
			if !errors.As(err, &domainErr) {
				t.Fatalf("ValidateCredentials = %v, want *apperr.Error", err)
			}
			if domainErr.Message != credentialsMessage {
				t.Errorf("message = %q, want %q", domainErr.Message, credentialsMessage)
			}
			if domainErr.Status != 400 {
				t.Errorf("status = %d, want 400", domainErr.Status)
			}
		})
	}
}

func TestValidateRotationAccepts(t *testing.T) {
	body := map[string]interface{}{
		"currentPassword":  "Old-secret-1",
		"newPassword":      "New-secret-2",
		"newPasswordAgain": "New-secret-2",
	}
	if err := ValidateRotation(body); err != nil {
		t.Errorf("ValidateRotation = %v, want nil", err)
	}
}

func TestValidateRotationRejects(t *testing.T) {
	tests := []struct {
		name string
		body interface{}
	}{
		{"nil body", nil},
		{"missing confirmation", map[string]interface{}{
			"currentPassword": "Old-secret-1",
			"newPassword":     "New-secret-2",
		}},
		{"short new password", map[string]interface{}{
			"currentPassword":  "Old-secret-1",
			"newPassword":      "N3w!",
			"newPasswordAgain": "N3w!",
		}},
		{"extra field", map[string]interface{}{
			"currentPassword":  "Old-secret-1",
			"newPassword":      "New-secret-2",
			"newPasswordAgain": "New-secret-2",
			"username":         "root",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRotation(tt.body)
			var domainErr *apperr.Error
			if !errors.As(err, &domainErr) {
				t.Fatalf("ValidateRotation = %v, want *apperr.Error", err)
			}
			if domainErr.Message != rotationMessage {
				t.Errorf("message = %q, want %q", domainErr.Message, rotationMessage)
			}
		})
	}
}
