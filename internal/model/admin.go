package model

import "time"

// Admin represents one authenticated operator of the admin panel.
// Passwords are stored as bcrypt hashes and are never serialized.
type Admin struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"` // bcrypt hash, never expose
	Role         Role      `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// IsSuperAdmin reports whether the admin holds the top-level role.
func (a *Admin) IsSuperAdmin() bool {
	return a.Role == RoleSuperAdmin
}
