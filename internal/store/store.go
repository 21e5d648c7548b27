// Package store persists admin credential records. SQLite is the default
// embedded backend; postgres and mysql are supported through the same sqlx
// data access layer for deployments that already run a database server.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/xgirma/outreach-admin/internal/model"
)

// Store is the credential store. It enforces username uniqueness and, where
// the backend supports partial indexes, the single-super-admin invariant.
type Store struct {
	db     *sqlx.DB
	driver string
}

// Open connects the credential store. Supported drivers: "sqlite" (default),
// "postgres" (pgx), "mysql". For sqlite an empty dsn opens an in-memory
// database, which the tests rely on; otherwise dsn is a data directory.
func Open(driver, dsn string) (*Store, error) {
	if driver == "" {
		driver = "sqlite"
	}

	if driver == "sqlite" {
		if dsn == "" {
			dsn = ":memory:?_journal_mode=WAL"
		} else {
			if err := os.MkdirAll(dsn, 0755); err != nil {
				return nil, fmt.Errorf("create data dir: %w", err)
			}
			dsn = filepath.Join(dsn, "outreach.db") + "?_journal_mode=WAL&_busy_timeout=5000"
		}
	}

	sqlxDriver := driver
	if driver == "postgres" {
		sqlxDriver = "pgx"
	}

	db, err := sqlx.Connect(sqlxDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open credential store: %w", err)
	}

	if driver == "sqlite" {
		db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes
	}

	s := &Store{db: db, driver: driver}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate credential store: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the store connection, used by the readiness probe.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// CreateAdmin inserts a new admin record. The ID, CreatedAt, and UpdatedAt
// fields on admin are populated after a successful insert. Uniqueness
// violations are surfaced as ErrDuplicate, never as raw driver errors.
func (s *Store) CreateAdmin(ctx context.Context, admin *model.Admin) error {
	now := time.Now().UTC()
	admin.CreatedAt = now
	admin.UpdatedAt = now

	if s.driver == "postgres" {
		const q = `INSERT INTO admins (username, password_hash, role, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5) RETURNING id`
		err := s.db.QueryRowxContext(ctx, q,
			admin.Username, admin.PasswordHash, admin.Role, admin.CreatedAt, admin.UpdatedAt,
		).Scan(&admin.ID)
		if err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicate
			}
			return fmt.Errorf("insert admin: %w", err)
		}
		return nil
	}

	const q = `INSERT INTO admins (username, password_hash, role, created_at, updated_at)
		VALUES (:username, :password_hash, :role, :created_at, :updated_at)`

	result, err := s.db.NamedExecContext(ctx, q, admin)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert admin: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get admin id: %w", err)
	}
	admin.ID = id
	return nil
}

// GetAdmin returns an admin by ID.
func (s *Store) GetAdmin(ctx context.Context, id int64) (*model.Admin, error) {
	var admin model.Admin
	q := s.db.Rebind("SELECT * FROM admins WHERE id = ?")
	if err := s.db.GetContext(ctx, &admin, q, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get admin: %w", err)
	}
	return &admin, nil
}

// GetAdminByUsername returns an admin by its unique username.
func (s *Store) GetAdminByUsername(ctx context.Context, username string) (*model.Admin, error) {
	var admin model.Admin
	q := s.db.Rebind("SELECT * FROM admins WHERE username = ?")
	if err := s.db.GetContext(ctx, &admin, q, username); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get admin by username: %w", err)
	}
	return &admin, nil
}

// ListAdmins returns all admin accounts ordered by username.
func (s *Store) ListAdmins(ctx context.Context) ([]model.Admin, error) {
	var admins []model.Admin
	if err := s.db.SelectContext(ctx, &admins, "SELECT * FROM admins ORDER BY username"); err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	return admins, nil
}

// HasSuperAdmin reports whether a super-admin record exists. Used for
// bootstrap gating and first-run detection.
func (s *Store) HasSuperAdmin(ctx context.Context) (bool, error) {
	var count int
	q := s.db.Rebind("SELECT COUNT(*) FROM admins WHERE role = ?")
	if err := s.db.GetContext(ctx, &count, q, model.RoleSuperAdmin); err != nil {
		return false, fmt.Errorf("count super admins: %w", err)
	}
	return count > 0, nil
}

// UpdateAdminPassword replaces the password hash of an existing admin,
// preserving every other field and refreshing updated_at.
func (s *Store) UpdateAdminPassword(ctx context.Context, id int64, passwordHash string) error {
	q := s.db.Rebind("UPDATE admins SET password_hash = ?, updated_at = ? WHERE id = ?")
	result, err := s.db.ExecContext(ctx, q, passwordHash, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update admin password: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update admin password rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAdmin removes an admin record by ID.
func (s *Store) DeleteAdmin(ctx context.Context, id int64) error {
	q := s.db.Rebind("DELETE FROM admins WHERE id = ?")
	result, err := s.db.ExecContext(ctx, q, id)
	if err != nil {
		return fmt.Errorf("delete admin: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete admin rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// isUniqueViolation reports whether a driver error is a uniqueness
// constraint violation. Each supported backend words it differently.
func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "duplicate entry")
}
