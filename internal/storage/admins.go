package storage

import (
	"database/sql"
	"errors"
	"time"

	"github.com/brgysanantonio/portal/internal/models"
)

// CreateAdmin creates a new admin account with the given username and
// password hash.
func (db *DB) CreateAdmin(username, passwordHash string) (*models.Admin, error) {
	result, err := db.conn.Exec(
		"INSERT INTO admins (username, password_hash) VALUES (?, ?)",
		username, passwordHash,
	)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return db.GetAdminByID(id)
}

// EnsureAdmin creates the admin account if it does not exist, or refreshes
// its password hash if it does. Used to bootstrap the configured admin
// credential at startup.
func (db *DB) EnsureAdmin(username, passwordHash string) (*models.Admin, error) {
	existing, err := db.GetAdminByUsername(username)
	if errors.Is(err, sql.ErrNoRows) {
		return db.CreateAdmin(username, passwordHash)
	}
	if err != nil {
		return nil, err
	}

	_, err = db.conn.Exec(
		"UPDATE admins SET password_hash = ? WHERE id = ?",
		passwordHash, existing.ID,
	)
	if err != nil {
		return nil, err
	}
	return db.GetAdminByID(existing.ID)
}

// GetAdminByID retrieves an admin by ID.
func (db *DB) GetAdminByID(id int64) (*models.Admin, error) {
	row := db.conn.QueryRow(
		"SELECT id, username, password_hash, created_at FROM admins WHERE id = ?",
		id,
	)

	var a models.Admin
	if err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

// GetAdminByUsername retrieves an admin by username.
func (db *DB) GetAdminByUsername(username string) (*models.Admin, error) {
	row := db.conn.QueryRow(
		"SELECT id, username, password_hash, created_at FROM admins WHERE username = ?",
		username,
	)

	var a models.Admin
	if err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

// AdminCount returns the number of admin accounts in the database.
func (db *DB) AdminCount() (int, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(*) FROM admins").Scan(&count)
	return count, err
}

// CreateSession creates a new session for an admin. Session times are
// stored in UTC; the driver writes time.Time as text including the zone
// offset, which would not compare correctly otherwise.
func (db *DB) CreateSession(token string, adminID int64, expiresAt time.Time) error {
	now := time.Now().UTC()
	_, err := db.conn.Exec(
		"INSERT INTO sessions (token, admin_id, expires_at, last_activity) VALUES (?, ?, ?, ?)",
		token, adminID, expiresAt.UTC(), now,
	)
	return err
}

// SessionInfo holds session validation data.
type SessionInfo struct {
	Admin        *models.Admin
	LastActivity time.Time
	ExpiresAt    time.Time
}

// ValidateSession checks if a session token is valid and returns the
// associated admin.
func (db *DB) ValidateSession(token string) (*models.Admin, error) {
	info, err := db.ValidateSessionWithInfo(token)
	if err != nil {
		return nil, err
	}
	return info.Admin, nil
}

// ValidateSessionWithInfo checks if a session token is valid and returns
// session details.
func (db *DB) ValidateSessionWithInfo(token string) (*SessionInfo, error) {
	row := db.conn.QueryRow(`
		SELECT a.id, a.username, a.password_hash, a.created_at, s.last_activity, s.expires_at
		FROM sessions s
		JOIN admins a ON s.admin_id = a.id
		WHERE s.token = ? AND s.expires_at > ?
	`, token, time.Now().UTC())

	var a models.Admin
	var lastActivity, expiresAt time.Time
	if err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt, &lastActivity, &expiresAt); err != nil {
		return nil, err
	}
	return &SessionInfo{
		Admin:        &a,
		LastActivity: lastActivity,
		ExpiresAt:    expiresAt,
	}, nil
}

// RenewSession updates the last_activity and expires_at for a session.
func (db *DB) RenewSession(token string, newExpiresAt time.Time) error {
	now := time.Now().UTC()
	_, err := db.conn.Exec(
		"UPDATE sessions SET last_activity = ?, expires_at = ? WHERE token = ?",
		now, newExpiresAt.UTC(), token,
	)
	return err
}

// DeleteSession removes a session by token.
func (db *DB) DeleteSession(token string) error {
	_, err := db.conn.Exec("DELETE FROM sessions WHERE token = ?", token)
	return err
}

// CleanExpiredSessions removes all expired sessions.
func (db *DB) CleanExpiredSessions() error {
	_, err := db.conn.Exec("DELETE FROM sessions WHERE expires_at <= ?", time.Now().UTC())
	return err
}
