package storage

import (
	"database/sql"

	"github.com/brgysanantonio/portal/internal/models"

	// Import sqlite driver
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection.
type DB struct {
	conn *sql.DB
}

// NewDB opens a database connection, runs migrations and seeds the budget
// table if it is empty.
func NewDB(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if err := conn.Ping(); err != nil {
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		return nil, err
	}

	return db, nil
}

func (db *DB) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS budget_allocations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			category TEXT NOT NULL,
			allocated REAL NOT NULL,
			spent REAL NOT NULL,
			status TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS posts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			body TEXT NOT NULL,
			image_url TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS admins (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS sessions (
			token TEXT PRIMARY KEY,
			admin_id INTEGER NOT NULL,
			expires_at DATETIME NOT NULL,
			last_activity DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (admin_id) REFERENCES admins(id) ON DELETE CASCADE
		)`,
	}

	for _, m := range migrations {
		if _, err := db.conn.Exec(m); err != nil {
			return err
		}
	}

	return db.seedAllocations()
}

// seedAllocations inserts the default budget rows when the table is empty.
// Allocation rows are only ever updated through the API, never created, so
// a fresh database needs them up front.
func (db *DB) seedAllocations() error {
	var count int
	if err := db.conn.QueryRow("SELECT COUNT(*) FROM budget_allocations").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, a := range models.SeedAllocations() {
		_, err := db.conn.Exec(
			"INSERT INTO budget_allocations (id, category, allocated, spent, status) VALUES (?, ?, ?, ?, ?)",
			a.ID, a.Category, a.Allocated, a.Spent, a.Status,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// ResetAllocations replaces all budget rows with the default seed set.
func (db *DB) ResetAllocations() error {
	if _, err := db.conn.Exec("DELETE FROM budget_allocations"); err != nil {
		return err
	}
	return db.seedAllocations()
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
