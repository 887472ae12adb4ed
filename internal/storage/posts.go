package storage

import (
	"database/sql"

	"github.com/brgysanantonio/portal/internal/models"
)

// CreatePost inserts a new announcement and returns the persisted row,
// including the store-assigned id and timestamp.
func (db *DB) CreatePost(title, body string, imageURL *string) (*models.Post, error) {
	result, err := db.conn.Exec(
		"INSERT INTO posts (title, body, image_url) VALUES (?, ?, ?)",
		title, body, imageURL,
	)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return db.GetPost(id)
}

// GetPost retrieves a single announcement by ID.
func (db *DB) GetPost(id int64) (*models.Post, error) {
	row := db.conn.QueryRow(
		"SELECT id, title, body, image_url, created_at FROM posts WHERE id = ?",
		id,
	)
	return scanPost(row)
}

// ListPosts retrieves all announcements, newest first.
func (db *DB) ListPosts() ([]models.Post, error) {
	rows, err := db.conn.Query(
		"SELECT id, title, body, image_url, created_at FROM posts ORDER BY created_at DESC, id DESC",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		var p models.Post
		var image sql.NullString
		if err := rows.Scan(&p.ID, &p.Title, &p.Body, &image, &p.CreatedAt); err != nil {
			return nil, err
		}
		if image.Valid {
			p.ImageURL = &image.String
		}
		posts = append(posts, p)
	}

	return posts, rows.Err()
}

// PostCount returns the number of announcements in the database.
func (db *DB) PostCount() (int, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(*) FROM posts").Scan(&count)
	return count, err
}

func scanPost(row *sql.Row) (*models.Post, error) {
	var p models.Post
	var image sql.NullString
	if err := row.Scan(&p.ID, &p.Title, &p.Body, &image, &p.CreatedAt); err != nil {
		return nil, err
	}
	if image.Valid {
		p.ImageURL = &image.String
	}
	return &p, nil
}
