package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/brgysanantonio/portal/internal/models"
)

// listPosts handles GET /posts, newest announcements first.
func (a *API) listPosts(w http.ResponseWriter, _ *http.Request) {
	posts, err := a.db.ListPosts()
	if err != nil {
		slog.Error("listing posts", "error", err)
		apiError(w, http.StatusInternalServerError, "Query failed: %v", err)
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}
	writeJSON(w, http.StatusOK, posts)
}

type createPostRequest struct {
	Title    *string `json:"title"`
	Body     *string `json:"body"`
	ImageURL *string `json:"imageUrl"`
}

// createPost handles POST /posts. Requires an authenticated admin session;
// the middleware rejects unauthenticated callers before any row is written.
func (a *API) createPost(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req createPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	if req.Title == nil || req.Body == nil {
		apiError(w, http.StatusBadRequest, "Title and body are required.")
		return
	}

	title := strings.TrimSpace(*req.Title)
	body := strings.TrimSpace(*req.Body)
	if title == "" || body == "" {
		apiError(w, http.StatusUnprocessableEntity, "Title and body must not be empty.")
		return
	}

	var imageURL *string
	if req.ImageURL != nil {
		if trimmed := strings.TrimSpace(*req.ImageURL); trimmed != "" {
			imageURL = &trimmed
		}
	}

	post, err := a.db.CreatePost(title, body, imageURL)
	if err != nil {
		slog.Error("creating post", "error", err)
		apiError(w, http.StatusInternalServerError, "Failed to create post: %v", err)
		return
	}

	if admin := AdminFromContext(r); admin != nil {
		slog.Info("announcement published", "admin", admin.Username, "post_id", post.ID)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"post":    post,
	})
}
