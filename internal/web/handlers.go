// Package web serves the portal's server-rendered pages.
package web

import (
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/brgysanantonio/portal/internal/models"
	"github.com/brgysanantonio/portal/internal/storage"
	"github.com/brgysanantonio/portal/internal/view"
)

// Handlers holds dependencies for page handlers.
type Handlers struct {
	db          *storage.DB
	templateDir string
}

// NewHandlers creates a Handlers instance.
func NewHandlers(db *storage.DB, templateDir string) *Handlers {
	return &Handlers{db: db, templateDir: templateDir}
}

// IndexViewModel is the data passed to the portal page.
type IndexViewModel struct {
	Budget view.BudgetView
	Posts  view.PostsView
}

// Index renders the portal page: budget dashboard, announcement feed,
// admin section and chat widget. Store failures fall back to the seed
// datasets so the public page always renders something.
func (h *Handlers) Index(w http.ResponseWriter, _ *http.Request) {
	items, err := h.db.ListAllocations()
	if err != nil {
		slog.Warn("budget query failed, rendering fallback rows", "error", err)
		items = nil
	}
	if len(items) == 0 {
		items = models.SeedAllocations()
	}

	posts, err := h.db.ListPosts()
	if err != nil {
		slog.Warn("posts query failed, rendering fallback announcements", "error", err)
		posts = models.SeedPosts()
	}

	h.render(w, "index.html", IndexViewModel{
		Budget: view.BuildBudgetView(items),
		Posts:  view.BuildPostsView(posts),
	})
}

func (h *Handlers) render(w http.ResponseWriter, viewName string, data any) {
	tmpl, err := template.ParseFiles(filepath.Join(h.templateDir, "base.html"), filepath.Join(h.templateDir, viewName))
	if err != nil {
		slog.Error("parsing templates", "view", viewName, "error", err)
		http.Error(w, "Template error", http.StatusInternalServerError)
		return
	}
	if err := tmpl.ExecuteTemplate(w, "base.html", data); err != nil {
		slog.Error("executing template", "view", viewName, "error", err)
	}
}
