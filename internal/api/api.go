// Package api exposes the portal's HTTP JSON endpoints.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/brgysanantonio/portal/internal/chat"
	"github.com/brgysanantonio/portal/internal/models"
	"github.com/brgysanantonio/portal/internal/storage"
)

const maxBodySize = 1 << 20 // 1MB

// Context key type to avoid collisions.
type contextKey string

const (
	// AdminContextKey is the context key for the authenticated admin.
	AdminContextKey contextKey = "admin"
	// SessionCookieName is the name of the session cookie.
	SessionCookieName = "session"
	// SessionDuration is how long sessions last (30 days).
	SessionDuration = 30 * 24 * time.Hour
)

// API holds dependencies for the JSON handlers.
type API struct {
	db           *storage.DB
	bot          *chat.Bot
	secureCookie bool
}

// New creates an API instance.
func New(db *storage.DB, bot *chat.Bot, secureCookie bool) *API {
	return &API{db: db, bot: bot, secureCookie: secureCookie}
}

// Router returns the API routes mounted under a single handler.
func (a *API) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/budget", a.listBudget)
	r.Get("/posts", a.listPosts)
	r.Post("/login", a.login)
	r.Post("/logout", a.logout)
	r.Get("/session", a.sessionCheck)
	r.Post("/chat", a.chatMessage)

	r.Group(func(r chi.Router) {
		r.Use(a.requireAdmin)
		r.Post("/budget/update", a.updateBudget)
		r.Post("/posts", a.createPost)
		r.Get("/concerns", a.listConcerns)
	})

	return r
}

// AdminFromContext retrieves the authenticated admin from request context.
func AdminFromContext(r *http.Request) *models.Admin {
	if admin, ok := r.Context().Value(AdminContextKey).(*models.Admin); ok {
		return admin
	}
	return nil
}

// requireAdmin gates write endpoints behind a valid admin session. The
// session is re-validated against the store on every request; any local
// client flag is a UI hint only. Sessions past the halfway point of their
// lifetime are renewed.
func (a *API) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil || cookie.Value == "" {
			apiError(w, http.StatusUnauthorized, "Unauthorized. Please log in.")
			return
		}

		info, err := a.db.ValidateSessionWithInfo(cookie.Value)
		if err != nil {
			a.clearSessionCookie(w)
			apiError(w, http.StatusUnauthorized, "Unauthorized. Please log in.")
			return
		}

		// Rolling session: renew when less than half the lifetime remains,
		// so active admins stay logged in while idle sessions expire.
		if time.Until(info.ExpiresAt) < SessionDuration/2 {
			newExpiresAt := time.Now().Add(SessionDuration)
			if err := a.db.RenewSession(cookie.Value, newExpiresAt); err == nil {
				a.setSessionCookie(w, cookie.Value)
			}
		}

		ctx := context.WithValue(r.Context(), AdminContextKey, info.Admin)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *API) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(SessionDuration.Seconds()),
		HttpOnly: true,
		Secure:   a.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (a *API) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   a.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}
