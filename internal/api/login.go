package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/brgysanantonio/portal/internal/auth"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// login handles POST /login. On a credential match it establishes a
// session and sets the session cookie.
func (a *API) login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		apiError(w, http.StatusBadRequest, "Username and password are required.")
		return
	}

	admin, err := a.db.GetAdminByUsername(username)
	if err != nil || !auth.CheckPassword(req.Password, admin.PasswordHash) {
		apiError(w, http.StatusUnauthorized, "Invalid username or password.")
		return
	}

	token, err := auth.GenerateSessionToken()
	if err != nil {
		slog.Error("generating session token", "error", err)
		apiError(w, http.StatusInternalServerError, "An error occurred. Please try again.")
		return
	}

	expiresAt := time.Now().Add(SessionDuration)
	if err := a.db.CreateSession(token, admin.ID, expiresAt); err != nil {
		slog.Error("creating session", "error", err)
		apiError(w, http.StatusInternalServerError, "An error occurred. Please try again.")
		return
	}

	a.setSessionCookie(w, token)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// logout handles POST /logout.
func (a *API) logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		if err := a.db.DeleteSession(cookie.Value); err != nil {
			slog.Error("deleting session", "error", err)
		}
	}
	a.clearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// sessionCheck handles GET /session. Clients use it to re-validate their
// local authenticated flag against the server's session state.
func (a *API) sessionCheck(w http.ResponseWriter, r *http.Request) {
	authenticated := false
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		if _, err := a.db.ValidateSession(cookie.Value); err == nil {
			authenticated = true
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"authenticated": authenticated})
}
