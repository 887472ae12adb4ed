package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/brgysanantonio/portal/internal/models"
)

type chatRequest struct {
	Message string `json:"message"`
}

// chatMessage handles POST /chat. The reply delay shown in the widget is
// cosmetic and applied client-side; the server answers immediately.
func (a *API) chatMessage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		apiError(w, http.StatusBadRequest, "Message must not be empty.")
		return
	}

	reply, concernLogged := a.bot.Respond(message)
	writeJSON(w, http.StatusOK, map[string]any{
		"reply":         reply,
		"concernLogged": concernLogged,
		"concernCount":  a.bot.ConcernCount(),
	})
}

// listConcerns handles GET /concerns (admin only). Concerns are held in
// memory and never persisted.
func (a *API) listConcerns(w http.ResponseWriter, _ *http.Request) {
	concerns := a.bot.Concerns()
	if concerns == nil {
		concerns = []models.Concern{}
	}
	writeJSON(w, http.StatusOK, concerns)
}
