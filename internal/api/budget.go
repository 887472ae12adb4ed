package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/brgysanantonio/portal/internal/models"
)

// listBudget handles GET /budget. Rows come back ordered by id ascending.
//
// On store failure the body is {error:string} rather than the standard
// envelope. The original portal shipped this shape on exactly this
// endpoint and clients key their fallback on it, so it is kept as-is.
func (a *API) listBudget(w http.ResponseWriter, _ *http.Request) {
	items, err := a.db.ListAllocations()
	if err != nil {
		slog.Error("listing budget allocations", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "Query failed: " + err.Error(),
		})
		return
	}
	if items == nil {
		items = []models.BudgetAllocation{}
	}
	writeJSON(w, http.StatusOK, items)
}

type updateBudgetRequest struct {
	ID        *int64   `json:"id"`
	Allocated *float64 `json:"allocated"`
	Spent     *float64 `json:"spent"`
	Status    *string  `json:"status"`
}

// updateBudget handles POST /budget/update. The row is overwritten in
// place and the persisted row is re-read and echoed so the client can
// merge it without guessing.
func (a *API) updateBudget(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req updateBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	if req.ID == nil || req.Allocated == nil || req.Spent == nil || req.Status == nil {
		apiError(w, http.StatusBadRequest, "Missing required fields.")
		return
	}

	allocated, spent := *req.Allocated, *req.Spent
	status := strings.TrimSpace(*req.Status)

	if status == "" {
		apiError(w, http.StatusUnprocessableEntity, "Status must not be empty.")
		return
	}
	if allocated < 0 || spent < 0 {
		apiError(w, http.StatusUnprocessableEntity, "Amounts must be non-negative.")
		return
	}
	if allocated < spent {
		apiError(w, http.StatusUnprocessableEntity, "Allocated must be greater than spent.")
		return
	}

	if _, err := a.db.GetAllocation(*req.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			apiError(w, http.StatusNotFound, "Budget item not found.")
			return
		}
		apiError(w, http.StatusInternalServerError, "Update failed: %v", err)
		return
	}

	if err := a.db.UpdateAllocation(*req.ID, allocated, spent, status); err != nil {
		slog.Error("updating budget allocation", "id", *req.ID, "error", err)
		apiError(w, http.StatusInternalServerError, "Update failed: %v", err)
		return
	}

	updated, err := a.db.GetAllocation(*req.ID)
	if err != nil {
		apiError(w, http.StatusInternalServerError, "Update failed: %v", err)
		return
	}

	if admin := AdminFromContext(r); admin != nil {
		slog.Info("budget allocation updated", "admin", admin.Username, "id", updated.ID, "status", updated.Status)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"updatedItem": updated,
	})
}
