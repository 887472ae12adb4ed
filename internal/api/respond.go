package api

import (
	"encoding/json"
	"fmt"
	"net/http"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

// apiError writes the standard error envelope {success:false, message}.
// The budget listing endpoint uses a different shape for historical
// reasons, see listBudget.
func apiError(w http.ResponseWriter, code int, format string, args ...any) {
	writeJSON(w, code, map[string]any{
		"success": false,
		"message": fmt.Sprintf(format, args...),
	})
}
