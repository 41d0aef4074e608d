package middleware

import (
	"encoding/json"
	"net/http"

	"hrms-portal/internal/model"
)

func jsonEncode(w http.ResponseWriter, value any) error {
	return json.NewEncoder(w).Encode(value)
}

// writeMessage renders the {"message": ...} body the portal reads for
// non-validation failures.
func writeMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = jsonEncode(w, model.MessageResponse{Message: message})
}
