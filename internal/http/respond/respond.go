package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// MessageBody is the payload of plain status responses.
type MessageBody struct {
	Message string `json:"message"`
}

// JSON writes payload as a JSON response.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Default().Error("respond: encode payload failed", "error", err)
	}
}

// Message writes {"message": message}.
func Message(w http.ResponseWriter, status int, message string) {
	JSON(w, status, MessageBody{Message: message})
}

// Error writes {"message": ...} using the standard status text.
func Error(w http.ResponseWriter, status int) {
	Message(w, status, http.StatusText(status))
}
