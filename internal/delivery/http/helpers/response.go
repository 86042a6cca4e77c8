package helpers

import (
	"encoding/json"
	"net/http"
)

// MessageResponse is the body returned by successful signup and unregister calls.
// swagger:model MessageResponse
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body returned for every error.
// swagger:model ErrorResponse
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// WriteJSON sets Content-Type to application/json, writes statusCode, and encodes v.
func WriteJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteJSONMessage writes {"message": message} with statusCode.
func WriteJSONMessage(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, MessageResponse{Message: message})
}

// WriteJSONError writes {"detail": detail} with statusCode.
func WriteJSONError(w http.ResponseWriter, statusCode int, detail string) {
	WriteJSON(w, statusCode, ErrorResponse{Detail: detail})
}
