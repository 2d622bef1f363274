package utils

import (
	"encoding/json"
	"errors"
	"net/http"

	"wholesale-backend/internal/models"
)

// JSON writes a JSON response with the given status code
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// Error writes a JSON error body
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// ServiceError maps a service-layer error onto the right HTTP status:
// missing records become 404, everything else 500.
func ServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, models.ErrNotFound) {
		Error(w, http.StatusNotFound, "record not found")
		return
	}
	Error(w, http.StatusInternalServerError, err.Error())
}
