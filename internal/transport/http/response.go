package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"quiz-grading-service/internal/domain"
)

type successResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Data      any       `json:"data"`
	Count     *int      `json:"count,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type errorResponse struct {
	Success   bool      `json:"success"`
	Error     string    `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeSuccess(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, successResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().UTC(),
	})
}

func writeList[T any](w http.ResponseWriter, message string, items []T) {
	count := len(items)
	writeJSON(w, http.StatusOK, successResponse{
		Success:   true,
		Message:   message,
		Data:      items,
		Count:     &count,
		Timestamp: time.Now().UTC(),
	})
}

func writeFailure(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{
		Success:   false,
		Error:     message,
		Timestamp: time.Now().UTC(),
	})
}

// writeError maps domain error kinds to status codes. Unclassified errors are
// logged and hidden from the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := classify(err)
	if status == http.StatusInternalServerError {
		log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
	}
	writeFailure(w, status, message)
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, err.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
