package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"belakoo-backend-go/internal/services"
)

type ErrorResponse struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, ErrorResponse{Message: message})
}

func mapServiceError(w http.ResponseWriter, err error) bool {
	if err == nil {
		return false
	}
	var verr *validationError
	if errors.As(err, &verr) {
		WriteJSON(w, http.StatusBadRequest, ErrorResponse{Message: verr.Error(), Fields: verr.fields})
		return true
	}
	var serr services.ServiceError
	if errors.As(err, &serr) {
		WriteError(w, serr.Status, serr.Message)
		return true
	}
	return false
}

// fail writes err as a JSON error. Anything that is not a service or
// validation error is logged and reported as a bare 500.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	if mapServiceError(w, err) {
		return
	}
	s.Log.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	WriteError(w, http.StatusInternalServerError, "Internal server error")
}
