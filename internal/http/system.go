package httpapi

import (
	"net/http"

	"belakoo-backend-go/internal/services"
)

func (s *Server) SystemStatus(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, services.CaptureSystemStatus(r.Context(), s.Store, s.Hub, s.Config.SystemDiskPath))
}
