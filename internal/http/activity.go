package httpapi

import (
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ActivitySocket streams lesson and ingestion events to admins. Browsers
// cannot set headers on websocket requests, so the token travels in the query.
func (s *Server) ActivitySocket(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("token")
	if query == "" {
		WriteError(w, http.StatusUnauthorized, "Authentication failed")
		return
	}
	identity, err := s.Tokens.ParseAccessToken(query)
	if err != nil {
		WriteError(w, http.StatusUnauthorized, "Authentication failed")
		return
	}
	if !identity.IsAdmin() {
		WriteError(w, http.StatusForbidden, "Not allowed")
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.Hub.Add(conn)
	defer func() {
		s.Hub.Remove(conn)
		_ = conn.Close()
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
