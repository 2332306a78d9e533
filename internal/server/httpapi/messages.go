package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/outfitai/outfitai/internal/server/models"
)

type sendMessageResponse struct {
	Message   *models.Message `json:"message"`
	Delivered bool            `json:"delivered"`
}

// sendMessage relays as the session user, for clients without a socket.
func (s *HTTPServer) sendMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Recipient string `json:"recipient"`
		Message   string `json:"message"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	m, delivered, err := s.deps.Presence.Relay(r.Context(), identity(r).Username, req.Recipient, req.Message)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, sendMessageResponse{Message: m, Delivered: delivered})
}

func (s *HTTPServer) history(w http.ResponseWriter, r *http.Request) {
	msgs, err := s.deps.Messages.History(r.Context(), identity(r).Username, chi.URLParam(r, "username"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, msgs)
}

func (s *HTTPServer) conversations(w http.ResponseWriter, r *http.Request) {
	c, err := s.deps.Messages.Conversations(r.Context(), identity(r).Username)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *HTTPServer) online(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"online": s.deps.Presence.Online()})
}
