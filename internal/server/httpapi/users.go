package httpapi

import (
	"errors"
	"net/http"

	"github.com/outfitai/outfitai/internal/common"
	"github.com/outfitai/outfitai/internal/server/auth"
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *HTTPServer) register(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if !decodeJSON(w, r, &req) {
		return
	}

	u, err := s.deps.Users.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "Registered", "username", u.UserName)
	writeJSON(w, http.StatusCreated, u)
}

func (s *HTTPServer) login(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if !decodeJSON(w, r, &req) {
		return
	}

	u, token, err := s.deps.Users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			writeMsg(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		s.writeError(w, r, err)
		return
	}

	auth.SetSessionCookie(w, token, s.deps.Users.TokenTTL(), s.deps.Production)
	writeJSON(w, http.StatusOK, u)
}

func (s *HTTPServer) logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w, s.deps.Production)
	writeMsg(w, http.StatusOK, "Logged out")
}

func (s *HTTPServer) me(w http.ResponseWriter, r *http.Request) {
	id := identity(r)
	u, err := s.deps.Users.Me(r.Context(), id.SubjectID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// identity is only called behind the gate, which always sets it.
func identity(r *http.Request) auth.Identity {
	id, _ := auth.IdentityFrom(r.Context())
	return id
}
