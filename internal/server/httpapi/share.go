package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *HTTPServer) createShare(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Clothes string `json:"clothes"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	link, url, err := s.deps.Share.Create(r.Context(), identity(r).SubjectID, req.Clothes)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"code": link.Code, "url": url})
}

func (s *HTTPServer) resolveShare(w http.ResponseWriter, r *http.Request) {
	out, err := s.deps.Share.Resolve(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
