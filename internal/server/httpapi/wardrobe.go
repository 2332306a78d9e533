package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/outfitai/outfitai/internal/server/services"
)

func (s *HTTPServer) addClothing(w http.ResponseWriter, r *http.Request) {
	img, ok := parseUploadForm(w, r)
	if !ok {
		return
	}

	item, err := s.deps.Wardrobe.Add(r.Context(), identity(r).SubjectID, services.NewClothing{
		Name:     r.FormValue("name"),
		Category: r.FormValue("category"),
		Color:    r.FormValue("color"),
		Image:    img,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (s *HTTPServer) listClothing(w http.ResponseWriter, r *http.Request) {
	items, err := s.deps.Wardrobe.List(r.Context(), identity(r).SubjectID, r.URL.Query().Get("category"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *HTTPServer) removeClothing(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Wardrobe.Remove(r.Context(), identity(r).SubjectID, chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeMsg(w, http.StatusOK, "Item deleted")
}
