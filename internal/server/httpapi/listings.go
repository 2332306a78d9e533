package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/outfitai/outfitai/internal/server/services"
)

func (s *HTTPServer) createListing(w http.ResponseWriter, r *http.Request) {
	img, ok := parseUploadForm(w, r)
	if !ok {
		return
	}

	l, err := s.deps.Listings.Create(r.Context(), identity(r).SubjectID, services.NewListing{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Price:       r.FormValue("price"),
		Size:        r.FormValue("size"),
		Image:       img,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, l)
}

func (s *HTTPServer) listListings(w http.ResponseWriter, r *http.Request) {
	l, err := s.deps.Listings.ListAvailable(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (s *HTTPServer) myListings(w http.ResponseWriter, r *http.Request) {
	l, err := s.deps.Listings.ListMine(r.Context(), identity(r).SubjectID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (s *HTTPServer) getListing(w http.ResponseWriter, r *http.Request) {
	l, err := s.deps.Listings.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (s *HTTPServer) markListingSold(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Listings.MarkSold(r.Context(), identity(r).SubjectID, chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeMsg(w, http.StatusOK, "Listing marked as sold")
}

func (s *HTTPServer) deleteListing(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Listings.Delete(r.Context(), identity(r).SubjectID, chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeMsg(w, http.StatusOK, "Listing deleted")
}
