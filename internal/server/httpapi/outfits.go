package httpapi

import "net/http"

func (s *HTTPServer) suggestOutfits(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Occasion string `json:"occasion"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	suggestions, err := s.deps.Outfits.Suggest(r.Context(), identity(r).SubjectID, req.Occasion)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"suggestions": suggestions})
}

func (s *HTTPServer) chat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	reply, err := s.deps.Outfits.Chat(r.Context(), req.Message)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
}
