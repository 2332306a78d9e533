package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/outfitai/outfitai/internal/common"
	"github.com/outfitai/outfitai/internal/server/services"
)

const (
	maxJSONBody   = 1 << 20
	maxUploadBody = 10 << 20
)

type message struct {
	Msg string `json:"msg"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMsg(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, message{Msg: msg})
}

// errorStatus maps service errors onto HTTP statuses and client messages.
func errorStatus(err error) (int, string) {
	var status int
	var msg string
	switch {
	case errors.Is(err, common.ErrorValidation):
		status, msg = http.StatusBadRequest, "Invalid request"
	case errors.Is(err, common.ErrorUnauthorized):
		status, msg = http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, common.ErrorForbidden):
		status, msg = http.StatusForbidden, "Forbidden"
	case errors.Is(err, common.ErrorNotFound):
		status, msg = http.StatusNotFound, "Not found"
	case errors.Is(err, common.ErrorAlreadyExists):
		status, msg = http.StatusConflict, "Already exists"
	case errors.Is(err, common.ErrorUpstream):
		return http.StatusBadGateway, "Upstream service unavailable"
	default:
		return http.StatusInternalServerError, "Server error"
	}

	var de *common.DetailedError
	if errors.As(err, &de) && de.Msg != "" {
		msg = de.Msg
	}
	return status, msg
}

func (s *HTTPServer) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := errorStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	}
	writeMsg(w, status, msg)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err := dec.Decode(dst); err != nil {
		writeMsg(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// parseUploadForm reads a multipart form and its optional "image" part.
func parseUploadForm(w http.ResponseWriter, r *http.Request) (services.Upload, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBody)
	if err := r.ParseMultipartForm(maxUploadBody); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeMsg(w, http.StatusRequestEntityTooLarge, "Upload is too large")
		} else {
			writeMsg(w, http.StatusBadRequest, "Invalid multipart form")
		}
		return services.Upload{}, false
	}

	f, hdr, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return services.Upload{}, true
	}
	if err != nil {
		writeMsg(w, http.StatusBadRequest, "Invalid image")
		return services.Upload{}, false
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		writeMsg(w, http.StatusBadRequest, "Invalid image")
		return services.Upload{}, false
	}

	ct := hdr.Header.Get("Content-Type")
	if ct == "" || ct == "application/octet-stream" {
		ct = http.DetectContentType(data)
	}
	return services.Upload{ContentType: ct, Data: data}, true
}
