package http

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"path"
	"time"

	"portfolio-views/internal/stores"
)

type serveUploadHandler struct {
	uploadStore stores.UploadStore
}

func NewServeUploadHandler(uploadStore stores.UploadStore) AppHttpHandler {
	return &serveUploadHandler{uploadStore: uploadStore}
}

// Handle processes GET /uploads/* requests.
func (h *serveUploadHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	readCloser, err := h.uploadStore.Open(r.Context(), r.URL.Path)
	if err != nil {
		if errors.Is(err, stores.ErrUploadNotFound) {
			return errUploadNotFound(err)
		}
		return err
	}
	defer readCloser.Close()

	name := path.Base(r.URL.Path)
	if contentType := mime.TypeByExtension(path.Ext(name)); contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	w.Header().Set("X-Content-Type-Options", "nosniff")

	if seeker, ok := readCloser.(io.ReadSeeker); ok {
		http.ServeContent(w, r, name, time.Time{}, seeker)
		return nil
	}

	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, readCloser)
	return nil
}
