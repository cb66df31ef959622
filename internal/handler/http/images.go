package http

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/kugicode/backend-coursework1/pkg/httputil"
)

// ImageHandler serves static lesson images from a local directory,
// reporting missing files as a JSON not-found error instead of a bare 404.
type ImageHandler struct {
	dir    string
	logger *slog.Logger
}

// NewImageHandler creates a handler serving images from dir.
func NewImageHandler(dir string, logger *slog.Logger) *ImageHandler {
	return &ImageHandler{
		dir:    dir,
		logger: logger,
	}
}

// ServeImage handles GET /images/*.
func (h *ImageHandler) ServeImage(w http.ResponseWriter, r *http.Request) {
	rel := chi.URLParam(r, "*")

	// Rooted clean strips any ".." so the path cannot escape the images
	// directory.
	path := filepath.Join(h.dir, filepath.Clean("/"+rel))
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		httputil.WriteJSON(w, http.StatusNotFound, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "NOT_FOUND", Message: "image file not found"},
		})
		return
	}

	http.ServeFile(w, r, path)
}
