package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kugicode/backend-coursework1/internal/repository"
	"github.com/kugicode/backend-coursework1/internal/service"
	"github.com/kugicode/backend-coursework1/pkg/httputil"
)

// maxPatchBytes bounds the size of an update request body.
const maxPatchBytes = 1 << 20

// LessonHandler handles HTTP requests for the lesson catalog.
type LessonHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

// NewLessonHandler creates a new lesson HTTP handler.
func NewLessonHandler(svc *service.CatalogService, logger *slog.Logger) *LessonHandler {
	return &LessonHandler{
		service: svc,
		logger:  logger,
	}
}

// ListLessons handles GET /api/v1/lessons.
func (h *LessonHandler) ListLessons(w http.ResponseWriter, r *http.Request) {
	lessons, err := h.service.ListLessons(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: lessons})
}

// SearchLessons handles GET /api/v1/lessons/search?q=term. An absent or
// blank term yields an empty list.
func (h *LessonHandler) SearchLessons(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")

	lessons, err := h.service.SearchLessons(r.Context(), term)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: lessons})
}

// UpdateLesson handles PUT /api/v1/lessons/{id}. The body is a sparse
// field-to-value mapping merged into the lesson; any field name is
// accepted. Zero matched rows are reported as not found.
func (h *LessonHandler) UpdateLesson(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	r.Body = http.MaxBytesReader(w, r.Body, maxPatchBytes)
	var patch repository.LessonPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "request body must be a JSON object"},
		})
		return
	}

	outcome, err := h.service.ApplyUpdate(r.Context(), id, patch)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	if outcome.Matched == 0 {
		httputil.WriteJSON(w, http.StatusNotFound, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "NOT_FOUND", Message: "lesson not found"},
		})
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: outcome})
}
