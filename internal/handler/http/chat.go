package http

import (
	"log/slog"
	"net/http"

	"github.com/kugicode/backend-coursework1/internal/chat"
	"github.com/kugicode/backend-coursework1/pkg/httputil"
	"github.com/kugicode/backend-coursework1/pkg/validator"
)

// ChatHandler proxies chat prompts to the upstream completion API.
type ChatHandler struct {
	client *chat.Client
	logger *slog.Logger
}

// NewChatHandler creates a new chat HTTP handler.
func NewChatHandler(client *chat.Client, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{
		client: client,
		logger: logger,
	}
}

// ChatRequest is the JSON request body for a chat prompt.
type ChatRequest struct {
	Message string `json:"message" validate:"required"`
}

// Chat handles POST /api/v1/chat.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	reply, err := h.client.Complete(r.Context(), req.Message)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{
		"reply": reply,
	}})
}
