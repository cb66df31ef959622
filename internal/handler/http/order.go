package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kugicode/backend-coursework1/internal/service"
	"github.com/kugicode/backend-coursework1/pkg/httputil"
	"github.com/kugicode/backend-coursework1/pkg/validator"
)

// OrderHandler handles HTTP requests for order submission.
type OrderHandler struct {
	service *service.OrderService
	logger  *slog.Logger
}

// NewOrderHandler creates a new order HTTP handler.
func NewOrderHandler(svc *service.OrderService, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		service: svc,
		logger:  logger,
	}
}

// --- Request DTOs ---

// CartLineRequest is one cart entry in an order submission.
type CartLineRequest struct {
	ItemID   string `json:"itemId" validate:"required,uuid"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

// CreateOrderRequest is the JSON request body for submitting an order.
// Name, phone and cart presence are checked by the order service so the
// caller sees one failure at a time, in a fixed precedence.
type CreateOrderRequest struct {
	CustomerName  string            `json:"customerName"`
	CustomerPhone string            `json:"customerPhone"`
	Cart          []CartLineRequest `json:"cart" validate:"omitempty,dive"`
}

// --- Handlers ---

// CreateOrder handles POST /api/v1/orders.
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	cart := make([]service.CartLine, len(req.Cart))
	for i, line := range req.Cart {
		cart[i] = service.CartLine{
			LessonID: line.ItemID,
			Quantity: line.Quantity,
		}
	}

	order, err := h.service.Submit(r.Context(), service.SubmitOrderInput{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Cart:          cart,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: map[string]any{
		"orderId":    order.ID,
		"totalUnits": order.TotalUnits,
	}})
}

// GetOrder handles GET /api/v1/orders/{id}.
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	order, err := h.service.GetOrder(r.Context(), id.String())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: order})
}
