package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kugicode/backend-coursework1/internal/domain"
	"github.com/kugicode/backend-coursework1/internal/event"
	"github.com/kugicode/backend-coursework1/internal/repository"
	apperrors "github.com/kugicode/backend-coursework1/pkg/errors"
)

// OrderService implements the business logic for order submission.
type OrderService struct {
	repo     repository.OrderRepository
	producer *event.Producer
	logger   *slog.Logger
	now      func() time.Time
}

// NewOrderService creates a new order service.
func NewOrderService(repo repository.OrderRepository, producer *event.Producer, logger *slog.Logger) *OrderService {
	return &OrderService{
		repo:     repo,
		producer: producer,
		logger:   logger,
		now:      time.Now,
	}
}

// CartLine is one requested (lesson, quantity) pair in a submission.
type CartLine struct {
	LessonID string
	Quantity int
}

// SubmitOrderInput holds the parameters for submitting an order.
type SubmitOrderInput struct {
	CustomerName  string
	CustomerPhone string
	Cart          []CartLine
}

// Submit validates a cart submission and persists it as an order.
// Validation short-circuits on the first failure: name, then phone,
// then the cart itself. Lines are carried over 1:1 in cart order; the
// referenced lessons are not checked for existence or remaining spaces.
func (s *OrderService) Submit(ctx context.Context, input SubmitOrderInput) (*domain.Order, error) {
	if input.CustomerName == "" {
		return nil, apperrors.InvalidInput("customer name is required")
	}
	if input.CustomerPhone == "" {
		return nil, apperrors.InvalidInput("customer phone is required")
	}
	if len(input.Cart) == 0 {
		return nil, apperrors.InvalidInput("cart must contain at least one item")
	}

	lines := make([]domain.OrderLine, len(input.Cart))
	for i, entry := range input.Cart {
		lines[i] = domain.OrderLine{
			LessonID: entry.LessonID,
			Quantity: entry.Quantity,
		}
	}

	order := &domain.Order{
		ID:            uuid.New().String(),
		CustomerName:  input.CustomerName,
		CustomerPhone: input.CustomerPhone,
		Lines:         lines,
		TotalUnits:    domain.SumUnits(lines),
		CreatedAt:     s.now().UTC(),
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}

	// Publish event; errors are logged but do not fail the operation.
	if err := s.producer.PublishOrderCreated(ctx, order); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.created event",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "order submitted",
		slog.String("order_id", order.ID),
		slog.Int("lines", len(order.Lines)),
		slog.Int("total_units", order.TotalUnits),
	)

	return order, nil
}

// GetOrder returns a persisted order by id.
func (s *OrderService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return s.repo.GetByID(ctx, id)
}
