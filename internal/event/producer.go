package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kugicode/backend-coursework1/internal/domain"
	pkgkafka "github.com/kugicode/backend-coursework1/pkg/kafka"
)

// Kafka topic constants for lesson store domain events.
const (
	TopicOrderCreated  = "lessonstore.order.created"
	TopicLessonUpdated = "lessonstore.lesson.updated"
)

// Aggregate type constants.
const (
	AggregateTypeOrder  = "order"
	AggregateTypeLesson = "lesson"
)

// Source identifier for events originating from this service.
const SourceLessonStore = "lessonstore"

// OrderCreatedData is the payload for an order.created event (full order snapshot).
type OrderCreatedData struct {
	ID            string          `json:"id"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone"`
	Lines         []OrderLineData `json:"lines"`
	TotalUnits    int             `json:"total_units"`
}

// OrderLineData is the event payload for one order line.
type OrderLineData struct {
	LessonID string `json:"lesson_id"`
	Quantity int    `json:"quantity"`
}

// LessonUpdatedData is the payload for a lesson.updated event.
type LessonUpdatedData struct {
	LessonID string         `json:"lesson_id"`
	Fields   map[string]any `json:"fields"`
}

// Producer publishes lesson store domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishOrderCreated publishes an order.created event with the full order snapshot.
func (p *Producer) PublishOrderCreated(ctx context.Context, order *domain.Order) error {
	lines := make([]OrderLineData, len(order.Lines))
	for i, line := range order.Lines {
		lines[i] = OrderLineData{
			LessonID: line.LessonID,
			Quantity: line.Quantity,
		}
	}

	data := OrderCreatedData{
		ID:            order.ID,
		CustomerName:  order.CustomerName,
		CustomerPhone: order.CustomerPhone,
		Lines:         lines,
		TotalUnits:    order.TotalUnits,
	}

	event, err := pkgkafka.NewEvent(TopicOrderCreated, order.ID, AggregateTypeOrder, SourceLessonStore, data)
	if err != nil {
		return fmt.Errorf("create order.created event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicOrderCreated, event); err != nil {
		return fmt.Errorf("publish order.created event: %w", err)
	}

	p.logger.DebugContext(ctx, "published order.created event",
		slog.String("order_id", order.ID),
		slog.Int("total_units", order.TotalUnits),
	)

	return nil
}

// PublishLessonUpdated publishes a lesson.updated event with the patched fields.
func (p *Producer) PublishLessonUpdated(ctx context.Context, lessonID string, fields map[string]any) error {
	data := LessonUpdatedData{
		LessonID: lessonID,
		Fields:   fields,
	}

	event, err := pkgkafka.NewEvent(TopicLessonUpdated, lessonID, AggregateTypeLesson, SourceLessonStore, data)
	if err != nil {
		return fmt.Errorf("create lesson.updated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicLessonUpdated, event); err != nil {
		return fmt.Errorf("publish lesson.updated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published lesson.updated event",
		slog.String("lesson_id", lessonID),
	)

	return nil
}
