package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kugicode/backend-coursework1/internal/chat"
	"github.com/kugicode/backend-coursework1/internal/config"
	"github.com/kugicode/backend-coursework1/internal/service"
	"github.com/kugicode/backend-coursework1/pkg/health"
	"github.com/kugicode/backend-coursework1/pkg/middleware"
)

const serviceName = "lessonstore"

// NewRouter creates a chi router with all lesson store routes registered.
func NewRouter(
	cfg *config.Config,
	catalogService *service.CatalogService,
	orderService *service.OrderService,
	chatClient *chat.Client,
	healthHandler *health.Handler,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Environment:    cfg.Environment,
	}))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.Tracing(serviceName))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.PrometheusMetrics(serviceName))

	// Health and metrics endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	// Lesson API endpoints
	lessonHandler := NewLessonHandler(catalogService, logger)

	r.Route("/api/v1/lessons", func(r chi.Router) {
		r.Get("/", lessonHandler.ListLessons)
		r.Get("/search", lessonHandler.SearchLessons)

		r.Group(func(r chi.Router) {
			r.Use(ContentTypeJSON)
			r.Put("/{id}", lessonHandler.UpdateLesson)
		})
	})

	// Order API endpoints
	orderHandler := NewOrderHandler(orderService, logger)

	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Post("/", orderHandler.CreateOrder)
		r.Get("/{id}", orderHandler.GetOrder)
	})

	// Chat passthrough endpoint
	chatHandler := NewChatHandler(chatClient, logger)

	r.Route("/api/v1/chat", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Post("/", chatHandler.Chat)
	})

	// Static lesson images
	imageHandler := NewImageHandler(cfg.ImagesDir, logger)
	r.Get("/images/*", imageHandler.ServeImage)

	return r
}
