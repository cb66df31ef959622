package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/kugicode/backend-coursework1/internal/domain"
	"github.com/kugicode/backend-coursework1/internal/event"
	"github.com/kugicode/backend-coursework1/internal/repository"
	"github.com/kugicode/backend-coursework1/internal/search"
)

// CatalogService implements the business logic for listing, searching and
// updating lessons.
type CatalogService struct {
	repo     repository.LessonRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(repo repository.LessonRepository, producer *event.Producer, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		repo:     repo,
		producer: producer,
		logger:   logger,
	}
}

// ListLessons returns the full catalog.
func (s *CatalogService) ListLessons(ctx context.Context) ([]domain.Lesson, error) {
	return s.repo.List(ctx)
}

// SearchLessons returns the lessons matching a free-text term. An empty
// or whitespace-only term yields an empty result set, not the full
// catalog.
func (s *CatalogService) SearchLessons(ctx context.Context, term string) ([]domain.Lesson, error) {
	pred, ok := search.Compile(term)
	if !ok {
		return []domain.Lesson{}, nil
	}

	lessons, err := s.repo.Search(ctx, pred)
	if err != nil {
		return nil, err
	}

	s.logger.DebugContext(ctx, "lesson search executed",
		slog.String("term", term),
		slog.Int("results", len(lessons)),
	)

	return lessons, nil
}

// ApplyUpdate merges a sparse patch into one lesson. A malformed id is
// reported as zero matched, the same as a well-formed id that targets
// nothing.
func (s *CatalogService) ApplyUpdate(ctx context.Context, id string, patch repository.LessonPatch) (repository.UpdateOutcome, error) {
	if _, err := uuid.Parse(id); err != nil {
		s.logger.DebugContext(ctx, "rejected malformed lesson id",
			slog.String("lesson_id", id),
		)
		return repository.UpdateOutcome{}, nil
	}

	outcome, err := s.repo.ApplyPatch(ctx, id, patch)
	if err != nil {
		return repository.UpdateOutcome{}, err
	}

	if outcome.Modified > 0 {
		// Publish event; errors are logged but do not fail the operation.
		if err := s.producer.PublishLessonUpdated(ctx, id, patch); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish lesson.updated event",
				slog.String("lesson_id", id),
				slog.String("error", err.Error()),
			)
		}

		s.logger.InfoContext(ctx, "lesson updated",
			slog.String("lesson_id", id),
			slog.Int("fields", len(patch)),
		)
	}

	return outcome, nil
}
