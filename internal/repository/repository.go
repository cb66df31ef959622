// Package repository defines the persistence interfaces for the lesson
// store. Concrete implementations live in the postgres subpackage.
package repository

import (
	"context"

	"github.com/kugicode/backend-coursework1/internal/domain"
	"github.com/kugicode/backend-coursework1/internal/search"
)

// LessonPatch is a sparse field-name to new-value mapping applied as a
// merge: named fields change, everything else on the stored lesson is
// untouched. Field names outside the core columns land in the lesson's
// attributes document.
type LessonPatch map[string]any

// UpdateOutcome reports how many lessons the identifier matched (0 or 1)
// and how many actually changed (0 when the patch was a no-op).
type UpdateOutcome struct {
	Matched  int64 `json:"matchedCount"`
	Modified int64 `json:"modifiedCount"`
}

// LessonRepository provides access to the lesson catalog.
type LessonRepository interface {
	// List returns the full catalog, no filter.
	List(ctx context.Context) ([]domain.Lesson, error)

	// Search returns the lessons matching a compiled predicate.
	Search(ctx context.Context, pred search.Predicate) ([]domain.Lesson, error)

	// ApplyPatch merges a sparse patch into the lesson with the given id.
	ApplyPatch(ctx context.Context, id string, patch LessonPatch) (UpdateOutcome, error)
}

// OrderRepository provides access to the append-only order store.
type OrderRepository interface {
	// Create persists a full order with its lines in one transaction.
	Create(ctx context.Context, order *domain.Order) error

	// GetByID returns a persisted order with its lines.
	GetByID(ctx context.Context, id string) (*domain.Order, error)
}
