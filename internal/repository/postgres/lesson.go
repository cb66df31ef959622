package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/kugicode/backend-coursework1/internal/domain"
	"github.com/kugicode/backend-coursework1/internal/repository"
	"github.com/kugicode/backend-coursework1/internal/search"
	"github.com/kugicode/backend-coursework1/pkg/database"
)

// lessonColumns is the canonical select list for lesson rows.
const lessonColumns = "id, subject, location, price, spaces, attributes, created_at, updated_at"

// patchColumns are the patch keys that map to real columns. Every other
// key is merged into the attributes document. Column names in generated
// SQL only ever come from this list, never from caller input.
var patchColumns = [...]string{"subject", "location", "price", "spaces"}

// LessonRepository implements repository.LessonRepository using PostgreSQL.
type LessonRepository struct {
	db database.DBTX
}

// NewLessonRepository creates a new PostgreSQL-backed lesson repository.
func NewLessonRepository(db database.DBTX) *LessonRepository {
	return &LessonRepository{db: db}
}

// List returns every lesson in the catalog.
func (r *LessonRepository) List(ctx context.Context) (_ []domain.Lesson, err error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons`

	ctx, end := database.TraceQuery(ctx, "lessons.list", query)
	defer func() { end(err) }()

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	defer rows.Close()

	return scanLessons(rows)
}

// Search returns the lessons matching a compiled search predicate.
func (r *LessonRepository) Search(ctx context.Context, pred search.Predicate) (_ []domain.Lesson, err error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE ` + pred.SQL(1)

	ctx, end := database.TraceQuery(ctx, "lessons.search", query)
	defer func() { end(err) }()

	rows, err := r.db.Query(ctx, query, pred.Args()...)
	if err != nil {
		return nil, fmt.Errorf("search lessons: %w", err)
	}
	defer rows.Close()

	return scanLessons(rows)
}

// ApplyPatch merges a sparse patch into one lesson. Patch keys naming a
// core column update that column; all remaining keys are merged into the
// attributes document. The outcome distinguishes "row exists" from "row
// actually changed" so a no-op patch reports modified = 0.
func (r *LessonRepository) ApplyPatch(ctx context.Context, id string, patch repository.LessonPatch) (_ repository.UpdateOutcome, err error) {
	var (
		sets  []string
		conds []string
		args  = []any{id}
	)

	for _, col := range patchColumns {
		v, ok := patch[col]
		if !ok {
			continue
		}
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
		conds = append(conds, fmt.Sprintf("l.%s IS DISTINCT FROM $%d", col, len(args)))
	}

	extras := make(map[string]any)
	for k, v := range patch {
		if !isPatchColumn(k) {
			extras[k] = v
		}
	}
	if len(extras) > 0 {
		extraJSON, merr := json.Marshal(extras)
		if merr != nil {
			return repository.UpdateOutcome{}, fmt.Errorf("marshal patch attributes: %w", merr)
		}
		args = append(args, extraJSON)
		sets = append(sets, fmt.Sprintf("attributes = attributes || $%d::jsonb", len(args)))
		// Containment (@>) is the wrong change test here: it treats a
		// subset array or a partially-overlapping nested object as "already
		// present" even though || would replace the value. Compare the
		// merged document against the stored one instead.
		conds = append(conds, fmt.Sprintf("l.attributes || $%d::jsonb IS DISTINCT FROM l.attributes", len(args)))
	}

	if len(sets) == 0 {
		// Empty patch: nothing can change, only report whether the row exists.
		var matched int64
		query := `SELECT count(*) FROM lessons WHERE id = $1`

		ctx, end := database.TraceQuery(ctx, "lessons.patch", query)
		defer func() { end(err) }()

		if err = r.db.QueryRow(ctx, query, id).Scan(&matched); err != nil {
			return repository.UpdateOutcome{}, fmt.Errorf("match lesson: %w", err)
		}
		return repository.UpdateOutcome{Matched: matched}, nil
	}

	query := fmt.Sprintf(`
		WITH target AS (
			SELECT id FROM lessons WHERE id = $1
		), changed AS (
			UPDATE lessons l
			SET %s, updated_at = now()
			FROM target t
			WHERE l.id = t.id AND (%s)
			RETURNING l.id
		)
		SELECT (SELECT count(*) FROM target) AS matched,
		       (SELECT count(*) FROM changed) AS modified`,
		strings.Join(sets, ", "), strings.Join(conds, " OR "))

	ctx, end := database.TraceQuery(ctx, "lessons.patch", query)
	defer func() { end(err) }()

	var out repository.UpdateOutcome
	if err = r.db.QueryRow(ctx, query, args...).Scan(&out.Matched, &out.Modified); err != nil {
		return repository.UpdateOutcome{}, fmt.Errorf("apply lesson patch: %w", err)
	}

	return out, nil
}

func isPatchColumn(name string) bool {
	for _, col := range patchColumns {
		if name == col {
			return true
		}
	}
	return false
}

// scanLessons drains rows into a slice, always returning a non-nil slice
// so empty results encode as [] rather than null.
func scanLessons(rows pgx.Rows) ([]domain.Lesson, error) {
	lessons := []domain.Lesson{}
	for rows.Next() {
		var l domain.Lesson
		if err := rows.Scan(
			&l.ID,
			&l.Subject,
			&l.Location,
			&l.Price,
			&l.Spaces,
			&l.Attributes,
			&l.CreatedAt,
			&l.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan lesson: %w", err)
		}
		lessons = append(lessons, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lessons: %w", err)
	}
	return lessons, nil
}
