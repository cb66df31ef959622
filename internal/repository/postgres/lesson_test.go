package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kugicode/backend-coursework1/internal/repository"
	"github.com/kugicode/backend-coursework1/internal/search"
	"github.com/kugicode/backend-coursework1/pkg/database"
)

func setupLessonRepo(t *testing.T) (*LessonRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewLessonRepository(mock), mock
}

var lessonCols = []string{
	"id", "subject", "location", "price", "spaces", "attributes", "created_at", "updated_at",
}

func lessonRow(rows *pgxmock.Rows, id, subject, location string, price float64, spaces int) *pgxmock.Rows {
	now := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	return rows.AddRow(id, subject, location, price, spaces, map[string]any{}, now, now)
}

func TestLessonRepository_List(t *testing.T) {
	repo, mock := setupLessonRepo(t)

	rows := pgxmock.NewRows(lessonCols)
	lessonRow(rows, "a1", "Maths", "London", 50, 5)
	lessonRow(rows, "a2", "Music", "Bristol", 80, 10)

	mock.ExpectQuery(`SELECT id, subject, location, price, spaces, attributes, created_at, updated_at FROM lessons`).
		WillReturnRows(rows)

	lessons, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, lessons, 2)
	assert.Equal(t, "Maths", lessons[0].Subject)
	assert.Equal(t, 5, lessons[0].Spaces)
	assert.Equal(t, "Bristol", lessons[1].Location)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLessonRepository_List_Empty(t *testing.T) {
	repo, mock := setupLessonRepo(t)

	mock.ExpectQuery(`FROM lessons`).WillReturnRows(pgxmock.NewRows(lessonCols))

	lessons, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, lessons)
	assert.Empty(t, lessons)
}

func TestLessonRepository_Search(t *testing.T) {
	repo, mock := setupLessonRepo(t)

	pred, ok := search.Compile("50")
	require.True(t, ok)

	rows := pgxmock.NewRows(lessonCols)
	lessonRow(rows, "a1", "Maths", "London", 50, 5)

	mock.ExpectQuery(`WHERE \(subject ILIKE \$1`).
		WithArgs("%50%", "%50%").
		WillReturnRows(rows)

	lessons, err := repo.Search(context.Background(), pred)
	require.NoError(t, err)
	require.Len(t, lessons, 1)
	assert.Equal(t, float64(50), lessons[0].Price)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLessonRepository_Search_QueryError(t *testing.T) {
	repo, mock := setupLessonRepo(t)

	pred, ok := search.Compile("Maths")
	require.True(t, ok)

	mock.ExpectQuery(`WHERE \(subject ILIKE \$1`).
		WithArgs("%Maths%", "%Maths%").
		WillReturnError(errors.New("connection reset"))

	_, err := repo.Search(context.Background(), pred)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "search lessons")
}

func TestLessonRepository_ApplyPatch_ColumnField(t *testing.T) {
	repo, mock := setupLessonRepo(t)

	mock.ExpectQuery(`WITH target AS`).
		WithArgs("a1", float64(42)).
		WillReturnRows(pgxmock.NewRows([]string{"matched", "modified"}).AddRow(int64(1), int64(1)))

	out, err := repo.ApplyPatch(context.Background(), "a1", repository.LessonPatch{"price": float64(42)})
	require.NoError(t, err)
	assert.Equal(t, repository.UpdateOutcome{Matched: 1, Modified: 1}, out)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLessonRepository_ApplyPatch_UnknownFieldMergesAttributes(t *testing.T) {
	repo, mock := setupLessonRepo(t)

	mock.ExpectQuery(`attributes = attributes \|\| \$2::jsonb`).
		WithArgs("a1", []byte(`{"instructor":"Ms Hill"}`)).
		WillReturnRows(pgxmock.NewRows([]string{"matched", "modified"}).AddRow(int64(1), int64(1)))

	out, err := repo.ApplyPatch(context.Background(), "a1", repository.LessonPatch{"instructor": "Ms Hill"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), out.Modified)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLessonRepository_ApplyPatch_ArrayAttributeUsesMergeComparison(t *testing.T) {
	repo, mock := setupLessonRepo(t)

	// Shrinking an array-valued attribute must still count as a change.
	// Containment would call ["math"] already-present inside
	// ["math","easy"]; only comparing the merged document against the
	// stored one detects that || replaces the array.
	mock.ExpectQuery(`l\.attributes \|\| \$2::jsonb IS DISTINCT FROM l\.attributes`).
		WithArgs("a1", []byte(`{"tags":["math"]}`)).
		WillReturnRows(pgxmock.NewRows([]string{"matched", "modified"}).AddRow(int64(1), int64(1)))

	out, err := repo.ApplyPatch(context.Background(), "a1", repository.LessonPatch{"tags": []any{"math"}})
	require.NoError(t, err)
	assert.Equal(t, repository.UpdateOutcome{Matched: 1, Modified: 1}, out)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLessonRepository_ApplyPatch_NoOpReportsZeroModified(t *testing.T) {
	repo, mock := setupLessonRepo(t)

	mock.ExpectQuery(`WITH target AS`).
		WithArgs("a1", float64(50)).
		WillReturnRows(pgxmock.NewRows([]string{"matched", "modified"}).AddRow(int64(1), int64(0)))

	out, err := repo.ApplyPatch(context.Background(), "a1", repository.LessonPatch{"price": float64(50)})
	require.NoError(t, err)
	assert.Equal(t, repository.UpdateOutcome{Matched: 1, Modified: 0}, out)
}

func TestLessonRepository_ApplyPatch_MissingRow(t *testing.T) {
	repo, mock := setupLessonRepo(t)

	mock.ExpectQuery(`WITH target AS`).
		WithArgs("missing", "Chemistry").
		WillReturnRows(pgxmock.NewRows([]string{"matched", "modified"}).AddRow(int64(0), int64(0)))

	out, err := repo.ApplyPatch(context.Background(), "missing", repository.LessonPatch{"subject": "Chemistry"})
	require.NoError(t, err)
	assert.Equal(t, repository.UpdateOutcome{}, out)
}

func TestLessonRepository_ApplyPatch_EmptyPatchOnlyMatches(t *testing.T) {
	repo, mock := setupLessonRepo(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM lessons WHERE id = \$1`).
		WithArgs("a1").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(1)))

	out, err := repo.ApplyPatch(context.Background(), "a1", repository.LessonPatch{})
	require.NoError(t, err)
	assert.Equal(t, repository.UpdateOutcome{Matched: 1, Modified: 0}, out)
}
