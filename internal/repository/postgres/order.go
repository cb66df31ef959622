package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kugicode/backend-coursework1/internal/domain"
	"github.com/kugicode/backend-coursework1/pkg/database"
	apperrors "github.com/kugicode/backend-coursework1/pkg/errors"
)

// OrderRepository implements repository.OrderRepository using PostgreSQL.
type OrderRepository struct {
	db database.DBTX
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(db database.DBTX) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create persists an order and its lines in a single transaction. Either
// the whole order lands or nothing does.
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin order transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx,
		`INSERT INTO orders (id, customer_name, customer_phone, total_units, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		order.ID,
		order.CustomerName,
		order.CustomerPhone,
		order.TotalUnits,
		order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for i, line := range order.Lines {
		_, err = tx.Exec(ctx,
			`INSERT INTO order_lines (order_id, position, lesson_id, quantity)
			 VALUES ($1, $2, $3, $4)`,
			order.ID,
			i,
			line.LessonID,
			line.Quantity,
		)
		if err != nil {
			return fmt.Errorf("insert order line %d: %w", i, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit order transaction: %w", err)
	}

	return nil
}

// GetByID returns a persisted order with its lines in cart order.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	order := &domain.Order{}
	err := r.db.QueryRow(ctx,
		`SELECT id, customer_name, customer_phone, total_units, created_at
		 FROM orders WHERE id = $1`,
		id,
	).Scan(
		&order.ID,
		&order.CustomerName,
		&order.CustomerPhone,
		&order.TotalUnits,
		&order.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("order", id)
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT lesson_id, quantity
		 FROM order_lines WHERE order_id = $1
		 ORDER BY position`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("get order lines: %w", err)
	}
	defer rows.Close()

	order.Lines = []domain.OrderLine{}
	for rows.Next() {
		var line domain.OrderLine
		if err := rows.Scan(&line.LessonID, &line.Quantity); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		order.Lines = append(order.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order lines: %w", err)
	}

	return order, nil
}
