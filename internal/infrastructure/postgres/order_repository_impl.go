package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pixelgrove/storefront/internal/domain/entity"
	"github.com/pixelgrove/storefront/internal/domain/repository"
)

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

func (r *OrderRepository) Create(ctx context.Context, o *entity.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := insertOrder(ctx, tx, o, ""); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// CreateCheckout writes the order, grants library access for every line and
// clears the matching cart lines in one transaction. A retried attempt with
// the same idempotency key returns the stored order untouched.
func (r *OrderRepository) CreateCheckout(ctx context.Context, o *entity.Order, idempotencyKey string) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if idempotencyKey != "" {
		var existingID string
		err := tx.QueryRow(ctx, `
			SELECT id FROM orders WHERE idempotency_key = $1
		`, idempotencyKey).Scan(&existingID)
		switch {
		case err == nil:
			stored, err := r.getByID(ctx, tx, existingID)
			if err != nil {
				return false, err
			}
			*o = *stored
			return true, tx.Commit(ctx)
		case !errors.Is(err, pgx.ErrNoRows):
			return false, err
		}
	}

	if err := insertOrder(ctx, tx, o, idempotencyKey); err != nil {
		// Two concurrent checkouts with the same key can both pass the SELECT
		// above; the loser hits the unique constraint. Treat it as a replay.
		if isIdempotencyConflict(err) {
			_ = tx.Rollback(ctx)
			return r.replayByKey(ctx, o, idempotencyKey)
		}
		return false, err
	}

	var libraryID string
	if err := tx.QueryRow(ctx, `
		INSERT INTO libraries (user_id) VALUES ($1)
		ON CONFLICT (user_id) DO UPDATE SET updated_at = now()
		RETURNING id
	`, o.UserID).Scan(&libraryID); err != nil {
		return false, err
	}

	for _, item := range o.Items {
		if _, err := tx.Exec(ctx, `
			INSERT INTO library_games (library_id, product_id) VALUES ($1, $2)
			ON CONFLICT (library_id, product_id) DO NOTHING
		`, libraryID, item.ProductID); err != nil {
			return false, err
		}
		if _, err := tx.Exec(ctx, `
			DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2
		`, o.UserID, item.ProductID); err != nil {
			return false, err
		}
	}

	return false, tx.Commit(ctx)
}

// isIdempotencyConflict reports whether err is a unique violation on the
// orders idempotency key.
func isIdempotencyConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == "23505" &&
		pgErr.ConstraintName == "orders_idempotency_key_key"
}

// replayByKey re-reads the order that won the insert race.
func (r *OrderRepository) replayByKey(ctx context.Context, o *entity.Order, idempotencyKey string) (bool, error) {
	var existingID string
	if err := r.pool.QueryRow(ctx, `
		SELECT id FROM orders WHERE idempotency_key = $1
	`, idempotencyKey).Scan(&existingID); err != nil {
		return false, err
	}
	stored, err := r.getByID(ctx, r.pool, existingID)
	if err != nil {
		return false, err
	}
	*o = *stored
	return true, nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	return r.getByID(ctx, r.pool, id)
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (r *OrderRepository) getByID(ctx context.Context, q querier, id string) (*entity.Order, error) {
	o := &entity.Order{}
	var billing, payment []byte

	row := q.QueryRow(ctx, `
		SELECT id, user_id, total_price, billing_address, payment_info, is_paid, is_delivered, created_at
		FROM orders
		WHERE id = $1
	`, id)
	if err := row.Scan(&o.ID, &o.UserID, &o.TotalPrice, &billing, &payment,
		&o.IsPaid, &o.IsDelivered, &o.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(billing, &o.BillingAddress); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(payment, &o.PaymentInfo); err != nil {
		return nil, err
	}

	rows, err := q.Query(ctx, `
		SELECT product_id, quantity FROM order_items WHERE order_id = $1 ORDER BY line_no
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item entity.OrderItem
		if err := rows.Scan(&item.ProductID, &item.Quantity); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, item)
	}
	return o, rows.Err()
}

func insertOrder(ctx context.Context, tx pgx.Tx, o *entity.Order, idempotencyKey string) error {
	billing, err := json.Marshal(o.BillingAddress)
	if err != nil {
		return err
	}
	payment, err := json.Marshal(o.PaymentInfo)
	if err != nil {
		return err
	}

	var key *string
	if idempotencyKey != "" {
		key = &idempotencyKey
	}

	row := tx.QueryRow(ctx, `
		INSERT INTO orders (user_id, total_price, billing_address, payment_info, idempotency_key)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, is_paid, is_delivered, created_at
	`, o.UserID, o.TotalPrice, billing, payment, key)
	if err := row.Scan(&o.ID, &o.IsPaid, &o.IsDelivered, &o.CreatedAt); err != nil {
		return err
	}

	for i, item := range o.Items {
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_items (order_id, line_no, product_id, quantity)
			VALUES ($1, $2, $3, $4)
		`, o.ID, i+1, item.ProductID, item.Quantity); err != nil {
			return err
		}
	}
	return nil
}

var _ repository.OrderRepository = (*OrderRepository)(nil)
