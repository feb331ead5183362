package repository

import (
	"context"

	"github.com/pixelgrove/storefront/internal/domain/entity"
)

// OrderRepository is the append-only order ledger. Orders are immutable once
// written; there is no update method on purpose.
type OrderRepository interface {
	Create(ctx context.Context, o *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	// CreateCheckout persists the order and, in the same transaction, grants
	// library access for every line and clears the matching cart lines.
	// idempotencyKey deduplicates retries: when a previous attempt with the
	// same key already committed, the stored order is returned with
	// replayed=true and nothing is written.
	CreateCheckout(ctx context.Context, o *entity.Order, idempotencyKey string) (replayed bool, err error)
}
