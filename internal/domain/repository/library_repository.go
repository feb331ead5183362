package repository

import (
	"context"

	"github.com/pixelgrove/storefront/internal/domain/entity"
)

// LibraryRepository is the per-user set of owned games. Grant is idempotent
// and the set never shrinks; there is no revoke method.
type LibraryRepository interface {
	// Grant lazily creates the user's library and inserts the product if absent.
	Grant(ctx context.Context, userID, productID string) error
	// GetByUser lazily creates an empty library on first read.
	GetByUser(ctx context.Context, userID string) (*entity.Library, error)
}
