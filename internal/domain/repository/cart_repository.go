package repository

import (
	"context"

	"github.com/pixelgrove/storefront/internal/domain/entity"
)

// CartRepository holds the per-user cart and wishlist ledgers. Cart lines are
// unique per (user, product); wishlist membership is a plain set.
type CartRepository interface {
	GetCart(ctx context.Context, userID string) ([]entity.CartLine, error)
	// GetCartQuantity returns the line quantity and whether a line exists.
	GetCartQuantity(ctx context.Context, userID, productID string) (int, bool, error)
	UpsertCartLine(ctx context.Context, userID, productID string, quantity int) error
	RemoveCartLine(ctx context.Context, userID, productID string) error

	GetWishlist(ctx context.Context, userID string) ([]entity.Product, error)
	AddToWishlist(ctx context.Context, userID, productID string) error
	RemoveFromWishlist(ctx context.Context, userID, productID string) error
}
