package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/pixelgrove/storefront/internal/domain/entity"
	repo "github.com/pixelgrove/storefront/internal/domain/repository"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrBadQuantity     = errors.New("quantity must be at least 1")
)

// CartService owns the per-user cart and wishlist ledgers.
type CartService struct {
	Carts    repo.CartRepository
	Products repo.ProductRepository
	Logger   *logrus.Logger
}

func NewCartService(carts repo.CartRepository, products repo.ProductRepository, logger *logrus.Logger) *CartService {
	return &CartService{Carts: carts, Products: products, Logger: logger}
}

func (s *CartService) requireProduct(ctx context.Context, productID string) error {
	_, err := s.Products.GetByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrProductNotFound
	}
	return err
}

// AddToWishlist is idempotent: adding a product that is already on the
// wishlist leaves the set unchanged.
func (s *CartService) AddToWishlist(ctx context.Context, userID, productID string) ([]entity.Product, error) {
	if err := s.requireProduct(ctx, productID); err != nil {
		return nil, err
	}
	if err := s.Carts.AddToWishlist(ctx, userID, productID); err != nil {
		return nil, err
	}
	return s.Carts.GetWishlist(ctx, userID)
}

// RemoveFromWishlist silently ignores products that were never wishlisted.
func (s *CartService) RemoveFromWishlist(ctx context.Context, userID, productID string) ([]entity.Product, error) {
	if err := s.Carts.RemoveFromWishlist(ctx, userID, productID); err != nil {
		return nil, err
	}
	return s.Carts.GetWishlist(ctx, userID)
}

// AddToCart inserts or updates the product's cart line. An existing line's
// quantity is replaced, not incremented; a nil quantity keeps the existing
// value (or defaults to 1 for a new line).
func (s *CartService) AddToCart(ctx context.Context, userID, productID string, quantity *int) ([]entity.CartLine, error) {
	if quantity != nil && *quantity < 1 {
		return nil, ErrBadQuantity
	}
	if err := s.requireProduct(ctx, productID); err != nil {
		return nil, err
	}

	qty := 1
	if existing, ok, err := s.Carts.GetCartQuantity(ctx, userID, productID); err != nil {
		return nil, err
	} else if ok {
		qty = existing
	}
	if quantity != nil {
		qty = *quantity
	}

	if err := s.Carts.UpsertCartLine(ctx, userID, productID, qty); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": userID, "product_id": productID, "quantity": qty}).
			Debug("cart line upserted")
	}
	return s.Carts.GetCart(ctx, userID)
}

// RemoveFromCart is idempotent: removing an absent line is a no-op.
func (s *CartService) RemoveFromCart(ctx context.Context, userID, productID string) ([]entity.CartLine, error) {
	if err := s.Carts.RemoveCartLine(ctx, userID, productID); err != nil {
		return nil, err
	}
	return s.Carts.GetCart(ctx, userID)
}

func (s *CartService) GetCart(ctx context.Context, userID string) ([]entity.CartLine, error) {
	return s.Carts.GetCart(ctx, userID)
}

func (s *CartService) GetWishlist(ctx context.Context, userID string) ([]entity.Product, error) {
	return s.Carts.GetWishlist(ctx, userID)
}
