package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pixelgrove/storefront/internal/domain/entity"
	"github.com/pixelgrove/storefront/internal/domain/repository"
)

type CartRepository struct {
	pool *pgxpool.Pool
}

func NewCartRepository(pool *pgxpool.Pool) *CartRepository {
	return &CartRepository{pool: pool}
}

func (r *CartRepository) GetCart(ctx context.Context, userID string) ([]entity.CartLine, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+prefixedProductColumns("p")+`, ci.quantity
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.user_id = $1
		ORDER BY ci.added_at
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := []entity.CartLine{}
	for rows.Next() {
		var l entity.CartLine
		if err := rows.Scan(&l.Product.ID, &l.Product.Name, &l.Product.Description,
			&l.Product.Price, &l.Product.CountInStock, &l.Product.Image, &l.Product.Categories,
			&l.Product.Trailer, &l.Product.Developer, &l.Product.ReleaseDate, &l.Product.Platform,
			&l.Product.Ratings, &l.Product.CreatedAt, &l.Product.UpdatedAt, &l.Quantity); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func (r *CartRepository) GetCartQuantity(ctx context.Context, userID, productID string) (int, bool, error) {
	var qty int
	err := r.pool.QueryRow(ctx, `
		SELECT quantity FROM cart_items WHERE user_id = $1 AND product_id = $2
	`, userID, productID).Scan(&qty)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return qty, true, nil
}

// UpsertCartLine replaces the quantity when the line exists; it never adds to it.
func (r *CartRepository) UpsertCartLine(ctx context.Context, userID, productID string, quantity int) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO cart_items (user_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, product_id) DO UPDATE SET quantity = EXCLUDED.quantity
	`, userID, productID, quantity)
	return err
}

func (r *CartRepository) RemoveCartLine(ctx context.Context, userID, productID string) error {
	_, err := r.pool.Exec(ctx, `
		DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2
	`, userID, productID)
	return err
}

func (r *CartRepository) GetWishlist(ctx context.Context, userID string) ([]entity.Product, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+prefixedProductColumns("p")+`
		FROM wishlist_items wi
		JOIN products p ON p.id = wi.product_id
		WHERE wi.user_id = $1
		ORDER BY wi.added_at
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []entity.Product{}
	for rows.Next() {
		var p entity.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func (r *CartRepository) AddToWishlist(ctx context.Context, userID, productID string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO wishlist_items (user_id, product_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, product_id) DO NOTHING
	`, userID, productID)
	return err
}

func (r *CartRepository) RemoveFromWishlist(ctx context.Context, userID, productID string) error {
	_, err := r.pool.Exec(ctx, `
		DELETE FROM wishlist_items WHERE user_id = $1 AND product_id = $2
	`, userID, productID)
	return err
}

var _ repository.CartRepository = (*CartRepository)(nil)
