package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pixelgrove/storefront/internal/domain/entity"
	"github.com/pixelgrove/storefront/internal/domain/repository"
)

// prefixedProductColumns builds the product select list for queries that join
// products under the given alias. Nullable release_date is coalesced to the
// epoch so it scans into a plain time.Time.
func prefixedProductColumns(alias string) string {
	const cols = "§id, §name, §description, §price, §count_in_stock, §image, §categories, " +
		"§trailer, §developer, COALESCE(§release_date, 'epoch'::timestamptz), §platform, " +
		"§ratings, §created_at, §updated_at"
	return strings.ReplaceAll(cols, "§", alias+".")
}

type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

func scanProduct(row pgx.Row, p *entity.Product) error {
	return row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.CountInStock, &p.Image,
		&p.Categories, &p.Trailer, &p.Developer, &p.ReleaseDate, &p.Platform, &p.Ratings,
		&p.CreatedAt, &p.UpdatedAt)
}

func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO products (name, description, price, count_in_stock, image, categories,
			trailer, developer, release_date, platform, ratings)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, 'epoch'::timestamptz), $10, $11)
		RETURNING id, created_at, updated_at
	`, p.Name, p.Description, p.Price, p.CountInStock, p.Image, p.Categories,
		p.Trailer, p.Developer, p.ReleaseDate, p.Platform, p.Ratings)

	return row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *ProductRepository) Update(ctx context.Context, p *entity.Product) error {
	p.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE products
		SET name = $1, description = $2, price = $3, count_in_stock = $4, image = $5,
			categories = $6, trailer = $7, developer = $8,
			release_date = NULLIF($9, 'epoch'::timestamptz), platform = $10, ratings = $11,
			updated_at = $12
		WHERE id = $13
	`, p.Name, p.Description, p.Price, p.CountInStock, p.Image, p.Categories,
		p.Trailer, p.Developer, p.ReleaseDate, p.Platform, p.Ratings, p.UpdatedAt, p.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p := &entity.Product{}
	row := r.pool.QueryRow(ctx, `SELECT `+prefixedProductColumns("p")+` FROM products p WHERE p.id = $1`, id)
	if err := scanProduct(row, p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *ProductRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Product, error) {
	out := make(map[string]*entity.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := r.pool.Query(ctx, `SELECT `+prefixedProductColumns("p")+` FROM products p WHERE p.id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		p := &entity.Product{}
		if err := scanProduct(rows, p); err != nil {
			return nil, err
		}
		out[p.ID] = p
	}
	return out, rows.Err()
}

func (r *ProductRepository) List(ctx context.Context) ([]entity.Product, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+prefixedProductColumns("p")+` FROM products p ORDER BY p.created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.Product
	for rows.Next() {
		var p entity.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProductRepository) SetImage(ctx context.Context, id, url string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE products SET image = $1, updated_at = now() WHERE id = $2
	`, url, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.ProductRepository = (*ProductRepository)(nil)
