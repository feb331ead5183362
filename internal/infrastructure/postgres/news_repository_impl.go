package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pixelgrove/storefront/internal/domain/entity"
	"github.com/pixelgrove/storefront/internal/domain/repository"
)

type NewsRepository struct {
	pool *pgxpool.Pool
}

func NewNewsRepository(pool *pgxpool.Pool) *NewsRepository {
	return &NewsRepository{pool: pool}
}

const newsColumns = "id, title, image, author, description, content, category, published_date, created_at, updated_at"

func scanNews(row pgx.Row, n *entity.News) error {
	return row.Scan(&n.ID, &n.Title, &n.Image, &n.Author, &n.Description, &n.Content,
		&n.Category, &n.PublishedDate, &n.CreatedAt, &n.UpdatedAt)
}

func (r *NewsRepository) Create(ctx context.Context, n *entity.News) error {
	if n.Category == "" {
		n.Category = "General"
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO news (title, image, author, description, content, category, published_date)
		VALUES ($1, $2, $3, $4, $5, $6, COALESCE(NULLIF($7, '0001-01-01'::timestamptz), now()))
		RETURNING id, published_date, created_at, updated_at
	`, n.Title, n.Image, n.Author, n.Description, n.Content, n.Category, n.PublishedDate)

	return row.Scan(&n.ID, &n.PublishedDate, &n.CreatedAt, &n.UpdatedAt)
}

func (r *NewsRepository) Update(ctx context.Context, n *entity.News) error {
	row := r.pool.QueryRow(ctx, `
		UPDATE news
		SET title = $2, image = $3, author = $4, description = $5, content = $6,
		    category = $7, updated_at = now()
		WHERE id = $1
		RETURNING published_date, created_at, updated_at
	`, n.ID, n.Title, n.Image, n.Author, n.Description, n.Content, n.Category)

	if err := row.Scan(&n.PublishedDate, &n.CreatedAt, &n.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *NewsRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM news WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *NewsRepository) GetByID(ctx context.Context, id string) (*entity.News, error) {
	n := &entity.News{}
	row := r.pool.QueryRow(ctx, `SELECT `+newsColumns+` FROM news WHERE id = $1`, id)
	if err := scanNews(row, n); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return n, nil
}

func (r *NewsRepository) List(ctx context.Context) ([]entity.News, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+newsColumns+` FROM news ORDER BY published_date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []entity.News{}
	for rows.Next() {
		var n entity.News
		if err := scanNews(rows, &n); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

var _ repository.NewsRepository = (*NewsRepository)(nil)
