package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pixelgrove/storefront/internal/domain/entity"
	"github.com/pixelgrove/storefront/internal/domain/repository"
)

type LibraryRepository struct {
	pool *pgxpool.Pool
}

func NewLibraryRepository(pool *pgxpool.Pool) *LibraryRepository {
	return &LibraryRepository{pool: pool}
}

func (r *LibraryRepository) Grant(ctx context.Context, userID, productID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var libraryID string
	if err := tx.QueryRow(ctx, `
		INSERT INTO libraries (user_id) VALUES ($1)
		ON CONFLICT (user_id) DO UPDATE SET updated_at = now()
		RETURNING id
	`, userID).Scan(&libraryID); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO library_games (library_id, product_id) VALUES ($1, $2)
		ON CONFLICT (library_id, product_id) DO NOTHING
	`, libraryID, productID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *LibraryRepository) GetByUser(ctx context.Context, userID string) (*entity.Library, error) {
	lib := &entity.Library{Games: []entity.Product{}}

	if err := r.pool.QueryRow(ctx, `
		INSERT INTO libraries (user_id) VALUES ($1)
		ON CONFLICT (user_id) DO UPDATE SET updated_at = libraries.updated_at
		RETURNING id, user_id, created_at, updated_at
	`, userID).Scan(&lib.ID, &lib.UserID, &lib.CreatedAt, &lib.UpdatedAt); err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+prefixedProductColumns("p")+`
		FROM library_games lg
		JOIN products p ON p.id = lg.product_id
		WHERE lg.library_id = $1
		ORDER BY lg.added_at
	`, lib.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var p entity.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, err
		}
		lib.Games = append(lib.Games, p)
	}
	return lib, rows.Err()
}

var _ repository.LibraryRepository = (*LibraryRepository)(nil)
