package repository

import (
	"context"

	"github.com/pixelgrove/storefront/internal/domain/entity"
)

// NewsRepository persists announcement articles.
type NewsRepository interface {
	Create(ctx context.Context, n *entity.News) error
	Update(ctx context.Context, n *entity.News) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*entity.News, error)
	// List returns all articles newest-first by publish date.
	List(ctx context.Context) ([]entity.News, error)
}
