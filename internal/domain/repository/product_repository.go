package repository

import (
	"context"

	"github.com/pixelgrove/storefront/internal/domain/entity"
)

// ProductRepository defines the interface for catalog persistence.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	Update(ctx context.Context, p *entity.Product) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetByIDs returns the products that exist among ids, keyed by ID.
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Product, error)
	List(ctx context.Context) ([]entity.Product, error)
	SetImage(ctx context.Context, id, url string) error
}
