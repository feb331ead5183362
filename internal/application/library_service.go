package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/pixelgrove/storefront/internal/domain/entity"
	repo "github.com/pixelgrove/storefront/internal/domain/repository"
)

// LibraryService grows the per-user set of owned games. Ownership is
// permanent: there is no revoke operation anywhere in this service.
type LibraryService struct {
	Libraries repo.LibraryRepository
	Products  repo.ProductRepository
	Logger    *logrus.Logger
}

func NewLibraryService(libraries repo.LibraryRepository, products repo.ProductRepository, logger *logrus.Logger) *LibraryService {
	return &LibraryService{Libraries: libraries, Products: products, Logger: logger}
}

// Grant inserts the product into the user's library, lazily creating the
// library record. Granting an owned product is a no-op, so retries are safe.
func (s *LibraryService) Grant(ctx context.Context, userID, productID string) (*entity.Library, error) {
	if _, err := s.Products.GetByID(ctx, productID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if err := s.Libraries.Grant(ctx, userID, productID); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": userID, "product_id": productID}).
			Info("library access granted")
	}
	return s.Libraries.GetByUser(ctx, userID)
}

// Get returns the user's library with games resolved to current catalog
// snapshots, creating an empty library on first read.
func (s *LibraryService) Get(ctx context.Context, userID string) (*entity.Library, error) {
	return s.Libraries.GetByUser(ctx, userID)
}
