package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/pixelgrove/storefront/internal/domain/entity"
	repo "github.com/pixelgrove/storefront/internal/domain/repository"
	"github.com/pixelgrove/storefront/pkg/helpers"
)

// CatalogService is the write side of the Catalog Store plus its read
// projections: Postgres rows, a Redis read-through cache for product detail,
// and an Elasticsearch index for search.
type CatalogService struct {
	Products        repo.ProductRepository
	Redis           *redis.Client
	Logger          *logrus.Logger
	ES              *elasticsearch.Client
	ESProductsIndex string
	GCS             *storage.Client
	GCSBucket       string
}

const productCacheTTL = 5 * time.Minute

func productCacheKey(id string) string {
	return "product:detail:" + id
}

func NewCatalogService(products repo.ProductRepository, rdb *redis.Client, logger *logrus.Logger, es *elasticsearch.Client, esIndex string, gcs *storage.Client, gcsBucket string) *CatalogService {
	return &CatalogService{
		Products:        products,
		Redis:           rdb,
		Logger:          logger,
		ES:              es,
		ESProductsIndex: esIndex,
		GCS:             gcs,
		GCSBucket:       gcsBucket,
	}
}

func (s *CatalogService) List(ctx context.Context) ([]entity.Product, error) {
	return s.Products.List(ctx)
}

// Get serves product detail through the Redis cache.
func (s *CatalogService) Get(ctx context.Context, id string) (*entity.Product, error) {
	if s.Redis != nil {
		var cached entity.Product
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, productCacheKey(id), &cached); err == nil && ok {
			return &cached, nil
		}
	}
	p, err := s.Products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if s.Redis != nil {
		_ = helpers.RedisSetJSON(ctx, s.Redis, productCacheKey(id), p, productCacheTTL)
	}
	return p, nil
}

func (s *CatalogService) Create(ctx context.Context, p *entity.Product) error {
	if err := s.Products.Create(ctx, p); err != nil {
		return err
	}
	s.index(ctx, p)
	return nil
}

func (s *CatalogService) Update(ctx context.Context, p *entity.Product) error {
	if err := s.Products.Update(ctx, p); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	s.invalidate(ctx, p.ID)
	s.index(ctx, p)
	return nil
}

func (s *CatalogService) Delete(ctx context.Context, id string) error {
	if err := s.Products.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	s.invalidate(ctx, id)
	if s.ES != nil && s.ESProductsIndex != "" {
		req := esapi.DeleteRequest{Index: s.ESProductsIndex, DocumentID: id}
		c, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if res, err := req.Do(c, s.ES); err == nil {
			_ = res.Body.Close()
		}
	}
	return nil
}

// UploadCover stores a cover image in GCS and points the product at it.
func (s *CatalogService) UploadCover(ctx context.Context, productID string, r io.Reader, filename, contentType string) (string, error) {
	p, err := s.Products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", ErrProductNotFound
		}
		return "", err
	}
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("gcs not configured")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("covers", productID, uuid.NewString()+ext))
	url, err := helpers.UploadImageToGCS(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}
	if err := s.Products.SetImage(ctx, productID, url); err != nil {
		return "", err
	}
	s.invalidate(ctx, productID)
	p.Image = url
	s.index(ctx, p)
	return url, nil
}

func (s *CatalogService) invalidate(ctx context.Context, id string) {
	if s.Redis != nil {
		_ = helpers.RedisDel(ctx, s.Redis, productCacheKey(id))
	}
}

func (s *CatalogService) index(ctx context.Context, p *entity.Product) {
	if s.ES == nil || s.ESProductsIndex == "" {
		return
	}
	doc := map[string]any{
		"id":          p.ID,
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price,
		"categories":  p.Categories,
		"developer":   p.Developer,
		"platform":    p.Platform,
		"ratings":     p.Ratings,
		"updated_at":  p.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESProductsIndex, DocumentID: p.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("product_id", p.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("product_id", p.ID).Warn("es index response error")
	}
}

// Search performs a multi_match query over the product index.
func (s *CatalogService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESProductsIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"name^2", "description", "developer", "categories"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESProductsIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
