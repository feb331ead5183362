package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/pixelgrove/storefront/internal/domain/entity"
	repo "github.com/pixelgrove/storefront/internal/domain/repository"
)

var ErrNewsNotFound = errors.New("news article not found")

// NewsService manages storefront announcement articles. Postgres is the
// source of truth; articles are mirrored into an Elasticsearch index for
// full-text search.
type NewsService struct {
	News        repo.NewsRepository
	Logger      *logrus.Logger
	ES          *elasticsearch.Client
	ESNewsIndex string
}

func NewNewsService(news repo.NewsRepository, logger *logrus.Logger, es *elasticsearch.Client, esIndex string) *NewsService {
	return &NewsService{News: news, Logger: logger, ES: es, ESNewsIndex: esIndex}
}

func (s *NewsService) List(ctx context.Context) ([]entity.News, error) {
	return s.News.List(ctx)
}

func (s *NewsService) Get(ctx context.Context, id string) (*entity.News, error) {
	n, err := s.News.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNewsNotFound
		}
		return nil, err
	}
	return n, nil
}

func (s *NewsService) Create(ctx context.Context, n *entity.News) error {
	if err := s.News.Create(ctx, n); err != nil {
		return err
	}
	s.index(ctx, n)
	return nil
}

func (s *NewsService) Update(ctx context.Context, n *entity.News) error {
	if err := s.News.Update(ctx, n); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNewsNotFound
		}
		return err
	}
	s.index(ctx, n)
	return nil
}

func (s *NewsService) Delete(ctx context.Context, id string) error {
	if err := s.News.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNewsNotFound
		}
		return err
	}
	if s.ES != nil && s.ESNewsIndex != "" {
		req := esapi.DeleteRequest{Index: s.ESNewsIndex, DocumentID: id}
		c, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if res, err := req.Do(c, s.ES); err == nil {
			_ = res.Body.Close()
		}
	}
	return nil
}

func (s *NewsService) index(ctx context.Context, n *entity.News) {
	if s.ES == nil || s.ESNewsIndex == "" {
		return
	}
	doc := map[string]any{
		"id":             n.ID,
		"title":          n.Title,
		"author":         n.Author,
		"description":    n.Description,
		"category":       n.Category,
		"published_date": n.PublishedDate.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESNewsIndex, DocumentID: n.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("news_id", n.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("news_id", n.ID).Warn("es index response error")
	}
}

// Search performs a multi_match query over the news index.
func (s *NewsService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESNewsIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "description", "author"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESNewsIndex),
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
