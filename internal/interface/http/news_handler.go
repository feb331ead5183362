package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pixelgrove/storefront/internal/application"
	"github.com/pixelgrove/storefront/internal/domain/entity"
	"github.com/pixelgrove/storefront/pkg/response"
	"github.com/pixelgrove/storefront/pkg/validation"
)

type NewsHandler struct {
	News *application.NewsService
}

func NewNewsHandler(news *application.NewsService) *NewsHandler {
	return &NewsHandler{News: news}
}

type newsRequest struct {
	Title         string `json:"title" binding:"required,min=1,max=200"`
	Image         string `json:"image"`
	Author        string `json:"author" binding:"required"`
	Description   string `json:"description" binding:"required"`
	Content       string `json:"content" binding:"required"`
	Category      string `json:"category"`
	PublishedDate string `json:"published_date"`
}

func (r newsRequest) toEntity() (*entity.News, error) {
	n := &entity.News{
		Title:       r.Title,
		Image:       r.Image,
		Author:      r.Author,
		Description: r.Description,
		Content:     r.Content,
		Category:    r.Category,
	}
	if r.PublishedDate != "" {
		t, err := time.Parse("2006-01-02", r.PublishedDate)
		if err != nil {
			return nil, err
		}
		n.PublishedDate = t
	}
	return n, nil
}

func (h *NewsHandler) List(c *gin.Context) {
	articles, err := h.News.List(c.Request.Context())
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "failed to list news", nil)
		return
	}
	response.Success(c, http.StatusOK, toNewsDTOs(articles), "news", gin.H{"count": len(articles)})
}

func (h *NewsHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	n, err := h.News.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, application.ErrNewsNotFound) {
			response.Error[any](c, http.StatusNotFound, "news article not found", nil)
			return
		}
		response.Error[any](c, http.StatusInternalServerError, "failed to load news article", nil)
		return
	}
	response.Success(c, http.StatusOK, toNewsDTO(*n), "news article", nil)
}

func (h *NewsHandler) Create(c *gin.Context) {
	var req newsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid request", validation.ToDetails(err))
		return
	}
	n, err := req.toEntity()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid request", gin.H{"published_date": "must be YYYY-MM-DD"})
		return
	}

	if err := h.News.Create(c.Request.Context(), n); err != nil {
		response.Error[any](c, http.StatusInternalServerError, "failed to create news article", nil)
		return
	}
	response.Success(c, http.StatusCreated, toNewsDTO(*n), "news article created", nil)
}

func (h *NewsHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req newsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid request", validation.ToDetails(err))
		return
	}
	n, err := req.toEntity()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid request", gin.H{"published_date": "must be YYYY-MM-DD"})
		return
	}
	n.ID = id

	if err := h.News.Update(c.Request.Context(), n); err != nil {
		if errors.Is(err, application.ErrNewsNotFound) {
			response.Error[any](c, http.StatusNotFound, "news article not found", nil)
			return
		}
		response.Error[any](c, http.StatusInternalServerError, "failed to update news article", nil)
		return
	}
	response.Success(c, http.StatusOK, toNewsDTO(*n), "news article updated", nil)
}

func (h *NewsHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.News.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, application.ErrNewsNotFound) {
			response.Error[any](c, http.StatusNotFound, "news article not found", nil)
			return
		}
		response.Error[any](c, http.StatusInternalServerError, "failed to delete news article", nil)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "news article deleted", nil)
}

func (h *NewsHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "missing query", gin.H{"q": "is required"})
		return
	}
	hits, err := h.News.Search(c.Request.Context(), q, 20)
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "search failed", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", gin.H{"count": len(hits)})
}
