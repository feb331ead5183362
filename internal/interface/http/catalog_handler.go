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

type CatalogHandler struct {
	Catalog *application.CatalogService
}

func NewCatalogHandler(catalog *application.CatalogService) *CatalogHandler {
	return &CatalogHandler{Catalog: catalog}
}

type productRequest struct {
	Name         string   `json:"name" binding:"required,min=1,max=200"`
	Description  string   `json:"description" binding:"required"`
	Price        float64  `json:"price" binding:"gte=0"`
	CountInStock int      `json:"count_in_stock" binding:"gte=0"`
	Image        string   `json:"image"`
	Categories   []string `json:"categories"`
	Trailer      string   `json:"trailer"`
	Developer    string   `json:"developer"`
	ReleaseDate  string   `json:"release_date"`
	Platform     string   `json:"platform"`
	Ratings      float64  `json:"ratings" binding:"gte=0,max=5"`
}

func (r productRequest) toEntity() (*entity.Product, error) {
	p := &entity.Product{
		Name:         r.Name,
		Description:  r.Description,
		Price:        r.Price,
		CountInStock: r.CountInStock,
		Image:        r.Image,
		Categories:   r.Categories,
		Trailer:      r.Trailer,
		Developer:    r.Developer,
		Platform:     r.Platform,
		Ratings:      r.Ratings,
	}
	if r.ReleaseDate != "" {
		t, err := time.Parse("2006-01-02", r.ReleaseDate)
		if err != nil {
			return nil, err
		}
		p.ReleaseDate = t
	}
	return p, nil
}

func (h *CatalogHandler) List(c *gin.Context) {
	products, err := h.Catalog.List(c.Request.Context())
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "failed to list products", nil)
		return
	}
	response.Success(c, http.StatusOK, toProductDTOs(products), "products", gin.H{"count": len(products)})
}

func (h *CatalogHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	p, err := h.Catalog.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, application.ErrProductNotFound) {
			response.Error[any](c, http.StatusNotFound, "product not found", nil)
			return
		}
		response.Error[any](c, http.StatusInternalServerError, "failed to load product", nil)
		return
	}
	response.Success(c, http.StatusOK, toProductDTO(*p), "product", nil)
}

func (h *CatalogHandler) Create(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid request", validation.ToDetails(err))
		return
	}
	p, err := req.toEntity()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid request", gin.H{"release_date": "must be YYYY-MM-DD"})
		return
	}

	if err := h.Catalog.Create(c.Request.Context(), p); err != nil {
		response.Error[any](c, http.StatusInternalServerError, "failed to create product", nil)
		return
	}
	response.Success(c, http.StatusCreated, toProductDTO(*p), "product created", nil)
}

func (h *CatalogHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid request", validation.ToDetails(err))
		return
	}
	p, err := req.toEntity()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid request", gin.H{"release_date": "must be YYYY-MM-DD"})
		return
	}
	p.ID = id

	if err := h.Catalog.Update(c.Request.Context(), p); err != nil {
		if errors.Is(err, application.ErrProductNotFound) {
			response.Error[any](c, http.StatusNotFound, "product not found", nil)
			return
		}
		response.Error[any](c, http.StatusInternalServerError, "failed to update product", nil)
		return
	}
	response.Success(c, http.StatusOK, toProductDTO(*p), "product updated", nil)
}

func (h *CatalogHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.Catalog.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, application.ErrProductNotFound) {
			response.Error[any](c, http.StatusNotFound, "product not found", nil)
			return
		}
		response.Error[any](c, http.StatusInternalServerError, "failed to delete product", nil)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "product deleted", nil)
}

func (h *CatalogHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "missing query", gin.H{"q": "is required"})
		return
	}
	hits, err := h.Catalog.Search(c.Request.Context(), q, 20)
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "search failed", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", gin.H{"count": len(hits)})
}

// UploadCover accepts a multipart "image" field and stores it in GCS.
func (h *CatalogHandler) UploadCover(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "missing image file", nil)
		return
	}
	defer func() { _ = file.Close() }()

	url, err := h.Catalog.UploadCover(c.Request.Context(), id, file, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		if errors.Is(err, application.ErrProductNotFound) {
			response.Error[any](c, http.StatusNotFound, "product not found", nil)
			return
		}
		response.Error[any](c, http.StatusInternalServerError, "failed to upload cover", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"image": url}, "cover uploaded", nil)
}
