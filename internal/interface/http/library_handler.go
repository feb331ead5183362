package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pixelgrove/storefront/internal/application"
	"github.com/pixelgrove/storefront/pkg/response"
	"github.com/pixelgrove/storefront/pkg/validation"
)

type LibraryHandler struct {
	Library *application.LibraryService
}

func NewLibraryHandler(library *application.LibraryService) *LibraryHandler {
	return &LibraryHandler{Library: library}
}

type grantRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
}

func (h *LibraryHandler) Get(c *gin.Context) {
	lib, err := h.Library.Get(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "failed to load library", nil)
		return
	}
	response.Success(c, http.StatusOK, toLibraryDTO(lib), "library", gin.H{"count": len(lib.Games)})
}

func (h *LibraryHandler) Grant(c *gin.Context) {
	var req grantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid request", validation.ToDetails(err))
		return
	}

	lib, err := h.Library.Grant(c.Request.Context(), c.GetString("userID"), req.ProductID)
	if err != nil {
		if errors.Is(err, application.ErrProductNotFound) {
			response.Error[any](c, http.StatusNotFound, "product not found", nil)
			return
		}
		response.Error[any](c, http.StatusInternalServerError, "failed to update library", nil)
		return
	}
	response.Success(c, http.StatusOK, toLibraryDTO(lib), "library updated", gin.H{"count": len(lib.Games)})
}
