package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pixelgrove/storefront/internal/application"
	"github.com/pixelgrove/storefront/pkg/response"
	"github.com/pixelgrove/storefront/pkg/validation"
)

type CartHandler struct {
	Cart *application.CartService
}

func NewCartHandler(cart *application.CartService) *CartHandler {
	return &CartHandler{Cart: cart}
}

type addToCartRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	// Quantity replaces the existing line quantity; omitted keeps it (or 1).
	Quantity *int `json:"quantity" binding:"omitempty,qty"`
}

type wishlistRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
}

func (h *CartHandler) GetCart(c *gin.Context) {
	lines, err := h.Cart.GetCart(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "failed to load cart", nil)
		return
	}
	response.Success(c, http.StatusOK, toCartDTO(lines), "cart", gin.H{"count": len(lines)})
}

func (h *CartHandler) AddToCart(c *gin.Context) {
	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid request", validation.ToDetails(err))
		return
	}

	lines, err := h.Cart.AddToCart(c.Request.Context(), c.GetString("userID"), req.ProductID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrProductNotFound):
			response.Error[any](c, http.StatusNotFound, "product not found", nil)
		case errors.Is(err, application.ErrBadQuantity):
			response.Error[any](c, http.StatusBadRequest, "invalid quantity", gin.H{"quantity": "must be at least 1"})
		default:
			response.Error[any](c, http.StatusInternalServerError, "failed to update cart", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, toCartDTO(lines), "cart updated", gin.H{"count": len(lines)})
}

func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	productID, ok := uuidParam(c, "productId")
	if !ok {
		return
	}
	lines, err := h.Cart.RemoveFromCart(c.Request.Context(), c.GetString("userID"), productID)
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "failed to update cart", nil)
		return
	}
	response.Success(c, http.StatusOK, toCartDTO(lines), "cart updated", gin.H{"count": len(lines)})
}

func (h *CartHandler) GetWishlist(c *gin.Context) {
	items, err := h.Cart.GetWishlist(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "failed to load wishlist", nil)
		return
	}
	response.Success(c, http.StatusOK, toProductDTOs(items), "wishlist", gin.H{"count": len(items)})
}

func (h *CartHandler) AddToWishlist(c *gin.Context) {
	var req wishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid request", validation.ToDetails(err))
		return
	}

	items, err := h.Cart.AddToWishlist(c.Request.Context(), c.GetString("userID"), req.ProductID)
	if err != nil {
		if errors.Is(err, application.ErrProductNotFound) {
			response.Error[any](c, http.StatusNotFound, "product not found", nil)
			return
		}
		response.Error[any](c, http.StatusInternalServerError, "failed to update wishlist", nil)
		return
	}
	response.Success(c, http.StatusOK, toProductDTOs(items), "wishlist updated", gin.H{"count": len(items)})
}

func (h *CartHandler) RemoveFromWishlist(c *gin.Context) {
	productID, ok := uuidParam(c, "productId")
	if !ok {
		return
	}
	items, err := h.Cart.RemoveFromWishlist(c.Request.Context(), c.GetString("userID"), productID)
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "failed to update wishlist", nil)
		return
	}
	response.Success(c, http.StatusOK, toProductDTOs(items), "wishlist updated", gin.H{"count": len(items)})
}
