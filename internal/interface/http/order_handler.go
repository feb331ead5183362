package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pixelgrove/storefront/internal/application"
	"github.com/pixelgrove/storefront/internal/domain/entity"
	"github.com/pixelgrove/storefront/pkg/response"
	"github.com/pixelgrove/storefront/pkg/validation"
)

type OrderHandler struct {
	Orders *application.OrderService
}

func NewOrderHandler(orders *application.OrderService) *OrderHandler {
	return &OrderHandler{Orders: orders}
}

type orderItemRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"required,qty"`
}

type orderRequest struct {
	OrderItems     []orderItemRequest    `json:"order_items" binding:"required,min=1,dive"`
	TotalPrice     float64               `json:"total_price" binding:"gte=0"`
	BillingAddress entity.BillingAddress `json:"billing_address" binding:"required"`
	PaymentInfo    struct {
		PaymentMethod string `json:"payment_method" binding:"required,paymethod"`
		CardName      string `json:"card_name"`
		CardNumber    string `json:"card_number"`
		ExpiryDate    string `json:"expiry_date"`
		CVV           string `json:"cvv"`
	} `json:"payment_info" binding:"required"`
}

func (r orderRequest) toEntity(userID string) *entity.Order {
	items := make([]entity.OrderItem, 0, len(r.OrderItems))
	for _, it := range r.OrderItems {
		items = append(items, entity.OrderItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return &entity.Order{
		UserID:         userID,
		Items:          items,
		TotalPrice:     r.TotalPrice,
		BillingAddress: r.BillingAddress,
		PaymentInfo: entity.PaymentInfo{
			PaymentMethod: r.PaymentInfo.PaymentMethod,
			CardName:      r.PaymentInfo.CardName,
			CardNumber:    r.PaymentInfo.CardNumber,
			ExpiryDate:    r.PaymentInfo.ExpiryDate,
			CVV:           r.PaymentInfo.CVV,
		},
	}
}

func orderErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, application.ErrEmptyOrder):
		return http.StatusBadRequest, "order has no items"
	case errors.Is(err, application.ErrNegativeTotal):
		return http.StatusBadRequest, "total price must not be negative"
	case errors.Is(err, application.ErrBadPaymentMethod):
		return http.StatusBadRequest, "unsupported payment method"
	case errors.Is(err, application.ErrBadQuantity):
		return http.StatusBadRequest, "quantity must be at least 1"
	case errors.Is(err, application.ErrProductNotFound):
		return http.StatusNotFound, "product not found"
	default:
		return http.StatusInternalServerError, "failed to place order"
	}
}

// Place creates a bare order snapshot without touching cart or library. The
// all-or-nothing path is Checkout.
func (h *OrderHandler) Place(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid request", validation.ToDetails(err))
		return
	}

	o := req.toEntity(c.GetString("userID"))
	if err := h.Orders.Place(c.Request.Context(), o); err != nil {
		status, msg := orderErrorStatus(err)
		response.Error[any](c, status, msg, nil)
		return
	}
	response.Success(c, http.StatusCreated, toOrderDTO(o), "order placed", nil)
}

// Checkout runs the order/library/cart saga in one transaction. The attempt
// key comes from the Idempotency-Key header; a missing header gets a fresh
// key, which disables replay for that request only.
func (h *OrderHandler) Checkout(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid request", validation.ToDetails(err))
		return
	}

	attemptKey := c.GetHeader("Idempotency-Key")
	if attemptKey == "" {
		attemptKey = uuid.NewString()
	}

	o := req.toEntity(c.GetString("userID"))
	replayed, err := h.Orders.Checkout(c.Request.Context(), o, attemptKey)
	if err != nil {
		status, msg := orderErrorStatus(err)
		response.Error[any](c, status, msg, nil)
		return
	}

	status := http.StatusCreated
	msg := "checkout completed"
	if replayed {
		status = http.StatusOK
		msg = "checkout already completed"
	}
	response.Success(c, status, toOrderDTO(o), msg, gin.H{"replayed": replayed})
}

func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	o, err := h.Orders.Get(c.Request.Context(), c.GetString("userID"), id)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrOrderNotFound):
			response.Error[any](c, http.StatusNotFound, "order not found", nil)
		case errors.Is(err, application.ErrNotOrderOwner):
			response.Error[any](c, http.StatusForbidden, "order belongs to another user", nil)
		default:
			response.Error[any](c, http.StatusInternalServerError, "failed to load order", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, toOrderDTO(o), "order", nil)
}
