package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelgrove/storefront/pkg/validation"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	validation.Init()
	m.Run()
}

func testContext(t *testing.T, method, body string, params ...gin.Param) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	c.Request = req
	c.Params = params
	return c, w
}

// Malformed route IDs must be rejected before they reach a uuid-typed SQL
// parameter. The handlers below run against empty services: reaching the
// store would panic, so a clean 400 proves the short-circuit.

func TestGetProductRejectsMalformedID(t *testing.T) {
	h := NewCatalogHandler(nil)
	c, w := testContext(t, http.MethodGet, "", gin.Param{Key: "id", Value: "not-a-uuid"})

	h.Get(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "must be a valid uuid")
}

func TestDeleteProductRejectsMalformedID(t *testing.T) {
	h := NewCatalogHandler(nil)
	c, w := testContext(t, http.MethodDelete, "", gin.Param{Key: "id", Value: "42"})

	h.Delete(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetOrderRejectsMalformedID(t *testing.T) {
	h := NewOrderHandler(nil)
	c, w := testContext(t, http.MethodGet, "", gin.Param{Key: "id", Value: "order-1"})

	h.Get(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "must be a valid uuid")
}

func TestRemoveFromCartRejectsMalformedProductID(t *testing.T) {
	h := NewCartHandler(nil)
	c, w := testContext(t, http.MethodDelete, "", gin.Param{Key: "productId", Value: "nope"})

	h.RemoveFromCart(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "productId")
}

func TestLikeCommentRejectsMalformedCommentID(t *testing.T) {
	h := NewCommentHandler(nil)
	c, w := testContext(t, http.MethodPost, "",
		gin.Param{Key: "id", Value: "0c6f4f9e-52b0-4d4e-9f6a-1d2e3f405060"},
		gin.Param{Key: "commentId", Value: "first"})

	h.Like(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "commentId")
}

func TestAddToCartRejectsMalformedBodyProductID(t *testing.T) {
	h := NewCartHandler(nil)
	c, w := testContext(t, http.MethodPost, `{"product_id":"not-a-uuid","quantity":1}`)

	h.AddToCart(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "must be a valid uuid")
}

func TestPlaceOrderRejectsMalformedItemProductID(t *testing.T) {
	h := NewOrderHandler(nil)
	body := `{
		"order_items": [{"product_id": "abc", "quantity": 1}],
		"total_price": 10,
		"billing_address": {"first_name": "Ada", "last_name": "Vale", "username": "adav", "address": "1 Main St", "country": "FR"},
		"payment_info": {"payment_method": "Paypal"}
	}`
	c, w := testContext(t, http.MethodPost, body)

	h.Place(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "must be a valid uuid")
}

func TestGetNewsRejectsMalformedID(t *testing.T) {
	h := NewNewsHandler(nil)
	c, w := testContext(t, http.MethodGet, "", gin.Param{Key: "id", Value: "latest"})

	h.Get(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "must be a valid uuid")
}
