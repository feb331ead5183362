package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelgrove/storefront/internal/domain/entity"
)

func newCartFixture(t *testing.T) (*CartService, *entity.Product, *entity.Product) {
	t.Helper()
	p1 := &entity.Product{Name: "Hollow Depths", Price: 24.99}
	p2 := &entity.Product{Name: "Starlane Tycoon", Price: 34.99}
	products := newFakeProductRepo(p1, p2)
	carts := newFakeCartRepo(products)
	return NewCartService(carts, products, nil), p1, p2
}

func intptr(v int) *int { return &v }

func TestAddToCartDefaultsToOne(t *testing.T) {
	svc, p1, _ := newCartFixture(t)
	ctx := context.Background()

	lines, err := svc.AddToCart(ctx, "u1", p1.ID, nil)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, p1.ID, lines[0].Product.ID)
	assert.Equal(t, 1, lines[0].Quantity)
}

func TestAddToCartReplacesQuantity(t *testing.T) {
	svc, p1, _ := newCartFixture(t)
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, "u1", p1.ID, intptr(3))
	require.NoError(t, err)

	lines, err := svc.AddToCart(ctx, "u1", p1.ID, intptr(5))
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity, "quantity is replaced, not summed")
}

func TestAddToCartNilQuantityKeepsExisting(t *testing.T) {
	svc, p1, _ := newCartFixture(t)
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, "u1", p1.ID, intptr(4))
	require.NoError(t, err)

	lines, err := svc.AddToCart(ctx, "u1", p1.ID, nil)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 4, lines[0].Quantity)
}

func TestAddToCartRejectsBadInput(t *testing.T) {
	svc, p1, _ := newCartFixture(t)
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, "u1", p1.ID, intptr(0))
	assert.ErrorIs(t, err, ErrBadQuantity)

	_, err = svc.AddToCart(ctx, "u1", "missing", intptr(1))
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestRemoveFromCartIsIdempotent(t *testing.T) {
	svc, p1, _ := newCartFixture(t)
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, "u1", p1.ID, intptr(2))
	require.NoError(t, err)

	lines, err := svc.RemoveFromCart(ctx, "u1", p1.ID)
	require.NoError(t, err)
	assert.Empty(t, lines)

	// removing again is a silent no-op
	lines, err = svc.RemoveFromCart(ctx, "u1", p1.ID)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestWishlistIsASet(t *testing.T) {
	svc, p1, p2 := newCartFixture(t)
	ctx := context.Background()

	_, err := svc.AddToWishlist(ctx, "u1", p1.ID)
	require.NoError(t, err)
	_, err = svc.AddToWishlist(ctx, "u1", p2.ID)
	require.NoError(t, err)

	items, err := svc.AddToWishlist(ctx, "u1", p1.ID)
	require.NoError(t, err)
	require.Len(t, items, 2, "re-adding must not duplicate")
	assert.Equal(t, p1.ID, items[0].ID)
	assert.Equal(t, p2.ID, items[1].ID)

	items, err = svc.RemoveFromWishlist(ctx, "u1", p1.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, p2.ID, items[0].ID)

	// removing a product that was never wishlisted succeeds silently
	items, err = svc.RemoveFromWishlist(ctx, "u1", p1.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestWishlistRequiresExistingProduct(t *testing.T) {
	svc, _, _ := newCartFixture(t)

	_, err := svc.AddToWishlist(context.Background(), "u1", "missing")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCartsAreScopedPerUser(t *testing.T) {
	svc, p1, _ := newCartFixture(t)
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, "u1", p1.ID, intptr(2))
	require.NoError(t, err)

	lines, err := svc.GetCart(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, lines)
}
