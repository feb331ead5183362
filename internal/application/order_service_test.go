package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelgrove/storefront/internal/domain/entity"
)

type orderFixture struct {
	svc       *OrderService
	cartSvc   *CartService
	libSvc    *LibraryService
	orders    *fakeOrderRepo
	libraries *fakeLibraryRepo
	carts     *fakeCartRepo
	p1, p2    *entity.Product
	user      *entity.User
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	p1 := &entity.Product{Name: "Hollow Depths", Price: 24.99}
	p2 := &entity.Product{Name: "Starlane Tycoon", Price: 34.99}
	products := newFakeProductRepo(p1, p2)
	carts := newFakeCartRepo(products)
	libraries := newFakeLibraryRepo(products)
	orders := newFakeOrderRepo(libraries, carts)
	user := &entity.User{Email: "buyer@example.com", Name: "buyer"}
	users := newFakeUserRepo(user)

	return &orderFixture{
		svc:       NewOrderService(orders, products, users, nil, nil),
		cartSvc:   NewCartService(carts, products, nil),
		libSvc:    NewLibraryService(libraries, products, nil),
		orders:    orders,
		libraries: libraries,
		carts:     carts,
		p1:        p1,
		p2:        p2,
		user:      user,
	}
}

func (f *orderFixture) validOrder() *entity.Order {
	return &entity.Order{
		UserID: f.user.ID,
		Items: []entity.OrderItem{
			{ProductID: f.p1.ID, Quantity: 2},
			{ProductID: f.p2.ID, Quantity: 1},
		},
		TotalPrice:     2*24.99 + 34.99,
		BillingAddress: entity.BillingAddress{FirstName: "Ada", LastName: "L", Address: "1 Main St", Country: "US", State: "CA", Zip: "94000"},
		PaymentInfo:    entity.PaymentInfo{PaymentMethod: entity.PaymentPaypal},
	}
}

func TestPlaceOrderValidation(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	o := f.validOrder()
	o.Items = nil
	assert.ErrorIs(t, f.svc.Place(ctx, o), ErrEmptyOrder)

	o = f.validOrder()
	o.TotalPrice = -1
	assert.ErrorIs(t, f.svc.Place(ctx, o), ErrNegativeTotal)

	o = f.validOrder()
	o.PaymentInfo.PaymentMethod = "Barter"
	assert.ErrorIs(t, f.svc.Place(ctx, o), ErrBadPaymentMethod)

	o = f.validOrder()
	o.Items[0].Quantity = 0
	assert.ErrorIs(t, f.svc.Place(ctx, o), ErrBadQuantity)

	o = f.validOrder()
	o.Items[0].ProductID = "missing"
	assert.ErrorIs(t, f.svc.Place(ctx, o), ErrProductNotFound)
}

func TestPlaceOrderSnapshotIsImmutable(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	o := f.validOrder()
	require.NoError(t, f.svc.Place(ctx, o))
	require.NotEmpty(t, o.ID)

	// a later price change must not leak into the stored snapshot
	f.p1.Price = 99.99

	stored, err := f.svc.Get(ctx, f.user.ID, o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.TotalPrice, stored.TotalPrice)
	assert.Equal(t, 2, stored.Items[0].Quantity)
	assert.False(t, stored.IsPaid)
	assert.False(t, stored.IsDelivered)
}

func TestPlaceOrderDoesNotTouchCartOrLibrary(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	_, err := f.cartSvc.AddToCart(ctx, f.user.ID, f.p1.ID, intptr(2))
	require.NoError(t, err)

	require.NoError(t, f.svc.Place(ctx, f.validOrder()))

	lines, err := f.cartSvc.GetCart(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Len(t, lines, 1, "bare order placement leaves the cart alone")

	lib, err := f.libSvc.Get(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Empty(t, lib.Games)
}

func TestGetOrderIsOwnerGated(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	o := f.validOrder()
	require.NoError(t, f.svc.Place(ctx, o))

	_, err := f.svc.Get(ctx, "someone-else", o.ID)
	assert.ErrorIs(t, err, ErrNotOrderOwner)

	_, err = f.svc.Get(ctx, f.user.ID, "nope")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestCheckoutGrantsLibraryAndClearsCart(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	_, err := f.cartSvc.AddToCart(ctx, f.user.ID, f.p1.ID, intptr(2))
	require.NoError(t, err)
	_, err = f.cartSvc.AddToCart(ctx, f.user.ID, f.p2.ID, nil)
	require.NoError(t, err)

	replayed, err := f.svc.Checkout(ctx, f.validOrder(), "attempt-1")
	require.NoError(t, err)
	assert.False(t, replayed)

	lib, err := f.libSvc.Get(ctx, f.user.ID)
	require.NoError(t, err)
	require.Len(t, lib.Games, 2)
	assert.Equal(t, f.p1.ID, lib.Games[0].ID)
	assert.Equal(t, f.p2.ID, lib.Games[1].ID)

	lines, err := f.cartSvc.GetCart(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestCheckoutReplaysOnSameAttemptKey(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	first := f.validOrder()
	replayed, err := f.svc.Checkout(ctx, first, "attempt-1")
	require.NoError(t, err)
	require.False(t, replayed)

	retry := f.validOrder()
	replayed, err = f.svc.Checkout(ctx, retry, "attempt-1")
	require.NoError(t, err)
	assert.True(t, replayed)
	assert.Equal(t, first.ID, retry.ID, "retry returns the stored order")
	assert.Len(t, f.orders.orders, 1, "no second order was written")
}

func TestCheckoutDistinctAttemptsCreateDistinctOrders(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	a := f.validOrder()
	_, err := f.svc.Checkout(ctx, a, "attempt-1")
	require.NoError(t, err)

	b := f.validOrder()
	_, err = f.svc.Checkout(ctx, b, "attempt-2")
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Len(t, f.orders.orders, 2)
}

// The full purchase flow: cart build-up, checkout, library landing.
func TestPurchaseEndToEnd(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	_, err := f.cartSvc.AddToCart(ctx, f.user.ID, f.p1.ID, intptr(2))
	require.NoError(t, err)
	lines, err := f.cartSvc.AddToCart(ctx, f.user.ID, f.p2.ID, nil)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, 1, lines[1].Quantity)

	total := 2*f.p1.Price + f.p2.Price
	o := f.validOrder()
	o.TotalPrice = total
	_, err = f.svc.Checkout(ctx, o, "e2e-attempt")
	require.NoError(t, err)

	stored, err := f.svc.Get(ctx, f.user.ID, o.ID)
	require.NoError(t, err)
	assert.Equal(t, total, stored.TotalPrice)

	lib, err := f.libSvc.Get(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Len(t, lib.Games, 2)

	lines, err = f.cartSvc.GetCart(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Empty(t, lines)
}
