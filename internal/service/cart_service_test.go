package service

import (
	"context"
	"errors"
	"testing"

	"ota-rewards/internal/cart"
	"ota-rewards/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCartService(t *testing.T) (CartService, AddOnService) {
	t.Helper()
	_, _, addOns := newSeededServices(testOptions())
	return NewCartService(cart.NewSessions(), addOns, zerolog.Nop()), addOns
}

func TestCartService_AddRemoveClear(t *testing.T) {
	svc, _ := newTestCartService(t)
	ctx := context.Background()

	c, err := svc.AddItem(ctx, "s1", "addon-1")
	require.NoError(t, err)
	assert.Equal(t, "29.99", c.Total.StringFixed(2))

	c, err = svc.AddItem(ctx, "s1", "addon-1")
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].Quantity)
	assert.Equal(t, "59.98", c.Total.StringFixed(2))

	c, err = svc.AddItem(ctx, "s1", "addon-2")
	require.NoError(t, err)
	assert.Equal(t, "79.97", c.Total.StringFixed(2))

	c = svc.RemoveItem("s1", "addon-1")
	require.Len(t, c.Items, 1)
	assert.Equal(t, "19.99", c.Total.StringFixed(2))

	c = svc.Clear("s1")
	assert.Empty(t, c.Items)
	assert.True(t, c.Total.IsZero())
}

func TestCartService_AddItemErrors(t *testing.T) {
	svc, _ := newTestCartService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "s1", "addon-x")
	assert.ErrorIs(t, err, model.ErrAddOnNotFound)

	_, err = svc.AddItem(ctx, "s1", "")
	assert.ErrorIs(t, err, model.ErrMissingAddOn)

	assert.Empty(t, svc.View("s1").Items)
}

func TestCartService_SessionsAreIsolated(t *testing.T) {
	svc, _ := newTestCartService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "alice", "addon-1")
	require.NoError(t, err)

	assert.Len(t, svc.View("alice").Items, 1)
	assert.Empty(t, svc.View("bob").Items)
}

func TestCartService_Checkout(t *testing.T) {
	svc, addOns := newTestCartService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "s1", "addon-1")
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "s1", "addon-1")
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "s1", "addon-3")
	require.NoError(t, err)

	p, err := svc.Checkout(ctx, "s1")
	require.NoError(t, err)

	assert.Equal(t, "69.97", p.Amount.StringFixed(2))
	assert.Len(t, p.Items, 2)
	assert.Empty(t, svc.View("s1").Items, "cart is cleared after checkout")

	history, err := addOns.GetPurchaseHistory(ctx)
	require.NoError(t, err)
	assert.Equal(t, p.ID, history[0].ID)
}

func TestCartService_CheckoutEmptyCartKeepsState(t *testing.T) {
	svc, addOns := newTestCartService(t)
	ctx := context.Background()

	p, err := svc.Checkout(ctx, "s1")

	assert.Nil(t, p)
	assert.ErrorIs(t, err, model.ErrEmptyPurchase)
	history, _ := addOns.GetPurchaseHistory(ctx)
	assert.Len(t, history, 1)
}

// stubAddOns overrides PurchaseAddOns on top of a real add-on service.
type stubAddOns struct {
	AddOnService
	purchase func(ctx context.Context, items []model.CartItem) (*model.PurchaseHistory, error)
}

func (s *stubAddOns) PurchaseAddOns(ctx context.Context, items []model.CartItem) (*model.PurchaseHistory, error) {
	return s.purchase(ctx, items)
}

func TestCartService_FailedCheckoutKeepsCart(t *testing.T) {
	_, _, addOns := newSeededServices(testOptions())
	stub := &stubAddOns{
		AddOnService: addOns,
		purchase: func(context.Context, []model.CartItem) (*model.PurchaseHistory, error) {
			return nil, errors.New("store unavailable")
		},
	}
	svc := NewCartService(cart.NewSessions(), stub, zerolog.Nop())
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "s1", "addon-2")
	require.NoError(t, err)

	_, err = svc.Checkout(ctx, "s1")

	assert.EqualError(t, err, "store unavailable")
	c := svc.View("s1")
	require.Len(t, c.Items, 1)
	assert.Equal(t, "19.99", c.Total.StringFixed(2))
}

func TestCartService_CheckoutKeepsItemsAddedInFlight(t *testing.T) {
	_, _, addOns := newSeededServices(testOptions())
	started := make(chan struct{})
	release := make(chan struct{})
	stub := &stubAddOns{AddOnService: addOns}
	stub.purchase = func(ctx context.Context, items []model.CartItem) (*model.PurchaseHistory, error) {
		close(started)
		<-release
		return addOns.PurchaseAddOns(ctx, items)
	}
	svc := NewCartService(cart.NewSessions(), stub, zerolog.Nop())
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "s1", "addon-1")
	require.NoError(t, err)

	type result struct {
		purchase *model.PurchaseHistory
		err      error
	}
	done := make(chan result, 1)
	go func() {
		p, err := svc.Checkout(ctx, "s1")
		done <- result{p, err}
	}()

	<-started
	_, err = svc.AddItem(ctx, "s1", "addon-1")
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "s1", "addon-2")
	require.NoError(t, err)
	close(release)

	res := <-done
	require.NoError(t, res.err)
	require.Len(t, res.purchase.Items, 1)
	assert.Equal(t, "29.99", res.purchase.Amount.StringFixed(2))

	c := svc.View("s1")
	quantities := make(map[string]int)
	for _, item := range c.Items {
		quantities[item.AddOn.ID] = item.Quantity
	}
	assert.Equal(t, map[string]int{"addon-1": 1, "addon-2": 1}, quantities)
	assert.Equal(t, "49.98", c.Total.StringFixed(2))
}
