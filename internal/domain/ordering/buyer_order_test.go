package ordering

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasketUpsertItem(t *testing.T) {
	buyerID := uuid.New()
	shopA := uuid.New()
	shopB := uuid.New()
	listingA := uuid.New()
	listingB := uuid.New()

	t.Run("groups items per shop", func(t *testing.T) {
		basket, err := NewBasket(buyerID)
		require.NoError(t, err)

		require.NoError(t, basket.UpsertItem(shopA, decimal.NewFromInt(300), listingA, 2, decimal.NewFromInt(100), decimal.NewFromInt(120)))
		require.NoError(t, basket.UpsertItem(shopB, decimal.NewFromInt(500), listingB, 1, decimal.NewFromInt(50), decimal.NewFromInt(60)))

		require.Len(t, basket.SellerOrders, 2)
		assert.Equal(t, SellerOrderStateBasket, basket.SellerOrders[0].State)
	})

	t.Run("replaces quantity and refreshes price snapshot", func(t *testing.T) {
		basket, err := NewBasket(buyerID)
		require.NoError(t, err)

		require.NoError(t, basket.UpsertItem(shopA, decimal.NewFromInt(300), listingA, 2, decimal.NewFromInt(100), decimal.NewFromInt(120)))
		require.NoError(t, basket.UpsertItem(shopA, decimal.NewFromInt(300), listingA, 5, decimal.NewFromInt(90), decimal.NewFromInt(110)))

		require.Len(t, basket.SellerOrders, 1)
		require.Len(t, basket.SellerOrders[0].Items, 1)
		item := basket.SellerOrders[0].Items[0]
		assert.Equal(t, 5, item.Quantity)
		assert.True(t, item.PurchasePrice.Equal(decimal.NewFromInt(90)))
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		basket, err := NewBasket(buyerID)
		require.NoError(t, err)
		err = basket.UpsertItem(shopA, decimal.NewFromInt(300), listingA, 0, decimal.NewFromInt(100), decimal.NewFromInt(120))
		assert.Error(t, err)
	})
}

func TestBasketRemoveListings(t *testing.T) {
	buyerID := uuid.New()
	shopA := uuid.New()
	shopB := uuid.New()
	listingA1 := uuid.New()
	listingA2 := uuid.New()
	listingB1 := uuid.New()

	newFilledBasket := func(t *testing.T) *BuyerOrder {
		basket, err := NewBasket(buyerID)
		require.NoError(t, err)
		require.NoError(t, basket.UpsertItem(shopA, decimal.NewFromInt(300), listingA1, 1, decimal.NewFromInt(10), decimal.NewFromInt(12)))
		require.NoError(t, basket.UpsertItem(shopA, decimal.NewFromInt(300), listingA2, 2, decimal.NewFromInt(20), decimal.NewFromInt(22)))
		require.NoError(t, basket.UpsertItem(shopB, decimal.NewFromInt(500), listingB1, 3, decimal.NewFromInt(30), decimal.NewFromInt(33)))
		return basket
	}

	t.Run("removes single item keeping seller order", func(t *testing.T) {
		basket := newFilledBasket(t)
		empty, err := basket.RemoveListings([]uuid.UUID{listingA1})
		require.NoError(t, err)
		assert.False(t, empty)
		require.Len(t, basket.SellerOrders, 2)
	})

	t.Run("drops seller order when its last item goes", func(t *testing.T) {
		basket := newFilledBasket(t)
		empty, err := basket.RemoveListings([]uuid.UUID{listingB1})
		require.NoError(t, err)
		assert.False(t, empty)
		require.Len(t, basket.SellerOrders, 1)
		assert.Equal(t, shopA, basket.SellerOrders[0].ShopID)
	})

	t.Run("reports empty basket when everything goes", func(t *testing.T) {
		basket := newFilledBasket(t)
		empty, err := basket.RemoveListings([]uuid.UUID{listingA1, listingA2, listingB1})
		require.NoError(t, err)
		assert.True(t, empty)
	})

	t.Run("unknown id fails without partial removal", func(t *testing.T) {
		basket := newFilledBasket(t)
		_, err := basket.RemoveListings([]uuid.UUID{listingA1, uuid.New()})
		require.Error(t, err)
		require.Len(t, basket.SellerOrders, 2)
		assert.Len(t, basket.SellerOrders[0].Items, 2)
	})
}

func TestBuyerOrderConfirm(t *testing.T) {
	buyerID := uuid.New()
	contactID := uuid.New()

	basket, err := NewBasket(buyerID)
	require.NoError(t, err)
	require.NoError(t, basket.UpsertItem(uuid.New(), decimal.NewFromInt(300), uuid.New(), 2, decimal.NewFromInt(100), decimal.NewFromInt(120)))

	now := time.Now()
	require.NoError(t, basket.Confirm(contactID, "buyer@example.com", now))

	assert.Equal(t, BuyerOrderStateAccepted, basket.State)
	require.NotNil(t, basket.PlacedAt)
	assert.Equal(t, now, *basket.PlacedAt)
	require.NotNil(t, basket.ContactID)
	assert.Equal(t, contactID, *basket.ContactID)
	for _, so := range basket.SellerOrders {
		assert.Equal(t, SellerOrderStateNew, so.State)
		require.NotNil(t, so.PlacedAt)
	}

	events := basket.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeOrderAccepted, events[0].EventType())

	// confirming twice fails
	assert.Error(t, basket.Confirm(contactID, "buyer@example.com", now))
}

func TestCancelSellerOrder(t *testing.T) {
	buyerID := uuid.New()

	t.Run("basket slice is dropped outright", func(t *testing.T) {
		basket, err := NewBasket(buyerID)
		require.NoError(t, err)
		require.NoError(t, basket.UpsertItem(uuid.New(), decimal.NewFromInt(300), uuid.New(), 1, decimal.NewFromInt(10), decimal.NewFromInt(12)))

		empty, err := basket.CancelSellerOrder(basket.SellerOrders[0].ID)
		require.NoError(t, err)
		assert.True(t, empty)
	})

	t.Run("placed slice moves to canceled", func(t *testing.T) {
		basket, err := NewBasket(buyerID)
		require.NoError(t, err)
		require.NoError(t, basket.UpsertItem(uuid.New(), decimal.NewFromInt(300), uuid.New(), 1, decimal.NewFromInt(10), decimal.NewFromInt(12)))
		require.NoError(t, basket.Confirm(uuid.New(), "buyer@example.com", time.Now()))
		basket.ClearDomainEvents()

		so := basket.SellerOrders[0]
		empty, err := basket.CancelSellerOrder(so.ID)
		require.NoError(t, err)
		assert.False(t, empty)
		assert.Equal(t, SellerOrderStateCanceled, so.State)

		events := basket.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeSellerOrderCanceled, events[0].EventType())
	})

	t.Run("confirmed slice is no longer buyer-cancelable", func(t *testing.T) {
		basket, err := NewBasket(buyerID)
		require.NoError(t, err)
		require.NoError(t, basket.UpsertItem(uuid.New(), decimal.NewFromInt(300), uuid.New(), 1, decimal.NewFromInt(10), decimal.NewFromInt(12)))
		require.NoError(t, basket.Confirm(uuid.New(), "buyer@example.com", time.Now()))

		so := basket.SellerOrders[0]
		require.NoError(t, basket.UpdateSellerOrderState(so.ID, SellerOrderStateConfirmed))

		_, err = basket.CancelSellerOrder(so.ID)
		assert.Error(t, err)
	})
}

func TestUpdateSellerOrderState(t *testing.T) {
	basket, err := NewBasket(uuid.New())
	require.NoError(t, err)
	require.NoError(t, basket.UpsertItem(uuid.New(), decimal.NewFromInt(300), uuid.New(), 1, decimal.NewFromInt(10), decimal.NewFromInt(12)))
	require.NoError(t, basket.Confirm(uuid.New(), "buyer@example.com", time.Now()))
	so := basket.SellerOrders[0]

	require.NoError(t, basket.UpdateSellerOrderState(so.ID, SellerOrderStateConfirmed))
	require.NoError(t, basket.UpdateSellerOrderState(so.ID, SellerOrderStateAssembled))
	require.NoError(t, basket.UpdateSellerOrderState(so.ID, SellerOrderStateSent))
	require.NoError(t, basket.UpdateSellerOrderState(so.ID, SellerOrderStateDelivered))

	// terminal state is frozen
	assert.Error(t, basket.UpdateSellerOrderState(so.ID, SellerOrderStateCanceled))

	// skipping steps is rejected
	other, err := NewBasket(uuid.New())
	require.NoError(t, err)
	require.NoError(t, other.UpsertItem(uuid.New(), decimal.NewFromInt(300), uuid.New(), 1, decimal.NewFromInt(10), decimal.NewFromInt(12)))
	require.NoError(t, other.Confirm(uuid.New(), "buyer@example.com", time.Now()))
	assert.Error(t, other.UpdateSellerOrderState(other.SellerOrders[0].ID, SellerOrderStateSent))
}

func TestOrderTotals(t *testing.T) {
	basket, err := NewBasket(uuid.New())
	require.NoError(t, err)

	shopA := uuid.New()
	shopB := uuid.New()
	require.NoError(t, basket.UpsertItem(shopA, decimal.NewFromInt(300), uuid.New(), 2, decimal.NewFromInt(100), decimal.NewFromInt(120)))
	require.NoError(t, basket.UpsertItem(shopA, decimal.NewFromInt(300), uuid.New(), 1, decimal.NewFromInt(50), decimal.NewFromInt(55)))
	require.NoError(t, basket.UpsertItem(shopB, decimal.NewFromInt(500), uuid.New(), 3, decimal.NewFromInt(10), decimal.NewFromInt(12)))

	// shopA goods: 2*100 + 1*50 = 250, shopB goods: 3*10 = 30
	assert.True(t, basket.TotalShippingPrice().Equal(decimal.NewFromInt(800)))
	assert.True(t, basket.TotalSum().Equal(decimal.NewFromInt(1080)))

	for _, so := range basket.SellerOrders {
		if so.ShopID == shopA {
			assert.True(t, so.Summary().Equal(decimal.NewFromInt(250)))
		}
	}
}
