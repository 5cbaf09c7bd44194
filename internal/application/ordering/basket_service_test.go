package ordering

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/orderhub/backend/internal/domain/catalog"
	"github.com/orderhub/backend/internal/domain/shared"
)

type fixture struct {
	repos  Repositories
	scope  TransactionScope
	shop   *catalog.Shop
	closed *catalog.Shop
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repos := newMemRepos()

	shop, err := catalog.NewShop(uuid.New(), "Svyaznoy", "orders@svyaznoy.example", decimal.NewFromInt(300))
	require.NoError(t, err)
	require.NoError(t, repos.Shops.Save(context.Background(), shop))

	closed, err := catalog.NewShop(uuid.New(), "Closed shop", "closed@example.com", decimal.NewFromInt(100))
	require.NoError(t, err)
	closed.SetOpen(false)
	require.NoError(t, repos.Shops.Save(context.Background(), closed))

	return &fixture{
		repos:  repos,
		scope:  &NoOpTransactionScope{Repos: repos},
		shop:   shop,
		closed: closed,
	}
}

func (f *fixture) addListing(t *testing.T, shop *catalog.Shop, externalID int64, quantity int, price int64) *catalog.Listing {
	t.Helper()
	listing, err := catalog.NewListing(shop.ID, uuid.New(), uuid.New(), externalID, catalog.ListingUpdate{
		Quantity: quantity,
		Price:    decimal.NewFromInt(price),
		PriceRRC: decimal.NewFromInt(price + 100),
	})
	require.NoError(t, err)
	require.NoError(t, f.repos.Listings.Save(context.Background(), listing))
	return listing
}

func TestBasketAddItems(t *testing.T) {
	f := newFixture(t)
	service := NewBasketService(f.scope, f.repos.Orders, zap.NewNop())
	buyerID := uuid.New()

	open := f.addListing(t, f.shop, 1, 10, 100)
	inClosed := f.addListing(t, f.closed, 2, 10, 50)

	t.Run("creates basket and snapshots prices", func(t *testing.T) {
		basket, err := service.AddItems(context.Background(), buyerID, []BasketItemInput{
			{ListingID: open.ID, Quantity: 3},
		})
		require.NoError(t, err)
		require.Len(t, basket.SellerOrders, 1)
		item := basket.SellerOrders[0].Items[0]
		assert.Equal(t, 3, item.Quantity)
		assert.True(t, item.PurchasePrice.Equal(decimal.NewFromInt(100)))
		assert.True(t, basket.SellerOrders[0].ShippingPrice.Equal(decimal.NewFromInt(300)))
	})

	t.Run("listing in a closed shop is skipped", func(t *testing.T) {
		basket, err := service.AddItems(context.Background(), buyerID, []BasketItemInput{
			{ListingID: inClosed.ID, Quantity: 1},
		})
		require.NoError(t, err)
		require.Len(t, basket.SellerOrders, 1)
		assert.Equal(t, f.shop.ID, basket.SellerOrders[0].ShopID)
	})

	t.Run("unknown listing id fails the call", func(t *testing.T) {
		_, err := service.AddItems(context.Background(), buyerID, []BasketItemInput{
			{ListingID: uuid.New(), Quantity: 1},
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, shared.CodeValidationError, domainErr.Code)
	})

	t.Run("re-adding replaces the quantity", func(t *testing.T) {
		basket, err := service.AddItems(context.Background(), buyerID, []BasketItemInput{
			{ListingID: open.ID, Quantity: 7},
		})
		require.NoError(t, err)
		assert.Equal(t, 7, basket.SellerOrders[0].Items[0].Quantity)
	})
}

func TestBasketRemoveItems(t *testing.T) {
	f := newFixture(t)
	service := NewBasketService(f.scope, f.repos.Orders, zap.NewNop())
	buyerID := uuid.New()

	a := f.addListing(t, f.shop, 1, 10, 100)
	b := f.addListing(t, f.shop, 2, 10, 200)

	_, err := service.AddItems(context.Background(), buyerID, []BasketItemInput{
		{ListingID: a.ID, Quantity: 1},
		{ListingID: b.ID, Quantity: 2},
	})
	require.NoError(t, err)

	t.Run("partial removal keeps the basket", func(t *testing.T) {
		basket, err := service.RemoveItems(context.Background(), buyerID, []uuid.UUID{a.ID})
		require.NoError(t, err)
		require.NotNil(t, basket)
		require.Len(t, basket.SellerOrders, 1)
		assert.Len(t, basket.SellerOrders[0].Items, 1)
	})

	t.Run("removing the last item deletes the basket", func(t *testing.T) {
		basket, err := service.RemoveItems(context.Background(), buyerID, []uuid.UUID{b.ID})
		require.NoError(t, err)
		assert.Nil(t, basket)

		_, err = service.Get(context.Background(), buyerID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("no basket is an error", func(t *testing.T) {
		_, err := service.RemoveItems(context.Background(), buyerID, []uuid.UUID{a.ID})
		require.Error(t, err)
	})
}
