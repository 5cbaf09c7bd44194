package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShop(t *testing.T) {
	t.Run("creates open shop", func(t *testing.T) {
		shop, err := NewShop(uuid.New(), "Svyaznoy", "orders@svyaznoy.example", decimal.NewFromInt(300))
		require.NoError(t, err)
		assert.True(t, shop.IsOpen)
		assert.Equal(t, "Svyaznoy", shop.Name)

		events := shop.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeShopCreated, events[0].EventType())
	})

	t.Run("rejects blank name", func(t *testing.T) {
		_, err := NewShop(uuid.New(), "  ", "x@example.com", decimal.NewFromInt(300))
		assert.Error(t, err)
	})

	t.Run("rejects negative shipping price", func(t *testing.T) {
		_, err := NewShop(uuid.New(), "Svyaznoy", "x@example.com", decimal.NewFromInt(-1))
		assert.Error(t, err)
	})
}

func TestShopSetOpen(t *testing.T) {
	shop, err := NewShop(uuid.New(), "Svyaznoy", "orders@svyaznoy.example", decimal.NewFromInt(300))
	require.NoError(t, err)
	shop.ClearDomainEvents()

	shop.SetOpen(false)
	assert.False(t, shop.IsOpen)
	require.Len(t, shop.GetDomainEvents(), 1)

	// same state again does not emit another event
	shop.ClearDomainEvents()
	shop.SetOpen(false)
	assert.Empty(t, shop.GetDomainEvents())
}
