package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderhub/backend/internal/domain/catalog"
)

func TestShopRepositorySavePersistsOpenState(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormShopRepository(db)

	shop, err := catalog.NewShop(uuid.New(), "Closed on arrival", "seller@example.com", decimal.NewFromInt(300))
	require.NoError(t, err)
	shop.SetOpen(false)
	require.NoError(t, repo.Save(context.Background(), shop))

	loaded, err := repo.FindByID(context.Background(), shop.ID)
	require.NoError(t, err)
	assert.False(t, loaded.IsOpen)

	open, err := repo.ListOpen(context.Background())
	require.NoError(t, err)
	assert.Empty(t, open)

	shop.SetOpen(true)
	require.NoError(t, repo.Save(context.Background(), shop))

	open, err = repo.ListOpen(context.Background())
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, shop.ID, open[0].ID)
}
