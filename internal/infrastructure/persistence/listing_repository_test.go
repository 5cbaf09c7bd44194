package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/orderhub/backend/internal/domain/catalog"
	"github.com/orderhub/backend/internal/domain/shared"
	"github.com/orderhub/backend/internal/infrastructure/persistence/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.ShopModel{},
		&models.CategoryModel{},
		&models.ShopCategoryModel{},
		&models.ProductModel{},
		&models.ParameterModel{},
		&models.ListingModel{},
		&models.ListingParameterModel{},
		&models.ContactModel{},
		&models.BuyerOrderModel{},
		&models.SellerOrderModel{},
		&models.OrderItemModel{},
	))
	return db
}

func newStoredListing(t *testing.T, repo *GormListingRepository, shopID uuid.UUID, externalID int64, quantity int) *catalog.Listing {
	t.Helper()
	listing, err := catalog.NewListing(shopID, uuid.New(), uuid.New(), externalID, catalog.ListingUpdate{
		Model:    "mi-9t",
		Quantity: quantity,
		Price:    decimal.NewFromInt(23000),
		PriceRRC: decimal.NewFromInt(25990),
		Parameters: []catalog.ParameterPair{
			{Name: "Color", Value: "black"},
			{Name: "Memory", Value: "64GB"},
		},
	})
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), listing))
	return listing
}

func TestListingRepositoryRoundtrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormListingRepository(db)
	shopID := uuid.New()

	listing := newStoredListing(t, repo, shopID, 4216292, 10)

	loaded, err := repo.FindByShopAndExternalID(context.Background(), shopID, 4216292)
	require.NoError(t, err)
	assert.Equal(t, listing.ID, loaded.ID)
	assert.Equal(t, 10, loaded.Quantity)
	assert.True(t, loaded.Price.Equal(decimal.NewFromInt(23000)))
	assert.ElementsMatch(t, listing.Parameters, loaded.Parameters)
}

func TestListingRepositoryParameterUpdate(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormListingRepository(db)
	shopID := uuid.New()

	listing := newStoredListing(t, repo, shopID, 4216292, 10)

	changed, err := listing.Apply(catalog.ListingUpdate{
		Model:    "mi-9t",
		Quantity: 10,
		Price:    decimal.NewFromInt(23000),
		PriceRRC: decimal.NewFromInt(25990),
		Parameters: []catalog.ParameterPair{
			{Name: "Color", Value: "white"},
		},
	})
	require.NoError(t, err)
	require.True(t, changed)
	require.NoError(t, repo.Save(context.Background(), listing))

	loaded, err := repo.FindByID(context.Background(), listing.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Parameters, 1)
	assert.Equal(t, catalog.ParameterPair{Name: "Color", Value: "white"}, loaded.Parameters[0])

	// the parameter name stays deduplicated
	var count int64
	require.NoError(t, db.Model(&models.ParameterModel{}).Where("name = ?", "Color").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestListingRepositoryParameterDedupAcrossShops(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormListingRepository(db)

	first := newStoredListing(t, repo, uuid.New(), 1, 10)
	second := newStoredListing(t, repo, uuid.New(), 1, 5)

	// both listings carry Color and Memory, the names are stored once
	var paramCount, valueCount int64
	require.NoError(t, db.Model(&models.ParameterModel{}).Count(&paramCount).Error)
	require.NoError(t, db.Model(&models.ListingParameterModel{}).Count(&valueCount).Error)
	assert.Equal(t, int64(2), paramCount)
	assert.Equal(t, int64(4), valueCount)

	loaded, err := repo.FindByID(context.Background(), second.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, first.Parameters, loaded.Parameters)
}

func TestListingRepositoryDelistAbsent(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormListingRepository(db)
	shopID := uuid.New()
	otherShop := uuid.New()

	kept := newStoredListing(t, repo, shopID, 1, 10)
	dropped := newStoredListing(t, repo, shopID, 2, 5)
	foreign := newStoredListing(t, repo, otherShop, 2, 7)

	touched, err := repo.DelistAbsent(context.Background(), shopID, []int64{1})
	require.NoError(t, err)
	assert.Equal(t, int64(1), touched)

	loaded, err := repo.FindByID(context.Background(), dropped.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, loaded.Quantity)

	loaded, err = repo.FindByID(context.Background(), kept.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, loaded.Quantity)

	// other shops are untouched
	loaded, err = repo.FindByID(context.Background(), foreign.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, loaded.Quantity)
}

func TestListingRepositoryReserveStock(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormListingRepository(db)
	listing := newStoredListing(t, repo, uuid.New(), 1, 3)

	require.NoError(t, repo.ReserveStock(context.Background(), listing.ID, 2))

	err := repo.ReserveStock(context.Background(), listing.ID, 2)
	assert.ErrorIs(t, err, shared.ErrInsufficientStock)

	loaded, err := repo.FindByID(context.Background(), listing.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Quantity)

	require.NoError(t, repo.ReleaseStock(context.Background(), listing.ID, 2))
	loaded, err = repo.FindByID(context.Background(), listing.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.Quantity)
}

func TestListingRepositoryListAvailable(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormListingRepository(db)
	shops := NewGormShopRepository(db)

	open, err := catalog.NewShop(uuid.New(), "Open shop", "open@example.com", decimal.NewFromInt(300))
	require.NoError(t, err)
	require.NoError(t, shops.Save(context.Background(), open))

	closed, err := catalog.NewShop(uuid.New(), "Closed shop", "closed@example.com", decimal.NewFromInt(300))
	require.NoError(t, err)
	closed.SetOpen(false)
	require.NoError(t, shops.Save(context.Background(), closed))

	visible := newStoredListing(t, repo, open.ID, 1, 10)
	newStoredListing(t, repo, open.ID, 2, 0)    // out of stock
	newStoredListing(t, repo, closed.ID, 3, 10) // closed shop

	found, err := repo.ListAvailable(context.Background(), catalog.CatalogQuery{})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, visible.ID, found[0].ID)

	other := uuid.New()
	found, err = repo.ListAvailable(context.Background(), catalog.CatalogQuery{ShopID: &other})
	require.NoError(t, err)
	assert.Empty(t, found)
}
