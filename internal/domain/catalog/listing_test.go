package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validUpdate() ListingUpdate {
	return ListingUpdate{
		Model:    "mi-9t",
		Quantity: 10,
		Price:    decimal.NewFromInt(23000),
		PriceRRC: decimal.NewFromInt(25990),
		Picture:  "https://cdn.example.com/mi-9t.png",
		Parameters: []ParameterPair{
			{Name: "Color", Value: "black"},
			{Name: "Memory", Value: "64GB"},
		},
	}
}

func TestNewListing(t *testing.T) {
	shopID := uuid.New()

	t.Run("creates listing with event", func(t *testing.T) {
		listing, err := NewListing(shopID, uuid.New(), uuid.New(), 4216292, validUpdate())
		require.NoError(t, err)

		assert.Equal(t, int64(4216292), listing.ExternalID)
		assert.Equal(t, 10, listing.Quantity)
		assert.True(t, listing.IsAvailable())

		events := listing.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeListingCreated, events[0].EventType())
	})

	t.Run("rejects negative quantity", func(t *testing.T) {
		upd := validUpdate()
		upd.Quantity = -1
		_, err := NewListing(shopID, uuid.New(), uuid.New(), 1, upd)
		assert.Error(t, err)
	})

	t.Run("rejects non-positive price", func(t *testing.T) {
		upd := validUpdate()
		upd.Price = decimal.Zero
		_, err := NewListing(shopID, uuid.New(), uuid.New(), 1, upd)
		assert.Error(t, err)
	})
}

func TestListingApply(t *testing.T) {
	newListing := func(t *testing.T) *Listing {
		listing, err := NewListing(uuid.New(), uuid.New(), uuid.New(), 4216292, validUpdate())
		require.NoError(t, err)
		listing.ClearDomainEvents()
		return listing
	}

	t.Run("identical update is a no-op", func(t *testing.T) {
		listing := newListing(t)
		changed, err := listing.Apply(validUpdate())
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Empty(t, listing.GetDomainEvents())
	})

	t.Run("reordered parameters do not count as a change", func(t *testing.T) {
		listing := newListing(t)
		upd := validUpdate()
		upd.Parameters = []ParameterPair{
			{Name: "Memory", Value: "64GB"},
			{Name: "Color", Value: "black"},
		}
		changed, err := listing.Apply(upd)
		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("changed price is applied and emits event", func(t *testing.T) {
		listing := newListing(t)
		upd := validUpdate()
		upd.Price = decimal.NewFromInt(21000)
		changed, err := listing.Apply(upd)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.True(t, listing.Price.Equal(decimal.NewFromInt(21000)))

		events := listing.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeListingUpdated, events[0].EventType())
	})

	t.Run("parameter value change is detected", func(t *testing.T) {
		listing := newListing(t)
		upd := validUpdate()
		upd.Parameters = []ParameterPair{
			{Name: "Color", Value: "white"},
			{Name: "Memory", Value: "64GB"},
		}
		changed, err := listing.Apply(upd)
		require.NoError(t, err)
		assert.True(t, changed)
	})

	t.Run("invalid update leaves listing untouched", func(t *testing.T) {
		listing := newListing(t)
		upd := validUpdate()
		upd.Quantity = -5
		_, err := listing.Apply(upd)
		assert.Error(t, err)
		assert.Equal(t, 10, listing.Quantity)
	})
}

func TestListingDelist(t *testing.T) {
	listing, err := NewListing(uuid.New(), uuid.New(), uuid.New(), 4216292, validUpdate())
	require.NoError(t, err)
	listing.ClearDomainEvents()

	listing.Delist()
	assert.Equal(t, 0, listing.Quantity)
	assert.False(t, listing.IsAvailable())

	events := listing.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeListingDelisted, events[0].EventType())

	// delisting again is a no-op
	listing.ClearDomainEvents()
	listing.Delist()
	assert.Empty(t, listing.GetDomainEvents())
}
