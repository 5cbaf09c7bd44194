package catalog

import (
	"github.com/google/uuid"

	"github.com/orderhub/backend/internal/domain/shared"
)

// Event types for the catalog context
const (
	EventTypeShopCreated      = "catalog.shop.created"
	EventTypeShopStateChanged = "catalog.shop.state_changed"
	EventTypeListingCreated   = "catalog.listing.created"
	EventTypeListingUpdated   = "catalog.listing.updated"
	EventTypeListingDelisted  = "catalog.listing.delisted"
)

// ShopCreatedEvent is published when a shop is first registered
type ShopCreatedEvent struct {
	shared.BaseDomainEvent
	OwnerID uuid.UUID `json:"owner_id"`
	Name    string    `json:"name"`
}

func NewShopCreatedEvent(shopID, ownerID uuid.UUID, name string) *ShopCreatedEvent {
	return &ShopCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeShopCreated, "Shop", shopID),
		OwnerID:         ownerID,
		Name:            name,
	}
}

// ShopStateChangedEvent is published when a shop opens or closes
type ShopStateChangedEvent struct {
	shared.BaseDomainEvent
	IsOpen bool `json:"is_open"`
}

func NewShopStateChangedEvent(shopID uuid.UUID, isOpen bool) *ShopStateChangedEvent {
	return &ShopStateChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeShopStateChanged, "Shop", shopID),
		IsOpen:          isOpen,
	}
}

// ListingCreatedEvent is published when a new listing appears in a shop
type ListingCreatedEvent struct {
	shared.BaseDomainEvent
	ShopID     uuid.UUID `json:"shop_id"`
	ExternalID int64     `json:"external_id"`
}

func NewListingCreatedEvent(listingID, shopID uuid.UUID, externalID int64) *ListingCreatedEvent {
	return &ListingCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeListingCreated, "Listing", listingID),
		ShopID:          shopID,
		ExternalID:      externalID,
	}
}

// ListingUpdatedEvent is published when an existing listing changes
type ListingUpdatedEvent struct {
	shared.BaseDomainEvent
	ShopID     uuid.UUID `json:"shop_id"`
	ExternalID int64     `json:"external_id"`
}

func NewListingUpdatedEvent(listingID, shopID uuid.UUID, externalID int64) *ListingUpdatedEvent {
	return &ListingUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeListingUpdated, "Listing", listingID),
		ShopID:          shopID,
		ExternalID:      externalID,
	}
}

// ListingDelistedEvent is published when a listing's stock is zeroed
// because it dropped out of the seller's feed or was pulled manually
type ListingDelistedEvent struct {
	shared.BaseDomainEvent
	ShopID     uuid.UUID `json:"shop_id"`
	ExternalID int64     `json:"external_id"`
}

func NewListingDelistedEvent(listingID, shopID uuid.UUID, externalID int64) *ListingDelistedEvent {
	return &ListingDelistedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeListingDelisted, "Listing", listingID),
		ShopID:          shopID,
		ExternalID:      externalID,
	}
}
