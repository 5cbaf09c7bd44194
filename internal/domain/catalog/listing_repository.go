package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/orderhub/backend/internal/domain/shared"
)

// CatalogQuery filters public catalog reads
type CatalogQuery struct {
	ShopID     *uuid.UUID
	CategoryID *uuid.UUID
	shared.Filter
}

// ListingRepository defines persistence operations for listings
type ListingRepository interface {
	Save(ctx context.Context, listing *Listing) error
	SaveBatch(ctx context.Context, listings []*Listing) error
	FindByID(ctx context.Context, id uuid.UUID) (*Listing, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*Listing, error)
	FindByShopAndExternalID(ctx context.Context, shopID uuid.UUID, externalID int64) (*Listing, error)
	ListByShop(ctx context.Context, shopID uuid.UUID) ([]*Listing, error)

	// ListAvailable returns listings with positive stock in open shops
	ListAvailable(ctx context.Context, query CatalogQuery) ([]*Listing, error)

	// DelistAbsent zeroes the quantity of every listing in the shop whose
	// external id is not in keep. Returns the number of rows touched.
	DelistAbsent(ctx context.Context, shopID uuid.UUID, keep []int64) (int64, error)

	// ReserveStock atomically decrements quantity, failing with
	// shared.ErrInsufficientStock when fewer than qty units remain
	ReserveStock(ctx context.Context, id uuid.UUID, qty int) error

	// ReleaseStock returns previously reserved units to the listing
	ReleaseStock(ctx context.Context, id uuid.UUID, qty int) error
}
