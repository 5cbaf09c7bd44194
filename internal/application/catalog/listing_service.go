package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/orderhub/backend/internal/domain/catalog"
	"github.com/orderhub/backend/internal/domain/shared"
)

// ListingService is the manual counterpart of the bulk import: sellers
// can add, edit and pull single listings without uploading a whole feed
type ListingService struct {
	scope    TransactionScope
	shops    catalog.ShopRepository
	listings catalog.ListingRepository
	validate *validator.Validate
	logger   *zap.Logger
}

func NewListingService(scope TransactionScope, shops catalog.ShopRepository, listings catalog.ListingRepository, logger *zap.Logger) *ListingService {
	return &ListingService{
		scope:    scope,
		shops:    shops,
		listings: listings,
		validate: NewDraftValidator(),
		logger:   logger,
	}
}

func (s *ListingService) shopOf(ctx context.Context, ownerID uuid.UUID) (*catalog.Shop, error) {
	shop, err := s.shops.FindByOwner(ctx, ownerID)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, shared.NewDomainError(shared.CodeNotFound, "You have no shop yet")
	}
	return shop, err
}

// Create adds a single listing to the owner's shop. Unlike the bulk
// import, an already used external id is a conflict here, not an update.
func (s *ListingService) Create(ctx context.Context, ownerID uuid.UUID, draft ListingDraft) (*catalog.Listing, error) {
	if err := ValidateDraft(s.validate, &draft); err != nil {
		return nil, err
	}

	shop, err := s.shopOf(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	var created *catalog.Listing
	err = s.scope.Execute(ctx, func(repos Repositories) error {
		if _, err := repos.Listings.FindByShopAndExternalID(ctx, shop.ID, draft.ExternalID); err == nil {
			return shared.NewDomainErrorWithContext(shared.CodeConflict,
				fmt.Sprintf("product with external_id %d already exists in your shop", draft.ExternalID),
				map[string]any{"external_id": draft.ExternalID})
		} else if !errors.Is(err, shared.ErrNotFound) {
			return err
		}

		created, err = CreateListing(ctx, repos, shop, &draft)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("listing created manually",
		zap.String("shop_id", shop.ID.String()),
		zap.Int64("external_id", draft.ExternalID))
	return created, nil
}

// Update edits the stock fields of one listing. Category and product
// bindings are fixed at creation time.
func (s *ListingService) Update(ctx context.Context, ownerID uuid.UUID, externalID int64, upd catalog.ListingUpdate) (*catalog.Listing, error) {
	shop, err := s.shopOf(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	listing, err := s.listings.FindByShopAndExternalID(ctx, shop.ID, externalID)
	if err != nil {
		return nil, err
	}

	changed, err := listing.Apply(upd)
	if err != nil {
		return nil, err
	}
	if changed {
		if err := s.listings.Save(ctx, listing); err != nil {
			return nil, err
		}
	}
	return listing, nil
}

// Delist zeroes the stock of one listing
func (s *ListingService) Delist(ctx context.Context, ownerID uuid.UUID, externalID int64) (*catalog.Listing, error) {
	shop, err := s.shopOf(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	listing, err := s.listings.FindByShopAndExternalID(ctx, shop.ID, externalID)
	if err != nil {
		return nil, err
	}

	listing.Delist()
	if err := s.listings.Save(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

// ListMine returns all of the owner's listings, delisted ones included
func (s *ListingService) ListMine(ctx context.Context, ownerID uuid.UUID) ([]*catalog.Listing, error) {
	shop, err := s.shopOf(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.listings.ListByShop(ctx, shop.ID)
}
