package ordering

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/orderhub/backend/internal/domain/ordering"
	"github.com/orderhub/backend/internal/domain/shared"
)

// BasketItemInput is one listing the buyer wants in their basket
type BasketItemInput struct {
	ListingID uuid.UUID `json:"listing_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,gt=0"`
}

// BasketService manages the buyer's single editable basket
type BasketService struct {
	scope  TransactionScope
	orders ordering.BuyerOrderRepository
	logger *zap.Logger
}

func NewBasketService(scope TransactionScope, orders ordering.BuyerOrderRepository, logger *zap.Logger) *BasketService {
	return &BasketService{scope: scope, orders: orders, logger: logger}
}

// Get returns the buyer's basket, or shared.ErrNotFound when the buyer
// has none
func (s *BasketService) Get(ctx context.Context, buyerID uuid.UUID) (*ordering.BuyerOrder, error) {
	return s.orders.FindBasket(ctx, buyerID)
}

// AddItems puts listings into the basket, creating it on first use.
// Unknown listing ids fail the call; listings of closed shops are
// silently skipped. Quantities replace previous ones and price
// snapshots are refreshed.
func (s *BasketService) AddItems(ctx context.Context, buyerID uuid.UUID, items []BasketItemInput) (*ordering.BuyerOrder, error) {
	if len(items) == 0 {
		return nil, shared.NewDomainError(shared.CodeValidationError, "No items given")
	}

	quantities := make(map[uuid.UUID]int, len(items))
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, shared.NewDomainErrorWithContext(shared.CodeValidationError,
				"Quantity must be positive",
				map[string]any{"listing_id": item.ListingID.String()})
		}
		if _, seen := quantities[item.ListingID]; !seen {
			ids = append(ids, item.ListingID)
		}
		quantities[item.ListingID] = item.Quantity
	}

	var basket *ordering.BuyerOrder
	err := s.scope.Execute(ctx, func(repos Repositories) error {
		var err error
		basket, err = repos.Orders.FindBasket(ctx, buyerID)
		if errors.Is(err, shared.ErrNotFound) {
			basket, err = ordering.NewBasket(buyerID)
		}
		if err != nil {
			return err
		}

		listings, err := repos.Listings.FindByIDs(ctx, ids)
		if err != nil {
			return err
		}
		if len(listings) != len(ids) {
			found := make(map[uuid.UUID]bool, len(listings))
			for _, l := range listings {
				found[l.ID] = true
			}
			var unknown []string
			for _, id := range ids {
				if !found[id] {
					unknown = append(unknown, id.String())
				}
			}
			return shared.NewDomainErrorWithContext(shared.CodeValidationError,
				"Unknown listing ids", map[string]any{"unknown_ids": unknown})
		}

		for _, listing := range listings {
			shop, err := repos.Shops.FindByID(ctx, listing.ShopID)
			if err != nil {
				return err
			}
			if !shop.IsOpen {
				continue
			}
			if err := basket.UpsertItem(shop.ID, shop.BaseShippingPrice,
				listing.ID, quantities[listing.ID], listing.Price, listing.PriceRRC); err != nil {
				return err
			}
		}

		return repos.Orders.Save(ctx, basket)
	})
	if err != nil {
		return nil, err
	}
	return basket, nil
}

// RemoveItems takes listings out of the basket. When the last item
// goes, the basket itself is deleted and nil is returned.
func (s *BasketService) RemoveItems(ctx context.Context, buyerID uuid.UUID, listingIDs []uuid.UUID) (*ordering.BuyerOrder, error) {
	if len(listingIDs) == 0 {
		return nil, shared.NewDomainError(shared.CodeValidationError, "No listing ids given")
	}

	var basket *ordering.BuyerOrder
	err := s.scope.Execute(ctx, func(repos Repositories) error {
		var err error
		basket, err = repos.Orders.FindBasket(ctx, buyerID)
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError(shared.CodeNotFound, "Your basket does not exist")
		}
		if err != nil {
			return err
		}

		empty, err := basket.RemoveListings(listingIDs)
		if err != nil {
			return err
		}
		if empty {
			if err := repos.Orders.Delete(ctx, basket.ID); err != nil {
				return err
			}
			basket = nil
			return nil
		}
		return repos.Orders.Save(ctx, basket)
	})
	if err != nil {
		return nil, err
	}
	return basket, nil
}
