package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/orderhub/backend/internal/domain/catalog"
	"github.com/orderhub/backend/internal/domain/shared"
)

// CreateListing resolves the draft's category and product, creating the
// global rows and the shop binding on first use, and stores the new
// listing. Shared by the bulk import and the manual partner endpoint.
func CreateListing(ctx context.Context, repos Repositories, shop *catalog.Shop, draft *ListingDraft) (*catalog.Listing, error) {
	category, err := repos.Categories.FindByName(ctx, draft.CategoryName)
	if errors.Is(err, shared.ErrNotFound) {
		category, err = catalog.NewCategory(draft.CategoryName)
		if err != nil {
			return nil, err
		}
		if err = repos.Categories.Save(ctx, category); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	binding, err := repos.Categories.FindShopCategoryByCategory(ctx, shop.ID, category.ID)
	if errors.Is(err, shared.ErrNotFound) {
		// the external id must not already point at another category
		if _, lookupErr := repos.Categories.FindShopCategory(ctx, shop.ID, draft.CategoryExternalID); lookupErr == nil {
			return nil, shared.NewDomainErrorWithContext(shared.CodeConflict,
				fmt.Sprintf("category with external_id %d already exists", draft.CategoryExternalID),
				map[string]any{"category_external_id": draft.CategoryExternalID})
		} else if !errors.Is(lookupErr, shared.ErrNotFound) {
			return nil, lookupErr
		}
		binding = catalog.NewShopCategory(shop.ID, category.ID, draft.CategoryExternalID)
		if err = repos.Categories.SaveShopCategory(ctx, binding); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	product, err := repos.Products.FindByName(ctx, draft.ProductName)
	if errors.Is(err, shared.ErrNotFound) {
		product, err = catalog.NewProduct(draft.ProductName)
		if err != nil {
			return nil, err
		}
		if err = repos.Products.Save(ctx, product); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	listing, err := catalog.NewListing(shop.ID, binding.ID, product.ID, draft.ExternalID, draft.ToUpdate())
	if err != nil {
		return nil, err
	}
	if err := repos.Listings.Save(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}
