package importer

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	appcatalog "github.com/orderhub/backend/internal/application/catalog"
	"github.com/orderhub/backend/internal/domain/catalog"
	"github.com/orderhub/backend/internal/domain/shared"
)

// Result summarizes a completed catalog import
type Result struct {
	ShopID    uuid.UUID `json:"shop_id"`
	Created   int       `json:"created"`
	Updated   int       `json:"updated"`
	Unchanged int       `json:"unchanged"`
	Delisted  int64     `json:"delisted"`
}

// Service reconciles a seller's feed against their shop catalog. The
// whole feed is parsed and validated up front; the database is touched
// only when every entry passed, and all writes share one transaction.
type Service struct {
	scope    appcatalog.TransactionScope
	validate *validator.Validate
	logger   *zap.Logger
}

func NewService(scope appcatalog.TransactionScope, logger *zap.Logger) *Service {
	return &Service{
		scope:    scope,
		validate: appcatalog.NewDraftValidator(),
		logger:   logger,
	}
}

// Import runs the full reconcile for one owner's feed
func (s *Service) Import(ctx context.Context, ownerID uuid.UUID, ownerEmail string, raw []byte) (*Result, error) {
	payload, err := ParsePayload(raw)
	if err != nil {
		return nil, err
	}
	drafts, err := payload.Drafts()
	if err != nil {
		return nil, err
	}
	for i := range drafts {
		if err := appcatalog.ValidateDraft(s.validate, &drafts[i]); err != nil {
			return nil, err
		}
	}

	var result Result
	err = s.scope.Execute(ctx, func(repos appcatalog.Repositories) error {
		shop, shopCreated, err := s.resolveShop(ctx, repos, ownerID, ownerEmail, payload)
		if err != nil {
			return err
		}
		result.ShopID = shop.ID

		existing, err := repos.Listings.ListByShop(ctx, shop.ID)
		if err != nil {
			return err
		}

		// First feed for this shop: everything is new, nothing to diff
		if shopCreated || len(existing) == 0 {
			for i := range drafts {
				if _, err := appcatalog.CreateListing(ctx, repos, shop, &drafts[i]); err != nil {
					return err
				}
				result.Created++
			}
			return nil
		}

		keep := make([]int64, 0, len(drafts))
		for i := range drafts {
			keep = append(keep, drafts[i].ExternalID)
		}
		delisted, err := repos.Listings.DelistAbsent(ctx, shop.ID, keep)
		if err != nil {
			return err
		}
		result.Delisted = delisted

		byExternalID := make(map[int64]*catalog.Listing, len(existing))
		for _, listing := range existing {
			byExternalID[listing.ExternalID] = listing
		}

		for i := range drafts {
			draft := &drafts[i]
			listing, ok := byExternalID[draft.ExternalID]
			if !ok {
				if _, err := appcatalog.CreateListing(ctx, repos, shop, draft); err != nil {
					return err
				}
				result.Created++
				continue
			}

			changed, err := listing.Apply(draft.ToUpdate())
			if err != nil {
				return err
			}
			if !changed {
				result.Unchanged++
				continue
			}
			if err := repos.Listings.Save(ctx, listing); err != nil {
				return err
			}
			result.Updated++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("catalog import finished",
		zap.String("shop_id", result.ShopID.String()),
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("unchanged", result.Unchanged),
		zap.Int64("delisted", result.Delisted))

	return &result, nil
}

// resolveShop finds the owner's shop or registers it from the feed
// header. An existing shop keeps its stored name, email and shipping
// price; the feed header only matters on first contact.
func (s *Service) resolveShop(ctx context.Context, repos appcatalog.Repositories, ownerID uuid.UUID, ownerEmail string, payload *CatalogPayload) (*catalog.Shop, bool, error) {
	shop, err := repos.Shops.FindByOwner(ctx, ownerID)
	if err == nil {
		return shop, false, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, false, err
	}

	name := *payload.Shop
	taken, err := repos.Shops.FindByName(ctx, name)
	if err == nil && taken.OwnerID != ownerID {
		return nil, false, shared.NewDomainErrorWithContext(shared.CodeConflict,
			fmt.Sprintf("%s: this shop name is already occupied", name),
			map[string]any{"shop_name": name})
	}
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, false, err
	}

	shop, err = catalog.NewShop(ownerID, name, payload.ShopEmail(ownerEmail), payload.BaseShippingPrice())
	if err != nil {
		return nil, false, err
	}
	if err := repos.Shops.Save(ctx, shop); err != nil {
		return nil, false, err
	}
	return shop, true, nil
}
