package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/orderhub/backend/internal/domain/catalog"
	"github.com/orderhub/backend/internal/domain/shared"
)

// ShopService covers the seller's own shop profile and its open state
type ShopService struct {
	shops  catalog.ShopRepository
	logger *zap.Logger
}

func NewShopService(shops catalog.ShopRepository, logger *zap.Logger) *ShopService {
	return &ShopService{shops: shops, logger: logger}
}

// GetMine returns the owner's shop
func (s *ShopService) GetMine(ctx context.Context, ownerID uuid.UUID) (*catalog.Shop, error) {
	shop, err := s.shops.FindByOwner(ctx, ownerID)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, shared.NewDomainError(shared.CodeNotFound, "You have no shop yet")
	}
	return shop, err
}

// SetState opens or closes the owner's shop. A closed shop keeps its
// catalog but disappears from public reads and basket additions.
func (s *ShopService) SetState(ctx context.Context, ownerID uuid.UUID, open bool) (*catalog.Shop, error) {
	shop, err := s.GetMine(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	shop.SetOpen(open)
	if err := s.shops.Save(ctx, shop); err != nil {
		return nil, err
	}

	s.logger.Info("shop state changed",
		zap.String("shop_id", shop.ID.String()),
		zap.Bool("is_open", open))
	return shop, nil
}
