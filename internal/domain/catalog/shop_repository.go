package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ShopRepository defines persistence operations for shops
type ShopRepository interface {
	Save(ctx context.Context, shop *Shop) error
	FindByID(ctx context.Context, id uuid.UUID) (*Shop, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) (*Shop, error)
	FindByName(ctx context.Context, name string) (*Shop, error)
	ListOpen(ctx context.Context) ([]*Shop, error)
}
