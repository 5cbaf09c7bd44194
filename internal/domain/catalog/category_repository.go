package catalog

import (
	"context"

	"github.com/google/uuid"
)

// CategoryRepository defines persistence operations for global categories
// and their per-shop bindings
type CategoryRepository interface {
	Save(ctx context.Context, category *Category) error
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	FindByName(ctx context.Context, name string) (*Category, error)
	List(ctx context.Context) ([]*Category, error)

	SaveShopCategory(ctx context.Context, sc *ShopCategory) error
	FindShopCategory(ctx context.Context, shopID uuid.UUID, externalID int64) (*ShopCategory, error)
	FindShopCategoryByCategory(ctx context.Context, shopID, categoryID uuid.UUID) (*ShopCategory, error)
	FindShopCategoryByID(ctx context.Context, id uuid.UUID) (*ShopCategory, error)
	ListShopCategories(ctx context.Context, shopID uuid.UUID) ([]*ShopCategory, error)
}
