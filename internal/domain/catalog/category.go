package catalog

import (
	"strings"

	"github.com/google/uuid"

	"github.com/orderhub/backend/internal/domain/shared"
)

// Category is a global, shop-independent product category keyed by name
type Category struct {
	shared.BaseAggregateRoot
	Name string
}

// NewCategory creates a new global category
func NewCategory(name string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError(shared.CodeValidationError, "Category name cannot be empty")
	}
	return &Category{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
	}, nil
}

// ShopCategory binds a global category to a shop under the seller's own
// numeric identifier. Listings reference categories through this binding,
// so two shops can use the same external id for different categories.
type ShopCategory struct {
	shared.BaseEntity
	ShopID     uuid.UUID
	CategoryID uuid.UUID
	ExternalID int64
}

// NewShopCategory creates a shop-scoped category binding
func NewShopCategory(shopID, categoryID uuid.UUID, externalID int64) *ShopCategory {
	return &ShopCategory{
		BaseEntity: shared.NewBaseEntity(),
		ShopID:     shopID,
		CategoryID: categoryID,
		ExternalID: externalID,
	}
}
