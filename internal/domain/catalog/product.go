package catalog

import (
	"strings"

	"github.com/orderhub/backend/internal/domain/shared"
)

// Product is the global, shop-independent name of a good. Products are
// deduplicated by name across all shops; concrete stock, pricing and
// category placement live on the per-shop Listing.
type Product struct {
	shared.BaseAggregateRoot
	Name string
}

// NewProduct creates a new global product
func NewProduct(name string) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError(shared.CodeValidationError, "Product name cannot be empty")
	}
	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
	}, nil
}
