package catalog

import (
	"context"

	"github.com/orderhub/backend/internal/domain/catalog"
)

// Repositories bundles the repositories catalog write paths work on
type Repositories struct {
	Shops      catalog.ShopRepository
	Categories catalog.CategoryRepository
	Products   catalog.ProductRepository
	Listings   catalog.ListingRepository
}

// TransactionScope runs a function against the catalog repositories
// inside one atomic unit. If fn returns an error, no mutation performed
// inside the scope survives.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos Repositories) error) error
}

// NoOpTransactionScope executes the function without transaction
// boundaries. Used in tests with in-memory or sqlite repositories.
type NoOpTransactionScope struct {
	Repos Repositories
}

func (s *NoOpTransactionScope) Execute(ctx context.Context, fn func(repos Repositories) error) error {
	return fn(s.Repos)
}
