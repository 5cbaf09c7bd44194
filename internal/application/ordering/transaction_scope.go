package ordering

import (
	"context"

	"github.com/orderhub/backend/internal/domain/catalog"
	"github.com/orderhub/backend/internal/domain/ordering"
)

// Repositories bundles everything the ordering write paths touch.
// Stock reservation crosses into the catalog context, so its listing
// repository rides in the same transaction.
type Repositories struct {
	Orders   ordering.BuyerOrderRepository
	Contacts ordering.ContactRepository
	Shops    catalog.ShopRepository
	Listings catalog.ListingRepository
}

// TransactionScope runs a function against the ordering repositories
// inside one atomic unit
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos Repositories) error) error
}

// NoOpTransactionScope executes the function without transaction
// boundaries. Used in tests.
type NoOpTransactionScope struct {
	Repos Repositories
}

func (s *NoOpTransactionScope) Execute(ctx context.Context, fn func(repos Repositories) error) error {
	return fn(s.Repos)
}
