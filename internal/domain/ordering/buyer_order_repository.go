package ordering

import (
	"context"

	"github.com/google/uuid"

	"github.com/orderhub/backend/internal/domain/shared"
)

// BuyerOrderRepository defines persistence operations for buyer orders.
// Save persists the whole tree: seller orders and items included,
// removing rows that dropped out of the aggregate.
type BuyerOrderRepository interface {
	Save(ctx context.Context, order *BuyerOrder) error
	FindByID(ctx context.Context, id uuid.UUID) (*BuyerOrder, error)
	FindBasket(ctx context.Context, buyerID uuid.UUID) (*BuyerOrder, error)
	FindBySellerOrderID(ctx context.Context, sellerOrderID uuid.UUID) (*BuyerOrder, error)
	ListPlaced(ctx context.Context, buyerID uuid.UUID, filter shared.Filter) ([]*BuyerOrder, error)
	ListSellerOrdersByShop(ctx context.Context, shopID uuid.UUID, filter shared.Filter) ([]*SellerOrder, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ContactRepository defines persistence operations for delivery contacts
type ContactRepository interface {
	Save(ctx context.Context, contact *Contact) error
	FindByID(ctx context.Context, id uuid.UUID) (*Contact, error)
	// FindActive returns the contact only when it belongs to the buyer
	// and has not been soft-deleted
	FindActive(ctx context.Context, buyerID, contactID uuid.UUID) (*Contact, error)
	ListByBuyer(ctx context.Context, buyerID uuid.UUID) ([]*Contact, error)
	// InUse reports whether any placed order references the contact
	InUse(ctx context.Context, contactID uuid.UUID) (bool, error)
}
