package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/orderhub/backend/internal/domain/shared"
)

// Shop represents a seller's storefront. Each owner has at most one shop;
// the shop is created implicitly by the first catalog import or explicitly
// through the partner API.
type Shop struct {
	shared.BaseAggregateRoot
	OwnerID           uuid.UUID
	Name              string
	Email             string
	BaseShippingPrice decimal.Decimal
	IsOpen            bool
}

// NewShop creates a new shop for the given owner
func NewShop(ownerID uuid.UUID, name, email string, baseShippingPrice decimal.Decimal) (*Shop, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError(shared.CodeValidationError, "Shop name cannot be empty")
	}
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeValidationError, "Shop owner is required")
	}
	if baseShippingPrice.IsNegative() {
		return nil, shared.NewDomainError(shared.CodeValidationError, "Shipping price cannot be negative")
	}

	shop := &Shop{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OwnerID:           ownerID,
		Name:              name,
		Email:             email,
		BaseShippingPrice: baseShippingPrice,
		IsOpen:            true,
	}

	shop.AddDomainEvent(NewShopCreatedEvent(shop.ID, ownerID, name))
	return shop, nil
}

// Rename changes the shop name. Name occupancy across shops is
// enforced by the import pipeline before this is called.
func (s *Shop) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError(shared.CodeValidationError, "Shop name cannot be empty")
	}
	s.Name = name
	return nil
}

// UpdateProfile refreshes the contact email and shipping price
func (s *Shop) UpdateProfile(email string, baseShippingPrice decimal.Decimal) error {
	if baseShippingPrice.IsNegative() {
		return shared.NewDomainError(shared.CodeValidationError, "Shipping price cannot be negative")
	}
	s.Email = email
	s.BaseShippingPrice = baseShippingPrice
	return nil
}

// SetOpen toggles whether the shop accepts new orders. Listings of a
// closed shop stay in place but are excluded from the public catalog.
func (s *Shop) SetOpen(open bool) {
	if s.IsOpen == open {
		return
	}
	s.IsOpen = open
	s.AddDomainEvent(NewShopStateChangedEvent(s.ID, open))
}
