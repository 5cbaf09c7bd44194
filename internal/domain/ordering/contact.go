package ordering

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/orderhub/backend/internal/domain/shared"
)

// Contact is a buyer's delivery address. Contacts referenced by placed
// orders are never removed, only soft-deleted, so order history keeps
// its destination.
type Contact struct {
	shared.BaseAggregateRoot
	BuyerID   uuid.UUID
	City      string
	Street    string
	House     string
	Apartment string
	Phone     string
	IsDeleted bool
}

// NewContact creates a new delivery contact for the buyer
func NewContact(buyerID uuid.UUID, city, street, house, apartment, phone string) (*Contact, error) {
	if buyerID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeValidationError, "Buyer is required")
	}
	if strings.TrimSpace(city) == "" || strings.TrimSpace(street) == "" {
		return nil, shared.NewDomainError(shared.CodeValidationError, "City and street are required")
	}
	if strings.TrimSpace(phone) == "" {
		return nil, shared.NewDomainError(shared.CodeValidationError, "Phone is required")
	}

	return &Contact{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BuyerID:           buyerID,
		City:              city,
		Street:            street,
		House:             house,
		Apartment:         apartment,
		Phone:             phone,
	}, nil
}

// Update replaces the address fields
func (c *Contact) Update(city, street, house, apartment, phone string) error {
	if c.IsDeleted {
		return shared.NewDomainError(shared.CodeNotFound, "Contact was deleted")
	}
	if strings.TrimSpace(city) == "" || strings.TrimSpace(street) == "" {
		return shared.NewDomainError(shared.CodeValidationError, "City and street are required")
	}
	c.City = city
	c.Street = street
	c.House = house
	c.Apartment = apartment
	if strings.TrimSpace(phone) != "" {
		c.Phone = phone
	}
	return nil
}

// Delete soft-deletes the contact
func (c *Contact) Delete() {
	c.IsDeleted = true
}

// SameAddress reports whether the other contact carries the identical
// address fields. Used to deduplicate a buyer's contacts on creation.
func (c *Contact) SameAddress(other *Contact) bool {
	return c.City == other.City &&
		c.Street == other.Street &&
		c.House == other.House &&
		c.Apartment == other.Apartment &&
		c.Phone == other.Phone
}

// Address renders the contact as a single delivery line for notifications
func (c *Contact) Address() string {
	parts := []string{c.City, c.Street}
	if c.House != "" {
		parts = append(parts, fmt.Sprintf("house %s", c.House))
	}
	if c.Apartment != "" {
		parts = append(parts, fmt.Sprintf("apt %s", c.Apartment))
	}
	return fmt.Sprintf("%s, phone: %s", strings.Join(parts, ", "), c.Phone)
}
