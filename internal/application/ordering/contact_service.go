package ordering

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/orderhub/backend/internal/domain/ordering"
	"github.com/orderhub/backend/internal/domain/shared"
)

// ContactInput carries the address fields of a delivery contact
type ContactInput struct {
	City      string `json:"city" binding:"required"`
	Street    string `json:"street" binding:"required"`
	House     string `json:"house"`
	Apartment string `json:"apartment"`
	Phone     string `json:"phone" binding:"required"`
}

// ContactService manages the buyer's delivery contacts
type ContactService struct {
	contacts ordering.ContactRepository
	logger   *zap.Logger
}

func NewContactService(contacts ordering.ContactRepository, logger *zap.Logger) *ContactService {
	return &ContactService{contacts: contacts, logger: logger}
}

// Create adds a new contact for the buyer. An identical active contact
// is returned as is instead of creating a duplicate.
func (s *ContactService) Create(ctx context.Context, buyerID uuid.UUID, input ContactInput) (*ordering.Contact, error) {
	contact, err := ordering.NewContact(buyerID, input.City, input.Street, input.House, input.Apartment, input.Phone)
	if err != nil {
		return nil, err
	}

	existing, err := s.contacts.ListByBuyer(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	for _, c := range existing {
		if !c.IsDeleted && c.SameAddress(contact) {
			return c, nil
		}
	}

	if err := s.contacts.Save(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// Update replaces a contact's address fields. A contact already
// referenced by placed orders is immutable, so those orders keep the
// address they were confirmed with.
func (s *ContactService) Update(ctx context.Context, buyerID, contactID uuid.UUID, input ContactInput) (*ordering.Contact, error) {
	contact, err := s.contacts.FindActive(ctx, buyerID, contactID)
	if err != nil {
		return nil, err
	}

	inUse, err := s.contacts.InUse(ctx, contactID)
	if err != nil {
		return nil, err
	}
	if inUse {
		return nil, shared.NewDomainError(shared.CodeConflict, "Contact is referenced by orders and cannot be changed")
	}

	if err := contact.Update(input.City, input.Street, input.House, input.Apartment, input.Phone); err != nil {
		return nil, err
	}
	if err := s.contacts.Save(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// Delete soft-deletes a contact. Orders already pointing at it keep
// their address.
func (s *ContactService) Delete(ctx context.Context, buyerID, contactID uuid.UUID) error {
	contact, err := s.contacts.FindActive(ctx, buyerID, contactID)
	if err != nil {
		return err
	}
	contact.Delete()
	return s.contacts.Save(ctx, contact)
}

// List returns the buyer's active contacts
func (s *ContactService) List(ctx context.Context, buyerID uuid.UUID) ([]*ordering.Contact, error) {
	contacts, err := s.contacts.ListByBuyer(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	active := contacts[:0]
	for _, c := range contacts {
		if !c.IsDeleted {
			active = append(active, c)
		}
	}
	return active, nil
}
