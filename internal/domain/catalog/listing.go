package catalog

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/orderhub/backend/internal/domain/shared"
)

// ParameterPair is a single free-form characteristic of a listing
type ParameterPair struct {
	Name  string
	Value string
}

// Listing is a shop's offer of a product: stock, pricing and
// characteristics. ExternalID is the seller's own identifier and is
// unique within the shop; the same external id may appear in other shops.
type Listing struct {
	shared.BaseAggregateRoot
	ShopID         uuid.UUID
	ShopCategoryID uuid.UUID
	ProductID      uuid.UUID
	ExternalID     int64
	Model          string
	Quantity       int
	Price          decimal.Decimal
	PriceRRC       decimal.Decimal
	Picture        string
	Parameters     []ParameterPair
}

// ListingUpdate carries the incoming state of a listing during an import
// or a manual partner edit. Fields are applied only when they differ from
// the stored values.
type ListingUpdate struct {
	Model      string
	Quantity   int
	Price      decimal.Decimal
	PriceRRC   decimal.Decimal
	Picture    string
	Parameters []ParameterPair
}

// NewListing creates a new listing for a shop
func NewListing(shopID, shopCategoryID, productID uuid.UUID, externalID int64, upd ListingUpdate) (*Listing, error) {
	if err := validateStock(upd.Quantity, upd.Price); err != nil {
		return nil, err
	}

	listing := &Listing{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ShopID:            shopID,
		ShopCategoryID:    shopCategoryID,
		ProductID:         productID,
		ExternalID:        externalID,
		Model:             upd.Model,
		Quantity:          upd.Quantity,
		Price:             upd.Price,
		PriceRRC:          upd.PriceRRC,
		Picture:           upd.Picture,
		Parameters:        upd.Parameters,
	}

	listing.AddDomainEvent(NewListingCreatedEvent(listing.ID, shopID, externalID))
	return listing, nil
}

// Apply merges an update into the listing, touching only fields whose
// values changed. Returns true when anything was modified, so the caller
// can skip the write entirely for no-op rows.
func (l *Listing) Apply(upd ListingUpdate) (bool, error) {
	if err := validateStock(upd.Quantity, upd.Price); err != nil {
		return false, err
	}

	changed := false
	if l.Model != upd.Model {
		l.Model = upd.Model
		changed = true
	}
	if l.Quantity != upd.Quantity {
		l.Quantity = upd.Quantity
		changed = true
	}
	if !l.Price.Equal(upd.Price) {
		l.Price = upd.Price
		changed = true
	}
	if !l.PriceRRC.Equal(upd.PriceRRC) {
		l.PriceRRC = upd.PriceRRC
		changed = true
	}
	if l.Picture != upd.Picture {
		l.Picture = upd.Picture
		changed = true
	}
	if !parametersEqual(l.Parameters, upd.Parameters) {
		l.Parameters = upd.Parameters
		changed = true
	}

	if changed {
		l.AddDomainEvent(NewListingUpdatedEvent(l.ID, l.ShopID, l.ExternalID))
	}
	return changed, nil
}

// Delist zeroes the available quantity without removing the row, so
// existing order lines keep their price snapshot and product reference
func (l *Listing) Delist() {
	if l.Quantity == 0 {
		return
	}
	l.Quantity = 0
	l.AddDomainEvent(NewListingDelistedEvent(l.ID, l.ShopID, l.ExternalID))
}

// IsAvailable reports whether the listing can be placed in a basket
func (l *Listing) IsAvailable() bool {
	return l.Quantity > 0
}

func validateStock(quantity int, price decimal.Decimal) error {
	if quantity < 0 {
		return shared.NewDomainError(shared.CodeValidationError, "Quantity cannot be negative")
	}
	if !price.IsPositive() {
		return shared.NewDomainError(shared.CodeValidationError, "Price must be positive")
	}
	return nil
}

// parametersEqual compares two parameter sets order-insensitively by
// sorting on name first. Seller feeds frequently reorder parameters
// between uploads; reordering alone must not count as a change.
func parametersEqual(a, b []ParameterPair) bool {
	if len(a) != len(b) {
		return false
	}
	as := make([]ParameterPair, len(a))
	bs := make([]ParameterPair, len(b))
	copy(as, a)
	copy(bs, b)
	sort.Slice(as, func(i, j int) bool { return as[i].Name < as[j].Name })
	sort.Slice(bs, func(i, j int) bool { return bs[i].Name < bs[j].Name })
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}
