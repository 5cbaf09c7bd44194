package ordering

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/orderhub/backend/internal/domain/shared"
)

// OrderItem is one listing inside a seller order. PurchasePrice and
// PurchasePriceRRC are snapshots taken when the item entered the basket;
// later catalog imports do not move them.
type OrderItem struct {
	shared.BaseEntity
	SellerOrderID    uuid.UUID
	ListingID        uuid.UUID
	Quantity         int
	PurchasePrice    decimal.Decimal
	PurchasePriceRRC decimal.Decimal

	// Status carries a per-item rejection note produced during checkout
	// validation. It is never persisted.
	Status string
}

// SellerOrder is the slice of a buyer order destined for one shop. It is
// created lazily when the first item from that shop enters the basket.
type SellerOrder struct {
	shared.BaseEntity
	BuyerOrderID  uuid.UUID
	ShopID        uuid.UUID
	State         SellerOrderState
	ShippingPrice decimal.Decimal
	PlacedAt      *time.Time
	Items         []*OrderItem
}

// Summary is the goods total of the seller order, shipping excluded
func (so *SellerOrder) Summary() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range so.Items {
		sum = sum.Add(item.PurchasePrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return sum
}

func (so *SellerOrder) findItem(listingID uuid.UUID) *OrderItem {
	for _, item := range so.Items {
		if item.ListingID == listingID {
			return item
		}
	}
	return nil
}

// BuyerOrder is the aggregate root for the basket and the placed order.
// PlacedAt is nil while the order is still a basket and is set once on
// confirmation.
type BuyerOrder struct {
	shared.BaseAggregateRoot
	BuyerID      uuid.UUID
	BuyerEmail   string
	State        BuyerOrderState
	ContactID    *uuid.UUID
	PlacedAt     *time.Time
	SellerOrders []*SellerOrder
}

// NewBasket creates an empty basket for the buyer
func NewBasket(buyerID uuid.UUID) (*BuyerOrder, error) {
	if buyerID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeValidationError, "Buyer is required")
	}
	return &BuyerOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BuyerID:           buyerID,
		State:             BuyerOrderStateBasket,
		SellerOrders:      make([]*SellerOrder, 0),
	}, nil
}

// IsBasket reports whether the order is still editable
func (o *BuyerOrder) IsBasket() bool {
	return o.State == BuyerOrderStateBasket
}

// UpsertItem puts a listing into the basket. The quantity replaces any
// previous quantity for the same listing and the price snapshots are
// refreshed. shippingPrice is snapshotted only when the shop's seller
// order is first created.
func (o *BuyerOrder) UpsertItem(shopID uuid.UUID, shippingPrice decimal.Decimal, listingID uuid.UUID, quantity int, price, priceRRC decimal.Decimal) error {
	if !o.IsBasket() {
		return shared.NewDomainError(shared.CodeConflict, "Order is already placed")
	}
	if quantity <= 0 {
		return shared.NewDomainError(shared.CodeValidationError, "Quantity must be positive")
	}

	var sellerOrder *SellerOrder
	for _, so := range o.SellerOrders {
		if so.ShopID == shopID && so.State == SellerOrderStateBasket {
			sellerOrder = so
			break
		}
	}
	if sellerOrder == nil {
		sellerOrder = &SellerOrder{
			BaseEntity:    shared.NewBaseEntity(),
			BuyerOrderID:  o.ID,
			ShopID:        shopID,
			State:         SellerOrderStateBasket,
			ShippingPrice: shippingPrice,
			Items:         make([]*OrderItem, 0),
		}
		o.SellerOrders = append(o.SellerOrders, sellerOrder)
	}

	if item := sellerOrder.findItem(listingID); item != nil {
		item.Quantity = quantity
		item.PurchasePrice = price
		item.PurchasePriceRRC = priceRRC
		return nil
	}

	sellerOrder.Items = append(sellerOrder.Items, &OrderItem{
		BaseEntity:       shared.NewBaseEntity(),
		SellerOrderID:    sellerOrder.ID,
		ListingID:        listingID,
		Quantity:         quantity,
		PurchasePrice:    price,
		PurchasePriceRRC: priceRRC,
	})
	return nil
}

// RemoveListings removes the given listings from the basket, dropping
// seller orders that end up empty. Returns true when the basket itself
// is now empty and should be deleted. Unknown listing ids fail the whole
// call before anything is removed.
func (o *BuyerOrder) RemoveListings(listingIDs []uuid.UUID) (bool, error) {
	if !o.IsBasket() {
		return false, shared.NewDomainError(shared.CodeConflict, "Order is already placed")
	}

	toRemove := make(map[uuid.UUID]bool, len(listingIDs))
	for _, id := range listingIDs {
		toRemove[id] = true
	}

	known := make(map[uuid.UUID]bool)
	for _, so := range o.SellerOrders {
		for _, item := range so.Items {
			known[item.ListingID] = true
		}
	}
	var unknown []string
	for id := range toRemove {
		if !known[id] {
			unknown = append(unknown, id.String())
		}
	}
	if len(unknown) > 0 {
		return false, shared.NewDomainErrorWithContext(shared.CodeNotFound,
			fmt.Sprintf("Unknown listing ids: %d not in basket", len(unknown)),
			map[string]any{"unknown_ids": unknown})
	}

	remaining := o.SellerOrders[:0]
	for _, so := range o.SellerOrders {
		kept := so.Items[:0]
		for _, item := range so.Items {
			if !toRemove[item.ListingID] {
				kept = append(kept, item)
			}
		}
		so.Items = kept
		if len(so.Items) > 0 {
			remaining = append(remaining, so)
		}
	}
	o.SellerOrders = remaining

	return len(o.SellerOrders) == 0, nil
}

// Confirm places the basket: every seller order moves to new, the
// delivery contact is attached and the placement time is recorded once
func (o *BuyerOrder) Confirm(contactID uuid.UUID, buyerEmail string, now time.Time) error {
	if !o.IsBasket() {
		return shared.NewDomainError(shared.CodeConflict, "Order is already placed")
	}

	for _, so := range o.SellerOrders {
		so.State = SellerOrderStateNew
		so.PlacedAt = &now
	}
	o.State = BuyerOrderStateAccepted
	o.BuyerEmail = buyerEmail
	o.ContactID = &contactID
	o.PlacedAt = &now

	o.AddDomainEvent(NewOrderAcceptedEvent(o.ID, o.BuyerID, buyerEmail, contactID))
	return nil
}

// FindSellerOrder returns the seller order with the given id, or nil
func (o *BuyerOrder) FindSellerOrder(id uuid.UUID) *SellerOrder {
	for _, so := range o.SellerOrders {
		if so.ID == id {
			return so
		}
	}
	return nil
}

// CancelSellerOrder cancels one shop's slice of the order on the buyer's
// behalf. A basket-state slice is simply dropped; a placed one moves to
// canceled so the caller can return its stock. Returns true when the
// whole buyer order became empty and should be deleted.
func (o *BuyerOrder) CancelSellerOrder(id uuid.UUID) (bool, error) {
	so := o.FindSellerOrder(id)
	if so == nil {
		return false, shared.ErrNotFound
	}
	if !so.State.CancelableByBuyer() {
		return false, shared.NewDomainError(shared.CodeConflict, "Order can no longer be canceled by the buyer")
	}

	if so.State == SellerOrderStateBasket {
		remaining := o.SellerOrders[:0]
		for _, other := range o.SellerOrders {
			if other.ID != id {
				remaining = append(remaining, other)
			}
		}
		o.SellerOrders = remaining
		return len(o.SellerOrders) == 0, nil
	}

	so.State = SellerOrderStateCanceled
	o.AddDomainEvent(NewSellerOrderCanceledEvent(o.ID, so.ID, so.ShopID))
	return false, nil
}

// UpdateSellerOrderState applies a state change requested by the seller
func (o *BuyerOrder) UpdateSellerOrderState(id uuid.UUID, target SellerOrderState) error {
	so := o.FindSellerOrder(id)
	if so == nil {
		return shared.ErrNotFound
	}
	if target == SellerOrderStateBasket || !target.IsValid() {
		return shared.NewDomainError(shared.CodeValidationError, "Invalid target state")
	}
	if !so.State.CanTransitionTo(target) {
		return shared.NewDomainErrorWithContext(shared.CodeConflict,
			"State transition not allowed",
			map[string]any{"from": string(so.State), "to": string(target)})
	}

	so.State = target
	o.AddDomainEvent(NewSellerOrderStateChangedEvent(o.ID, so.ID, so.ShopID, target))
	return nil
}

// UpdateSellerOrderShipping changes the shipping price of one seller
// order. Allowed only while the order has not been confirmed by the
// seller yet.
func (o *BuyerOrder) UpdateSellerOrderShipping(id uuid.UUID, price decimal.Decimal) error {
	so := o.FindSellerOrder(id)
	if so == nil {
		return shared.ErrNotFound
	}
	if !so.State.CancelableByBuyer() {
		return shared.NewDomainError(shared.CodeConflict, "Shipping price can no longer be changed")
	}
	if price.IsNegative() {
		return shared.NewDomainError(shared.CodeValidationError, "Shipping price cannot be negative")
	}
	so.ShippingPrice = price
	return nil
}

// TotalShippingPrice is the sum of shipping across all seller orders
func (o *BuyerOrder) TotalShippingPrice() decimal.Decimal {
	sum := decimal.Zero
	for _, so := range o.SellerOrders {
		sum = sum.Add(so.ShippingPrice)
	}
	return sum
}

// TotalSum is the grand total: all goods plus all shipping
func (o *BuyerOrder) TotalSum() decimal.Decimal {
	sum := decimal.Zero
	for _, so := range o.SellerOrders {
		sum = sum.Add(so.Summary()).Add(so.ShippingPrice)
	}
	return sum
}
