package ordering

import (
	"github.com/google/uuid"

	"github.com/orderhub/backend/internal/domain/shared"
)

// Event types for the ordering context
const (
	EventTypeOrderAccepted           = "ordering.order.accepted"
	EventTypeSellerOrderStateChanged = "ordering.seller_order.state_changed"
	EventTypeSellerOrderCanceled     = "ordering.seller_order.canceled"
)

// OrderAcceptedEvent is published when a buyer confirms their basket.
// Notification handlers use it to mail each seller and the buyer.
type OrderAcceptedEvent struct {
	shared.BaseDomainEvent
	BuyerID    uuid.UUID `json:"buyer_id"`
	BuyerEmail string    `json:"buyer_email"`
	ContactID  uuid.UUID `json:"contact_id"`
}

func NewOrderAcceptedEvent(orderID, buyerID uuid.UUID, buyerEmail string, contactID uuid.UUID) *OrderAcceptedEvent {
	return &OrderAcceptedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderAccepted, "BuyerOrder", orderID),
		BuyerID:         buyerID,
		BuyerEmail:      buyerEmail,
		ContactID:       contactID,
	}
}

// SellerOrderStateChangedEvent is published when a seller advances or
// cancels one of their orders
type SellerOrderStateChangedEvent struct {
	shared.BaseDomainEvent
	SellerOrderID uuid.UUID        `json:"seller_order_id"`
	ShopID        uuid.UUID        `json:"shop_id"`
	NewState      SellerOrderState `json:"new_state"`
}

func NewSellerOrderStateChangedEvent(orderID, sellerOrderID, shopID uuid.UUID, newState SellerOrderState) *SellerOrderStateChangedEvent {
	return &SellerOrderStateChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSellerOrderStateChanged, "BuyerOrder", orderID),
		SellerOrderID:   sellerOrderID,
		ShopID:          shopID,
		NewState:        newState,
	}
}

// SellerOrderCanceledEvent is published when the buyer cancels a placed
// seller order
type SellerOrderCanceledEvent struct {
	shared.BaseDomainEvent
	SellerOrderID uuid.UUID `json:"seller_order_id"`
	ShopID        uuid.UUID `json:"shop_id"`
}

func NewSellerOrderCanceledEvent(orderID, sellerOrderID, shopID uuid.UUID) *SellerOrderCanceledEvent {
	return &SellerOrderCanceledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSellerOrderCanceled, "BuyerOrder", orderID),
		SellerOrderID:   sellerOrderID,
		ShopID:          shopID,
	}
}
