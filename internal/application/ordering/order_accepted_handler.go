package ordering

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/orderhub/backend/internal/domain/catalog"
	"github.com/orderhub/backend/internal/domain/ordering"
	"github.com/orderhub/backend/internal/domain/shared"
)

// OrderAcceptedHandler mails every involved seller and the buyer once a
// basket has been confirmed. Delivery failures are logged, never
// propagated: the order is already placed.
type OrderAcceptedHandler struct {
	orders   ordering.BuyerOrderRepository
	contacts ordering.ContactRepository
	shops    catalog.ShopRepository
	products catalog.ProductRepository
	listings catalog.ListingRepository
	notifier Notifier
	logger   *zap.Logger
}

func NewOrderAcceptedHandler(orders ordering.BuyerOrderRepository, contacts ordering.ContactRepository,
	shops catalog.ShopRepository, products catalog.ProductRepository, listings catalog.ListingRepository,
	notifier Notifier, logger *zap.Logger) *OrderAcceptedHandler {
	return &OrderAcceptedHandler{
		orders:   orders,
		contacts: contacts,
		shops:    shops,
		products: products,
		listings: listings,
		notifier: notifier,
		logger:   logger,
	}
}

func (h *OrderAcceptedHandler) EventTypes() []string {
	return []string{ordering.EventTypeOrderAccepted}
}

func (h *OrderAcceptedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	accepted, ok := event.(*ordering.OrderAcceptedEvent)
	if !ok {
		return nil
	}

	order, err := h.orders.FindByID(ctx, accepted.AggregateID())
	if err != nil {
		return err
	}
	contact, err := h.contacts.FindByID(ctx, accepted.ContactID)
	if err != nil {
		return err
	}

	names := make(map[uuid.UUID]itemRef)
	for _, sellerOrder := range order.SellerOrders {
		if err := h.notifySeller(ctx, sellerOrder, contact, names); err != nil {
			h.logger.Error("failed to notify seller",
				zap.String("seller_order_id", sellerOrder.ID.String()),
				zap.Error(err))
		}
	}

	if err := h.notifyBuyer(ctx, order, accepted.BuyerEmail, contact, names); err != nil {
		h.logger.Error("failed to notify buyer",
			zap.String("order_id", order.ID.String()),
			zap.Error(err))
	}
	return nil
}

type itemRef struct {
	productName string
	externalID  int64
}

func (h *OrderAcceptedHandler) resolveItem(ctx context.Context, cache map[uuid.UUID]itemRef, listingID uuid.UUID) (itemRef, error) {
	if ref, ok := cache[listingID]; ok {
		return ref, nil
	}
	listing, err := h.listings.FindByID(ctx, listingID)
	if err != nil {
		return itemRef{}, err
	}
	product, err := h.products.FindByID(ctx, listing.ProductID)
	if err != nil {
		return itemRef{}, err
	}
	ref := itemRef{productName: product.Name, externalID: listing.ExternalID}
	cache[listingID] = ref
	return ref, nil
}

func (h *OrderAcceptedHandler) notifySeller(ctx context.Context, sellerOrder *ordering.SellerOrder,
	contact *ordering.Contact, cache map[uuid.UUID]itemRef) error {
	shop, err := h.shops.FindByID(ctx, sellerOrder.ShopID)
	if err != nil {
		return err
	}

	lines := make([]string, 0, len(sellerOrder.Items))
	for _, item := range sellerOrder.Items {
		ref, err := h.resolveItem(ctx, cache, item.ListingID)
		if err != nil {
			return err
		}
		lines = append(lines, fmt.Sprintf("%s, external_id: %d, quantity: %d",
			ref.productName, ref.externalID, item.Quantity))
	}

	subject := fmt.Sprintf("New order %s", sellerOrder.ID)
	body := fmt.Sprintf("%s\nItems:\n%s\nDeliver to:\n%s\nTotal: %s",
		subject, strings.Join(lines, "\n"), contact.Address(), sellerOrder.Summary())
	return h.notifier.Send(ctx, shop.Email, subject, body)
}

func (h *OrderAcceptedHandler) notifyBuyer(ctx context.Context, order *ordering.BuyerOrder,
	buyerEmail string, contact *ordering.Contact, cache map[uuid.UUID]itemRef) error {
	var lines []string
	for _, sellerOrder := range order.SellerOrders {
		for _, item := range sellerOrder.Items {
			ref, err := h.resolveItem(ctx, cache, item.ListingID)
			if err != nil {
				return err
			}
			sum := item.PurchasePrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
			lines = append(lines, fmt.Sprintf("Product: %s, quantity: %d, sum: %s",
				ref.productName, item.Quantity, sum))
		}
	}

	subject := fmt.Sprintf("Order %s", order.ID)
	body := fmt.Sprintf("Thank you for your order!\n\nOrdered items:\n%s\n\nDeliver to:\n%s\nTotal shipping: %s\nTotal: %s",
		strings.Join(lines, "\n"), contact.Address(), order.TotalShippingPrice(), order.TotalSum())
	return h.notifier.Send(ctx, buyerEmail, subject, body)
}
