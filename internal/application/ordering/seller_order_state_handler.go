package ordering

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/orderhub/backend/internal/domain/catalog"
	"github.com/orderhub/backend/internal/domain/ordering"
	"github.com/orderhub/backend/internal/domain/shared"
)

// SellerOrderStateHandler keeps both sides informed after placement:
// the buyer learns about state changes made by the seller, the seller
// learns about cancellations made by the buyer.
type SellerOrderStateHandler struct {
	orders   ordering.BuyerOrderRepository
	shops    catalog.ShopRepository
	notifier Notifier
	logger   *zap.Logger
}

func NewSellerOrderStateHandler(orders ordering.BuyerOrderRepository, shops catalog.ShopRepository,
	notifier Notifier, logger *zap.Logger) *SellerOrderStateHandler {
	return &SellerOrderStateHandler{orders: orders, shops: shops, notifier: notifier, logger: logger}
}

func (h *SellerOrderStateHandler) EventTypes() []string {
	return []string{
		ordering.EventTypeSellerOrderStateChanged,
		ordering.EventTypeSellerOrderCanceled,
	}
}

func (h *SellerOrderStateHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *ordering.SellerOrderStateChangedEvent:
		return h.handleStateChanged(ctx, e)
	case *ordering.SellerOrderCanceledEvent:
		return h.handleCanceled(ctx, e)
	}
	return nil
}

func (h *SellerOrderStateHandler) handleStateChanged(ctx context.Context, e *ordering.SellerOrderStateChangedEvent) error {
	order, err := h.orders.FindByID(ctx, e.AggregateID())
	if err != nil {
		return err
	}
	if order.BuyerEmail == "" {
		return nil
	}
	shop, err := h.shops.FindByID(ctx, e.ShopID)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Order %s", order.ID)
	body := fmt.Sprintf("Changes in order %s.\nThe nested order %s from shop %s moved to: %s",
		order.ID, e.SellerOrderID, shop.Name, e.NewState)
	if err := h.notifier.Send(ctx, order.BuyerEmail, subject, body); err != nil {
		h.logger.Error("failed to notify buyer about state change",
			zap.String("seller_order_id", e.SellerOrderID.String()),
			zap.Error(err))
	}
	return nil
}

func (h *SellerOrderStateHandler) handleCanceled(ctx context.Context, e *ordering.SellerOrderCanceledEvent) error {
	shop, err := h.shops.FindByID(ctx, e.ShopID)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Order %s canceled", e.SellerOrderID)
	body := fmt.Sprintf("%s by the buyer. The items were returned to stock.", subject)
	if err := h.notifier.Send(ctx, shop.Email, subject, body); err != nil {
		h.logger.Error("failed to notify seller about cancellation",
			zap.String("seller_order_id", e.SellerOrderID.String()),
			zap.Error(err))
	}
	return nil
}
