package ordering

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/orderhub/backend/internal/domain/catalog"
	"github.com/orderhub/backend/internal/domain/ordering"
	"github.com/orderhub/backend/internal/domain/shared"
)

// SellerOrderPatch is what a seller may change on one of their orders
type SellerOrderPatch struct {
	State         *ordering.SellerOrderState
	ShippingPrice *decimal.Decimal
}

// OrderService covers placed orders: the buyer's history and
// cancellations, and the seller's fulfilment view
type OrderService struct {
	scope     TransactionScope
	orders    ordering.BuyerOrderRepository
	shops     catalog.ShopRepository
	publisher shared.EventPublisher
	logger    *zap.Logger
}

func NewOrderService(scope TransactionScope, orders ordering.BuyerOrderRepository,
	shops catalog.ShopRepository, publisher shared.EventPublisher, logger *zap.Logger) *OrderService {
	return &OrderService{
		scope:     scope,
		orders:    orders,
		shops:     shops,
		publisher: publisher,
		logger:    logger,
	}
}

// ListMine returns the buyer's placed orders, newest first
func (s *OrderService) ListMine(ctx context.Context, buyerID uuid.UUID, filter shared.Filter) ([]*ordering.BuyerOrder, error) {
	return s.orders.ListPlaced(ctx, buyerID, filter)
}

// GetMine returns one placed order if it belongs to the buyer
func (s *OrderService) GetMine(ctx context.Context, buyerID, orderID uuid.UUID) (*ordering.BuyerOrder, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.BuyerID != buyerID || order.IsBasket() {
		return nil, shared.ErrNotFound
	}
	return order, nil
}

// CancelSellerOrder cancels one shop's slice of the buyer's order. A
// placed slice gets its stock returned to the shop; a basket slice is
// simply dropped, deleting the basket when it ends up empty.
func (s *OrderService) CancelSellerOrder(ctx context.Context, buyerID, sellerOrderID uuid.UUID) error {
	var events []shared.DomainEvent

	err := s.scope.Execute(ctx, func(repos Repositories) error {
		order, err := repos.Orders.FindBySellerOrderID(ctx, sellerOrderID)
		if err != nil {
			return err
		}
		if order.BuyerID != buyerID {
			return shared.ErrNotFound
		}

		sellerOrder := order.FindSellerOrder(sellerOrderID)
		wasPlaced := sellerOrder.State != ordering.SellerOrderStateBasket

		empty, err := order.CancelSellerOrder(sellerOrderID)
		if err != nil {
			return err
		}

		if wasPlaced {
			for _, item := range sellerOrder.Items {
				if err := repos.Listings.ReleaseStock(ctx, item.ListingID, item.Quantity); err != nil {
					return err
				}
			}
		}

		events = order.GetDomainEvents()
		order.ClearDomainEvents()

		if empty {
			return repos.Orders.Delete(ctx, order.ID)
		}
		return repos.Orders.Save(ctx, order)
	})
	if err != nil {
		return err
	}

	if len(events) > 0 {
		if err := s.publisher.Publish(ctx, events...); err != nil {
			s.logger.Error("failed to publish cancel events", zap.Error(err))
		}
	}
	return nil
}

// ListShopOrders returns the placed seller orders of the owner's shop
func (s *OrderService) ListShopOrders(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]*ordering.SellerOrder, error) {
	shop, err := s.shops.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.orders.ListSellerOrdersByShop(ctx, shop.ID, filter)
}

// GetShopOrder returns one seller order if it belongs to the owner's shop
func (s *OrderService) GetShopOrder(ctx context.Context, ownerID, sellerOrderID uuid.UUID) (*ordering.SellerOrder, error) {
	shop, err := s.shops.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	order, err := s.orders.FindBySellerOrderID(ctx, sellerOrderID)
	if err != nil {
		return nil, err
	}
	sellerOrder := order.FindSellerOrder(sellerOrderID)
	if sellerOrder == nil || sellerOrder.ShopID != shop.ID || sellerOrder.State == ordering.SellerOrderStateBasket {
		return nil, shared.ErrNotFound
	}
	return sellerOrder, nil
}

// PatchShopOrder applies a seller's state or shipping price change to
// one of their orders. Cancelling returns the reserved stock.
func (s *OrderService) PatchShopOrder(ctx context.Context, ownerID, sellerOrderID uuid.UUID, patch SellerOrderPatch) (*ordering.SellerOrder, error) {
	shop, err := s.shops.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	var (
		sellerOrder *ordering.SellerOrder
		events      []shared.DomainEvent
	)
	err = s.scope.Execute(ctx, func(repos Repositories) error {
		order, err := repos.Orders.FindBySellerOrderID(ctx, sellerOrderID)
		if err != nil {
			return err
		}
		sellerOrder = order.FindSellerOrder(sellerOrderID)
		if sellerOrder == nil || sellerOrder.ShopID != shop.ID || sellerOrder.State == ordering.SellerOrderStateBasket {
			return shared.ErrNotFound
		}

		if patch.ShippingPrice != nil {
			if err := order.UpdateSellerOrderShipping(sellerOrderID, *patch.ShippingPrice); err != nil {
				return err
			}
		}

		if patch.State != nil {
			if err := order.UpdateSellerOrderState(sellerOrderID, *patch.State); err != nil {
				return err
			}
			if *patch.State == ordering.SellerOrderStateCanceled {
				for _, item := range sellerOrder.Items {
					if err := repos.Listings.ReleaseStock(ctx, item.ListingID, item.Quantity); err != nil {
						return err
					}
				}
			}
		}

		events = order.GetDomainEvents()
		order.ClearDomainEvents()
		return repos.Orders.Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	if len(events) > 0 {
		if err := s.publisher.Publish(ctx, events...); err != nil {
			s.logger.Error("failed to publish seller order events", zap.Error(err))
		}
	}
	return sellerOrder, nil
}
