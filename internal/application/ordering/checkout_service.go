package ordering

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/orderhub/backend/internal/domain/ordering"
	"github.com/orderhub/backend/internal/domain/shared"
)

// CheckoutResult is the outcome of a confirmation attempt. When the
// basket was not accepted, the order is returned unchanged with per-item
// shortfall notes in Status and nothing has been written.
type CheckoutResult struct {
	Order    *ordering.BuyerOrder
	Accepted bool
}

// CheckoutService turns the basket into a placed order, atomically
// reserving stock for every item
type CheckoutService struct {
	scope     TransactionScope
	publisher shared.EventPublisher
	logger    *zap.Logger
}

func NewCheckoutService(scope TransactionScope, publisher shared.EventPublisher, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{scope: scope, publisher: publisher, logger: logger}
}

// Confirm validates the whole basket against current stock and places
// it. Any shortfall rejects the attempt without partial acceptance: the
// offending items are annotated and the basket stays editable.
func (s *CheckoutService) Confirm(ctx context.Context, buyerID uuid.UUID, buyerEmail string, contactID uuid.UUID) (*CheckoutResult, error) {
	var result CheckoutResult

	err := s.scope.Execute(ctx, func(repos Repositories) error {
		basket, err := repos.Orders.FindBasket(ctx, buyerID)
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError(shared.CodeNotFound, "No order to confirm")
		}
		if err != nil {
			return err
		}
		result.Order = basket

		if _, err := repos.Contacts.FindActive(ctx, buyerID, contactID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError(shared.CodeValidationError, "Invalid contact")
			}
			return err
		}

		// First pass: collect every shortfall before touching stock
		acceptable := true
		for _, sellerOrder := range basket.SellerOrders {
			for _, item := range sellerOrder.Items {
				listing, err := repos.Listings.FindByID(ctx, item.ListingID)
				if err != nil {
					return err
				}
				if listing.Quantity < item.Quantity {
					acceptable = false
					item.Status = fmt.Sprintf("too many ordered. You ordered %d pcs, but only %d pcs in stock",
						item.Quantity, listing.Quantity)
				}
			}
		}
		if !acceptable {
			return nil
		}

		// Conditional decrements guard against a concurrent checkout
		// draining the same listing between the pass above and here
		for _, sellerOrder := range basket.SellerOrders {
			for _, item := range sellerOrder.Items {
				if err := repos.Listings.ReserveStock(ctx, item.ListingID, item.Quantity); err != nil {
					return err
				}
			}
		}

		if err := basket.Confirm(contactID, buyerEmail, time.Now()); err != nil {
			return err
		}
		if err := repos.Orders.Save(ctx, basket); err != nil {
			return err
		}

		result.Accepted = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Accepted {
		events := result.Order.GetDomainEvents()
		result.Order.ClearDomainEvents()
		if err := s.publisher.Publish(ctx, events...); err != nil {
			s.logger.Error("failed to publish order events",
				zap.String("order_id", result.Order.ID.String()),
				zap.Error(err))
		}
		s.logger.Info("order accepted",
			zap.String("order_id", result.Order.ID.String()),
			zap.String("buyer_id", buyerID.String()))
	} else {
		s.logger.Info("order rejected on stock shortfall",
			zap.String("order_id", result.Order.ID.String()),
			zap.String("buyer_id", buyerID.String()))
	}

	return &result, nil
}
