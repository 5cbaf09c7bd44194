package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/orderhub/backend/internal/domain/ordering"
	"github.com/orderhub/backend/internal/domain/shared"
	"github.com/orderhub/backend/internal/infrastructure/persistence/models"
)

// GormBuyerOrderRepository implements ordering.BuyerOrderRepository
type GormBuyerOrderRepository struct {
	db *gorm.DB
}

func NewGormBuyerOrderRepository(db *gorm.DB) *GormBuyerOrderRepository {
	return &GormBuyerOrderRepository{db: db}
}

// Save persists the whole order tree. Seller orders and items that
// dropped out of the aggregate (basket pruning, buyer cancellation of a
// basket slice) are deleted.
func (r *GormBuyerOrderRepository) Save(ctx context.Context, order *ordering.BuyerOrder) error {
	var model models.BuyerOrderModel
	model.FromDomain(order)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("SellerOrders").Save(&model).Error; err != nil {
			return err
		}

		sellerOrderIDs := make([]uuid.UUID, 0, len(model.SellerOrders))
		for i := range model.SellerOrders {
			sellerOrderIDs = append(sellerOrderIDs, model.SellerOrders[i].ID)
		}

		pq := tx.Model(&models.SellerOrderModel{}).Where("buyer_order_id = ?", order.ID)
		if len(sellerOrderIDs) > 0 {
			pq = pq.Where("id NOT IN ?", sellerOrderIDs)
		}
		var prunedIDs []uuid.UUID
		if err := pq.Pluck("id", &prunedIDs).Error; err != nil {
			return err
		}
		if len(prunedIDs) > 0 {
			if err := tx.Where("seller_order_id IN ?", prunedIDs).
				Delete(&models.OrderItemModel{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", prunedIDs).
				Delete(&models.SellerOrderModel{}).Error; err != nil {
				return err
			}
		}

		for i := range model.SellerOrders {
			so := &model.SellerOrders[i]
			if err := tx.Omit("Items").Save(so).Error; err != nil {
				return err
			}

			itemIDs := make([]uuid.UUID, 0, len(so.Items))
			for j := range so.Items {
				itemIDs = append(itemIDs, so.Items[j].ID)
			}
			iq := tx.Where("seller_order_id = ?", so.ID)
			if len(itemIDs) > 0 {
				iq = iq.Where("id NOT IN ?", itemIDs)
			}
			if err := iq.Delete(&models.OrderItemModel{}).Error; err != nil {
				return err
			}

			for j := range so.Items {
				if err := tx.Save(&so.Items[j]).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (r *GormBuyerOrderRepository) preload() *gorm.DB {
	return r.db.Preload("SellerOrders").Preload("SellerOrders.Items")
}

func (r *GormBuyerOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.BuyerOrder, error) {
	var model models.BuyerOrderModel
	err := r.preload().WithContext(ctx).First(&model, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

func (r *GormBuyerOrderRepository) FindBasket(ctx context.Context, buyerID uuid.UUID) (*ordering.BuyerOrder, error) {
	var model models.BuyerOrderModel
	err := r.preload().WithContext(ctx).
		First(&model, "buyer_id = ? AND state = ?", buyerID, string(ordering.BuyerOrderStateBasket)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

func (r *GormBuyerOrderRepository) FindBySellerOrderID(ctx context.Context, sellerOrderID uuid.UUID) (*ordering.BuyerOrder, error) {
	var sellerOrder models.SellerOrderModel
	err := r.db.WithContext(ctx).First(&sellerOrder, "id = ?", sellerOrderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, sellerOrder.BuyerOrderID)
}

func (r *GormBuyerOrderRepository) ListPlaced(ctx context.Context, buyerID uuid.UUID, filter shared.Filter) ([]*ordering.BuyerOrder, error) {
	q := r.preload().WithContext(ctx).
		Where("buyer_id = ? AND state <> ?", buyerID, string(ordering.BuyerOrderStateBasket)).
		Order("placed_at DESC")
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit).Offset(filter.Offset)
	}

	var rows []models.BuyerOrderModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	orders := make([]*ordering.BuyerOrder, 0, len(rows))
	for i := range rows {
		orders = append(orders, rows[i].ToDomain())
	}
	return orders, nil
}

func (r *GormBuyerOrderRepository) ListSellerOrdersByShop(ctx context.Context, shopID uuid.UUID, filter shared.Filter) ([]*ordering.SellerOrder, error) {
	q := r.db.WithContext(ctx).Preload("Items").
		Where("shop_id = ? AND state <> ?", shopID, string(ordering.SellerOrderStateBasket)).
		Order("placed_at DESC")
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit).Offset(filter.Offset)
	}

	var rows []models.SellerOrderModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	sellerOrders := make([]*ordering.SellerOrder, 0, len(rows))
	for i := range rows {
		sellerOrders = append(sellerOrders, rows[i].ToDomain())
	}
	return sellerOrders, nil
}

func (r *GormBuyerOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sellerOrderIDs []uuid.UUID
		if err := tx.Model(&models.SellerOrderModel{}).
			Where("buyer_order_id = ?", id).
			Pluck("id", &sellerOrderIDs).Error; err != nil {
			return err
		}
		if len(sellerOrderIDs) > 0 {
			if err := tx.Where("seller_order_id IN ?", sellerOrderIDs).
				Delete(&models.OrderItemModel{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", sellerOrderIDs).
				Delete(&models.SellerOrderModel{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.BuyerOrderModel{}, "id = ?", id).Error
	})
}
