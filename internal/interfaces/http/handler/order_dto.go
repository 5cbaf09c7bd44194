package handler

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/orderhub/backend/internal/domain/ordering"
)

// OrderItemView is one basket or order line in API responses. Status is
// filled only when checkout validation rejected the line.
type OrderItemView struct {
	ListingID        uuid.UUID       `json:"listing_id"`
	Quantity         int             `json:"quantity"`
	PurchasePrice    decimal.Decimal `json:"purchase_price"`
	PurchasePriceRRC decimal.Decimal `json:"purchase_price_rrc"`
	Status           string          `json:"status,omitempty"`
}

// SellerOrderView is one shop's slice of an order in API responses
type SellerOrderView struct {
	ID            uuid.UUID       `json:"id"`
	ShopID        uuid.UUID       `json:"shop_id"`
	State         string          `json:"state"`
	ShippingPrice decimal.Decimal `json:"shipping_price"`
	PlacedAt      *time.Time      `json:"placed_at,omitempty"`
	Items         []OrderItemView `json:"items"`
	Summary       decimal.Decimal `json:"summary"`
}

// BuyerOrderView is the buyer-facing order or basket in API responses
type BuyerOrderView struct {
	ID            uuid.UUID         `json:"id"`
	State         string            `json:"state"`
	ContactID     *uuid.UUID        `json:"contact_id,omitempty"`
	PlacedAt      *time.Time        `json:"placed_at,omitempty"`
	SellerOrders  []SellerOrderView `json:"seller_orders"`
	TotalShipping decimal.Decimal   `json:"total_shipping"`
	Total         decimal.Decimal   `json:"total"`
}

func toOrderItemView(item *ordering.OrderItem) OrderItemView {
	return OrderItemView{
		ListingID:        item.ListingID,
		Quantity:         item.Quantity,
		PurchasePrice:    item.PurchasePrice,
		PurchasePriceRRC: item.PurchasePriceRRC,
		Status:           item.Status,
	}
}

func toSellerOrderView(so *ordering.SellerOrder) SellerOrderView {
	items := make([]OrderItemView, 0, len(so.Items))
	for _, item := range so.Items {
		items = append(items, toOrderItemView(item))
	}
	return SellerOrderView{
		ID:            so.ID,
		ShopID:        so.ShopID,
		State:         string(so.State),
		ShippingPrice: so.ShippingPrice,
		PlacedAt:      so.PlacedAt,
		Items:         items,
		Summary:       so.Summary(),
	}
}

func toBuyerOrderView(order *ordering.BuyerOrder) BuyerOrderView {
	sellerOrders := make([]SellerOrderView, 0, len(order.SellerOrders))
	for _, so := range order.SellerOrders {
		sellerOrders = append(sellerOrders, toSellerOrderView(so))
	}
	return BuyerOrderView{
		ID:            order.ID,
		State:         string(order.State),
		ContactID:     order.ContactID,
		PlacedAt:      order.PlacedAt,
		SellerOrders:  sellerOrders,
		TotalShipping: order.TotalShippingPrice(),
		Total:         order.TotalSum(),
	}
}

func toBuyerOrderViews(orders []*ordering.BuyerOrder) []BuyerOrderView {
	views := make([]BuyerOrderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, toBuyerOrderView(order))
	}
	return views
}

func toSellerOrderViews(orders []*ordering.SellerOrder) []SellerOrderView {
	views := make([]SellerOrderView, 0, len(orders))
	for _, so := range orders {
		views = append(views, toSellerOrderView(so))
	}
	return views
}
