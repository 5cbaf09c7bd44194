package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/orderhub/backend/internal/domain/ordering"
	"github.com/orderhub/backend/internal/domain/shared"
)

// ContactModel is the persistence model for delivery contacts
type ContactModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
	Version   int       `gorm:"not null;default:1"`
	BuyerID   uuid.UUID `gorm:"type:uuid;not null;index"`
	City      string    `gorm:"not null"`
	Street    string    `gorm:"not null"`
	House     string
	Apartment string
	Phone     string `gorm:"not null"`
	IsDeleted bool   `gorm:"not null;default:false"`
}

func (ContactModel) TableName() string { return "contacts" }

func (m *ContactModel) ToDomain() *ordering.Contact {
	return &ordering.Contact{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{ID: m.ID, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
			Version:    m.Version,
		},
		BuyerID:   m.BuyerID,
		City:      m.City,
		Street:    m.Street,
		House:     m.House,
		Apartment: m.Apartment,
		Phone:     m.Phone,
		IsDeleted: m.IsDeleted,
	}
}

func (m *ContactModel) FromDomain(contact *ordering.Contact) {
	m.ID = contact.ID
	m.CreatedAt = contact.CreatedAt
	m.UpdatedAt = contact.UpdatedAt
	m.Version = contact.Version
	m.BuyerID = contact.BuyerID
	m.City = contact.City
	m.Street = contact.Street
	m.House = contact.House
	m.Apartment = contact.Apartment
	m.Phone = contact.Phone
	m.IsDeleted = contact.IsDeleted
}

// OrderItemModel is one listing inside a seller order
type OrderItemModel struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CreatedAt        time.Time       `gorm:"not null"`
	UpdatedAt        time.Time       `gorm:"not null"`
	SellerOrderID    uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_order_items_listing"`
	ListingID        uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_order_items_listing"`
	Quantity         int             `gorm:"not null"`
	PurchasePrice    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	PurchasePriceRRC decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

func (OrderItemModel) TableName() string { return "order_items" }

func (m *OrderItemModel) ToDomain() *ordering.OrderItem {
	return &ordering.OrderItem{
		BaseEntity:       shared.BaseEntity{ID: m.ID, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		SellerOrderID:    m.SellerOrderID,
		ListingID:        m.ListingID,
		Quantity:         m.Quantity,
		PurchasePrice:    m.PurchasePrice,
		PurchasePriceRRC: m.PurchasePriceRRC,
	}
}

func (m *OrderItemModel) FromDomain(item *ordering.OrderItem) {
	m.ID = item.ID
	m.CreatedAt = item.CreatedAt
	m.UpdatedAt = item.UpdatedAt
	m.SellerOrderID = item.SellerOrderID
	m.ListingID = item.ListingID
	m.Quantity = item.Quantity
	m.PurchasePrice = item.PurchasePrice
	m.PurchasePriceRRC = item.PurchasePriceRRC
}

// SellerOrderModel is one shop's slice of a buyer order
type SellerOrderModel struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey"`
	CreatedAt     time.Time        `gorm:"not null"`
	UpdatedAt     time.Time        `gorm:"not null"`
	BuyerOrderID  uuid.UUID        `gorm:"type:uuid;not null;index"`
	ShopID        uuid.UUID        `gorm:"type:uuid;not null;index"`
	State         string           `gorm:"not null;index"`
	ShippingPrice decimal.Decimal  `gorm:"type:numeric(12,2);not null"`
	PlacedAt      *time.Time       ``
	Items         []OrderItemModel `gorm:"foreignKey:SellerOrderID;constraint:OnDelete:CASCADE"`
}

func (SellerOrderModel) TableName() string { return "seller_orders" }

func (m *SellerOrderModel) ToDomain() *ordering.SellerOrder {
	items := make([]*ordering.OrderItem, 0, len(m.Items))
	for i := range m.Items {
		items = append(items, m.Items[i].ToDomain())
	}
	return &ordering.SellerOrder{
		BaseEntity:    shared.BaseEntity{ID: m.ID, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		BuyerOrderID:  m.BuyerOrderID,
		ShopID:        m.ShopID,
		State:         ordering.SellerOrderState(m.State),
		ShippingPrice: m.ShippingPrice,
		PlacedAt:      m.PlacedAt,
		Items:         items,
	}
}

func (m *SellerOrderModel) FromDomain(so *ordering.SellerOrder) {
	m.ID = so.ID
	m.CreatedAt = so.CreatedAt
	m.UpdatedAt = so.UpdatedAt
	m.BuyerOrderID = so.BuyerOrderID
	m.ShopID = so.ShopID
	m.State = string(so.State)
	m.ShippingPrice = so.ShippingPrice
	m.PlacedAt = so.PlacedAt
	m.Items = make([]OrderItemModel, 0, len(so.Items))
	for _, item := range so.Items {
		var im OrderItemModel
		im.FromDomain(item)
		m.Items = append(m.Items, im)
	}
}

// BuyerOrderModel is the persistence model for the basket and placed
// orders
type BuyerOrderModel struct {
	ID           uuid.UUID          `gorm:"type:uuid;primaryKey"`
	CreatedAt    time.Time          `gorm:"not null"`
	UpdatedAt    time.Time          `gorm:"not null"`
	Version      int                `gorm:"not null;default:1"`
	BuyerID      uuid.UUID          `gorm:"type:uuid;not null;index"`
	BuyerEmail   string             ``
	State        string             `gorm:"not null;index"`
	ContactID    *uuid.UUID         `gorm:"type:uuid"`
	PlacedAt     *time.Time         ``
	SellerOrders []SellerOrderModel `gorm:"foreignKey:BuyerOrderID;constraint:OnDelete:CASCADE"`
}

func (BuyerOrderModel) TableName() string { return "buyer_orders" }

func (m *BuyerOrderModel) ToDomain() *ordering.BuyerOrder {
	sellerOrders := make([]*ordering.SellerOrder, 0, len(m.SellerOrders))
	for i := range m.SellerOrders {
		sellerOrders = append(sellerOrders, m.SellerOrders[i].ToDomain())
	}
	return &ordering.BuyerOrder{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{ID: m.ID, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
			Version:    m.Version,
		},
		BuyerID:      m.BuyerID,
		BuyerEmail:   m.BuyerEmail,
		State:        ordering.BuyerOrderState(m.State),
		ContactID:    m.ContactID,
		PlacedAt:     m.PlacedAt,
		SellerOrders: sellerOrders,
	}
}

func (m *BuyerOrderModel) FromDomain(order *ordering.BuyerOrder) {
	m.ID = order.ID
	m.CreatedAt = order.CreatedAt
	m.UpdatedAt = order.UpdatedAt
	m.Version = order.Version
	m.BuyerID = order.BuyerID
	m.BuyerEmail = order.BuyerEmail
	m.State = string(order.State)
	m.ContactID = order.ContactID
	m.PlacedAt = order.PlacedAt
	m.SellerOrders = make([]SellerOrderModel, 0, len(order.SellerOrders))
	for _, so := range order.SellerOrders {
		var sm SellerOrderModel
		sm.FromDomain(so)
		m.SellerOrders = append(m.SellerOrders, sm)
	}
}
