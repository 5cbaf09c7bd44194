package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/orderhub/backend/internal/domain/catalog"
	"github.com/orderhub/backend/internal/domain/shared"
)

// ShopModel is the persistence model for shops
type ShopModel struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CreatedAt         time.Time       `gorm:"not null"`
	UpdatedAt         time.Time       `gorm:"not null"`
	Version           int             `gorm:"not null;default:1"`
	OwnerID           uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null"`
	Name              string          `gorm:"uniqueIndex;not null"`
	Email             string          `gorm:"not null"`
	BaseShippingPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	IsOpen            bool            `gorm:"not null"`
}

func (ShopModel) TableName() string { return "shops" }

func (m *ShopModel) ToDomain() *catalog.Shop {
	return &catalog.Shop{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{ID: m.ID, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
			Version:    m.Version,
		},
		OwnerID:           m.OwnerID,
		Name:              m.Name,
		Email:             m.Email,
		BaseShippingPrice: m.BaseShippingPrice,
		IsOpen:            m.IsOpen,
	}
}

func (m *ShopModel) FromDomain(shop *catalog.Shop) {
	m.ID = shop.ID
	m.CreatedAt = shop.CreatedAt
	m.UpdatedAt = shop.UpdatedAt
	m.Version = shop.Version
	m.OwnerID = shop.OwnerID
	m.Name = shop.Name
	m.Email = shop.Email
	m.BaseShippingPrice = shop.BaseShippingPrice
	m.IsOpen = shop.IsOpen
}

// CategoryModel is the persistence model for global categories
type CategoryModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
	Version   int       `gorm:"not null;default:1"`
	Name      string    `gorm:"uniqueIndex;not null"`
}

func (CategoryModel) TableName() string { return "categories" }

func (m *CategoryModel) ToDomain() *catalog.Category {
	return &catalog.Category{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{ID: m.ID, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
			Version:    m.Version,
		},
		Name: m.Name,
	}
}

func (m *CategoryModel) FromDomain(category *catalog.Category) {
	m.ID = category.ID
	m.CreatedAt = category.CreatedAt
	m.UpdatedAt = category.UpdatedAt
	m.Version = category.Version
	m.Name = category.Name
}

// ShopCategoryModel binds a global category to a shop under the
// seller's own external id
type ShopCategoryModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
	ShopID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_shop_categories_external;uniqueIndex:idx_shop_categories_category"`
	CategoryID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_shop_categories_category"`
	ExternalID int64     `gorm:"not null;uniqueIndex:idx_shop_categories_external"`
}

func (ShopCategoryModel) TableName() string { return "shop_categories" }

func (m *ShopCategoryModel) ToDomain() *catalog.ShopCategory {
	return &catalog.ShopCategory{
		BaseEntity: shared.BaseEntity{ID: m.ID, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		ShopID:     m.ShopID,
		CategoryID: m.CategoryID,
		ExternalID: m.ExternalID,
	}
}

func (m *ShopCategoryModel) FromDomain(sc *catalog.ShopCategory) {
	m.ID = sc.ID
	m.CreatedAt = sc.CreatedAt
	m.UpdatedAt = sc.UpdatedAt
	m.ShopID = sc.ShopID
	m.CategoryID = sc.CategoryID
	m.ExternalID = sc.ExternalID
}

// ProductModel is the persistence model for global products
type ProductModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
	Version   int       `gorm:"not null;default:1"`
	Name      string    `gorm:"uniqueIndex;not null"`
}

func (ProductModel) TableName() string { return "products" }

func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{ID: m.ID, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
			Version:    m.Version,
		},
		Name: m.Name,
	}
}

func (m *ProductModel) FromDomain(product *catalog.Product) {
	m.ID = product.ID
	m.CreatedAt = product.CreatedAt
	m.UpdatedAt = product.UpdatedAt
	m.Version = product.Version
	m.Name = product.Name
}

// ParameterModel is a globally deduplicated parameter name
type ParameterModel struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"uniqueIndex;not null"`
}

func (ParameterModel) TableName() string { return "parameters" }

// ListingParameterModel holds one parameter value of one listing
type ListingParameterModel struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	ListingID   uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_listing_parameters"`
	ParameterID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_listing_parameters"`
	Parameter   ParameterModel `gorm:"foreignKey:ParameterID"`
	Value       string         `gorm:"not null"`
}

func (ListingParameterModel) TableName() string { return "listing_parameters" }

// ListingModel is the persistence model for listings
type ListingModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
	Version        int       `gorm:"not null;default:1"`
	ShopID         uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_listings_external"`
	ShopCategoryID uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID      uuid.UUID `gorm:"type:uuid;not null;index"`
	ExternalID     int64     `gorm:"not null;uniqueIndex:idx_listings_external"`
	Model          string
	Quantity       int                     `gorm:"not null"`
	Price          decimal.Decimal         `gorm:"type:numeric(12,2);not null"`
	PriceRRC       decimal.Decimal         `gorm:"type:numeric(12,2);not null"`
	Picture        string                  ``
	Parameters     []ListingParameterModel `gorm:"foreignKey:ListingID;constraint:OnDelete:CASCADE"`
}

func (ListingModel) TableName() string { return "listings" }

func (m *ListingModel) ToDomain() *catalog.Listing {
	params := make([]catalog.ParameterPair, 0, len(m.Parameters))
	for _, p := range m.Parameters {
		params = append(params, catalog.ParameterPair{Name: p.Parameter.Name, Value: p.Value})
	}
	return &catalog.Listing{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{ID: m.ID, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
			Version:    m.Version,
		},
		ShopID:         m.ShopID,
		ShopCategoryID: m.ShopCategoryID,
		ProductID:      m.ProductID,
		ExternalID:     m.ExternalID,
		Model:          m.Model,
		Quantity:       m.Quantity,
		Price:          m.Price,
		PriceRRC:       m.PriceRRC,
		Picture:        m.Picture,
		Parameters:     params,
	}
}

// FromDomain fills the scalar columns. Parameters are reconciled
// separately by the repository since their names are deduplicated in
// their own table.
func (m *ListingModel) FromDomain(listing *catalog.Listing) {
	m.ID = listing.ID
	m.CreatedAt = listing.CreatedAt
	m.UpdatedAt = listing.UpdatedAt
	m.Version = listing.Version
	m.ShopID = listing.ShopID
	m.ShopCategoryID = listing.ShopCategoryID
	m.ProductID = listing.ProductID
	m.ExternalID = listing.ExternalID
	m.Model = listing.Model
	m.Quantity = listing.Quantity
	m.Price = listing.Price
	m.PriceRRC = listing.PriceRRC
	m.Picture = listing.Picture
}
