package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/orderhub/backend/internal/domain/catalog"
)

// ListingView is the public read model of one listing, denormalized
// with its product, category and shop names
type ListingView struct {
	ID         uuid.UUID               `json:"id"`
	ShopID     uuid.UUID               `json:"shop_id"`
	ShopName   string                  `json:"shop_name"`
	Category   string                  `json:"category"`
	Product    string                  `json:"product"`
	ExternalID int64                   `json:"external_id"`
	Model      string                  `json:"model,omitempty"`
	Quantity   int                     `json:"quantity"`
	Price      decimal.Decimal         `json:"price"`
	PriceRRC   decimal.Decimal         `json:"price_rrc"`
	Picture    string                  `json:"picture,omitempty"`
	Parameters []catalog.ParameterPair `json:"parameters,omitempty"`
}

// PublicService serves the buyer-facing catalog: open shops, global
// categories and in-stock listings
type PublicService struct {
	shops      catalog.ShopRepository
	categories catalog.CategoryRepository
	products   catalog.ProductRepository
	listings   catalog.ListingRepository
	logger     *zap.Logger
}

func NewPublicService(shops catalog.ShopRepository, categories catalog.CategoryRepository,
	products catalog.ProductRepository, listings catalog.ListingRepository, logger *zap.Logger) *PublicService {
	return &PublicService{
		shops:      shops,
		categories: categories,
		products:   products,
		listings:   listings,
		logger:     logger,
	}
}

// Categories returns all global categories
func (s *PublicService) Categories(ctx context.Context) ([]*catalog.Category, error) {
	return s.categories.List(ctx)
}

// Shops returns all open shops
func (s *PublicService) Shops(ctx context.Context) ([]*catalog.Shop, error) {
	return s.shops.ListOpen(ctx)
}

// Search returns in-stock listings of open shops, optionally narrowed
// to one shop or one global category
func (s *PublicService) Search(ctx context.Context, query catalog.CatalogQuery) ([]ListingView, error) {
	listings, err := s.listings.ListAvailable(ctx, query)
	if err != nil {
		return nil, err
	}

	shopNames := make(map[uuid.UUID]string)
	productNames := make(map[uuid.UUID]string)
	categoryNames := make(map[uuid.UUID]string)

	views := make([]ListingView, 0, len(listings))
	for _, listing := range listings {
		shopName, ok := shopNames[listing.ShopID]
		if !ok {
			shop, err := s.shops.FindByID(ctx, listing.ShopID)
			if err != nil {
				return nil, err
			}
			shopName = shop.Name
			shopNames[listing.ShopID] = shopName
		}

		productName, ok := productNames[listing.ProductID]
		if !ok {
			product, err := s.products.FindByID(ctx, listing.ProductID)
			if err != nil {
				return nil, err
			}
			productName = product.Name
			productNames[listing.ProductID] = productName
		}

		categoryName, ok := categoryNames[listing.ShopCategoryID]
		if !ok {
			binding, err := s.categories.FindShopCategoryByID(ctx, listing.ShopCategoryID)
			if err != nil {
				return nil, err
			}
			category, err := s.categories.FindByID(ctx, binding.CategoryID)
			if err != nil {
				return nil, err
			}
			categoryName = category.Name
			categoryNames[listing.ShopCategoryID] = categoryName
		}

		views = append(views, ListingView{
			ID:         listing.ID,
			ShopID:     listing.ShopID,
			ShopName:   shopName,
			Category:   categoryName,
			Product:    productName,
			ExternalID: listing.ExternalID,
			Model:      listing.Model,
			Quantity:   listing.Quantity,
			Price:      listing.Price,
			PriceRRC:   listing.PriceRRC,
			Picture:    listing.Picture,
			Parameters: listing.Parameters,
		})
	}
	return views, nil
}
