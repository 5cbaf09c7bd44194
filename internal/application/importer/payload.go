package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	appcatalog "github.com/orderhub/backend/internal/application/catalog"
	"github.com/orderhub/backend/internal/domain/catalog"
	"github.com/orderhub/backend/internal/domain/shared"
)

// DefaultShippingPrice is used when the feed does not name one
const DefaultShippingPrice = 300

// CatalogPayload is the decoded seller feed. Required fields are
// pointers so a missing key can be told apart from a zero value and
// reported by name.
type CatalogPayload struct {
	Shop          *string            `json:"shop"`
	Categories    *[]PayloadCategory `json:"categories"`
	Goods         *[]PayloadGood     `json:"goods"`
	Email         string             `json:"email"`
	ShippingPrice *int64             `json:"shipping_price"`
}

// PayloadCategory is one category entry of the feed. ID is the seller's
// own numeric identifier.
type PayloadCategory struct {
	ID   *int64  `json:"id"`
	Name *string `json:"name"`
}

// PayloadGood is one listing entry of the feed
type PayloadGood struct {
	ID         *int64           `json:"id"`
	Category   *int64           `json:"category"`
	Name       *string          `json:"name"`
	Model      string           `json:"model"`
	Price      *decimal.Decimal `json:"price"`
	PriceRRC   *decimal.Decimal `json:"price_rrc"`
	Quantity   *int             `json:"quantity"`
	Parameters map[string]any   `json:"parameters"`
	Picture    string           `json:"picture"`
}

func parseError(field string) error {
	return shared.NewDomainErrorWithContext(shared.CodeParseError,
		"Feed parse error", map[string]any{"invalid_field": field})
}

// ParsePayload decodes the raw feed and checks the top-level shape
func ParsePayload(raw []byte) (*CatalogPayload, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var payload CatalogPayload
	if err := dec.Decode(&payload); err != nil {
		return nil, shared.NewDomainErrorWithContext(shared.CodeParseError,
			"Feed is not valid JSON", map[string]any{"cause": err.Error()})
	}

	if payload.Shop == nil {
		return nil, parseError("shop")
	}
	if payload.Categories == nil {
		return nil, parseError("categories")
	}
	if payload.Goods == nil {
		return nil, parseError("goods")
	}
	for _, category := range *payload.Categories {
		if category.ID == nil {
			return nil, parseError("categories.id")
		}
		if category.Name == nil {
			return nil, parseError("categories.name")
		}
	}
	return &payload, nil
}

// BaseShippingPrice returns the feed's shipping price or the default
func (p *CatalogPayload) BaseShippingPrice() decimal.Decimal {
	if p.ShippingPrice != nil {
		return decimal.NewFromInt(*p.ShippingPrice)
	}
	return decimal.NewFromInt(DefaultShippingPrice)
}

// ShopEmail returns the feed's contact email or the owner's own
func (p *CatalogPayload) ShopEmail(ownerEmail string) string {
	if p.Email != "" {
		return p.Email
	}
	return ownerEmail
}

// Drafts converts the goods list into listing drafts, resolving each
// good's category against the feed's own category list. A good that
// names a category absent from that list fails the whole feed.
func (p *CatalogPayload) Drafts() ([]appcatalog.ListingDraft, error) {
	categoryNames := make(map[int64]string, len(*p.Categories))
	for _, category := range *p.Categories {
		categoryNames[*category.ID] = *category.Name
	}

	drafts := make([]appcatalog.ListingDraft, 0, len(*p.Goods))
	for _, good := range *p.Goods {
		if good.ID == nil {
			return nil, parseError("goods.id")
		}
		if good.Category == nil {
			return nil, parseError("goods.category")
		}
		categoryName, ok := categoryNames[*good.Category]
		if !ok {
			return nil, shared.NewDomainErrorWithContext(shared.CodeCategoryMatchError,
				"Good references a category missing from the feed",
				map[string]any{"good_id": *good.ID, "category": *good.Category})
		}
		if good.Name == nil {
			return nil, parseError("goods.name")
		}
		if good.Price == nil {
			return nil, parseError("goods.price")
		}
		if good.PriceRRC == nil {
			return nil, parseError("goods.price_rrc")
		}
		if good.Quantity == nil {
			return nil, parseError("goods.quantity")
		}

		drafts = append(drafts, appcatalog.ListingDraft{
			ExternalID:         *good.ID,
			CategoryExternalID: *good.Category,
			CategoryName:       categoryName,
			ProductName:        *good.Name,
			Model:              good.Model,
			Quantity:           *good.Quantity,
			Price:              *good.Price,
			PriceRRC:           *good.PriceRRC,
			Picture:            good.Picture,
			Parameters:         parameterPairs(good.Parameters),
		})
	}
	return drafts, nil
}

// parameterPairs flattens the feed's parameter object into name/value
// pairs sorted by name, since JSON object order is not meaningful
func parameterPairs(params map[string]any) []catalog.ParameterPair {
	if len(params) == 0 {
		return nil
	}
	pairs := make([]catalog.ParameterPair, 0, len(params))
	for name, value := range params {
		pairs = append(pairs, catalog.ParameterPair{Name: name, Value: fmt.Sprint(value)})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Name < pairs[j].Name })
	return pairs
}
