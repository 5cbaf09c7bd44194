package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	appcatalog "github.com/orderhub/backend/internal/application/catalog"
	"github.com/orderhub/backend/internal/domain/catalog"
)

// ListingRequest is the partner-facing form of one listing
type ListingRequest struct {
	ExternalID         int64             `json:"external_id" binding:"required"`
	CategoryExternalID int64             `json:"category_external_id" binding:"required"`
	CategoryName       string            `json:"category_name" binding:"required"`
	ProductName        string            `json:"product_name" binding:"required"`
	Model              string            `json:"model"`
	Quantity           int               `json:"quantity"`
	Price              decimal.Decimal   `json:"price"`
	PriceRRC           decimal.Decimal   `json:"price_rrc"`
	Picture            string            `json:"picture"`
	Parameters         map[string]string `json:"parameters"`
}

func (r *ListingRequest) toDraft() appcatalog.ListingDraft {
	return appcatalog.ListingDraft{
		ExternalID:         r.ExternalID,
		CategoryExternalID: r.CategoryExternalID,
		CategoryName:       r.CategoryName,
		ProductName:        r.ProductName,
		Model:              r.Model,
		Quantity:           r.Quantity,
		Price:              r.Price,
		PriceRRC:           r.PriceRRC,
		Picture:            r.Picture,
		Parameters:         toParameterPairs(r.Parameters),
	}
}

// ListingUpdateRequest carries the editable stock fields of a listing
type ListingUpdateRequest struct {
	Model      string            `json:"model"`
	Quantity   int               `json:"quantity"`
	Price      decimal.Decimal   `json:"price"`
	PriceRRC   decimal.Decimal   `json:"price_rrc"`
	Picture    string            `json:"picture"`
	Parameters map[string]string `json:"parameters"`
}

func toParameterPairs(params map[string]string) []catalog.ParameterPair {
	pairs := make([]catalog.ParameterPair, 0, len(params))
	for name, value := range params {
		pairs = append(pairs, catalog.ParameterPair{Name: name, Value: value})
	}
	return pairs
}

// PartnerCatalogHandler serves the seller's own shop and listings
type PartnerCatalogHandler struct {
	BaseHandler
	shops    *appcatalog.ShopService
	listings *appcatalog.ListingService
}

func NewPartnerCatalogHandler(shops *appcatalog.ShopService, listings *appcatalog.ListingService) *PartnerCatalogHandler {
	return &PartnerCatalogHandler{shops: shops, listings: listings}
}

// GetShop returns the seller's shop profile
func (h *PartnerCatalogHandler) GetShop(c *gin.Context) {
	shop, err := h.shops.GetMine(c.Request.Context(), getUserID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, shop)
}

// SetShopState opens or closes the seller's shop
func (h *PartnerCatalogHandler) SetShopState(c *gin.Context) {
	var req struct {
		IsOpen *bool `json:"is_open" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "is_open is required")
		return
	}

	shop, err := h.shops.SetState(c.Request.Context(), getUserID(c), *req.IsOpen)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, shop)
}

// ListListings returns all of the seller's listings, delisted included
func (h *PartnerCatalogHandler) ListListings(c *gin.Context) {
	listings, err := h.listings.ListMine(c.Request.Context(), getUserID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, listings)
}

// CreateListing adds one listing outside the bulk import flow
func (h *PartnerCatalogHandler) CreateListing(c *gin.Context) {
	var req ListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid listing payload")
		return
	}

	listing, err := h.listings.Create(c.Request.Context(), getUserID(c), req.toDraft())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, listing)
}

// UpdateListing edits the stock fields of one listing by its external id
func (h *PartnerCatalogHandler) UpdateListing(c *gin.Context) {
	externalID, err := strconv.ParseInt(c.Param("external_id"), 10, 64)
	if err != nil {
		h.BadRequest(c, "Invalid external id")
		return
	}

	var req ListingUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid listing payload")
		return
	}

	listing, err := h.listings.Update(c.Request.Context(), getUserID(c), externalID, catalog.ListingUpdate{
		Model:      req.Model,
		Quantity:   req.Quantity,
		Price:      req.Price,
		PriceRRC:   req.PriceRRC,
		Picture:    req.Picture,
		Parameters: toParameterPairs(req.Parameters),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, listing)
}

// DelistListing zeroes the stock of one listing
func (h *PartnerCatalogHandler) DelistListing(c *gin.Context) {
	externalID, err := strconv.ParseInt(c.Param("external_id"), 10, 64)
	if err != nil {
		h.BadRequest(c, "Invalid external id")
		return
	}

	listing, err := h.listings.Delist(c.Request.Context(), getUserID(c), externalID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, listing)
}
