package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appcatalog "github.com/orderhub/backend/internal/application/catalog"
	"github.com/orderhub/backend/internal/domain/catalog"
	"github.com/orderhub/backend/internal/domain/shared"
)

// PublicCatalogHandler serves the buyer-facing catalog reads
type PublicCatalogHandler struct {
	BaseHandler
	public *appcatalog.PublicService
}

func NewPublicCatalogHandler(public *appcatalog.PublicService) *PublicCatalogHandler {
	return &PublicCatalogHandler{public: public}
}

// Categories returns all global categories
func (h *PublicCatalogHandler) Categories(c *gin.Context) {
	categories, err := h.public.Categories(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, categories)
}

// Shops returns all open shops
func (h *PublicCatalogHandler) Shops(c *gin.Context) {
	shops, err := h.public.Shops(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, shops)
}

// Listings returns in-stock listings, optionally filtered by shop_id
// and category_id query parameters
func (h *PublicCatalogHandler) Listings(c *gin.Context) {
	query := catalog.CatalogQuery{Filter: shared.DefaultFilter()}

	if raw := c.Query("shop_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid shop_id")
			return
		}
		query.ShopID = &id
	}
	if raw := c.Query("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid category_id")
			return
		}
		query.CategoryID = &id
	}

	views, err := h.public.Search(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, views)
}
