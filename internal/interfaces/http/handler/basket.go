package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appordering "github.com/orderhub/backend/internal/application/ordering"
)

// BasketHandler serves the buyer's editable basket
type BasketHandler struct {
	BaseHandler
	baskets *appordering.BasketService
}

func NewBasketHandler(baskets *appordering.BasketService) *BasketHandler {
	return &BasketHandler{baskets: baskets}
}

// Get returns the buyer's basket
func (h *BasketHandler) Get(c *gin.Context) {
	basket, err := h.baskets.Get(c.Request.Context(), getUserID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toBuyerOrderView(basket))
}

// AddItems puts listings into the basket, creating it on first use
func (h *BasketHandler) AddItems(c *gin.Context) {
	var req struct {
		Items []appordering.BasketItemInput `json:"items" binding:"required,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "items with listing_id and positive quantity are required")
		return
	}

	basket, err := h.baskets.AddItems(c.Request.Context(), getUserID(c), req.Items)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toBuyerOrderView(basket))
}

// RemoveItems takes listings out of the basket. Listing ids come as a
// comma separated ids query parameter. Removing the last item deletes
// the basket.
func (h *BasketHandler) RemoveItems(c *gin.Context) {
	raw := c.Query("ids")
	if raw == "" {
		h.BadRequest(c, "ids query parameter is required")
		return
	}

	var ids []uuid.UUID
	for _, part := range strings.Split(raw, ",") {
		id, err := uuid.Parse(strings.TrimSpace(part))
		if err != nil {
			h.BadRequest(c, "Invalid listing id: "+part)
			return
		}
		ids = append(ids, id)
	}

	basket, err := h.baskets.RemoveItems(c.Request.Context(), getUserID(c), ids)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if basket == nil {
		h.NoContent(c)
		return
	}
	h.Success(c, toBuyerOrderView(basket))
}
