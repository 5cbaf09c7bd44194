package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appordering "github.com/orderhub/backend/internal/application/ordering"
	"github.com/orderhub/backend/internal/domain/ordering"
	"github.com/orderhub/backend/internal/domain/shared"
)

// PartnerOrderHandler serves the seller's fulfilment view of orders
type PartnerOrderHandler struct {
	BaseHandler
	orders *appordering.OrderService
}

func NewPartnerOrderHandler(orders *appordering.OrderService) *PartnerOrderHandler {
	return &PartnerOrderHandler{orders: orders}
}

// List returns the placed orders of the seller's shop
func (h *PartnerOrderHandler) List(c *gin.Context) {
	orders, err := h.orders.ListShopOrders(c.Request.Context(), getUserID(c), shared.DefaultFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toSellerOrderViews(orders))
}

// Get returns one order of the seller's shop
func (h *PartnerOrderHandler) Get(c *gin.Context) {
	sellerOrderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order id")
		return
	}

	order, err := h.orders.GetShopOrder(c.Request.Context(), getUserID(c), sellerOrderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toSellerOrderView(order))
}

// Patch applies a state change or a shipping price change to one of the
// seller's orders
func (h *PartnerOrderHandler) Patch(c *gin.Context) {
	sellerOrderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order id")
		return
	}

	var req struct {
		State         *string          `json:"state"`
		ShippingPrice *decimal.Decimal `json:"shipping_price"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid patch payload")
		return
	}
	if req.State == nil && req.ShippingPrice == nil {
		h.BadRequest(c, "Nothing to change")
		return
	}

	patch := appordering.SellerOrderPatch{ShippingPrice: req.ShippingPrice}
	if req.State != nil {
		state := ordering.SellerOrderState(*req.State)
		patch.State = &state
	}

	order, err := h.orders.PatchShopOrder(c.Request.Context(), getUserID(c), sellerOrderID, patch)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toSellerOrderView(order))
}
