package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appordering "github.com/orderhub/backend/internal/application/ordering"
	"github.com/orderhub/backend/internal/domain/shared"
	"github.com/orderhub/backend/internal/interfaces/http/dto"
)

// OrderHandler serves checkout and the buyer's placed orders
type OrderHandler struct {
	BaseHandler
	checkout *appordering.CheckoutService
	orders   *appordering.OrderService
}

func NewOrderHandler(checkout *appordering.CheckoutService, orders *appordering.OrderService) *OrderHandler {
	return &OrderHandler{checkout: checkout, orders: orders}
}

// Confirm places the basket. An accepted order answers 201; a stock
// shortfall answers 206 with the offending items annotated and the
// basket left untouched.
func (h *OrderHandler) Confirm(c *gin.Context) {
	var req struct {
		ContactID uuid.UUID `json:"contact_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "contact_id is required")
		return
	}

	result, err := h.checkout.Confirm(c.Request.Context(), getUserID(c), getUserEmail(c), req.ContactID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if result.Accepted {
		h.Created(c, toBuyerOrderView(result.Order))
		return
	}
	c.JSON(http.StatusPartialContent, dto.NewSuccessResponse(toBuyerOrderView(result.Order)))
}

// List returns the buyer's placed orders, newest first
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.orders.ListMine(c.Request.Context(), getUserID(c), shared.DefaultFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toBuyerOrderViews(orders))
}

// Get returns one of the buyer's placed orders
func (h *OrderHandler) Get(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order id")
		return
	}

	order, err := h.orders.GetMine(c.Request.Context(), getUserID(c), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toBuyerOrderView(order))
}

// CancelSellerOrder cancels one shop's slice of the buyer's order,
// returning its reserved stock
func (h *OrderHandler) CancelSellerOrder(c *gin.Context) {
	sellerOrderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order id")
		return
	}

	if err := h.orders.CancelSellerOrder(c.Request.Context(), getUserID(c), sellerOrderID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
