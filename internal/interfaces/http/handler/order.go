package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	checkoutapp "github.com/emansa3ed/jewelry-store/internal/application/checkout"
	orderapp "github.com/emansa3ed/jewelry-store/internal/application/order"
	"github.com/emansa3ed/jewelry-store/internal/interfaces/http/dto"
)

// OrderHandler handles order placement and order history endpoints
type OrderHandler struct {
	BaseHandler
	checkout *checkoutapp.CheckoutService
	orders   *orderapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(checkout *checkoutapp.CheckoutService, orders *orderapp.OrderService) *OrderHandler {
	return &OrderHandler{checkout: checkout, orders: orders}
}

// Place godoc
// @Summary      Place an order from an explicit item list
// @Tags         orders
// @Security     BearerAuth
// @Router       /orders [post]
func (h *OrderHandler) Place(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	var req checkoutapp.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	order, err := h.checkout.PlaceOrder(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// CheckoutCart godoc
// @Summary      Place an order from the current cart
// @Tags         orders
// @Security     BearerAuth
// @Router       /orders/checkout [post]
func (h *OrderHandler) CheckoutCart(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	var req checkoutapp.CheckoutCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	order, err := h.checkout.PlaceOrderFromCart(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// ListMy godoc
// @Summary      List the current user's orders
// @Tags         orders
// @Security     BearerAuth
// @Router       /orders/my [get]
func (h *OrderHandler) ListMy(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	var filter orderapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	orders, total, err := h.orders.ListByUser(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	page, pageSize := filter.Page, filter.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	h.SuccessWithMeta(c, orders, total, page, pageSize)
}

// Get godoc
// @Summary      Get a single order
// @Tags         orders
// @Security     BearerAuth
// @Router       /orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orders.GetByID(c.Request.Context(), userID, h.isAdmin(c), uuid.MustParse(req.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// ListAll godoc
// @Summary      List every order (admin)
// @Tags         orders
// @Security     BearerAuth
// @Router       /orders [get]
func (h *OrderHandler) ListAll(c *gin.Context) {
	var filter orderapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	orders, total, err := h.orders.ListAll(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	page, pageSize := filter.Page, filter.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	h.SuccessWithMeta(c, orders, total, page, pageSize)
}

// Delete godoc
// @Summary      Delete an order (admin)
// @Tags         orders
// @Security     BearerAuth
// @Router       /orders/{id} [delete]
func (h *OrderHandler) Delete(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	if err := h.orders.Delete(c.Request.Context(), uuid.MustParse(req.ID)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
