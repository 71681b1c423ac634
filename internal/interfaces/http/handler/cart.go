package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	cartapp "github.com/emansa3ed/jewelry-store/internal/application/cart"
	"github.com/emansa3ed/jewelry-store/internal/interfaces/http/dto"
)

// CartHandler handles the authenticated user's shopping cart
type CartHandler struct {
	BaseHandler
	carts *cartapp.CartService
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(carts *cartapp.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

// Get godoc
// @Summary      Get the current user's cart
// @Tags         cart
// @Security     BearerAuth
// @Router       /cart [get]
func (h *CartHandler) Get(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	view, err := h.carts.GetCart(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// AddItem godoc
// @Summary      Add a product to the cart
// @Tags         cart
// @Security     BearerAuth
// @Router       /cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	var req cartapp.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	view, err := h.carts.AddItem(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// UpdateItem godoc
// @Summary      Change the quantity of a cart line
// @Tags         cart
// @Security     BearerAuth
// @Router       /cart/items/{product_id} [put]
func (h *CartHandler) UpdateItem(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	var uri dto.ProductIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}
	var req cartapp.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	view, err := h.carts.UpdateItem(c.Request.Context(), userID, uuid.MustParse(uri.ProductID), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// RemoveItem godoc
// @Summary      Remove a product from the cart
// @Tags         cart
// @Security     BearerAuth
// @Router       /cart/items/{product_id} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	var uri dto.ProductIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	view, removed, err := h.carts.RemoveItem(c.Request.Context(), userID, uuid.MustParse(uri.ProductID))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if !removed {
		h.Error(c, http.StatusNotFound, "ITEM_NOT_IN_CART", "Product is not in the cart")
		return
	}
	h.Success(c, view)
}

// Clear godoc
// @Summary      Remove all items from the cart
// @Tags         cart
// @Security     BearerAuth
// @Router       /cart [delete]
func (h *CartHandler) Clear(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.carts.Clear(c.Request.Context(), userID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"message": "Cart cleared"})
}
