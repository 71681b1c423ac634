package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	favapp "github.com/emansa3ed/jewelry-store/internal/application/favorite"
	"github.com/emansa3ed/jewelry-store/internal/interfaces/http/dto"
)

// FavoriteHandler handles the user's favorite products
type FavoriteHandler struct {
	BaseHandler
	favorites *favapp.FavoriteService
}

// NewFavoriteHandler creates a new FavoriteHandler
func NewFavoriteHandler(favorites *favapp.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites}
}

// Add godoc
// @Summary      Mark a product as favorite
// @Tags         favorites
// @Security     BearerAuth
// @Router       /favorites [post]
func (h *FavoriteHandler) Add(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	var req favapp.AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	added, err := h.favorites.Add(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	body := gin.H{"product_id": req.ProductID, "favorite": true}
	if added {
		h.Created(c, body)
		return
	}
	h.Success(c, body)
}

// List godoc
// @Summary      List the user's favorite products
// @Tags         favorites
// @Security     BearerAuth
// @Router       /favorites [get]
func (h *FavoriteHandler) List(c *gin.Context) {
	userID, ok := h.currentUserID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	products, err := h.favorites.List(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// Remove godoc
// @Summary      Remove a product from favorites
// @Tags         favorites
// @Security     BearerAuth
// @Router       /favorites/{product_id} [delete]
func (h *FavoriteHandler) Remove(c *gin.Context) {
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

	if err := h.favorites.Remove(c.Request.Context(), userID, uuid.MustParse(uri.ProductID)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
