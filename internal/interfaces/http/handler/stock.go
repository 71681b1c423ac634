package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	inventoryapp "github.com/emansa3ed/jewelry-store/internal/application/inventory"
	"github.com/emansa3ed/jewelry-store/internal/interfaces/http/dto"
)

// StockHandler exposes the stock movement audit trail to admins
type StockHandler struct {
	BaseHandler
	movements *inventoryapp.MovementService
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(movements *inventoryapp.MovementService) *StockHandler {
	return &StockHandler{movements: movements}
}

type movementListRequest struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=500"`
}

// Movements godoc
// @Summary      List recent stock movements for a product (admin)
// @Tags         catalog
// @Security     BearerAuth
// @Router       /catalog/products/{id}/movements [get]
func (h *StockHandler) Movements(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}
	var query movementListRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindError(c, err)
		return
	}

	movements, err := h.movements.ListByProduct(c.Request.Context(), uuid.MustParse(uri.ID), query.Limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, movements)
}
