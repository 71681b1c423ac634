package order

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/emansa3ed/jewelry-store/internal/application/checkout"
	"github.com/emansa3ed/jewelry-store/internal/domain/order"
	"github.com/emansa3ed/jewelry-store/internal/domain/shared"
)

// ListFilter represents pagination options for order lists
type ListFilter struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

// OrderService serves placed orders. Orders are immutable; the only mutation
// here is the administrative delete, which never restores stock.
type OrderService struct {
	orders order.OrderRepository
	logger *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(orders order.OrderRepository, logger *zap.Logger) *OrderService {
	return &OrderService{
		orders: orders,
		logger: logger,
	}
}

// GetByID retrieves an order. A non-admin caller only sees their own orders;
// anyone else's order is reported as not found rather than forbidden.
func (s *OrderService) GetByID(ctx context.Context, requesterID uuid.UUID, isAdmin bool, orderID uuid.UUID) (*checkout.OrderResponse, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && !o.BelongsTo(requesterID) {
		return nil, shared.ErrNotFound
	}

	response := checkout.ToOrderResponse(o)
	return &response, nil
}

// ListByUser retrieves the caller's orders, newest first
func (s *OrderService) ListByUser(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]checkout.OrderResponse, int64, error) {
	domainFilter := s.normalize(filter)

	orders, err := s.orders.FindByUser(ctx, userID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orders.CountByUser(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	return toResponses(orders), total, nil
}

// ListAll retrieves every order, newest first. Admin only; enforced at the
// HTTP layer.
func (s *OrderService) ListAll(ctx context.Context, filter ListFilter) ([]checkout.OrderResponse, int64, error) {
	domainFilter := s.normalize(filter)

	orders, err := s.orders.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orders.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	return toResponses(orders), total, nil
}

// Delete removes an order record. The reserved stock is NOT returned; there
// is no cancellation workflow, so every delete is logged as a stock gap.
func (s *OrderService) Delete(ctx context.Context, orderID uuid.UUID) error {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return err
	}

	if err := s.orders.Delete(ctx, orderID); err != nil {
		return err
	}

	s.logger.Warn("order deleted without restoring stock",
		zap.String("order_id", orderID.String()),
		zap.String("user_id", o.UserID.String()),
		zap.Int64("quantity", o.TotalQuantity()),
		zap.String("total", o.TotalAmount.String()))

	return nil
}

func (s *OrderService) normalize(filter ListFilter) shared.Filter {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	return shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "created_at",
		OrderDir: "desc",
	}
}

func toResponses(orders []order.Order) []checkout.OrderResponse {
	responses := make([]checkout.OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, checkout.ToOrderResponse(&orders[i]))
	}
	return responses
}
