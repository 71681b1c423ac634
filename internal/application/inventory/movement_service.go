package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/emansa3ed/jewelry-store/internal/domain/inventory"
)

// MovementResponse is one ledger movement in API form
type MovementResponse struct {
	ID        uuid.UUID              `json:"id"`
	ProductID uuid.UUID              `json:"product_id"`
	Type      inventory.MovementType `json:"type"`
	Quantity  int64                  `json:"quantity"`
	Reference string                 `json:"reference,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

// MovementService exposes the append-only stock movement audit trail
type MovementService struct {
	movements inventory.MovementRepository
}

// NewMovementService creates a new MovementService
func NewMovementService(movements inventory.MovementRepository) *MovementService {
	return &MovementService{movements: movements}
}

// ListByProduct returns the most recent movements for a product,
// newest first. A non-positive limit falls back to the repository default.
func (s *MovementService) ListByProduct(ctx context.Context, productID uuid.UUID, limit int) ([]MovementResponse, error) {
	movements, err := s.movements.FindByProduct(ctx, productID, limit)
	if err != nil {
		return nil, err
	}

	out := make([]MovementResponse, 0, len(movements))
	for i := range movements {
		m := &movements[i]
		out = append(out, MovementResponse{
			ID:        m.ID,
			ProductID: m.ProductID,
			Type:      m.Type,
			Quantity:  m.Quantity,
			Reference: m.Reference,
			CreatedAt: m.CreatedAt,
		})
	}
	return out, nil
}
