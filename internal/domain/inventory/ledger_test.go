package inventory

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/emansa3ed/jewelry-store/internal/domain/shared"
)

func TestInsufficientStockError(t *testing.T) {
	productID := uuid.New()
	err := NewInsufficientStockError(productID, 5, 2)

	assert.Contains(t, err.Error(), productID.String())
	assert.Contains(t, err.Error(), "requested 5")
	assert.Contains(t, err.Error(), "available 2")
	assert.True(t, errors.Is(err, shared.ErrInsufficientStock))
	assert.False(t, errors.Is(err, shared.ErrNotFound))
}

func TestMovementTypeIsValid(t *testing.T) {
	assert.True(t, MovementTypeReserve.IsValid())
	assert.True(t, MovementTypeRelease.IsValid())
	assert.False(t, MovementType("TRANSFER").IsValid())
}
