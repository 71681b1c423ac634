package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCategory(t *testing.T) {
	t.Run("lowercases and trims the name", func(t *testing.T) {
		c, err := NewCategory("  Necklaces ", "chains and pendants")
		require.NoError(t, err)
		assert.Equal(t, "necklaces", c.Name)
		assert.Equal(t, "chains and pendants", c.Description)
		assert.Len(t, c.GetDomainEvents(), 1)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewCategory("   ", "")
		assert.Error(t, err)
	})

	t.Run("rejects overlong name", func(t *testing.T) {
		_, err := NewCategory(strings.Repeat("a", 101), "")
		assert.Error(t, err)
	})
}

func TestCategoryUpdate(t *testing.T) {
	c, err := NewCategory("rings", "")
	require.NoError(t, err)

	require.NoError(t, c.Update("Wedding Rings", "bands"))
	assert.Equal(t, "wedding rings", c.Name)
	assert.Equal(t, 2, c.Version)

	assert.Error(t, c.Update("", ""))
}
