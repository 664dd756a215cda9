package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moeeznaveed278/myplug/internal/models"
)

func TestDecrementSize(t *testing.T) {
	s := newTestStore(t)
	p := createTestProduct(t, s, models.Size{Value: "US 10", Quantity: 5})

	ok, err := s.DecrementSize(p.ID, "US 10", 2)
	require.NoError(t, err)
	assert.True(t, ok)

	sz, err := s.GetSize(p.ID, "US 10")
	require.NoError(t, err)
	assert.Equal(t, 3, sz.Quantity)
}

func TestDecrementSizeFloorsAtZero(t *testing.T) {
	s := newTestStore(t)
	p := createTestProduct(t, s, models.Size{Value: "US 10", Quantity: 1})

	ok, err := s.DecrementSize(p.ID, "US 10", 3)
	require.NoError(t, err)
	assert.True(t, ok)

	sz, err := s.GetSize(p.ID, "US 10")
	require.NoError(t, err)
	assert.Equal(t, 0, sz.Quantity, "stock never goes negative")
}

func TestDecrementSizeMissingRow(t *testing.T) {
	s := newTestStore(t)
	p := createTestProduct(t, s, models.Size{Value: "US 10", Quantity: 5})

	ok, err := s.DecrementSize(p.ID, "US 13", 1)
	require.NoError(t, err)
	assert.False(t, ok, "no matching size row")
}

func TestGetSizeQuantitiesBatch(t *testing.T) {
	s := newTestStore(t)
	p1 := createTestProduct(t, s,
		models.Size{Value: "US 9", Quantity: 2},
		models.Size{Value: "US 10", Quantity: 7},
	)
	p2 := createTestProduct(t, s, models.Size{Value: "M", Quantity: 4})

	got, err := s.GetSizeQuantities([]SizeKey{
		{ProductID: p1.ID, Value: "US 9"},
		{ProductID: p1.ID, Value: "US 10"},
		{ProductID: p2.ID, Value: "M"},
		{ProductID: p2.ID, Value: "XL"}, // no such row
	})
	require.NoError(t, err)

	assert.Equal(t, 2, got[SizeKey{ProductID: p1.ID, Value: "US 9"}])
	assert.Equal(t, 7, got[SizeKey{ProductID: p1.ID, Value: "US 10"}])
	assert.Equal(t, 4, got[SizeKey{ProductID: p2.ID, Value: "M"}])
	_, ok := got[SizeKey{ProductID: p2.ID, Value: "XL"}]
	assert.False(t, ok, "missing rows are absent, not zero")
}

func TestGetSizeQuantitiesEmptyKeys(t *testing.T) {
	s := newTestStore(t)

	got, err := s.GetSizeQuantities(nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCountLowStockSizes(t *testing.T) {
	s := newTestStore(t)
	createTestProduct(t, s,
		models.Size{Value: "US 9", Quantity: 0},
		models.Size{Value: "US 10", Quantity: 2},
		models.Size{Value: "US 11", Quantity: 9},
	)

	count, err := s.CountLowStockSizes(2)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
