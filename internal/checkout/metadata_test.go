package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moeeznaveed278/myplug/internal/cart"
)

func TestCartItemsRoundTrip(t *testing.T) {
	lines := []cart.Line{
		{ProductID: "p1", Name: "Jordan 4", Size: "US 10", Quantity: 2, Price: 300},
		{ProductID: "p2", Name: "Dunk Low", Size: "US 9", Quantity: 1, Price: 180},
	}

	raw, err := EncodeCartItems(lines)
	require.NoError(t, err)

	items := ParseCartItems(raw)
	require.Len(t, items, 2)
	assert.Equal(t, MetadataItem{ID: "p1", Size: "US 10", Quantity: 2}, items[0])
	assert.Equal(t, MetadataItem{ID: "p2", Size: "US 9", Quantity: 1}, items[1])
}

func TestEncodeCartItemsDropsDisplayFields(t *testing.T) {
	raw, err := EncodeCartItems([]cart.Line{
		{ProductID: "p1", Name: "Jordan 4", Image: "/x.jpg", Size: "US 10", Quantity: 1, Price: 300},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"p1","size":"US 10","quantity":1}]`, raw)
}

func TestParseCartItemsLenient(t *testing.T) {
	assert.Nil(t, ParseCartItems(""))
	assert.Nil(t, ParseCartItems("not json"))
	assert.Nil(t, ParseCartItems(`{"id":"p1"}`), "object instead of array")

	// Entries missing required fields are dropped, not fatal.
	items := ParseCartItems(`[
		{"id":"p1","size":"US 10","quantity":2},
		{"id":"","size":"US 9","quantity":1},
		{"id":"p3","size":"","quantity":1},
		{"id":"p4","size":"M","quantity":0}
	]`)
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].ID)
}
