package checkout

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moeeznaveed278/myplug/internal/cart"
	"github.com/moeeznaveed278/myplug/internal/models"
)

func TestBuildSessionParams(t *testing.T) {
	lines := []cart.Line{
		{ProductID: "p1", Name: "Jordan 4", Image: "https://cdn.example.com/j4.jpg", Size: "US 10", Quantity: 2, Price: 299.99},
		{ProductID: "p2", Name: "Dunk Low", Size: "US 9", Quantity: 1, Price: 180},
	}

	params, err := BuildSessionParams(lines, cart.DeliveryStandard, "order-123", "https://myplug.example.com")
	require.NoError(t, err)

	require.Len(t, params.LineItems, 2)
	first := params.LineItems[0]
	assert.Equal(t, "Jordan 4 - Size: US 10", *first.PriceData.ProductData.Name)
	assert.Equal(t, int64(29999), *first.PriceData.UnitAmount)
	assert.Equal(t, "cad", *first.PriceData.Currency)
	assert.Equal(t, int64(2), *first.Quantity)
	require.Len(t, first.PriceData.ProductData.Images, 1)

	second := params.LineItems[1]
	assert.Equal(t, int64(18000), *second.PriceData.UnitAmount)
	assert.Nil(t, second.PriceData.ProductData.Images, "no image means no image list")

	assert.Equal(t, "order-123", params.Metadata[MetaOrderID])
	assert.Equal(t, cart.DeliveryStandard, params.Metadata[MetaDeliveryMethod])
	assert.JSONEq(t, `[{"id":"p1","size":"US 10","quantity":2},{"id":"p2","size":"US 9","quantity":1}]`,
		params.Metadata[MetaCartItems])

	assert.Equal(t, "https://myplug.example.com/checkout/success?session_id={CHECKOUT_SESSION_ID}", *params.SuccessURL)
	assert.Equal(t, "https://myplug.example.com/cart", *params.CancelURL)

	require.Len(t, params.ShippingOptions, 1)
	rate := params.ShippingOptions[0].ShippingRateData
	assert.Equal(t, "Canada Post Standard", *rate.DisplayName)
	assert.Equal(t, int64(2000), *rate.FixedAmount.Amount)
	require.NotNil(t, rate.DeliveryEstimate)
	assert.Equal(t, int64(2), *rate.DeliveryEstimate.Minimum.Value)

	require.NotNil(t, params.ShippingAddressCollection)
	require.Len(t, params.ShippingAddressCollection.AllowedCountries, 1)
	assert.Equal(t, "CA", *params.ShippingAddressCollection.AllowedCountries[0])
}

func TestBeginRejectsInvalidStockBeforeAnyOrder(t *testing.T) {
	s := newTestStore(t)
	p := createTestProduct(t, s, "Jordan 4", 300, models.Size{Value: "US 10", Quantity: 1})

	svc := &Service{Store: s, BaseURL: "https://myplug.example.com"}
	c := cart.New()
	c.Add(cart.Line{ProductID: p.ID, Name: p.Name, Size: "US 10", Quantity: 2, Price: 300})

	_, err := svc.Begin(c)
	require.Error(t, err)

	var stockErr *StockError
	require.True(t, errors.As(err, &stockErr))

	count, err := s.CountOrders()
	require.NoError(t, err)
	assert.Zero(t, count, "validation failure creates no pending order")
}

func TestBuildSessionParamsPickupHasNoShippingOption(t *testing.T) {
	lines := []cart.Line{{ProductID: "p1", Name: "Jordan 4", Size: "US 10", Quantity: 1, Price: 300}}

	params, err := BuildSessionParams(lines, cart.DeliveryPickup, "order-123", "https://myplug.example.com")
	require.NoError(t, err)

	assert.Empty(t, params.ShippingOptions)
	assert.Equal(t, cart.DeliveryPickup, params.Metadata[MetaDeliveryMethod])
}

func TestBuildSessionParamsExpressHasNoEstimate(t *testing.T) {
	lines := []cart.Line{{ProductID: "p1", Name: "Jordan 4", Size: "US 10", Quantity: 1, Price: 300}}

	params, err := BuildSessionParams(lines, cart.DeliveryExpress, "order-123", "https://myplug.example.com")
	require.NoError(t, err)

	require.Len(t, params.ShippingOptions, 1)
	rate := params.ShippingOptions[0].ShippingRateData
	assert.Equal(t, int64(3700), *rate.FixedAmount.Amount)
	assert.Nil(t, rate.DeliveryEstimate)
}

func TestBuildSessionParamsUSRestrictsCountry(t *testing.T) {
	lines := []cart.Line{{ProductID: "p1", Name: "Jordan 4", Size: "US 10", Quantity: 1, Price: 300}}

	params, err := BuildSessionParams(lines, cart.DeliveryUS, "order-123", "https://myplug.example.com")
	require.NoError(t, err)

	require.Len(t, params.ShippingAddressCollection.AllowedCountries, 1)
	assert.Equal(t, "US", *params.ShippingAddressCollection.AllowedCountries[0])
}
